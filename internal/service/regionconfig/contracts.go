package regionconfig

import (
	"context"

	"github.com/m04kA/PMS-InspectionService/internal/domain"
)

// ConfigRepository интерфейс репозитория региональных настроек
type ConfigRepository interface {
	Upsert(ctx context.Context, config *domain.RegionConfig) (*domain.RegionConfig, error)
	GetByRegion(ctx context.Context, region domain.Region) (*domain.RegionConfig, error)
	List(ctx context.Context) ([]*domain.RegionConfig, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
