package get_region_configs

import (
	"context"

	"github.com/m04kA/PMS-InspectionService/internal/service/regionconfig/models"
)

type RegionConfigService interface {
	List(ctx context.Context) (*models.ConfigListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
