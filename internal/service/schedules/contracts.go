package schedules

import (
	"context"
	"time"

	"github.com/m04kA/PMS-InspectionService/internal/domain"
)

// ScheduleRepository интерфейс репозитория расписаний и слотов
type ScheduleRepository interface {
	CreateWithSlots(ctx context.Context, schedule *domain.Schedule, windows []domain.SlotWindow) (*domain.Schedule, error)
	GetByID(ctx context.Context, id int64) (*domain.Schedule, error)
	GetByRegionAndDate(ctx context.Context, region domain.Region, date time.Time) (*domain.Schedule, error)
	List(ctx context.Context, filter domain.ScheduleFilter) ([]*domain.Schedule, error)
	GetSlots(ctx context.Context, scheduleID int64) ([]*domain.Slot, error)
	Delete(ctx context.Context, id int64) error
}

// ConfigRepository интерфейс репозитория региональных настроек
type ConfigRepository interface {
	GetByRegion(ctx context.Context, region domain.Region) (*domain.RegionConfig, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	HasConfirmedBySchedule(ctx context.Context, scheduleID int64) (bool, error)
}

// NotificationRepository интерфейс репозитория записей об уведомлениях
type NotificationRepository interface {
	ListRecordsBySchedule(ctx context.Context, scheduleID int64) ([]*domain.NotificationRecord, error)
}

// TransactionManager интерфейс управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
