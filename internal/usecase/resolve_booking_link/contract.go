package resolve_booking_link

import (
	"context"

	"github.com/m04kA/PMS-InspectionService/internal/domain"
	"github.com/m04kA/PMS-InspectionService/internal/integrations/propertyservice"
)

// NotificationRepository интерфейс репозитория токенов бронирования
type NotificationRepository interface {
	GetToken(ctx context.Context, token string) (*domain.BookingToken, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetLatestByScheduleAndProperty(ctx context.Context, scheduleID, propertyID int64) (*domain.Booking, error)
}

// ScheduleRepository интерфейс репозитория расписаний и слотов
type ScheduleRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Schedule, error)
	GetSlots(ctx context.Context, scheduleID int64) ([]*domain.Slot, error)
}

// PropertyServiceClient интерфейс клиента PropertyService
type PropertyServiceClient interface {
	GetProperty(ctx context.Context, propertyID int64) (*propertyservice.Property, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
