package create_booking

import (
	"context"

	"github.com/m04kA/PMS-InspectionService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetActiveByScheduleAndProperty(ctx context.Context, scheduleID, propertyID int64) (*domain.Booking, error)
	CountActiveBySlot(ctx context.Context, slotID int64) (int, error)
}

// ScheduleRepository интерфейс репозитория расписаний и слотов
type ScheduleRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Schedule, error)
	GetSlotByID(ctx context.Context, slotID int64) (*domain.Slot, error)
}

// TokenRepository интерфейс репозитория токенов бронирования
type TokenRepository interface {
	GetToken(ctx context.Context, token string) (*domain.BookingToken, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
