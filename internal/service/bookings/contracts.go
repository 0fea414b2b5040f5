package bookings

import (
	"context"

	"github.com/m04kA/PMS-InspectionService/internal/domain"
	"github.com/m04kA/PMS-InspectionService/internal/integrations/propertyservice"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
	RejectPendingByProperty(ctx context.Context, propertyID, excludeBookingID int64) (int64, error)
	ListWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.BookingDetail, error)
}

// ScheduleRepository интерфейс репозитория расписаний и слотов.
// Нужен для деталей в письмах: дата осмотра и окно слота.
type ScheduleRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Schedule, error)
	GetSlotByID(ctx context.Context, slotID int64) (*domain.Slot, error)
}

// PropertyServiceClient интерфейс клиента PropertyService
type PropertyServiceClient interface {
	GetProperty(ctx context.Context, propertyID int64) (*propertyservice.Property, error)
}

// Mailer интерфейс отправки почты
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// TransactionManager интерфейс управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
