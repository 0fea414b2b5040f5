package send_notifications

import (
	"context"

	"github.com/m04kA/PMS-InspectionService/internal/domain"
	"github.com/m04kA/PMS-InspectionService/internal/integrations/propertyservice"
)

// NotificationRepository интерфейс репозитория уведомлений и токенов
type NotificationRepository interface {
	GetRecord(ctx context.Context, scheduleID, propertyID int64) (*domain.NotificationRecord, error)
	UpsertRecord(ctx context.Context, record *domain.NotificationRecord) (*domain.NotificationRecord, error)
	GetTokenByScheduleAndProperty(ctx context.Context, scheduleID, propertyID int64) (*domain.BookingToken, error)
	CreateToken(ctx context.Context, token *domain.BookingToken) (*domain.BookingToken, error)
}

// ScheduleRepository интерфейс репозитория расписаний
type ScheduleRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Schedule, error)
}

// PropertyServiceClient интерфейс клиента PropertyService
type PropertyServiceClient interface {
	GetProperty(ctx context.Context, propertyID int64) (*propertyservice.Property, error)
}

// Mailer интерфейс отправки почты
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// TokenGenerator интерфейс генерации токенов ссылок (для тестирования)
type TokenGenerator interface {
	NewToken() string
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
