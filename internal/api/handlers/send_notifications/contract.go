package send_notifications

import (
	"context"

	sendNotifications "github.com/m04kA/PMS-InspectionService/internal/usecase/send_notifications"
)

type SendNotificationsUseCase interface {
	Execute(ctx context.Context, req *sendNotifications.Request) (*sendNotifications.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
