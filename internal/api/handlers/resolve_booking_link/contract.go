package resolve_booking_link

import (
	"context"

	resolveBookingLink "github.com/m04kA/PMS-InspectionService/internal/usecase/resolve_booking_link"
)

type ResolveBookingLinkUseCase interface {
	Execute(ctx context.Context, req *resolveBookingLink.Request) (*resolveBookingLink.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
