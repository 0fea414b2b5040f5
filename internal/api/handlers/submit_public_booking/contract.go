package submit_public_booking

import (
	"context"

	createBooking "github.com/m04kA/PMS-InspectionService/internal/usecase/create_booking"
)

type CreateBookingUseCase interface {
	ExecuteWithToken(ctx context.Context, rawToken string, req *createBooking.Request) (*createBooking.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
