package create_schedules

import (
	"context"

	"github.com/m04kA/PMS-InspectionService/internal/service/schedules/models"
)

type ScheduleService interface {
	CreateBatch(ctx context.Context, req *models.CreateSchedulesRequest) (*models.CreateSchedulesResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
