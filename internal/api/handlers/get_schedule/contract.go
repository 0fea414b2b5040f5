package get_schedule

import (
	"context"

	"github.com/m04kA/PMS-InspectionService/internal/service/schedules/models"
)

type ScheduleService interface {
	GetDetail(ctx context.Context, scheduleID int64) (*models.ScheduleDetailResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
