package delete_schedule

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/PMS-InspectionService/internal/api/handlers"
	schedulesService "github.com/m04kA/PMS-InspectionService/internal/service/schedules"
)

const (
	msgInvalidScheduleID    = "некорректный идентификатор расписания"
	msgScheduleNotFound     = "расписание не найдено"
	msgHasConfirmedBookings = "у расписания есть подтверждённые бронирования"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/schedules/{scheduleId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	scheduleID, err := strconv.ParseInt(mux.Vars(r)["scheduleId"], 10, 64)
	if err != nil || scheduleID <= 0 {
		h.logger.Warn("DELETE /schedules/{scheduleId} - Invalid schedule id: %s", mux.Vars(r)["scheduleId"])
		handlers.RespondBadRequest(w, msgInvalidScheduleID)
		return
	}

	if err := h.service.Delete(r.Context(), scheduleID); err != nil {
		switch {
		case errors.Is(err, schedulesService.ErrScheduleNotFound):
			h.logger.Warn("DELETE /schedules/%d - Schedule not found", scheduleID)
			handlers.RespondNotFound(w, msgScheduleNotFound)

		case errors.Is(err, schedulesService.ErrHasConfirmedBookings):
			h.logger.Warn("DELETE /schedules/%d - Schedule has confirmed bookings", scheduleID)
			handlers.RespondError(w, http.StatusConflict, msgHasConfirmedBookings)

		default:
			h.logger.Error("DELETE /schedules/%d - Failed to delete schedule: %v", scheduleID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /schedules/%d - Schedule deleted", scheduleID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
