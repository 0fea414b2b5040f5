package get_schedule

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/PMS-InspectionService/internal/api/handlers"
	schedulesService "github.com/m04kA/PMS-InspectionService/internal/service/schedules"
)

const (
	msgInvalidScheduleID = "некорректный идентификатор расписания"
	msgScheduleNotFound  = "расписание не найдено"
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

// Handle GET /api/v1/schedules/{scheduleId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	scheduleID, err := strconv.ParseInt(mux.Vars(r)["scheduleId"], 10, 64)
	if err != nil || scheduleID <= 0 {
		h.logger.Warn("GET /schedules/{scheduleId} - Invalid schedule id: %s", mux.Vars(r)["scheduleId"])
		handlers.RespondBadRequest(w, msgInvalidScheduleID)
		return
	}

	result, err := h.service.GetDetail(r.Context(), scheduleID)
	if err != nil {
		switch {
		case errors.Is(err, schedulesService.ErrScheduleNotFound):
			h.logger.Warn("GET /schedules/%d - Schedule not found", scheduleID)
			handlers.RespondNotFound(w, msgScheduleNotFound)

		default:
			h.logger.Error("GET /schedules/%d - Failed to get schedule: %v", scheduleID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
