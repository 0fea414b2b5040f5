package send_notifications

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/PMS-InspectionService/internal/api/handlers"
	sendNotifications "github.com/m04kA/PMS-InspectionService/internal/usecase/send_notifications"
)

const (
	msgInvalidScheduleID  = "некорректный идентификатор расписания"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgScheduleNotFound   = "расписание не найдено"
	msgEmptyProperties    = "список объектов пуст"
)

type Handler struct {
	useCase SendNotificationsUseCase
	logger  Logger
}

func NewHandler(useCase SendNotificationsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/schedules/{scheduleId}/notifications
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	scheduleID, err := strconv.ParseInt(mux.Vars(r)["scheduleId"], 10, 64)
	if err != nil || scheduleID <= 0 {
		h.logger.Warn("POST /schedules/{scheduleId}/notifications - Invalid schedule id: %s", mux.Vars(r)["scheduleId"])
		handlers.RespondBadRequest(w, msgInvalidScheduleID)
		return
	}

	var req SendNotificationsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /schedules/%d/notifications - Invalid request body: %v", scheduleID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(scheduleID))
	if err != nil {
		switch {
		case errors.Is(err, sendNotifications.ErrScheduleNotFound):
			h.logger.Warn("POST /schedules/%d/notifications - Schedule not found", scheduleID)
			handlers.RespondNotFound(w, msgScheduleNotFound)

		case errors.Is(err, sendNotifications.ErrInvalidInput):
			h.logger.Warn("POST /schedules/%d/notifications - Invalid input: %v", scheduleID, err)
			handlers.RespondBadRequest(w, msgEmptyProperties)

		default:
			h.logger.Error("POST /schedules/%d/notifications - Failed to send notifications: %v", scheduleID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /schedules/%d/notifications - success=%d skipped=%d failed=%d",
		scheduleID, len(result.Success), len(result.Skipped), len(result.Failed))
	handlers.RespondJSON(w, http.StatusOK, result)
}
