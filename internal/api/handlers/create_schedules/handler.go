package create_schedules

import (
	"errors"
	"net/http"

	"github.com/m04kA/PMS-InspectionService/internal/api/handlers"
	schedulesService "github.com/m04kA/PMS-InspectionService/internal/service/schedules"
	"github.com/m04kA/PMS-InspectionService/internal/service/schedules/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidRegion      = "неизвестный регион"
	msgInvalidInput       = "некорректные параметры пакета"
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

// Handle POST /api/v1/schedules
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.CreateSchedulesRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /schedules - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.CreateBatch(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, schedulesService.ErrInvalidRegion):
			h.logger.Warn("POST /schedules - Unknown region: %s", req.Region)
			handlers.RespondBadRequest(w, msgInvalidRegion)

		case errors.Is(err, schedulesService.ErrInvalidInput):
			h.logger.Warn("POST /schedules - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /schedules - Failed to create schedules: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /schedules - region=%s created=%d skipped=%d failed=%d",
		req.Region, len(result.Created), len(result.Skipped), len(result.Failed))
	handlers.RespondJSON(w, http.StatusCreated, result)
}
