package list_schedules

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/PMS-InspectionService/internal/api/handlers"
	"github.com/m04kA/PMS-InspectionService/internal/domain"
	schedulesService "github.com/m04kA/PMS-InspectionService/internal/service/schedules"
	"github.com/m04kA/PMS-InspectionService/internal/service/schedules/models"
	"github.com/m04kA/PMS-InspectionService/pkg/ptr"
)

const (
	msgInvalidRegion = "неизвестный регион"
	msgInvalidDate   = "некорректный формат даты, ожидается YYYY-MM-DD"
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

// Handle GET /api/v1/schedules?region=&from=&to=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req := &models.ListSchedulesRequest{}
	query := r.URL.Query()

	if raw := query.Get("region"); raw != "" {
		req.Region = ptr.Ptr(domain.Region(raw))
	}

	if raw := query.Get("from"); raw != "" {
		from, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			h.logger.Warn("GET /schedules - Invalid from date: %s", raw)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		req.DateFrom = &from
	}

	if raw := query.Get("to"); raw != "" {
		to, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			h.logger.Warn("GET /schedules - Invalid to date: %s", raw)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		req.DateTo = &to
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, schedulesService.ErrInvalidRegion):
			h.logger.Warn("GET /schedules - Unknown region: %s", query.Get("region"))
			handlers.RespondBadRequest(w, msgInvalidRegion)

		default:
			h.logger.Error("GET /schedules - Failed to list schedules: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
