package list_bookings

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/PMS-InspectionService/internal/api/handlers"
	"github.com/m04kA/PMS-InspectionService/internal/domain"
	bookingsService "github.com/m04kA/PMS-InspectionService/internal/service/bookings"
	"github.com/m04kA/PMS-InspectionService/internal/service/bookings/models"
	"github.com/m04kA/PMS-InspectionService/pkg/ptr"
)

const (
	msgInvalidStatus     = "некорректный статус бронирования"
	msgInvalidPropertyID = "некорректный идентификатор объекта"
	msgInvalidScheduleID = "некорректный идентификатор расписания"
	msgInvalidFilter     = "некорректные параметры фильтра"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings?status=&region=&propertyId=&scheduleId=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req := &models.ListBookingsRequest{}
	query := r.URL.Query()

	if raw := query.Get("status"); raw != "" {
		status := domain.BookingStatus(raw)
		switch status {
		case domain.StatusPending, domain.StatusConfirmed, domain.StatusRejected, domain.StatusCancelled:
			req.Status = &status
		default:
			h.logger.Warn("GET /bookings - Invalid status: %s", raw)
			handlers.RespondBadRequest(w, msgInvalidStatus)
			return
		}
	}

	if raw := query.Get("region"); raw != "" {
		req.Region = ptr.Ptr(domain.Region(raw))
	}

	if raw := query.Get("propertyId"); raw != "" {
		propertyID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || propertyID <= 0 {
			h.logger.Warn("GET /bookings - Invalid property id: %s", raw)
			handlers.RespondBadRequest(w, msgInvalidPropertyID)
			return
		}
		req.PropertyID = &propertyID
	}

	if raw := query.Get("scheduleId"); raw != "" {
		scheduleID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || scheduleID <= 0 {
			h.logger.Warn("GET /bookings - Invalid schedule id: %s", raw)
			handlers.RespondBadRequest(w, msgInvalidScheduleID)
			return
		}
		req.ScheduleID = &scheduleID
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookingsService.ErrInvalidInput):
			h.logger.Warn("GET /bookings - Invalid filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		default:
			h.logger.Error("GET /bookings - Failed to list bookings: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
