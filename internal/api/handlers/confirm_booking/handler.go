package confirm_booking

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/PMS-InspectionService/internal/api/handlers"
	bookingsService "github.com/m04kA/PMS-InspectionService/internal/service/bookings"
	"github.com/m04kA/PMS-InspectionService/internal/service/bookings/models"
)

const (
	msgInvalidBookingID   = "некорректный идентификатор бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgBookingNotFound    = "бронирование не найдено"
	msgInvalidState       = "бронирование уже обработано"
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

// Handle PATCH /api/v1/bookings/{bookingId}/confirm
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := strconv.ParseInt(mux.Vars(r)["bookingId"], 10, 64)
	if err != nil || bookingID <= 0 {
		h.logger.Warn("PATCH /bookings/{bookingId}/confirm - Invalid booking id: %s", mux.Vars(r)["bookingId"])
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	// Тело опционально: без него уведомление не отправляется
	var req models.ConfirmBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("PATCH /bookings/%d/confirm - Invalid request body: %v", bookingID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.BookingID = bookingID

	result, err := h.service.Confirm(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, bookingsService.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/%d/confirm - Booking not found", bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, bookingsService.ErrInvalidState):
			h.logger.Warn("PATCH /bookings/%d/confirm - Booking is not pending", bookingID)
			handlers.RespondError(w, http.StatusConflict, msgInvalidState)

		default:
			h.logger.Error("PATCH /bookings/%d/confirm - Failed to confirm booking: %v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/%d/confirm - Booking confirmed, auto-rejected=%d",
		bookingID, result.AutoRejectedCount)
	handlers.RespondJSON(w, http.StatusOK, result)
}
