package submit_public_booking

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/PMS-InspectionService/internal/api/handlers"
	createBooking "github.com/m04kA/PMS-InspectionService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgLinkNotFound       = "ссылка не найдена или устарела"
	msgSlotNotFound       = "слот не найден"
	msgSlotNotInSchedule  = "слот не относится к этому дню осмотров"
	msgScheduleClosed     = "запись на этот день закрыта"
	msgSlotFull           = "в выбранном слоте не осталось мест"
	msgInvalidInput       = "некорректные данные заявки"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/public/bookings/{token}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]

	var req SubmitBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /public/bookings/{token} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.ExecuteWithToken(r.Context(), token, req.ToUseCaseRequest())
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrLinkNotFound):
			h.logger.Info("POST /public/bookings/{token} - Link not found")
			handlers.RespondNotFound(w, msgLinkNotFound)

		case errors.Is(err, createBooking.ErrSlotNotFound):
			h.logger.Warn("POST /public/bookings/{token} - Slot not found: slot_id=%d", req.SlotID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, createBooking.ErrSlotNotInSchedule):
			h.logger.Warn("POST /public/bookings/{token} - Slot not in schedule: slot_id=%d", req.SlotID)
			handlers.RespondBadRequest(w, msgSlotNotInSchedule)

		case errors.Is(err, createBooking.ErrScheduleClosed):
			h.logger.Warn("POST /public/bookings/{token} - Schedule closed: slot_id=%d", req.SlotID)
			handlers.RespondError(w, http.StatusConflict, msgScheduleClosed)

		case errors.Is(err, createBooking.ErrSlotFull):
			h.logger.Warn("POST /public/bookings/{token} - Slot full: slot_id=%d", req.SlotID)
			handlers.RespondError(w, http.StatusConflict, msgSlotFull)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /public/bookings/{token} - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /public/bookings/{token} - Failed to create booking: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Повторная заявка по тому же объекту возвращает существующее
	// бронирование, а не создаёт новое
	status := http.StatusCreated
	if result.AlreadyBooked {
		status = http.StatusOK
	}

	h.logger.Info("POST /public/bookings/{token} - Booking id=%d, already_booked=%t",
		result.BookingID, result.AlreadyBooked)
	handlers.RespondJSON(w, status, result)
}
