package resolve_booking_link

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/PMS-InspectionService/internal/api/handlers"
	resolveBookingLink "github.com/m04kA/PMS-InspectionService/internal/usecase/resolve_booking_link"
)

// Одно сообщение для любого нерабочего токена: наружу не видно,
// существовала ли такая ссылка вообще
const msgLinkNotFound = "ссылка не найдена или устарела"

type Handler struct {
	useCase ResolveBookingLinkUseCase
	logger  Logger
}

func NewHandler(useCase ResolveBookingLinkUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/public/bookings/{token}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]

	result, err := h.useCase.Execute(r.Context(), &resolveBookingLink.Request{Token: token})
	if err != nil {
		switch {
		case errors.Is(err, resolveBookingLink.ErrLinkNotFound):
			h.logger.Info("GET /public/bookings/{token} - Link not found")
			handlers.RespondNotFound(w, msgLinkNotFound)

		default:
			h.logger.Error("GET /public/bookings/{token} - Failed to resolve link: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
