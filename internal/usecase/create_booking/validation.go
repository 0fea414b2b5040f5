package create_booking

import (
	"fmt"
	"strings"

	"github.com/m04kA/PMS-InspectionService/internal/domain"
)

// validateRequest проверяет входные данные запроса на бронирование
func validateRequest(req *Request) error {
	if req.SlotID <= 0 {
		return fmt.Errorf("%w: slotId is required", ErrInvalidInput)
	}
	if req.PropertyID <= 0 {
		return fmt.Errorf("%w: propertyId is required", ErrInvalidInput)
	}
	if strings.TrimSpace(req.ContactName) == "" {
		return fmt.Errorf("%w: contactName is required", ErrInvalidInput)
	}
	if strings.TrimSpace(req.ContactPhone) == "" {
		return fmt.Errorf("%w: contactPhone is required", ErrInvalidInput)
	}
	if req.Note != nil && len(*req.Note) > domain.MaxNoteLength {
		return fmt.Errorf("%w: note must not exceed %d characters", ErrInvalidInput, domain.MaxNoteLength)
	}

	switch req.BookedByType {
	case domain.ActorContact, domain.ActorAgencyUser, domain.ActorAgencyAdmin:
	default:
		return fmt.Errorf("%w: unknown actor type", ErrInvalidInput)
	}

	return nil
}
