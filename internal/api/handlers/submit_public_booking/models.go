package submit_public_booking

import (
	createBooking "github.com/m04kA/PMS-InspectionService/internal/usecase/create_booking"
)

// SubmitBookingRequest HTTP request model
type SubmitBookingRequest struct {
	SlotID       int64   `json:"slotId"`
	ContactName  string  `json:"contactName"`
	ContactPhone string  `json:"contactPhone"`
	ContactEmail string  `json:"contactEmail"`
	Note         *string `json:"note,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case.
// Объект и расписание проставляет сам use case из токена.
func (r *SubmitBookingRequest) ToUseCaseRequest() *createBooking.Request {
	return &createBooking.Request{
		SlotID:       r.SlotID,
		ContactName:  r.ContactName,
		ContactPhone: r.ContactPhone,
		ContactEmail: r.ContactEmail,
		Note:         r.Note,
	}
}
