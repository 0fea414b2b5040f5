package create_booking

import (
	"time"

	"github.com/m04kA/PMS-InspectionService/internal/domain"
)

// Request запрос на создание бронирования.
// ExpectedScheduleID заполняется публичным флоу: слот обязан
// принадлежать расписанию, на которое выписан токен. Для сотрудников
// агентства поле остаётся нулевым и не проверяется.
type Request struct {
	SlotID             int64
	PropertyID         int64
	ExpectedScheduleID int64
	ContactName        string
	ContactPhone       string
	ContactEmail       string
	Note               *string
	BookedByType       domain.ActorType
	BookedByID         *int64
}

// Response результат создания бронирования.
// AlreadyBooked=true означает, что у объекта уже было активное
// бронирование в этом расписании: возвращается существующее.
type Response struct {
	BookingID     int64                `json:"bookingId"`
	SlotID        int64                `json:"slotId"`
	ScheduleID    int64                `json:"scheduleId"`
	PropertyID    int64                `json:"propertyId"`
	Status        domain.BookingStatus `json:"status"`
	AlreadyBooked bool                 `json:"alreadyBooked"`
	CreatedAt     time.Time            `json:"createdAt"`
}

// buildResponse конвертирует domain модель в ответ usecase
func buildResponse(booking *domain.Booking, alreadyBooked bool) *Response {
	return &Response{
		BookingID:     booking.ID,
		SlotID:        booking.SlotID,
		ScheduleID:    booking.ScheduleID,
		PropertyID:    booking.PropertyID,
		Status:        booking.Status,
		AlreadyBooked: alreadyBooked,
		CreatedAt:     booking.CreatedAt,
	}
}
