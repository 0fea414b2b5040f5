package models

import (
	"time"

	"github.com/m04kA/PMS-InspectionService/internal/domain"
)

// Request модели

// ConfirmBookingRequest запрос на подтверждение бронирования
type ConfirmBookingRequest struct {
	BookingID        int64 `json:"-"`
	SendNotification bool  `json:"sendNotification"`
}

// RejectBookingRequest запрос на отклонение бронирования
type RejectBookingRequest struct {
	BookingID        int64 `json:"-"`
	SendNotification bool  `json:"sendNotification"`
}

// ListBookingsRequest запрос на получение списка бронирований
type ListBookingsRequest struct {
	Status     *domain.BookingStatus
	Region     *domain.Region
	PropertyID *int64
	ScheduleID *int64
}

// Response модели

// PropertySummary краткие данные объекта из PropertyService
type PropertySummary struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
}

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID           int64                `json:"id"`
	ScheduleID   int64                `json:"scheduleId"`
	SlotID       int64                `json:"slotId"`
	PropertyID   int64                `json:"propertyId"`
	Property     *PropertySummary     `json:"property,omitempty"`
	Region       domain.Region        `json:"region,omitempty"`
	Date         string               `json:"date,omitempty"`
	StartTime    string               `json:"startTime,omitempty"`
	EndTime      string               `json:"endTime,omitempty"`
	ContactName  string               `json:"contactName"`
	ContactPhone string               `json:"contactPhone"`
	ContactEmail string               `json:"contactEmail"`
	Note         *string              `json:"note,omitempty"`
	Status       domain.BookingStatus `json:"status"`
	BookedByType domain.ActorType     `json:"bookedByType"`
	BookedByID   *int64               `json:"bookedById,omitempty"`
	CreatedAt    time.Time            `json:"createdAt"`
	UpdatedAt    time.Time            `json:"updatedAt"`
}

// ConfirmBookingResponse результат подтверждения: само бронирование
// и количество автоматически отклонённых конкурентов
type ConfirmBookingResponse struct {
	Booking          BookingResponse `json:"booking"`
	AutoRejectedCount int64          `json:"autoRejectedCount"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	return &BookingResponse{
		ID:           b.ID,
		ScheduleID:   b.ScheduleID,
		SlotID:       b.SlotID,
		PropertyID:   b.PropertyID,
		ContactName:  b.ContactName,
		ContactPhone: b.ContactPhone,
		ContactEmail: b.ContactEmail,
		Note:         b.Note,
		Status:       b.Status,
		BookedByType: b.BookedByType,
		BookedByID:   b.BookedByID,
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}
}

// FromDomainBookingDetail конвертирует обогащённую модель в DTO
func FromDomainBookingDetail(d *domain.BookingDetail) *BookingResponse {
	if d == nil {
		return nil
	}

	resp := FromDomainBooking(&d.Booking)
	resp.Region = d.Region
	resp.Date = d.ScheduleDate.Format(domain.DateFormat)
	resp.StartTime = d.SlotStartTime.String()
	resp.EndTime = d.SlotEndTime.String()

	return resp
}
