package domain

import (
	"time"

	"github.com/m04kA/PMS-InspectionService/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusRejected  BookingStatus = "rejected"
	StatusCancelled BookingStatus = "cancelled"
)

// ActorType identifies who created a booking
type ActorType string

const (
	ActorContact     ActorType = "contact"
	ActorAgencyUser  ActorType = "agency_user"
	ActorAgencyAdmin ActorType = "agency_admin"
)

// Booking represents one contact's claim on an inspection slot
// for a specific property
type Booking struct {
	ID           int64
	SlotID       int64
	ScheduleID   int64 // denormalized for the per-schedule duplicate check
	PropertyID   int64
	ContactName  string
	ContactPhone string
	ContactEmail string
	Note         *string
	Status       BookingStatus
	BookedByType ActorType
	BookedByID   *int64 // staff user id; nil for external contacts
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsActive returns true if the booking counts against slot capacity
func (b *Booking) IsActive() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// IsPending returns true if the booking is awaiting a staff decision
func (b *Booking) IsPending() bool {
	return b.Status == StatusPending
}

// BookingsFilter фильтр для получения списка бронирований
type BookingsFilter struct {
	Status     *BookingStatus
	Region     *Region
	PropertyID *int64
	ScheduleID *int64
}

// BookingDetail is a booking joined with its slot and schedule for display
type BookingDetail struct {
	Booking
	SlotStartTime types.TimeString
	SlotEndTime   types.TimeString
	ScheduleDate  time.Time
	Region        Region
}
