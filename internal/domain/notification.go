package domain

import "time"

// NotificationStatus represents the delivery status of a booking-link email
type NotificationStatus string

const (
	NotificationSent   NotificationStatus = "sent"
	NotificationFailed NotificationStatus = "failed"
)

// NotificationRecord tracks whether the booking-link email for a
// (schedule, property) pair was dispatched. At most one record exists per pair.
type NotificationRecord struct {
	ID             int64
	ScheduleID     int64
	PropertyID     int64
	RecipientEmail string
	Status         NotificationStatus
	SentAt         time.Time
}

// BookingToken maps an opaque token to a (schedule, property, recipient)
// triple. Tokens are stable for the life of the schedule: resolving the same
// link twice must behave identically.
type BookingToken struct {
	Token          string
	ScheduleID     int64
	PropertyID     int64
	RecipientEmail string
	CreatedAt      time.Time
}
