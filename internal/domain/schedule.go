package domain

import (
	"time"

	"github.com/m04kA/PMS-InspectionService/pkg/types"
)

// ScheduleStatus represents the status of an inspection day
type ScheduleStatus string

const (
	ScheduleStatusPublished ScheduleStatus = "published"
	ScheduleStatusClosed    ScheduleStatus = "closed"
)

// Schedule represents one inspection day for one region.
// Time parameters are copied from RegionConfig (or batch overrides) at
// creation time and never change afterwards.
type Schedule struct {
	ID                  int64
	Region              Region
	ScheduleDate        time.Time
	StartTime           types.TimeString
	EndTime             types.TimeString
	SlotDurationMinutes int
	MaxCapacity         int
	Status              ScheduleStatus
	Note                *string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// SlotWindow is a generated (start, end) pair before persistence
type SlotWindow struct {
	StartTime types.TimeString
	EndTime   types.TimeString
}

// Slot represents a fixed time window within a schedule with finite capacity
type Slot struct {
	ID          int64
	ScheduleID  int64
	StartTime   types.TimeString
	EndTime     types.TimeString
	MaxCapacity int
	CreatedAt   time.Time

	// CurrentBookings is the derived count of active (pending/confirmed)
	// bookings; populated by queries, never stored.
	CurrentBookings int
}

// AvailableSpots returns the number of free spots, clamped at zero
func (s *Slot) AvailableSpots() int {
	available := s.MaxCapacity - s.CurrentBookings
	if available < 0 {
		return 0
	}
	return available
}

// IsFull returns true if the slot has no available spots
func (s *Slot) IsFull() bool {
	return s.AvailableSpots() == 0
}

// ScheduleFilter фильтр для списка расписаний
type ScheduleFilter struct {
	Region   *Region
	DateFrom *time.Time
	DateTo   *time.Time
}
