package domain

// Business validation constants
const (
	MinSlotDurationMinutes = 15
	MaxSlotDurationMinutes = 480 // 8 hours
	MinCapacity            = 1
	MaxCapacity            = 100
	MaxNoteLength          = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveStatuses статусы, занимающие место в слоте.
// Используется при подсчёте занятости и проверке дубликатов.
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
}

// InactiveStatuses статусы, не занимающие место в слоте
var InactiveStatuses = []BookingStatus{
	StatusRejected,
	StatusCancelled,
}
