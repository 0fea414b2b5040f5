package resolve_booking_link

import (
	"github.com/m04kA/PMS-InspectionService/internal/domain"
)

// Request запрос на разрешение ссылки бронирования
type Request struct {
	Token string
}

// PropertyView данные объекта для публичной страницы
type PropertyView struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
}

// SlotView слот для публичной страницы
type SlotView struct {
	ID             int64  `json:"id"`
	StartTime      string `json:"startTime"`
	EndTime        string `json:"endTime"`
	AvailableSpots int    `json:"availableSpots"`
}

// ScheduleView расписание со слотами для публичной страницы
type ScheduleView struct {
	ID     int64         `json:"id"`
	Region domain.Region `json:"region"`
	Date   string        `json:"date"`
	Slots  []SlotView    `json:"slots"`
}

// BookingView текущее бронирование объекта в этом расписании
type BookingView struct {
	ID        int64                `json:"id"`
	SlotID    int64                `json:"slotId"`
	StartTime string               `json:"startTime,omitempty"`
	EndTime   string               `json:"endTime,omitempty"`
	Status    domain.BookingStatus `json:"status"`
}

// Response данные публичной страницы бронирования.
// При AlreadyBooked=true список расписаний пуст, заполнен Booking.
type Response struct {
	Property      PropertyView   `json:"property"`
	AlreadyBooked bool           `json:"alreadyBooked"`
	Booking       *BookingView   `json:"booking,omitempty"`
	Schedules     []ScheduleView `json:"schedules"`
}
