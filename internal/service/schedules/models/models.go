package models

import (
	"time"

	"github.com/m04kA/PMS-InspectionService/internal/domain"
)

// Request модели

// CreateSchedulesRequest запрос на пакетное создание расписаний.
// Переопределения (override-поля) заменяют соответствующие значения
// из настроек региона для всех дат пакета.
type CreateSchedulesRequest struct {
	Region              domain.Region `json:"region"`
	Dates               []string      `json:"dates"` // YYYY-MM-DD
	StartTime           *string       `json:"startTime,omitempty"`
	EndTime             *string       `json:"endTime,omitempty"`
	SlotDurationMinutes *int          `json:"slotDurationMinutes,omitempty"`
	MaxCapacity         *int          `json:"maxCapacity,omitempty"`
	Note                *string       `json:"note,omitempty"`
}

// ListSchedulesRequest запрос на получение списка расписаний
type ListSchedulesRequest struct {
	Region   *domain.Region
	DateFrom *time.Time
	DateTo   *time.Time
}

// Response модели

// ScheduleResponse ответ с данными расписания
type ScheduleResponse struct {
	ID                  int64                 `json:"id"`
	Region              domain.Region         `json:"region"`
	Date                string                `json:"date"`
	StartTime           string                `json:"startTime"`
	EndTime             string                `json:"endTime"`
	SlotDurationMinutes int                   `json:"slotDurationMinutes"`
	MaxCapacity         int                   `json:"maxCapacity"`
	Status              domain.ScheduleStatus `json:"status"`
	Note                *string               `json:"note,omitempty"`
	CreatedAt           time.Time             `json:"createdAt"`
	UpdatedAt           time.Time             `json:"updatedAt"`
}

// SlotResponse ответ с данными слота
type SlotResponse struct {
	ID              int64  `json:"id"`
	StartTime       string `json:"startTime"`
	EndTime         string `json:"endTime"`
	MaxCapacity     int    `json:"maxCapacity"`
	CurrentBookings int    `json:"currentBookings"`
	AvailableSpots  int    `json:"availableSpots"`
}

// NotificationRecordResponse запись об отправленном уведомлении
type NotificationRecordResponse struct {
	PropertyID     int64     `json:"propertyId"`
	RecipientEmail string    `json:"recipientEmail"`
	Status         string    `json:"status"`
	SentAt         time.Time `json:"sentAt"`
}

// ScheduleDetailResponse расписание со слотами и историей уведомлений
type ScheduleDetailResponse struct {
	ScheduleResponse
	Slots         []SlotResponse               `json:"slots"`
	Notifications []NotificationRecordResponse `json:"notifications"`
}

// ScheduleListResponse ответ со списком расписаний
type ScheduleListResponse struct {
	Schedules []ScheduleResponse `json:"schedules"`
}

// FailedDate дата, для которой не удалось создать расписание
type FailedDate struct {
	Date   string `json:"date"`
	Reason string `json:"reason"`
}

// CreateSchedulesResponse результат пакетного создания.
// Каждая дата попадает ровно в одну из трёх секций.
type CreateSchedulesResponse struct {
	Created []ScheduleResponse `json:"created"`
	Skipped []string           `json:"skipped"`
	Failed  []FailedDate       `json:"failed"`
}

// Методы конвертации

// FromDomainSchedule конвертирует domain модель в DTO
func FromDomainSchedule(s *domain.Schedule) *ScheduleResponse {
	if s == nil {
		return nil
	}

	return &ScheduleResponse{
		ID:                  s.ID,
		Region:              s.Region,
		Date:                s.ScheduleDate.Format(domain.DateFormat),
		StartTime:           s.StartTime.String(),
		EndTime:             s.EndTime.String(),
		SlotDurationMinutes: s.SlotDurationMinutes,
		MaxCapacity:         s.MaxCapacity,
		Status:              s.Status,
		Note:                s.Note,
		CreatedAt:           s.CreatedAt,
		UpdatedAt:           s.UpdatedAt,
	}
}

// FromDomainSlot конвертирует слот в DTO
func FromDomainSlot(s *domain.Slot) SlotResponse {
	return SlotResponse{
		ID:              s.ID,
		StartTime:       s.StartTime.String(),
		EndTime:         s.EndTime.String(),
		MaxCapacity:     s.MaxCapacity,
		CurrentBookings: s.CurrentBookings,
		AvailableSpots:  s.AvailableSpots(),
	}
}

// FromDomainSlots конвертирует список слотов в DTO
func FromDomainSlots(slots []*domain.Slot) []SlotResponse {
	result := make([]SlotResponse, len(slots))
	for i, slot := range slots {
		result[i] = FromDomainSlot(slot)
	}
	return result
}

// FromDomainNotificationRecords конвертирует записи об уведомлениях в DTO
func FromDomainNotificationRecords(records []*domain.NotificationRecord) []NotificationRecordResponse {
	result := make([]NotificationRecordResponse, len(records))
	for i, record := range records {
		result[i] = NotificationRecordResponse{
			PropertyID:     record.PropertyID,
			RecipientEmail: record.RecipientEmail,
			Status:         string(record.Status),
			SentAt:         record.SentAt,
		}
	}
	return result
}
