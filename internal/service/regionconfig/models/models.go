package models

import (
	"time"

	"github.com/m04kA/PMS-InspectionService/internal/domain"
	"github.com/m04kA/PMS-InspectionService/pkg/types"
)

// Request модели

// UpsertConfigRequest запрос на создание или обновление настроек региона
type UpsertConfigRequest struct {
	Region              domain.Region `json:"-"`
	StartTime           string        `json:"startTime"`
	EndTime             string        `json:"endTime"`
	SlotDurationMinutes int           `json:"slotDurationMinutes"`
	MaxCapacity         int           `json:"maxCapacity"`
}

// Response модели

// ConfigResponse ответ с настройками региона
type ConfigResponse struct {
	Region              domain.Region `json:"region"`
	StartTime           string        `json:"startTime"`
	EndTime             string        `json:"endTime"`
	SlotDurationMinutes int           `json:"slotDurationMinutes"`
	MaxCapacity         int           `json:"maxCapacity"`
	CreatedAt           time.Time     `json:"createdAt"`
	UpdatedAt           time.Time     `json:"updatedAt"`
}

// RegionStateResponse состояние одного региона в общем списке.
// Config равен nil, если регион ещё не настроен.
type RegionStateResponse struct {
	Region     domain.Region   `json:"region"`
	Configured bool            `json:"configured"`
	Config     *ConfigResponse `json:"config,omitempty"`
}

// ConfigListResponse ответ со списком состояний всех регионов
type ConfigListResponse struct {
	Regions []RegionStateResponse `json:"regions"`
}

// Методы конвертации

// FromDomainConfig конвертирует domain модель в DTO
func FromDomainConfig(c *domain.RegionConfig) *ConfigResponse {
	if c == nil {
		return nil
	}

	return &ConfigResponse{
		Region:              c.Region,
		StartTime:           c.StartTime.String(),
		EndTime:             c.EndTime.String(),
		SlotDurationMinutes: c.SlotDurationMinutes,
		MaxCapacity:         c.MaxCapacity,
		CreatedAt:           c.CreatedAt,
		UpdatedAt:           c.UpdatedAt,
	}
}

// ToDomainConfig конвертирует UpsertConfigRequest в domain модель.
// Время должно быть предварительно провалидировано сервисом.
func (r *UpsertConfigRequest) ToDomainConfig() (*domain.RegionConfig, error) {
	start, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	end, err := types.NewTimeStringFromString(r.EndTime)
	if err != nil {
		return nil, err
	}

	return &domain.RegionConfig{
		Region:              r.Region,
		StartTime:           start,
		EndTime:             end,
		SlotDurationMinutes: r.SlotDurationMinutes,
		MaxCapacity:         r.MaxCapacity,
	}, nil
}
