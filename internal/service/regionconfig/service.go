package regionconfig

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/PMS-InspectionService/internal/domain"
	configRepo "github.com/m04kA/PMS-InspectionService/internal/infra/storage/regionconfig"
	"github.com/m04kA/PMS-InspectionService/internal/service/regionconfig/models"
)

// Service сервис для работы с настройками регионов
type Service struct {
	configRepo ConfigRepository
	logger     Logger
}

// NewService создает новый экземпляр сервиса региональных настроек
func NewService(configRepo ConfigRepository, logger Logger) *Service {
	return &Service{
		configRepo: configRepo,
		logger:     logger,
	}
}

// Upsert создает или обновляет настройки региона.
// Настройки хранятся по одной на регион, повторный вызов перезаписывает.
func (s *Service) Upsert(ctx context.Context, req *models.UpsertConfigRequest) (*models.ConfigResponse, error) {
	s.logger.Info("Upsert: saving config for region=%s", req.Region)

	if !req.Region.IsValid() {
		s.logger.Warn("Upsert: unknown region=%s", req.Region)
		return nil, ErrInvalidRegion
	}

	config, err := req.ToDomainConfig()
	if err != nil {
		s.logger.Warn("Upsert: invalid time format for region=%s: %v", req.Region, err)
		return nil, fmt.Errorf("%w: time must be in HH:MM format", ErrInvalidInput)
	}

	if err := s.validateConfig(config); err != nil {
		s.logger.Warn("Upsert: validation failed for region=%s: %v", req.Region, err)
		return nil, err
	}

	saved, err := s.configRepo.Upsert(ctx, config)
	if err != nil {
		s.logger.Error("Upsert: failed to save config for region=%s: %v", req.Region, err)
		return nil, fmt.Errorf("%w: failed to save config: %v", ErrInternal, err)
	}

	s.logger.Info("Upsert: config saved for region=%s, duration=%d, capacity=%d",
		saved.Region, saved.SlotDurationMinutes, saved.MaxCapacity)

	return models.FromDomainConfig(saved), nil
}

// Get получает настройки региона.
// Отсутствие настроек - штатное состояние, возвращается ErrConfigNotFound.
func (s *Service) Get(ctx context.Context, region domain.Region) (*models.ConfigResponse, error) {
	if !region.IsValid() {
		return nil, ErrInvalidRegion
	}

	config, err := s.configRepo.GetByRegion(ctx, region)
	if err != nil {
		if errors.Is(err, configRepo.ErrConfigNotFound) {
			return nil, ErrConfigNotFound
		}
		s.logger.Error("Get: failed to get config for region=%s: %v", region, err)
		return nil, fmt.Errorf("%w: failed to get config: %v", ErrInternal, err)
	}

	return models.FromDomainConfig(config), nil
}

// List возвращает состояние всех регионов, включая ненастроенные
func (s *Service) List(ctx context.Context) (*models.ConfigListResponse, error) {
	configs, err := s.configRepo.List(ctx)
	if err != nil {
		s.logger.Error("List: failed to list configs: %v", err)
		return nil, fmt.Errorf("%w: failed to list configs: %v", ErrInternal, err)
	}

	byRegion := make(map[domain.Region]*domain.RegionConfig, len(configs))
	for _, config := range configs {
		byRegion[config.Region] = config
	}

	resp := &models.ConfigListResponse{
		Regions: make([]models.RegionStateResponse, 0, len(domain.Regions)),
	}

	for _, region := range domain.Regions {
		state := models.RegionStateResponse{Region: region}
		if config, ok := byRegion[region]; ok {
			state.Configured = true
			state.Config = models.FromDomainConfig(config)
		}
		resp.Regions = append(resp.Regions, state)
	}

	return resp, nil
}

// validateConfig проверяет инварианты настроек региона
func (s *Service) validateConfig(config *domain.RegionConfig) error {
	if err := config.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid start time", ErrInvalidInput)
	}
	if err := config.EndTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid end time", ErrInvalidInput)
	}
	if !config.StartTime.IsBefore(config.EndTime) {
		return fmt.Errorf("%w: start time must be before end time", ErrInvalidInput)
	}
	if config.SlotDurationMinutes < domain.MinSlotDurationMinutes {
		return fmt.Errorf("%w: slot duration must be at least %d minutes", ErrInvalidInput, domain.MinSlotDurationMinutes)
	}
	if config.SlotDurationMinutes > domain.MaxSlotDurationMinutes {
		return fmt.Errorf("%w: slot duration must not exceed %d minutes", ErrInvalidInput, domain.MaxSlotDurationMinutes)
	}
	if config.MaxCapacity < domain.MinCapacity || config.MaxCapacity > domain.MaxCapacity {
		return fmt.Errorf("%w: capacity must be between %d and %d", ErrInvalidInput, domain.MinCapacity, domain.MaxCapacity)
	}
	return nil
}
