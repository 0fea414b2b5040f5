package schedules

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/PMS-InspectionService/internal/domain"
	configRepo "github.com/m04kA/PMS-InspectionService/internal/infra/storage/regionconfig"
	scheduleRepo "github.com/m04kA/PMS-InspectionService/internal/infra/storage/schedule"
	"github.com/m04kA/PMS-InspectionService/internal/service/schedules/models"
	"github.com/m04kA/PMS-InspectionService/pkg/types"
)

const (
	reasonNoTimeConfig  = "missing time configuration"
	reasonInvalidConfig = "invalid schedule parameters"
)

// Service сервис для работы с расписаниями осмотров
type Service struct {
	scheduleRepo     ScheduleRepository
	configRepo       ConfigRepository
	bookingRepo      BookingRepository
	notificationRepo NotificationRepository
	txManager        TransactionManager
	logger           Logger
}

// NewService создает новый экземпляр сервиса расписаний
func NewService(
	scheduleRepo ScheduleRepository,
	configRepo ConfigRepository,
	bookingRepo BookingRepository,
	notificationRepo NotificationRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		scheduleRepo:     scheduleRepo,
		configRepo:       configRepo,
		bookingRepo:      bookingRepo,
		notificationRepo: notificationRepo,
		txManager:        txManager,
		logger:           logger,
	}
}

// CreateBatch создает расписания для набора дат одного региона.
// Каждая дата обрабатывается в собственной транзакции: неудача одной
// даты не откатывает остальные. Даты с уже существующим расписанием
// попадают в skipped, а не в failed.
func (s *Service) CreateBatch(ctx context.Context, req *models.CreateSchedulesRequest) (*models.CreateSchedulesResponse, error) {
	s.logger.Info("CreateBatch: creating schedules for region=%s, dates=%d", req.Region, len(req.Dates))

	if !req.Region.IsValid() {
		s.logger.Warn("CreateBatch: unknown region=%s", req.Region)
		return nil, ErrInvalidRegion
	}
	if len(req.Dates) == 0 {
		return nil, fmt.Errorf("%w: dates must not be empty", ErrInvalidInput)
	}

	dates, err := parseDates(req.Dates)
	if err != nil {
		s.logger.Warn("CreateBatch: invalid date in request: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	params, paramsErr := s.resolveParams(ctx, req)
	if paramsErr != nil && !errors.Is(paramsErr, errNoTimeConfig) && !errors.Is(paramsErr, errInvalidParams) {
		return nil, paramsErr
	}

	resp := &models.CreateSchedulesResponse{
		Created: make([]models.ScheduleResponse, 0, len(dates)),
		Skipped: make([]string, 0),
		Failed:  make([]models.FailedDate, 0),
	}

	for _, date := range dates {
		dateStr := date.Format(domain.DateFormat)

		// Непригодные параметры не валят пакет целиком: каждая дата
		// уходит в failed со своей причиной.
		if paramsErr != nil {
			reason := reasonNoTimeConfig
			if errors.Is(paramsErr, errInvalidParams) {
				reason = reasonInvalidConfig
			}
			resp.Failed = append(resp.Failed, models.FailedDate{Date: dateStr, Reason: reason})
			continue
		}

		created, err := s.createOne(ctx, req.Region, date, params, req.Note)
		if err != nil {
			if errors.Is(err, scheduleRepo.ErrScheduleExists) {
				s.logger.Info("CreateBatch: schedule already exists for region=%s, date=%s", req.Region, dateStr)
				resp.Skipped = append(resp.Skipped, dateStr)
				continue
			}
			s.logger.Error("CreateBatch: failed to create schedule for region=%s, date=%s: %v", req.Region, dateStr, err)
			resp.Failed = append(resp.Failed, models.FailedDate{Date: dateStr, Reason: "internal error"})
			continue
		}

		resp.Created = append(resp.Created, *models.FromDomainSchedule(created))
	}

	s.logger.Info("CreateBatch: region=%s created=%d skipped=%d failed=%d",
		req.Region, len(resp.Created), len(resp.Skipped), len(resp.Failed))

	return resp, nil
}

// GetDetail получает расписание со слотами и историей уведомлений
func (s *Service) GetDetail(ctx context.Context, scheduleID int64) (*models.ScheduleDetailResponse, error) {
	schedule, err := s.scheduleRepo.GetByID(ctx, scheduleID)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			return nil, ErrScheduleNotFound
		}
		s.logger.Error("GetDetail: failed to get schedule id=%d: %v", scheduleID, err)
		return nil, fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
	}

	slots, err := s.scheduleRepo.GetSlots(ctx, scheduleID)
	if err != nil {
		s.logger.Error("GetDetail: failed to get slots for schedule id=%d: %v", scheduleID, err)
		return nil, fmt.Errorf("%w: failed to get slots: %v", ErrInternal, err)
	}

	records, err := s.notificationRepo.ListRecordsBySchedule(ctx, scheduleID)
	if err != nil {
		s.logger.Error("GetDetail: failed to get notifications for schedule id=%d: %v", scheduleID, err)
		return nil, fmt.Errorf("%w: failed to get notifications: %v", ErrInternal, err)
	}

	return &models.ScheduleDetailResponse{
		ScheduleResponse: *models.FromDomainSchedule(schedule),
		Slots:            models.FromDomainSlots(slots),
		Notifications:    models.FromDomainNotificationRecords(records),
	}, nil
}

// List возвращает расписания по фильтру
func (s *Service) List(ctx context.Context, req *models.ListSchedulesRequest) (*models.ScheduleListResponse, error) {
	if req.Region != nil && !req.Region.IsValid() {
		return nil, ErrInvalidRegion
	}

	schedules, err := s.scheduleRepo.List(ctx, domain.ScheduleFilter{
		Region:   req.Region,
		DateFrom: req.DateFrom,
		DateTo:   req.DateTo,
	})
	if err != nil {
		s.logger.Error("List: failed to list schedules: %v", err)
		return nil, fmt.Errorf("%w: failed to list schedules: %v", ErrInternal, err)
	}

	resp := &models.ScheduleListResponse{
		Schedules: make([]models.ScheduleResponse, 0, len(schedules)),
	}
	for _, schedule := range schedules {
		resp.Schedules = append(resp.Schedules, *models.FromDomainSchedule(schedule))
	}

	return resp, nil
}

// Delete удаляет расписание вместе со слотами и бронированиями.
// Расписание с подтверждёнными бронированиями удалить нельзя.
func (s *Service) Delete(ctx context.Context, scheduleID int64) error {
	s.logger.Info("Delete: deleting schedule id=%d", scheduleID)

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		hasConfirmed, err := s.bookingRepo.HasConfirmedBySchedule(ctx, scheduleID)
		if err != nil {
			return fmt.Errorf("%w: failed to check confirmed bookings: %v", ErrInternal, err)
		}
		if hasConfirmed {
			return ErrHasConfirmedBookings
		}

		if err := s.scheduleRepo.Delete(ctx, scheduleID); err != nil {
			if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
				return ErrScheduleNotFound
			}
			return fmt.Errorf("%w: failed to delete schedule: %v", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		if errors.Is(err, ErrScheduleNotFound) || errors.Is(err, ErrHasConfirmedBookings) {
			s.logger.Warn("Delete: schedule id=%d not deleted: %v", scheduleID, err)
			return err
		}
		s.logger.Error("Delete: failed to delete schedule id=%d: %v", scheduleID, err)
		return err
	}

	s.logger.Info("Delete: schedule id=%d deleted", scheduleID)
	return nil
}

// scheduleParams эффективные параметры расписаний пакета:
// настройки региона с применёнными переопределениями
type scheduleParams struct {
	startTime           types.TimeString
	endTime             types.TimeString
	slotDurationMinutes int
	maxCapacity         int
}

// Внутренние маркеры исходов resolveParams. Оба не валят пакет:
// каждая дата уходит в failed с соответствующей причиной.
var (
	// errNoTimeConfig рабочее время не определено ни настройками
	// региона, ни переопределениями пакета
	errNoTimeConfig = errors.New("no time configuration")

	// errInvalidParams эффективные параметры нарушают ограничения
	// (порядок времени, длительность слота, вместимость)
	errInvalidParams = errors.New("invalid schedule parameters")
)

// resolveParams вычисляет эффективные параметры пакета.
// База - настройки региона, поверх них накладываются переопределения.
// Если регион не настроен, пакет обязан переопределить все параметры.
func (s *Service) resolveParams(ctx context.Context, req *models.CreateSchedulesRequest) (scheduleParams, error) {
	var params scheduleParams
	configured := false

	config, err := s.configRepo.GetByRegion(ctx, req.Region)
	if err != nil && !errors.Is(err, configRepo.ErrConfigNotFound) {
		s.logger.Error("resolveParams: failed to get config for region=%s: %v", req.Region, err)
		return params, fmt.Errorf("%w: failed to get region config: %v", ErrInternal, err)
	}
	if err == nil {
		configured = true
		params.startTime = config.StartTime
		params.endTime = config.EndTime
		params.slotDurationMinutes = config.SlotDurationMinutes
		params.maxCapacity = config.MaxCapacity
	}

	if req.StartTime != nil {
		start, err := types.NewTimeStringFromString(*req.StartTime)
		if err != nil {
			return params, fmt.Errorf("%w: invalid startTime", ErrInvalidInput)
		}
		params.startTime = start
	}
	if req.EndTime != nil {
		end, err := types.NewTimeStringFromString(*req.EndTime)
		if err != nil {
			return params, fmt.Errorf("%w: invalid endTime", ErrInvalidInput)
		}
		params.endTime = end
	}
	if req.SlotDurationMinutes != nil {
		params.slotDurationMinutes = *req.SlotDurationMinutes
	}
	if req.MaxCapacity != nil {
		params.maxCapacity = *req.MaxCapacity
	}

	if !configured && (req.StartTime == nil || req.EndTime == nil ||
		req.SlotDurationMinutes == nil || req.MaxCapacity == nil) {
		return params, errNoTimeConfig
	}

	if err := validateParams(params); err != nil {
		return params, err
	}

	return params, nil
}

// createOne создает одно расписание со слотами в отдельной транзакции
func (s *Service) createOne(ctx context.Context, region domain.Region, date time.Time, params scheduleParams, note *string) (*domain.Schedule, error) {
	schedule := &domain.Schedule{
		Region:              region,
		ScheduleDate:        date,
		StartTime:           params.startTime,
		EndTime:             params.endTime,
		SlotDurationMinutes: params.slotDurationMinutes,
		MaxCapacity:         params.maxCapacity,
		Status:              domain.ScheduleStatusPublished,
		Note:                note,
	}

	windows := generateSlots(params.startTime, params.endTime, params.slotDurationMinutes)

	var created *domain.Schedule
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		var err error
		created, err = s.scheduleRepo.CreateWithSlots(ctx, schedule, windows)
		return err
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

// validateParams проверяет инварианты эффективных параметров
func validateParams(params scheduleParams) error {
	if !params.startTime.IsBefore(params.endTime) {
		return fmt.Errorf("%w: start time must be before end time", errInvalidParams)
	}
	if params.slotDurationMinutes < domain.MinSlotDurationMinutes {
		return fmt.Errorf("%w: slot duration must be at least %d minutes", errInvalidParams, domain.MinSlotDurationMinutes)
	}
	if params.slotDurationMinutes > domain.MaxSlotDurationMinutes {
		return fmt.Errorf("%w: slot duration must not exceed %d minutes", errInvalidParams, domain.MaxSlotDurationMinutes)
	}
	if params.maxCapacity < domain.MinCapacity || params.maxCapacity > domain.MaxCapacity {
		return fmt.Errorf("%w: capacity must be between %d and %d", errInvalidParams, domain.MinCapacity, domain.MaxCapacity)
	}
	return nil
}

// parseDates парсит и дедуплицирует даты пакета, сохраняя порядок
func parseDates(raw []string) ([]time.Time, error) {
	seen := make(map[string]struct{}, len(raw))
	dates := make([]time.Time, 0, len(raw))

	for _, value := range raw {
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}

		date, err := time.Parse(domain.DateFormat, value)
		if err != nil {
			return nil, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", value)
		}
		dates = append(dates, date)
	}

	return dates, nil
}
