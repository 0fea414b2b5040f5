package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/PMS-InspectionService/internal/domain"
	bookingRepo "github.com/m04kA/PMS-InspectionService/internal/infra/storage/booking"
	notificationRepo "github.com/m04kA/PMS-InspectionService/internal/infra/storage/notification"
	scheduleRepo "github.com/m04kA/PMS-InspectionService/internal/infra/storage/schedule"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	scheduleRepo ScheduleRepository
	tokenRepo    TokenRepository
	txManager    TransactionManager
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	scheduleRepo ScheduleRepository,
	tokenRepo TokenRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		scheduleRepo: scheduleRepo,
		tokenRepo:    tokenRepo,
		txManager:    txManager,
		logger:       logger,
	}
}

// ExecuteWithToken выполняет создание бронирования по публичной ссылке.
// Объект и расписание берутся из токена, клиентскому вводу они не
// доверяются: слот обязан принадлежать расписанию токена.
func (uc *UseCase) ExecuteWithToken(ctx context.Context, rawToken string, req *Request) (*Response, error) {
	token, err := uc.tokenRepo.GetToken(ctx, rawToken)
	if err != nil {
		if errors.Is(err, notificationRepo.ErrTokenNotFound) {
			uc.logger.Info("CreateBooking: unknown token")
			return nil, ErrLinkNotFound
		}
		uc.logger.Error("CreateBooking: failed to get token: %v", err)
		return nil, fmt.Errorf("%w: failed to get token: %v", ErrInternal, err)
	}

	req.PropertyID = token.PropertyID
	req.ExpectedScheduleID = token.ScheduleID
	req.BookedByType = domain.ActorContact
	req.BookedByID = nil

	return uc.Execute(ctx, req)
}

// Execute выполняет создание бронирования.
// Проверка вместимости слота и проверка дубликата по объекту выполняются
// в одной сериализуемой транзакции с блокировкой строки слота:
// конкурентные запросы на последнее место не могут пройти оба.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: slot=%d, property=%d, actor=%s",
		req.SlotID, req.PropertyID, req.BookedByType)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	var result *domain.Booking
	alreadyBooked := false

	// 2. Все проверки и вставка в одной сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Берём слот с блокировкой строки
		slot, err := uc.scheduleRepo.GetSlotByID(txCtx, req.SlotID)
		if err != nil {
			if errors.Is(err, scheduleRepo.ErrSlotNotFound) {
				return ErrSlotNotFound
			}
			return fmt.Errorf("%w: failed to get slot: %v", ErrInternal, err)
		}

		// 2.2. Публичный флоу: слот обязан принадлежать расписанию токена
		if req.ExpectedScheduleID != 0 && slot.ScheduleID != req.ExpectedScheduleID {
			return ErrSlotNotInSchedule
		}

		// 2.3. Закрытое расписание бронировать нельзя
		schedule, err := uc.scheduleRepo.GetByID(txCtx, slot.ScheduleID)
		if err != nil {
			return fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
		}
		if schedule.Status == domain.ScheduleStatusClosed {
			return ErrScheduleClosed
		}

		// 2.4. Повторная заявка по тому же объекту в этом расписании
		// идемпотентна: возвращаем существующее бронирование
		existing, err := uc.bookingRepo.GetActiveByScheduleAndProperty(txCtx, slot.ScheduleID, req.PropertyID)
		if err != nil && !errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return fmt.Errorf("%w: failed to check existing booking: %v", ErrInternal, err)
		}
		if existing != nil {
			result = existing
			alreadyBooked = true
			return nil
		}

		// 2.5. Проверяем вместимость слота
		activeCount, err := uc.bookingRepo.CountActiveBySlot(txCtx, slot.ID)
		if err != nil {
			return fmt.Errorf("%w: failed to count active bookings: %v", ErrInternal, err)
		}
		if activeCount >= slot.MaxCapacity {
			return ErrSlotFull
		}

		// 2.6. Создаём бронирование в статусе ожидания
		booking := &domain.Booking{
			SlotID:       slot.ID,
			ScheduleID:   slot.ScheduleID,
			PropertyID:   req.PropertyID,
			ContactName:  req.ContactName,
			ContactPhone: req.ContactPhone,
			ContactEmail: req.ContactEmail,
			Note:         req.Note,
			Status:       domain.StatusPending,
			BookedByType: req.BookedByType,
			BookedByID:   req.BookedByID,
		}

		result, err = uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		switch {
		case errors.Is(err, ErrSlotNotFound),
			errors.Is(err, ErrSlotNotInSchedule),
			errors.Is(err, ErrScheduleClosed),
			errors.Is(err, ErrSlotFull):
			uc.logger.Warn("CreateBooking: slot=%d, property=%d rejected: %v", req.SlotID, req.PropertyID, err)
			return nil, err
		default:
			uc.logger.Error("CreateBooking: slot=%d, property=%d failed: %v", req.SlotID, req.PropertyID, err)
			return nil, err
		}
	}

	if alreadyBooked {
		uc.logger.Info("CreateBooking: property=%d already has active booking id=%d in schedule=%d",
			req.PropertyID, result.ID, result.ScheduleID)
	} else {
		uc.logger.Info("CreateBooking: booking id=%d created for slot=%d, property=%d",
			result.ID, result.SlotID, result.PropertyID)
	}

	return buildResponse(result, alreadyBooked), nil
}
