package resolve_booking_link

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/PMS-InspectionService/internal/domain"
	bookingRepo "github.com/m04kA/PMS-InspectionService/internal/infra/storage/booking"
	notificationRepo "github.com/m04kA/PMS-InspectionService/internal/infra/storage/notification"
)

// UseCase use case разрешения публичной ссылки бронирования
type UseCase struct {
	notificationRepo NotificationRepository
	bookingRepo      BookingRepository
	scheduleRepo     ScheduleRepository
	propertyClient   PropertyServiceClient
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	notificationRepo NotificationRepository,
	bookingRepo BookingRepository,
	scheduleRepo ScheduleRepository,
	propertyClient PropertyServiceClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		notificationRepo: notificationRepo,
		bookingRepo:      bookingRepo,
		scheduleRepo:     scheduleRepo,
		propertyClient:   propertyClient,
		logger:           logger,
	}
}

// Execute разрешает токен в данные публичной страницы бронирования.
// Повторное открытие ссылки ведёт себя одинаково: токен стабилен,
// а состояние страницы зависит только от текущих бронирований.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	token, err := uc.notificationRepo.GetToken(ctx, req.Token)
	if err != nil {
		if errors.Is(err, notificationRepo.ErrTokenNotFound) {
			uc.logger.Info("ResolveBookingLink: unknown token")
			return nil, ErrLinkNotFound
		}
		uc.logger.Error("ResolveBookingLink: failed to get token: %v", err)
		return nil, fmt.Errorf("%w: failed to get token: %v", ErrInternal, err)
	}

	property, err := uc.propertyClient.GetProperty(ctx, token.PropertyID)
	if err != nil {
		uc.logger.Error("ResolveBookingLink: failed to get property id=%d: %v", token.PropertyID, err)
		return nil, fmt.Errorf("%w: failed to get property: %v", ErrInternal, err)
	}

	resp := &Response{
		Property: PropertyView{
			ID:      property.ID,
			Name:    property.Name,
			Address: property.Address,
		},
		Schedules: make([]ScheduleView, 0, 1),
	}

	slots, err := uc.scheduleRepo.GetSlots(ctx, token.ScheduleID)
	if err != nil {
		uc.logger.Error("ResolveBookingLink: failed to get slots for schedule id=%d: %v", token.ScheduleID, err)
		return nil, fmt.Errorf("%w: failed to get slots: %v", ErrInternal, err)
	}

	// Любое зафиксированное бронирование объекта закрывает страницу
	// выбора слота, включая отклонённые и отменённые: однажды поданная
	// заявка не открывает форму заново при перезагрузке ссылки.
	latest, err := uc.bookingRepo.GetLatestByScheduleAndProperty(ctx, token.ScheduleID, token.PropertyID)
	if err != nil && !errors.Is(err, bookingRepo.ErrBookingNotFound) {
		uc.logger.Error("ResolveBookingLink: failed to get booking for schedule id=%d, property id=%d: %v",
			token.ScheduleID, token.PropertyID, err)
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}

	if latest != nil {
		resp.AlreadyBooked = true
		resp.Booking = buildBookingView(latest, slots)
		return resp, nil
	}

	schedule, err := uc.scheduleRepo.GetByID(ctx, token.ScheduleID)
	if err != nil {
		uc.logger.Error("ResolveBookingLink: failed to get schedule id=%d: %v", token.ScheduleID, err)
		return nil, fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
	}

	view := ScheduleView{
		ID:     schedule.ID,
		Region: schedule.Region,
		Date:   schedule.ScheduleDate.Format(domain.DateFormat),
		Slots:  make([]SlotView, 0, len(slots)),
	}

	for _, slot := range slots {
		view.Slots = append(view.Slots, SlotView{
			ID:             slot.ID,
			StartTime:      slot.StartTime.String(),
			EndTime:        slot.EndTime.String(),
			AvailableSpots: slot.AvailableSpots(),
		})
	}

	resp.Schedules = append(resp.Schedules, view)

	return resp, nil
}

// buildBookingView собирает данные бронирования, подставляя время слота
func buildBookingView(booking *domain.Booking, slots []*domain.Slot) *BookingView {
	view := &BookingView{
		ID:     booking.ID,
		SlotID: booking.SlotID,
		Status: booking.Status,
	}

	for _, slot := range slots {
		if slot.ID == booking.SlotID {
			view.StartTime = slot.StartTime.String()
			view.EndTime = slot.EndTime.String()
			break
		}
	}

	return view
}
