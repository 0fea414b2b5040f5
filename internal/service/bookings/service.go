package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/PMS-InspectionService/internal/domain"
	bookingRepo "github.com/m04kA/PMS-InspectionService/internal/infra/storage/booking"
	"github.com/m04kA/PMS-InspectionService/internal/service/bookings/models"
)

// Service сервис обработки бронирований сотрудниками агентства
type Service struct {
	bookingRepo    BookingRepository
	scheduleRepo   ScheduleRepository
	propertyClient PropertyServiceClient
	mailer         Mailer
	txManager      TransactionManager
	logger         Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	scheduleRepo ScheduleRepository,
	propertyClient PropertyServiceClient,
	mailer Mailer,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:    bookingRepo,
		scheduleRepo:   scheduleRepo,
		propertyClient: propertyClient,
		mailer:         mailer,
		txManager:      txManager,
		logger:         logger,
	}
}

// Confirm подтверждает ожидающее бронирование.
// В той же транзакции автоматически отклоняются все прочие ожидающие
// бронирования этого объекта во всех расписаниях: объект осматривается
// один раз. Авто-отклонённым уведомления не отправляются.
func (s *Service) Confirm(ctx context.Context, req *models.ConfirmBookingRequest) (*models.ConfirmBookingResponse, error) {
	s.logger.Info("Confirm: confirming booking id=%d", req.BookingID)

	var booking *domain.Booking
	var autoRejected int64

	err := s.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		var err error
		booking, err = s.getPending(ctx, req.BookingID)
		if err != nil {
			return err
		}

		if err := s.bookingRepo.UpdateStatus(ctx, booking.ID, domain.StatusConfirmed); err != nil {
			return fmt.Errorf("%w: failed to confirm booking: %v", ErrInternal, err)
		}
		booking.Status = domain.StatusConfirmed

		autoRejected, err = s.bookingRepo.RejectPendingByProperty(ctx, booking.PropertyID, booking.ID)
		if err != nil {
			return fmt.Errorf("%w: failed to auto-reject competing bookings: %v", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		if errors.Is(err, ErrBookingNotFound) || errors.Is(err, ErrInvalidState) {
			s.logger.Warn("Confirm: booking id=%d not confirmed: %v", req.BookingID, err)
			return nil, err
		}
		s.logger.Error("Confirm: failed to confirm booking id=%d: %v", req.BookingID, err)
		return nil, err
	}

	s.logger.Info("Confirm: booking id=%d confirmed, auto-rejected=%d", booking.ID, autoRejected)

	// Письмо-подтверждение уходит после коммита: сбой отправки
	// не откатывает подтверждение.
	if req.SendNotification && booking.ContactEmail != "" {
		s.sendConfirmationEmail(ctx, booking)
	}

	return &models.ConfirmBookingResponse{
		Booking:           *models.FromDomainBooking(booking),
		AutoRejectedCount: autoRejected,
	}, nil
}

// Reject отклоняет ожидающее бронирование.
// В отличие от подтверждения, каскада по другим бронированиям нет.
func (s *Service) Reject(ctx context.Context, req *models.RejectBookingRequest) (*models.BookingResponse, error) {
	s.logger.Info("Reject: rejecting booking id=%d", req.BookingID)

	var booking *domain.Booking

	err := s.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		var err error
		booking, err = s.getPending(ctx, req.BookingID)
		if err != nil {
			return err
		}

		if err := s.bookingRepo.UpdateStatus(ctx, booking.ID, domain.StatusRejected); err != nil {
			return fmt.Errorf("%w: failed to reject booking: %v", ErrInternal, err)
		}
		booking.Status = domain.StatusRejected

		return nil
	})

	if err != nil {
		if errors.Is(err, ErrBookingNotFound) || errors.Is(err, ErrInvalidState) {
			s.logger.Warn("Reject: booking id=%d not rejected: %v", req.BookingID, err)
			return nil, err
		}
		s.logger.Error("Reject: failed to reject booking id=%d: %v", req.BookingID, err)
		return nil, err
	}

	s.logger.Info("Reject: booking id=%d rejected", booking.ID)

	if req.SendNotification && booking.ContactEmail != "" {
		s.sendRejectionEmail(ctx, booking)
	}

	return models.FromDomainBooking(booking), nil
}

// List возвращает бронирования по фильтру, обогащённые данными объектов.
// Недоступность PropertyService не валит список: бронирование уходит
// без блока property.
func (s *Service) List(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	if req.Region != nil && !req.Region.IsValid() {
		return nil, fmt.Errorf("%w: unknown region", ErrInvalidInput)
	}

	details, err := s.bookingRepo.ListWithFilter(ctx, domain.BookingsFilter{
		Status:     req.Status,
		Region:     req.Region,
		PropertyID: req.PropertyID,
		ScheduleID: req.ScheduleID,
	})
	if err != nil {
		s.logger.Error("List: failed to list bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to list bookings: %v", ErrInternal, err)
	}

	resp := &models.BookingListResponse{
		Bookings: make([]models.BookingResponse, 0, len(details)),
	}

	propertyCache := make(map[int64]*models.PropertySummary)

	for _, detail := range details {
		bookingResp := models.FromDomainBookingDetail(detail)
		bookingResp.Property = s.propertySummary(ctx, detail.PropertyID, propertyCache)
		resp.Bookings = append(resp.Bookings, *bookingResp)
	}

	return resp, nil
}

// getPending получает бронирование и проверяет, что оно ожидает решения
func (s *Service) getPending(ctx context.Context, bookingID int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}

	if !booking.IsPending() {
		return nil, fmt.Errorf("%w: current status is %s", ErrInvalidState, booking.Status)
	}

	return booking, nil
}

// propertySummary получает краткие данные объекта с кэшированием в рамках запроса
func (s *Service) propertySummary(ctx context.Context, propertyID int64, cache map[int64]*models.PropertySummary) *models.PropertySummary {
	if summary, ok := cache[propertyID]; ok {
		return summary
	}

	property, err := s.propertyClient.GetProperty(ctx, propertyID)
	if err != nil {
		s.logger.Warn("propertySummary: failed to get property id=%d: %v", propertyID, err)
		cache[propertyID] = nil
		return nil
	}

	summary := &models.PropertySummary{
		ID:      property.ID,
		Name:    property.Name,
		Address: property.Address,
	}
	cache[propertyID] = summary

	return summary
}

// sendConfirmationEmail отправляет контакту письмо о подтверждении осмотра.
// Детали (дата, окно слота, адрес объекта) подтягиваются по месту:
// недоступность любой из них не блокирует отправку.
func (s *Service) sendConfirmationEmail(ctx context.Context, booking *domain.Booking) {
	subject := "Осмотр подтверждён"
	body := fmt.Sprintf(
		"Здравствуйте, %s!\n\nВаша запись на осмотр подтверждена.\nНомер записи: %d.%s\n\nС уважением,\nкоманда агентства",
		booking.ContactName, booking.ID, s.bookingDetails(ctx, booking),
	)

	if err := s.mailer.Send(ctx, booking.ContactEmail, subject, body); err != nil {
		s.logger.Warn("sendConfirmationEmail: failed to send email for booking id=%d: %v", booking.ID, err)
		return
	}

	s.logger.Info("sendConfirmationEmail: confirmation sent for booking id=%d", booking.ID)
}

// bookingDetails собирает блок с датой, временем и адресом для письма
func (s *Service) bookingDetails(ctx context.Context, booking *domain.Booking) string {
	var details string

	if schedule, err := s.scheduleRepo.GetByID(ctx, booking.ScheduleID); err == nil {
		details += fmt.Sprintf("\nДата осмотра: %s.", schedule.ScheduleDate.Format(domain.DateFormat))
	} else {
		s.logger.Warn("bookingDetails: failed to get schedule id=%d: %v", booking.ScheduleID, err)
	}

	if slot, err := s.scheduleRepo.GetSlotByID(ctx, booking.SlotID); err == nil {
		details += fmt.Sprintf("\nВремя: %s - %s.", slot.StartTime, slot.EndTime)
	} else {
		s.logger.Warn("bookingDetails: failed to get slot id=%d: %v", booking.SlotID, err)
	}

	if property, err := s.propertyClient.GetProperty(ctx, booking.PropertyID); err == nil {
		details += fmt.Sprintf("\nАдрес объекта: %s.", property.Address)
	} else {
		s.logger.Warn("bookingDetails: failed to get property id=%d: %v", booking.PropertyID, err)
	}

	return details
}

// sendRejectionEmail отправляет контакту письмо об отклонении заявки.
// Используется только при явном отклонении сотрудником: авто-отклонение
// конкурирующих заявок писем не порождает.
func (s *Service) sendRejectionEmail(ctx context.Context, booking *domain.Booking) {
	subject := "Запись на осмотр отклонена"
	body := fmt.Sprintf(
		"Здравствуйте, %s!\n\nК сожалению, ваша запись на осмотр номер %d отклонена.\nВы можете выбрать другое время по ранее полученной ссылке.\n\nС уважением,\nкоманда агентства",
		booking.ContactName, booking.ID,
	)

	if err := s.mailer.Send(ctx, booking.ContactEmail, subject, body); err != nil {
		s.logger.Warn("sendRejectionEmail: failed to send email for booking id=%d: %v", booking.ID, err)
		return
	}

	s.logger.Info("sendRejectionEmail: rejection sent for booking id=%d", booking.ID)
}
