package send_notifications

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/m04kA/PMS-InspectionService/internal/domain"
	notificationRepo "github.com/m04kA/PMS-InspectionService/internal/infra/storage/notification"
	scheduleRepo "github.com/m04kA/PMS-InspectionService/internal/infra/storage/schedule"
)

const (
	reasonNoRecipient = "property has no contact email"
	reasonSendFailed  = "failed to send email"
)

// UUIDTokenGenerator генератор токенов на базе UUID v4
type UUIDTokenGenerator struct{}

// NewToken возвращает новый непрозрачный токен ссылки
func (g *UUIDTokenGenerator) NewToken() string {
	return uuid.NewString()
}

// UseCase use case рассылки приглашений на осмотр
type UseCase struct {
	notificationRepo NotificationRepository
	scheduleRepo     ScheduleRepository
	propertyClient   PropertyServiceClient
	mailer           Mailer
	tokenGen         TokenGenerator
	publicBaseURL    string
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	notificationRepo NotificationRepository,
	scheduleRepo ScheduleRepository,
	propertyClient PropertyServiceClient,
	mailer Mailer,
	publicBaseURL string,
	logger Logger,
) *UseCase {
	return &UseCase{
		notificationRepo: notificationRepo,
		scheduleRepo:     scheduleRepo,
		propertyClient:   propertyClient,
		mailer:           mailer,
		tokenGen:         &UUIDTokenGenerator{},
		publicBaseURL:    strings.TrimRight(publicBaseURL, "/"),
		logger:           logger,
	}
}

// Execute рассылает письма со ссылками бронирования по объектам расписания.
// Объекты с уже отправленным письмом пропускаются, неудачные отправки
// записываются со статусом failed и уходят повторно при следующей рассылке.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("SendNotifications: schedule=%d, properties=%d", req.ScheduleID, len(req.PropertyIDs))

	if len(req.PropertyIDs) == 0 {
		return nil, fmt.Errorf("%w: propertyIds must not be empty", ErrInvalidInput)
	}

	schedule, err := uc.scheduleRepo.GetByID(ctx, req.ScheduleID)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			uc.logger.Warn("SendNotifications: schedule id=%d not found", req.ScheduleID)
			return nil, ErrScheduleNotFound
		}
		uc.logger.Error("SendNotifications: failed to get schedule id=%d: %v", req.ScheduleID, err)
		return nil, fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
	}

	resp := &Response{
		Success: make([]int64, 0, len(req.PropertyIDs)),
		Skipped: make([]int64, 0),
		Failed:  make([]FailedProperty, 0),
	}

	for _, propertyID := range dedupe(req.PropertyIDs) {
		outcome := uc.dispatchOne(ctx, schedule, propertyID)
		switch outcome.status {
		case dispatchSent:
			resp.Success = append(resp.Success, propertyID)
		case dispatchSkipped:
			resp.Skipped = append(resp.Skipped, propertyID)
		case dispatchFailed:
			resp.Failed = append(resp.Failed, FailedProperty{PropertyID: propertyID, Reason: outcome.reason})
		}
	}

	uc.logger.Info("SendNotifications: schedule=%d success=%d skipped=%d failed=%d",
		req.ScheduleID, len(resp.Success), len(resp.Skipped), len(resp.Failed))

	return resp, nil
}

type dispatchStatus int

const (
	dispatchSent dispatchStatus = iota
	dispatchSkipped
	dispatchFailed
)

type dispatchOutcome struct {
	status dispatchStatus
	reason string
}

// dispatchOne отправляет приглашение одному объекту
func (uc *UseCase) dispatchOne(ctx context.Context, schedule *domain.Schedule, propertyID int64) dispatchOutcome {
	// Уже отправленное письмо не дублируем. Запись со статусом failed
	// не блокирует повторную попытку.
	record, err := uc.notificationRepo.GetRecord(ctx, schedule.ID, propertyID)
	if err != nil && !errors.Is(err, notificationRepo.ErrRecordNotFound) {
		uc.logger.Error("dispatchOne: failed to get record for schedule=%d, property=%d: %v", schedule.ID, propertyID, err)
		return dispatchOutcome{status: dispatchFailed, reason: "internal error"}
	}
	if record != nil && record.Status == domain.NotificationSent {
		return dispatchOutcome{status: dispatchSkipped}
	}

	property, err := uc.propertyClient.GetProperty(ctx, propertyID)
	if err != nil {
		uc.logger.Warn("dispatchOne: failed to get property id=%d: %v", propertyID, err)
		return dispatchOutcome{status: dispatchFailed, reason: "property not found"}
	}

	if property.ContactEmail == nil || *property.ContactEmail == "" {
		uc.recordOutcome(ctx, schedule.ID, propertyID, "", domain.NotificationFailed)
		return dispatchOutcome{status: dispatchFailed, reason: reasonNoRecipient}
	}
	recipient := *property.ContactEmail

	token, err := uc.ensureToken(ctx, schedule.ID, propertyID, recipient)
	if err != nil {
		uc.logger.Error("dispatchOne: failed to ensure token for schedule=%d, property=%d: %v", schedule.ID, propertyID, err)
		return dispatchOutcome{status: dispatchFailed, reason: "internal error"}
	}

	subject := "Приглашение на осмотр объекта"
	body := uc.buildEmailBody(schedule, property.Name, token.Token)

	if err := uc.mailer.Send(ctx, recipient, subject, body); err != nil {
		uc.logger.Warn("dispatchOne: failed to send email for schedule=%d, property=%d: %v", schedule.ID, propertyID, err)
		uc.recordOutcome(ctx, schedule.ID, propertyID, recipient, domain.NotificationFailed)
		return dispatchOutcome{status: dispatchFailed, reason: reasonSendFailed}
	}

	uc.recordOutcome(ctx, schedule.ID, propertyID, recipient, domain.NotificationSent)

	return dispatchOutcome{status: dispatchSent}
}

// ensureToken возвращает существующий токен пары (schedule, property)
// или выпускает новый. Токен стабилен: повторная рассылка после сбоя
// ведёт на ту же ссылку.
func (uc *UseCase) ensureToken(ctx context.Context, scheduleID, propertyID int64, recipient string) (*domain.BookingToken, error) {
	token, err := uc.notificationRepo.GetTokenByScheduleAndProperty(ctx, scheduleID, propertyID)
	if err == nil {
		return token, nil
	}
	if !errors.Is(err, notificationRepo.ErrTokenNotFound) {
		return nil, err
	}

	return uc.notificationRepo.CreateToken(ctx, &domain.BookingToken{
		Token:          uc.tokenGen.NewToken(),
		ScheduleID:     scheduleID,
		PropertyID:     propertyID,
		RecipientEmail: recipient,
	})
}

// recordOutcome фиксирует исход отправки в журнале уведомлений
func (uc *UseCase) recordOutcome(ctx context.Context, scheduleID, propertyID int64, recipient string, status domain.NotificationStatus) {
	_, err := uc.notificationRepo.UpsertRecord(ctx, &domain.NotificationRecord{
		ScheduleID:     scheduleID,
		PropertyID:     propertyID,
		RecipientEmail: recipient,
		Status:         status,
	})
	if err != nil {
		uc.logger.Error("recordOutcome: failed to upsert record for schedule=%d, property=%d: %v", scheduleID, propertyID, err)
	}
}

// buildEmailBody собирает текст письма со ссылкой на публичную страницу
func (uc *UseCase) buildEmailBody(schedule *domain.Schedule, propertyName, token string) string {
	link := fmt.Sprintf("%s/bookings/%s", uc.publicBaseURL, token)

	return fmt.Sprintf(
		"Здравствуйте!\n\nНа %s запланирован день осмотров по вашему объекту \"%s\".\n"+
			"Выберите удобное время по ссылке:\n%s\n\nС уважением,\nкоманда агентства",
		schedule.ScheduleDate.Format(domain.DateFormat), propertyName, link,
	)
}

// dedupe убирает повторы идентификаторов, сохраняя порядок
func dedupe(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	result := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	return result
}
