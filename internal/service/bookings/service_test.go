package bookings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/PMS-InspectionService/internal/domain"
	bookingRepo "github.com/m04kA/PMS-InspectionService/internal/infra/storage/booking"
	"github.com/m04kA/PMS-InspectionService/internal/integrations/propertyservice"
	"github.com/m04kA/PMS-InspectionService/internal/service/bookings/models"
	"github.com/m04kA/PMS-InspectionService/pkg/ptr"
)

type mockBookingRepo struct {
	GetByIDFunc                 func(ctx context.Context, id int64) (*domain.Booking, error)
	UpdateStatusFunc            func(ctx context.Context, id int64, status domain.BookingStatus) error
	RejectPendingByPropertyFunc func(ctx context.Context, propertyID, excludeBookingID int64) (int64, error)
	ListWithFilterFunc          func(ctx context.Context, filter domain.BookingsFilter) ([]*domain.BookingDetail, error)
}

func (m *mockBookingRepo) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *mockBookingRepo) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	return m.UpdateStatusFunc(ctx, id, status)
}

func (m *mockBookingRepo) RejectPendingByProperty(ctx context.Context, propertyID, excludeBookingID int64) (int64, error) {
	return m.RejectPendingByPropertyFunc(ctx, propertyID, excludeBookingID)
}

func (m *mockBookingRepo) ListWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.BookingDetail, error) {
	return m.ListWithFilterFunc(ctx, filter)
}

type mockScheduleRepo struct {
	GetByIDFunc     func(ctx context.Context, id int64) (*domain.Schedule, error)
	GetSlotByIDFunc func(ctx context.Context, slotID int64) (*domain.Slot, error)
}

func (m *mockScheduleRepo) GetByID(ctx context.Context, id int64) (*domain.Schedule, error) {
	if m.GetByIDFunc == nil {
		return nil, errors.New("schedule not stubbed")
	}
	return m.GetByIDFunc(ctx, id)
}

func (m *mockScheduleRepo) GetSlotByID(ctx context.Context, slotID int64) (*domain.Slot, error) {
	if m.GetSlotByIDFunc == nil {
		return nil, errors.New("slot not stubbed")
	}
	return m.GetSlotByIDFunc(ctx, slotID)
}

type mockPropertyClient struct {
	GetPropertyFunc func(ctx context.Context, propertyID int64) (*propertyservice.Property, error)
	calls           int
}

func (m *mockPropertyClient) GetProperty(ctx context.Context, propertyID int64) (*propertyservice.Property, error) {
	m.calls++
	if m.GetPropertyFunc == nil {
		return nil, errors.New("property not stubbed")
	}
	return m.GetPropertyFunc(ctx, propertyID)
}

type sentMail struct {
	to      string
	subject string
	body    string
}

type mockMailer struct {
	sent    []sentMail
	sendErr error
}

func (m *mockMailer) Send(ctx context.Context, to, subject, body string) error {
	if m.sendErr != nil {
		return m.sendErr
	}
	m.sent = append(m.sent, sentMail{to: to, subject: subject, body: body})
	return nil
}

type mockTxManager struct{}

func (m *mockTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type noopLogger struct{}

func (noopLogger) Info(format string, v ...interface{})  {}
func (noopLogger) Warn(format string, v ...interface{})  {}
func (noopLogger) Error(format string, v ...interface{}) {}

func pendingBooking(id int64) *domain.Booking {
	return &domain.Booking{
		ID:           id,
		SlotID:       3,
		ScheduleID:   5,
		PropertyID:   100,
		ContactName:  "Иван Петров",
		ContactPhone: "+79990001122",
		ContactEmail: "ivan@example.com",
		Status:       domain.StatusPending,
		BookedByType: domain.ActorContact,
	}
}

func repoWithPending(booking *domain.Booking, autoRejected int64) (*mockBookingRepo, *[]domain.BookingStatus) {
	statuses := &[]domain.BookingStatus{}
	repo := &mockBookingRepo{
		GetByIDFunc: func(ctx context.Context, id int64) (*domain.Booking, error) {
			if booking == nil || booking.ID != id {
				return nil, bookingRepo.ErrBookingNotFound
			}
			copied := *booking
			return &copied, nil
		},
		UpdateStatusFunc: func(ctx context.Context, id int64, status domain.BookingStatus) error {
			*statuses = append(*statuses, status)
			return nil
		},
		RejectPendingByPropertyFunc: func(ctx context.Context, propertyID, excludeBookingID int64) (int64, error) {
			return autoRejected, nil
		},
	}
	return repo, statuses
}

func TestConfirm(t *testing.T) {
	t.Run("confirms and auto-rejects competitors", func(t *testing.T) {
		repo, statuses := repoWithPending(pendingBooking(1), 2)
		mailer := &mockMailer{}

		svc := NewService(repo, &mockScheduleRepo{}, &mockPropertyClient{}, mailer, &mockTxManager{}, noopLogger{})

		resp, err := svc.Confirm(context.Background(), &models.ConfirmBookingRequest{BookingID: 1})
		require.NoError(t, err)

		assert.Equal(t, domain.StatusConfirmed, resp.Booking.Status)
		assert.Equal(t, int64(2), resp.AutoRejectedCount)
		assert.Equal(t, []domain.BookingStatus{domain.StatusConfirmed}, *statuses)

		// Без sendNotification писем нет, авто-отклонённым тем более
		assert.Empty(t, mailer.sent)
	})

	t.Run("sends confirmation email when requested", func(t *testing.T) {
		repo, _ := repoWithPending(pendingBooking(1), 0)
		mailer := &mockMailer{}
		schedRepo := &mockScheduleRepo{
			GetByIDFunc: func(ctx context.Context, id int64) (*domain.Schedule, error) {
				return &domain.Schedule{ID: id, ScheduleDate: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)}, nil
			},
			GetSlotByIDFunc: func(ctx context.Context, slotID int64) (*domain.Slot, error) {
				return &domain.Slot{ID: slotID, StartTime: "09:00", EndTime: "10:00"}, nil
			},
		}
		client := &mockPropertyClient{
			GetPropertyFunc: func(ctx context.Context, propertyID int64) (*propertyservice.Property, error) {
				return &propertyservice.Property{ID: propertyID, Address: "ул. Лесная, 7"}, nil
			},
		}

		svc := NewService(repo, schedRepo, client, mailer, &mockTxManager{}, noopLogger{})

		_, err := svc.Confirm(context.Background(), &models.ConfirmBookingRequest{BookingID: 1, SendNotification: true})
		require.NoError(t, err)

		require.Len(t, mailer.sent, 1)
		assert.Equal(t, "ivan@example.com", mailer.sent[0].to)
		assert.Contains(t, mailer.sent[0].body, "2026-09-01")
		assert.Contains(t, mailer.sent[0].body, "09:00")
		assert.Contains(t, mailer.sent[0].body, "ул. Лесная, 7")
	})

	t.Run("detail lookups failing still sends the email", func(t *testing.T) {
		repo, _ := repoWithPending(pendingBooking(1), 0)
		mailer := &mockMailer{}

		svc := NewService(repo, &mockScheduleRepo{}, &mockPropertyClient{}, mailer, &mockTxManager{}, noopLogger{})

		_, err := svc.Confirm(context.Background(), &models.ConfirmBookingRequest{BookingID: 1, SendNotification: true})
		require.NoError(t, err)
		require.Len(t, mailer.sent, 1)
	})

	t.Run("skips email when contact has no address", func(t *testing.T) {
		booking := pendingBooking(1)
		booking.ContactEmail = ""
		repo, _ := repoWithPending(booking, 0)
		mailer := &mockMailer{}

		svc := NewService(repo, &mockScheduleRepo{}, &mockPropertyClient{}, mailer, &mockTxManager{}, noopLogger{})

		_, err := svc.Confirm(context.Background(), &models.ConfirmBookingRequest{BookingID: 1, SendNotification: true})
		require.NoError(t, err)
		assert.Empty(t, mailer.sent)
	})

	t.Run("mail failure does not fail confirmation", func(t *testing.T) {
		repo, _ := repoWithPending(pendingBooking(1), 0)
		mailer := &mockMailer{sendErr: errors.New("smtp unreachable")}

		svc := NewService(repo, &mockScheduleRepo{}, &mockPropertyClient{}, mailer, &mockTxManager{}, noopLogger{})

		resp, err := svc.Confirm(context.Background(), &models.ConfirmBookingRequest{BookingID: 1, SendNotification: true})
		require.NoError(t, err)
		assert.Equal(t, domain.StatusConfirmed, resp.Booking.Status)
	})

	t.Run("not found", func(t *testing.T) {
		repo, _ := repoWithPending(nil, 0)

		svc := NewService(repo, &mockScheduleRepo{}, &mockPropertyClient{}, &mockMailer{}, &mockTxManager{}, noopLogger{})

		_, err := svc.Confirm(context.Background(), &models.ConfirmBookingRequest{BookingID: 404})
		assert.ErrorIs(t, err, ErrBookingNotFound)
	})

	t.Run("already processed", func(t *testing.T) {
		booking := pendingBooking(1)
		booking.Status = domain.StatusConfirmed
		repo, statuses := repoWithPending(booking, 0)

		svc := NewService(repo, &mockScheduleRepo{}, &mockPropertyClient{}, &mockMailer{}, &mockTxManager{}, noopLogger{})

		_, err := svc.Confirm(context.Background(), &models.ConfirmBookingRequest{BookingID: 1})
		assert.ErrorIs(t, err, ErrInvalidState)
		assert.Empty(t, *statuses)
	})
}

func TestReject(t *testing.T) {
	t.Run("rejects without cascade", func(t *testing.T) {
		var cascadeCalls int
		repo, statuses := repoWithPending(pendingBooking(1), 0)
		repo.RejectPendingByPropertyFunc = func(ctx context.Context, propertyID, excludeBookingID int64) (int64, error) {
			cascadeCalls++
			return 0, nil
		}

		svc := NewService(repo, &mockScheduleRepo{}, &mockPropertyClient{}, &mockMailer{}, &mockTxManager{}, noopLogger{})

		resp, err := svc.Reject(context.Background(), &models.RejectBookingRequest{BookingID: 1})
		require.NoError(t, err)

		assert.Equal(t, domain.StatusRejected, resp.Status)
		assert.Equal(t, []domain.BookingStatus{domain.StatusRejected}, *statuses)
		assert.Equal(t, 0, cascadeCalls)
	})

	t.Run("sends rejection email when requested", func(t *testing.T) {
		repo, _ := repoWithPending(pendingBooking(1), 0)
		mailer := &mockMailer{}

		svc := NewService(repo, &mockScheduleRepo{}, &mockPropertyClient{}, mailer, &mockTxManager{}, noopLogger{})

		_, err := svc.Reject(context.Background(), &models.RejectBookingRequest{BookingID: 1, SendNotification: true})
		require.NoError(t, err)

		require.Len(t, mailer.sent, 1)
		assert.Equal(t, "ivan@example.com", mailer.sent[0].to)
	})

	t.Run("already processed", func(t *testing.T) {
		booking := pendingBooking(1)
		booking.Status = domain.StatusCancelled
		repo, _ := repoWithPending(booking, 0)

		svc := NewService(repo, &mockScheduleRepo{}, &mockPropertyClient{}, &mockMailer{}, &mockTxManager{}, noopLogger{})

		_, err := svc.Reject(context.Background(), &models.RejectBookingRequest{BookingID: 1})
		assert.ErrorIs(t, err, ErrInvalidState)
	})
}

func bookingDetail(id, propertyID int64) *domain.BookingDetail {
	booking := pendingBooking(id)
	booking.PropertyID = propertyID
	return &domain.BookingDetail{
		Booking:       *booking,
		Region:        domain.RegionEast,
		ScheduleDate:  time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		SlotStartTime: "09:00",
		SlotEndTime:   "10:00",
	}
}

func TestList(t *testing.T) {
	t.Run("enriches bookings with property data", func(t *testing.T) {
		repo := &mockBookingRepo{
			ListWithFilterFunc: func(ctx context.Context, filter domain.BookingsFilter) ([]*domain.BookingDetail, error) {
				return []*domain.BookingDetail{bookingDetail(1, 100), bookingDetail(2, 100)}, nil
			},
		}
		client := &mockPropertyClient{
			GetPropertyFunc: func(ctx context.Context, propertyID int64) (*propertyservice.Property, error) {
				return &propertyservice.Property{ID: propertyID, Name: "Квартира на Лесной", Address: "ул. Лесная, 7"}, nil
			},
		}

		svc := NewService(repo, &mockScheduleRepo{}, client, &mockMailer{}, &mockTxManager{}, noopLogger{})

		resp, err := svc.List(context.Background(), &models.ListBookingsRequest{})
		require.NoError(t, err)

		require.Len(t, resp.Bookings, 2)
		require.NotNil(t, resp.Bookings[0].Property)
		assert.Equal(t, "Квартира на Лесной", resp.Bookings[0].Property.Name)
		assert.Equal(t, "2026-09-01", resp.Bookings[0].Date)
		assert.Equal(t, "09:00", resp.Bookings[0].StartTime)

		// Один объект на два бронирования: клиент дергается один раз
		assert.Equal(t, 1, client.calls)
	})

	t.Run("property service failure does not fail the list", func(t *testing.T) {
		repo := &mockBookingRepo{
			ListWithFilterFunc: func(ctx context.Context, filter domain.BookingsFilter) ([]*domain.BookingDetail, error) {
				return []*domain.BookingDetail{bookingDetail(1, 100)}, nil
			},
		}
		client := &mockPropertyClient{
			GetPropertyFunc: func(ctx context.Context, propertyID int64) (*propertyservice.Property, error) {
				return nil, errors.New("service unavailable")
			},
		}

		svc := NewService(repo, &mockScheduleRepo{}, client, &mockMailer{}, &mockTxManager{}, noopLogger{})

		resp, err := svc.List(context.Background(), &models.ListBookingsRequest{})
		require.NoError(t, err)

		require.Len(t, resp.Bookings, 1)
		assert.Nil(t, resp.Bookings[0].Property)
	})

	t.Run("passes filter to repository", func(t *testing.T) {
		var gotFilter domain.BookingsFilter
		repo := &mockBookingRepo{
			ListWithFilterFunc: func(ctx context.Context, filter domain.BookingsFilter) ([]*domain.BookingDetail, error) {
				gotFilter = filter
				return nil, nil
			},
		}

		svc := NewService(repo, &mockScheduleRepo{}, &mockPropertyClient{}, &mockMailer{}, &mockTxManager{}, noopLogger{})

		status := domain.StatusPending
		region := domain.RegionEast
		_, err := svc.List(context.Background(), &models.ListBookingsRequest{
			Status:     &status,
			Region:     &region,
			PropertyID: ptr.Ptr(int64(100)),
			ScheduleID: ptr.Ptr(int64(5)),
		})
		require.NoError(t, err)

		require.NotNil(t, gotFilter.Status)
		assert.Equal(t, domain.StatusPending, *gotFilter.Status)
		require.NotNil(t, gotFilter.Region)
		assert.Equal(t, domain.RegionEast, *gotFilter.Region)
		assert.Equal(t, int64(100), *gotFilter.PropertyID)
		assert.Equal(t, int64(5), *gotFilter.ScheduleID)
	})

	t.Run("unknown region rejected", func(t *testing.T) {
		svc := NewService(&mockBookingRepo{}, &mockScheduleRepo{}, &mockPropertyClient{}, &mockMailer{}, &mockTxManager{}, noopLogger{})

		region := domain.Region("atlantis")
		_, err := svc.List(context.Background(), &models.ListBookingsRequest{Region: &region})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}
