package resolve_booking_link

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/PMS-InspectionService/internal/domain"
	bookingRepo "github.com/m04kA/PMS-InspectionService/internal/infra/storage/booking"
	notificationRepo "github.com/m04kA/PMS-InspectionService/internal/infra/storage/notification"
	"github.com/m04kA/PMS-InspectionService/internal/integrations/propertyservice"
)

type mockNotificationRepo struct {
	GetTokenFunc func(ctx context.Context, token string) (*domain.BookingToken, error)
}

func (m *mockNotificationRepo) GetToken(ctx context.Context, token string) (*domain.BookingToken, error) {
	return m.GetTokenFunc(ctx, token)
}

type mockBookingRepo struct {
	GetLatestByScheduleAndPropertyFunc func(ctx context.Context, scheduleID, propertyID int64) (*domain.Booking, error)
}

func (m *mockBookingRepo) GetLatestByScheduleAndProperty(ctx context.Context, scheduleID, propertyID int64) (*domain.Booking, error) {
	return m.GetLatestByScheduleAndPropertyFunc(ctx, scheduleID, propertyID)
}

type mockScheduleRepo struct {
	GetByIDFunc  func(ctx context.Context, id int64) (*domain.Schedule, error)
	GetSlotsFunc func(ctx context.Context, scheduleID int64) ([]*domain.Slot, error)
}

func (m *mockScheduleRepo) GetByID(ctx context.Context, id int64) (*domain.Schedule, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *mockScheduleRepo) GetSlots(ctx context.Context, scheduleID int64) ([]*domain.Slot, error) {
	return m.GetSlotsFunc(ctx, scheduleID)
}

type mockPropertyClient struct {
	GetPropertyFunc func(ctx context.Context, propertyID int64) (*propertyservice.Property, error)
}

func (m *mockPropertyClient) GetProperty(ctx context.Context, propertyID int64) (*propertyservice.Property, error) {
	return m.GetPropertyFunc(ctx, propertyID)
}

type noopLogger struct{}

func (noopLogger) Info(format string, v ...interface{})  {}
func (noopLogger) Warn(format string, v ...interface{})  {}
func (noopLogger) Error(format string, v ...interface{}) {}

func fixtureToken() *mockNotificationRepo {
	return &mockNotificationRepo{
		GetTokenFunc: func(ctx context.Context, token string) (*domain.BookingToken, error) {
			if token != "good-token" {
				return nil, notificationRepo.ErrTokenNotFound
			}
			return &domain.BookingToken{Token: token, ScheduleID: 5, PropertyID: 100}, nil
		},
	}
}

func fixturePropertyClient() *mockPropertyClient {
	return &mockPropertyClient{
		GetPropertyFunc: func(ctx context.Context, propertyID int64) (*propertyservice.Property, error) {
			return &propertyservice.Property{ID: propertyID, Name: "Дом у парка", Address: "пр. Мира, 12"}, nil
		},
	}
}

func fixtureScheduleRepo() *mockScheduleRepo {
	return &mockScheduleRepo{
		GetByIDFunc: func(ctx context.Context, id int64) (*domain.Schedule, error) {
			return &domain.Schedule{
				ID:           id,
				Region:       domain.RegionEast,
				ScheduleDate: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
				Status:       domain.ScheduleStatusPublished,
			}, nil
		},
		GetSlotsFunc: func(ctx context.Context, scheduleID int64) ([]*domain.Slot, error) {
			return []*domain.Slot{
				{ID: 1, ScheduleID: scheduleID, StartTime: "09:00", EndTime: "10:00", MaxCapacity: 2, CurrentBookings: 2},
				{ID: 2, ScheduleID: scheduleID, StartTime: "10:00", EndTime: "11:00", MaxCapacity: 2, CurrentBookings: 1},
			}, nil
		},
	}
}

func noBooking() *mockBookingRepo {
	return &mockBookingRepo{
		GetLatestByScheduleAndPropertyFunc: func(ctx context.Context, scheduleID, propertyID int64) (*domain.Booking, error) {
			return nil, bookingRepo.ErrBookingNotFound
		},
	}
}

func latestBooking(status domain.BookingStatus) *mockBookingRepo {
	return &mockBookingRepo{
		GetLatestByScheduleAndPropertyFunc: func(ctx context.Context, scheduleID, propertyID int64) (*domain.Booking, error) {
			return &domain.Booking{
				ID:         7,
				SlotID:     2,
				ScheduleID: scheduleID,
				PropertyID: propertyID,
				Status:     status,
			}, nil
		},
	}
}

func TestExecute_UnknownToken(t *testing.T) {
	uc := NewUseCase(fixtureToken(), noBooking(), fixtureScheduleRepo(), fixturePropertyClient(), noopLogger{})

	_, err := uc.Execute(context.Background(), &Request{Token: "stale-token"})
	assert.ErrorIs(t, err, ErrLinkNotFound)
}

func TestExecute_ShowsSlots(t *testing.T) {
	uc := NewUseCase(fixtureToken(), noBooking(), fixtureScheduleRepo(), fixturePropertyClient(), noopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{Token: "good-token"})
	require.NoError(t, err)

	assert.False(t, resp.AlreadyBooked)
	assert.Nil(t, resp.Booking)
	assert.Equal(t, "Дом у парка", resp.Property.Name)

	require.Len(t, resp.Schedules, 1)
	schedule := resp.Schedules[0]
	assert.Equal(t, "2026-09-01", schedule.Date)
	assert.Equal(t, domain.RegionEast, schedule.Region)

	require.Len(t, schedule.Slots, 2)
	assert.Equal(t, 0, schedule.Slots[0].AvailableSpots)
	assert.Equal(t, 1, schedule.Slots[1].AvailableSpots)
	assert.Equal(t, "10:00", schedule.Slots[1].StartTime)
}

// Однажды поданная заявка закрывает форму выбора слота навсегда,
// независимо от её дальнейшей судьбы
func TestExecute_RecordedBookingClosesPage(t *testing.T) {
	statuses := []domain.BookingStatus{
		domain.StatusPending,
		domain.StatusConfirmed,
		domain.StatusRejected,
		domain.StatusCancelled,
	}

	for _, status := range statuses {
		t.Run(string(status), func(t *testing.T) {
			uc := NewUseCase(fixtureToken(), latestBooking(status), fixtureScheduleRepo(), fixturePropertyClient(), noopLogger{})

			resp, err := uc.Execute(context.Background(), &Request{Token: "good-token"})
			require.NoError(t, err)

			assert.True(t, resp.AlreadyBooked)
			require.NotNil(t, resp.Booking)
			assert.Equal(t, int64(7), resp.Booking.ID)
			assert.Equal(t, status, resp.Booking.Status)
			// Время подставлено из слота бронирования
			assert.Equal(t, "10:00", resp.Booking.StartTime)
			assert.Equal(t, "11:00", resp.Booking.EndTime)
			assert.Empty(t, resp.Schedules)
		})
	}
}

// Повторное разрешение ссылки детерминировано: до заявки - список
// слотов, после - всегда карточка бронирования
func TestExecute_ResolutionConsistentAcrossReloads(t *testing.T) {
	uc := NewUseCase(fixtureToken(), latestBooking(domain.StatusRejected), fixtureScheduleRepo(), fixturePropertyClient(), noopLogger{})

	first, err := uc.Execute(context.Background(), &Request{Token: "good-token"})
	require.NoError(t, err)
	second, err := uc.Execute(context.Background(), &Request{Token: "good-token"})
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.True(t, first.AlreadyBooked)
	assert.Empty(t, first.Schedules)
}
