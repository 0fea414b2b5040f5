package create_booking

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/PMS-InspectionService/internal/domain"
	bookingRepo "github.com/m04kA/PMS-InspectionService/internal/infra/storage/booking"
	notificationRepo "github.com/m04kA/PMS-InspectionService/internal/infra/storage/notification"
	scheduleRepo "github.com/m04kA/PMS-InspectionService/internal/infra/storage/schedule"
)

type mockBookingRepo struct {
	CreateFunc                         func(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetActiveByScheduleAndPropertyFunc func(ctx context.Context, scheduleID, propertyID int64) (*domain.Booking, error)
	CountActiveBySlotFunc              func(ctx context.Context, slotID int64) (int, error)
}

func (m *mockBookingRepo) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	return m.CreateFunc(ctx, booking)
}

func (m *mockBookingRepo) GetActiveByScheduleAndProperty(ctx context.Context, scheduleID, propertyID int64) (*domain.Booking, error) {
	return m.GetActiveByScheduleAndPropertyFunc(ctx, scheduleID, propertyID)
}

func (m *mockBookingRepo) CountActiveBySlot(ctx context.Context, slotID int64) (int, error) {
	return m.CountActiveBySlotFunc(ctx, slotID)
}

type mockScheduleRepo struct {
	GetByIDFunc     func(ctx context.Context, id int64) (*domain.Schedule, error)
	GetSlotByIDFunc func(ctx context.Context, slotID int64) (*domain.Slot, error)
}

func (m *mockScheduleRepo) GetByID(ctx context.Context, id int64) (*domain.Schedule, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *mockScheduleRepo) GetSlotByID(ctx context.Context, slotID int64) (*domain.Slot, error) {
	return m.GetSlotByIDFunc(ctx, slotID)
}

type mockTokenRepo struct {
	GetTokenFunc func(ctx context.Context, token string) (*domain.BookingToken, error)
}

func (m *mockTokenRepo) GetToken(ctx context.Context, token string) (*domain.BookingToken, error) {
	return m.GetTokenFunc(ctx, token)
}

// mockTxManager выполняет транзакции последовательно, имитируя
// сериализуемый уровень изоляции
type mockTxManager struct {
	mu sync.Mutex
}

func (m *mockTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(ctx)
}

type noopLogger struct{}

func (noopLogger) Info(format string, v ...interface{})  {}
func (noopLogger) Warn(format string, v ...interface{})  {}
func (noopLogger) Error(format string, v ...interface{}) {}

func publishedSchedule(id int64) *domain.Schedule {
	return &domain.Schedule{ID: id, Region: domain.RegionEast, Status: domain.ScheduleStatusPublished}
}

func validRequest() *Request {
	return &Request{
		SlotID:       1,
		PropertyID:   100,
		ContactName:  "Иван Петров",
		ContactPhone: "+79990001122",
		ContactEmail: "ivan@example.com",
		BookedByType: domain.ActorContact,
	}
}

func scheduleRepoWithSlot(slot *domain.Slot, schedule *domain.Schedule) *mockScheduleRepo {
	return &mockScheduleRepo{
		GetSlotByIDFunc: func(ctx context.Context, slotID int64) (*domain.Slot, error) {
			if slot == nil || slot.ID != slotID {
				return nil, scheduleRepo.ErrSlotNotFound
			}
			return slot, nil
		},
		GetByIDFunc: func(ctx context.Context, id int64) (*domain.Schedule, error) {
			return schedule, nil
		},
	}
}

func emptyBookingRepo(created *[]*domain.Booking) *mockBookingRepo {
	var mu sync.Mutex
	return &mockBookingRepo{
		GetActiveByScheduleAndPropertyFunc: func(ctx context.Context, scheduleID, propertyID int64) (*domain.Booking, error) {
			return nil, bookingRepo.ErrBookingNotFound
		},
		CountActiveBySlotFunc: func(ctx context.Context, slotID int64) (int, error) {
			mu.Lock()
			defer mu.Unlock()
			return len(*created), nil
		},
		CreateFunc: func(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
			mu.Lock()
			defer mu.Unlock()
			stored := *booking
			stored.ID = int64(len(*created) + 1)
			*created = append(*created, &stored)
			return &stored, nil
		},
	}
}

func TestExecute_CreatesPendingBooking(t *testing.T) {
	var created []*domain.Booking
	slot := &domain.Slot{ID: 1, ScheduleID: 5, StartTime: "09:00", EndTime: "10:00", MaxCapacity: 2}

	uc := NewUseCase(
		emptyBookingRepo(&created),
		scheduleRepoWithSlot(slot, publishedSchedule(5)),
		&mockTokenRepo{},
		&mockTxManager{},
		noopLogger{},
	)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.False(t, resp.AlreadyBooked)
	assert.Equal(t, domain.StatusPending, resp.Status)
	assert.Equal(t, int64(5), resp.ScheduleID)

	require.Len(t, created, 1)
	assert.Equal(t, domain.StatusPending, created[0].Status)
	assert.Equal(t, int64(100), created[0].PropertyID)
}

func TestExecute_Validation(t *testing.T) {
	uc := NewUseCase(&mockBookingRepo{}, &mockScheduleRepo{}, &mockTokenRepo{}, &mockTxManager{}, noopLogger{})

	tests := []struct {
		name   string
		mutate func(req *Request)
	}{
		{name: "zero slot id", mutate: func(req *Request) { req.SlotID = 0 }},
		{name: "zero property id", mutate: func(req *Request) { req.PropertyID = 0 }},
		{name: "blank contact name", mutate: func(req *Request) { req.ContactName = "   " }},
		{name: "blank contact phone", mutate: func(req *Request) { req.ContactPhone = "" }},
		{name: "unknown actor type", mutate: func(req *Request) { req.BookedByType = "robot" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)

			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestExecute_SlotNotFound(t *testing.T) {
	uc := NewUseCase(
		&mockBookingRepo{},
		scheduleRepoWithSlot(nil, nil),
		&mockTokenRepo{},
		&mockTxManager{},
		noopLogger{},
	)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestExecute_SlotNotInSchedule(t *testing.T) {
	slot := &domain.Slot{ID: 1, ScheduleID: 5, MaxCapacity: 2}

	uc := NewUseCase(
		&mockBookingRepo{},
		scheduleRepoWithSlot(slot, publishedSchedule(5)),
		&mockTokenRepo{},
		&mockTxManager{},
		noopLogger{},
	)

	req := validRequest()
	req.ExpectedScheduleID = 9

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSlotNotInSchedule)
}

func TestExecute_ScheduleClosed(t *testing.T) {
	slot := &domain.Slot{ID: 1, ScheduleID: 5, MaxCapacity: 2}
	closed := &domain.Schedule{ID: 5, Region: domain.RegionEast, Status: domain.ScheduleStatusClosed}

	uc := NewUseCase(
		&mockBookingRepo{},
		scheduleRepoWithSlot(slot, closed),
		&mockTokenRepo{},
		&mockTxManager{},
		noopLogger{},
	)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrScheduleClosed)
}

func TestExecute_SlotFull(t *testing.T) {
	slot := &domain.Slot{ID: 1, ScheduleID: 5, MaxCapacity: 2}

	repo := &mockBookingRepo{
		GetActiveByScheduleAndPropertyFunc: func(ctx context.Context, scheduleID, propertyID int64) (*domain.Booking, error) {
			return nil, bookingRepo.ErrBookingNotFound
		},
		CountActiveBySlotFunc: func(ctx context.Context, slotID int64) (int, error) {
			return 2, nil
		},
	}

	uc := NewUseCase(repo, scheduleRepoWithSlot(slot, publishedSchedule(5)), &mockTokenRepo{}, &mockTxManager{}, noopLogger{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotFull)
}

// Повторная заявка по тому же объекту возвращает существующее
// бронирование и не создаёт новую запись
func TestExecute_DuplicateReturnsExisting(t *testing.T) {
	slot := &domain.Slot{ID: 1, ScheduleID: 5, MaxCapacity: 2}
	existing := &domain.Booking{ID: 42, SlotID: 3, ScheduleID: 5, PropertyID: 100, Status: domain.StatusPending}

	var createCalls int
	repo := &mockBookingRepo{
		GetActiveByScheduleAndPropertyFunc: func(ctx context.Context, scheduleID, propertyID int64) (*domain.Booking, error) {
			return existing, nil
		},
		CountActiveBySlotFunc: func(ctx context.Context, slotID int64) (int, error) {
			return 0, nil
		},
		CreateFunc: func(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
			createCalls++
			return booking, nil
		},
	}

	uc := NewUseCase(repo, scheduleRepoWithSlot(slot, publishedSchedule(5)), &mockTokenRepo{}, &mockTxManager{}, noopLogger{})

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.True(t, resp.AlreadyBooked)
	assert.Equal(t, int64(42), resp.BookingID)
	assert.Equal(t, int64(3), resp.SlotID)
	assert.Equal(t, 0, createCalls)
}

// Конкурентные заявки на последнее место: ровно одна проходит,
// остальные получают отказ по вместимости
func TestExecute_ConcurrentLastSpot(t *testing.T) {
	const workers = 8

	slot := &domain.Slot{ID: 1, ScheduleID: 5, MaxCapacity: 1}

	var created []*domain.Booking
	repo := emptyBookingRepo(&created)

	uc := NewUseCase(repo, scheduleRepoWithSlot(slot, publishedSchedule(5)), &mockTokenRepo{}, &mockTxManager{}, noopLogger{})

	var wg sync.WaitGroup
	errs := make([]error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			req := validRequest()
			// Разные объекты, иначе сработает идемпотентность дубликата
			req.PropertyID = int64(100 + idx)
			_, errs[idx] = uc.Execute(context.Background(), req)
		}(i)
	}
	wg.Wait()

	var succeeded, rejected int
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		default:
			require.ErrorIs(t, err, ErrSlotFull)
			rejected++
		}
	}

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, workers-1, rejected)
	assert.Len(t, created, 1)
}

func TestExecuteWithToken(t *testing.T) {
	t.Run("unknown token", func(t *testing.T) {
		tokenRepoMock := &mockTokenRepo{
			GetTokenFunc: func(ctx context.Context, token string) (*domain.BookingToken, error) {
				return nil, notificationRepo.ErrTokenNotFound
			},
		}

		uc := NewUseCase(&mockBookingRepo{}, &mockScheduleRepo{}, tokenRepoMock, &mockTxManager{}, noopLogger{})

		_, err := uc.ExecuteWithToken(context.Background(), "deadbeef", validRequest())
		assert.ErrorIs(t, err, ErrLinkNotFound)
	})

	t.Run("token fills property and schedule", func(t *testing.T) {
		tokenRepoMock := &mockTokenRepo{
			GetTokenFunc: func(ctx context.Context, token string) (*domain.BookingToken, error) {
				return &domain.BookingToken{Token: token, ScheduleID: 5, PropertyID: 777}, nil
			},
		}

		slot := &domain.Slot{ID: 1, ScheduleID: 5, MaxCapacity: 2}
		var created []*domain.Booking

		uc := NewUseCase(
			emptyBookingRepo(&created),
			scheduleRepoWithSlot(slot, publishedSchedule(5)),
			tokenRepoMock,
			&mockTxManager{},
			noopLogger{},
		)

		req := validRequest()
		req.PropertyID = 0 // клиентскому вводу не доверяем
		req.BookedByType = ""
		staffID := int64(1)
		req.BookedByID = &staffID

		resp, err := uc.ExecuteWithToken(context.Background(), "good-token", req)
		require.NoError(t, err)

		assert.Equal(t, int64(777), resp.PropertyID)
		require.Len(t, created, 1)
		assert.Equal(t, domain.ActorContact, created[0].BookedByType)
		assert.Nil(t, created[0].BookedByID)
	})

	t.Run("slot from another schedule rejected", func(t *testing.T) {
		tokenRepoMock := &mockTokenRepo{
			GetTokenFunc: func(ctx context.Context, token string) (*domain.BookingToken, error) {
				return &domain.BookingToken{Token: token, ScheduleID: 9, PropertyID: 777}, nil
			},
		}

		slot := &domain.Slot{ID: 1, ScheduleID: 5, MaxCapacity: 2}

		uc := NewUseCase(
			&mockBookingRepo{},
			scheduleRepoWithSlot(slot, publishedSchedule(5)),
			tokenRepoMock,
			&mockTxManager{},
			noopLogger{},
		)

		_, err := uc.ExecuteWithToken(context.Background(), "good-token", validRequest())
		assert.ErrorIs(t, err, ErrSlotNotInSchedule)
	})
}
