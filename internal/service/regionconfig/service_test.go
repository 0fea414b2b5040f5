package regionconfig

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/PMS-InspectionService/internal/domain"
	configRepo "github.com/m04kA/PMS-InspectionService/internal/infra/storage/regionconfig"
	"github.com/m04kA/PMS-InspectionService/internal/service/regionconfig/models"
)

type mockConfigRepo struct {
	UpsertFunc      func(ctx context.Context, config *domain.RegionConfig) (*domain.RegionConfig, error)
	GetByRegionFunc func(ctx context.Context, region domain.Region) (*domain.RegionConfig, error)
	ListFunc        func(ctx context.Context) ([]*domain.RegionConfig, error)
}

func (m *mockConfigRepo) Upsert(ctx context.Context, config *domain.RegionConfig) (*domain.RegionConfig, error) {
	return m.UpsertFunc(ctx, config)
}

func (m *mockConfigRepo) GetByRegion(ctx context.Context, region domain.Region) (*domain.RegionConfig, error) {
	return m.GetByRegionFunc(ctx, region)
}

func (m *mockConfigRepo) List(ctx context.Context) ([]*domain.RegionConfig, error) {
	return m.ListFunc(ctx)
}

type noopLogger struct{}

func (noopLogger) Info(format string, v ...interface{})  {}
func (noopLogger) Warn(format string, v ...interface{})  {}
func (noopLogger) Error(format string, v ...interface{}) {}

func validUpsertRequest() *models.UpsertConfigRequest {
	return &models.UpsertConfigRequest{
		Region:              domain.RegionEast,
		StartTime:           "09:00",
		EndTime:             "17:00",
		SlotDurationMinutes: 60,
		MaxCapacity:         3,
	}
}

func TestUpsert(t *testing.T) {
	t.Run("saves config", func(t *testing.T) {
		var saved *domain.RegionConfig
		repo := &mockConfigRepo{
			UpsertFunc: func(ctx context.Context, config *domain.RegionConfig) (*domain.RegionConfig, error) {
				saved = config
				return config, nil
			},
		}

		svc := NewService(repo, noopLogger{})

		resp, err := svc.Upsert(context.Background(), validUpsertRequest())
		require.NoError(t, err)

		assert.Equal(t, domain.RegionEast, resp.Region)
		assert.Equal(t, "09:00", resp.StartTime)
		require.NotNil(t, saved)
		assert.Equal(t, 60, saved.SlotDurationMinutes)
	})

	t.Run("validation", func(t *testing.T) {
		svc := NewService(&mockConfigRepo{}, noopLogger{})

		tests := []struct {
			name    string
			mutate  func(req *models.UpsertConfigRequest)
			wantErr error
		}{
			{
				name:    "unknown region",
				mutate:  func(req *models.UpsertConfigRequest) { req.Region = "moon" },
				wantErr: ErrInvalidRegion,
			},
			{
				name:    "malformed start time",
				mutate:  func(req *models.UpsertConfigRequest) { req.StartTime = "nine am" },
				wantErr: ErrInvalidInput,
			},
			{
				name: "start after end",
				mutate: func(req *models.UpsertConfigRequest) {
					req.StartTime = "18:00"
					req.EndTime = "09:00"
				},
				wantErr: ErrInvalidInput,
			},
			{
				name:    "duration too short",
				mutate:  func(req *models.UpsertConfigRequest) { req.SlotDurationMinutes = 5 },
				wantErr: ErrInvalidInput,
			},
			{
				name:    "capacity out of range",
				mutate:  func(req *models.UpsertConfigRequest) { req.MaxCapacity = 0 },
				wantErr: ErrInvalidInput,
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				req := validUpsertRequest()
				tt.mutate(req)

				_, err := svc.Upsert(context.Background(), req)
				assert.ErrorIs(t, err, tt.wantErr)
			})
		}
	})
}

func TestGet(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		repo := &mockConfigRepo{
			GetByRegionFunc: func(ctx context.Context, region domain.Region) (*domain.RegionConfig, error) {
				return &domain.RegionConfig{
					Region:              region,
					StartTime:           "09:00",
					EndTime:             "17:00",
					SlotDurationMinutes: 60,
					MaxCapacity:         3,
				}, nil
			},
		}

		svc := NewService(repo, noopLogger{})

		resp, err := svc.Get(context.Background(), domain.RegionSouth)
		require.NoError(t, err)
		assert.Equal(t, domain.RegionSouth, resp.Region)
	})

	t.Run("not configured", func(t *testing.T) {
		repo := &mockConfigRepo{
			GetByRegionFunc: func(ctx context.Context, region domain.Region) (*domain.RegionConfig, error) {
				return nil, configRepo.ErrConfigNotFound
			},
		}

		svc := NewService(repo, noopLogger{})

		_, err := svc.Get(context.Background(), domain.RegionSouth)
		assert.ErrorIs(t, err, ErrConfigNotFound)
	})

	t.Run("unknown region", func(t *testing.T) {
		svc := NewService(&mockConfigRepo{}, noopLogger{})

		_, err := svc.Get(context.Background(), "moon")
		assert.ErrorIs(t, err, ErrInvalidRegion)
	})
}

// Список всегда перечисляет все регионы, настроенные и нет
func TestList(t *testing.T) {
	repo := &mockConfigRepo{
		ListFunc: func(ctx context.Context) ([]*domain.RegionConfig, error) {
			return []*domain.RegionConfig{
				{Region: domain.RegionEast, StartTime: "09:00", EndTime: "17:00", SlotDurationMinutes: 60, MaxCapacity: 3},
			}, nil
		},
	}

	svc := NewService(repo, noopLogger{})

	resp, err := svc.List(context.Background())
	require.NoError(t, err)

	require.Len(t, resp.Regions, len(domain.Regions))

	byRegion := make(map[domain.Region]models.RegionStateResponse)
	for _, state := range resp.Regions {
		byRegion[state.Region] = state
	}

	east := byRegion[domain.RegionEast]
	assert.True(t, east.Configured)
	require.NotNil(t, east.Config)
	assert.Equal(t, "09:00", east.Config.StartTime)

	west := byRegion[domain.RegionWest]
	assert.False(t, west.Configured)
	assert.Nil(t, west.Config)
}
