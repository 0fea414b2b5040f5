package regionconfig

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/PMS-InspectionService/internal/domain"
	"github.com/m04kA/PMS-InspectionService/pkg/dbmetrics"
	"github.com/m04kA/PMS-InspectionService/pkg/psqlbuilder"
)

// Repository репозиторий для работы с конфигурацией регионов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория конфигурации регионов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Upsert создает или обновляет конфигурацию региона.
// Существующие расписания при этом не изменяются.
func (r *Repository) Upsert(ctx context.Context, config *domain.RegionConfig) (*domain.RegionConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("region_configs").
		Columns(
			"region",
			"start_time",
			"end_time",
			"slot_duration_minutes",
			"max_capacity",
		).
		Values(
			config.Region,
			config.StartTime,
			config.EndTime,
			config.SlotDurationMinutes,
			config.MaxCapacity,
		).
		Suffix(`ON CONFLICT (region) DO UPDATE SET
			start_time = EXCLUDED.start_time,
			end_time = EXCLUDED.end_time,
			slot_duration_minutes = EXCLUDED.slot_duration_minutes,
			max_capacity = EXCLUDED.max_capacity,
			updated_at = NOW()
			RETURNING created_at, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	config.CreatedAt = createdAt.Time
	config.UpdatedAt = updatedAt.Time

	return config, nil
}

// GetByRegion получает конфигурацию региона
func (r *Repository) GetByRegion(ctx context.Context, region domain.Region) (*domain.RegionConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"region",
		"start_time",
		"end_time",
		"slot_duration_minutes",
		"max_capacity",
		"created_at",
		"updated_at",
	).
		From("region_configs").
		Where(squirrel.Eq{"region": region}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByRegion - build select query: %v", ErrBuildQuery, err)
	}

	var config domain.RegionConfig
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&config.Region,
		&config.StartTime,
		&config.EndTime,
		&config.SlotDurationMinutes,
		&config.MaxCapacity,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrConfigNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByRegion - scan config: %v", ErrScanRow, err)
	}

	config.CreatedAt = createdAt.Time
	config.UpdatedAt = updatedAt.Time

	return &config, nil
}

// List получает конфигурации всех регионов
func (r *Repository) List(ctx context.Context) ([]*domain.RegionConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"region",
		"start_time",
		"end_time",
		"slot_duration_minutes",
		"max_capacity",
		"created_at",
		"updated_at",
	).
		From("region_configs").
		OrderBy("region ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	configs := make([]*domain.RegionConfig, 0)

	for rows.Next() {
		var config domain.RegionConfig
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&config.Region,
			&config.StartTime,
			&config.EndTime,
			&config.SlotDurationMinutes,
			&config.MaxCapacity,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}

		config.CreatedAt = createdAt.Time
		config.UpdatedAt = updatedAt.Time

		configs = append(configs, &config)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return configs, nil
}
