package schedule

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/PMS-InspectionService/internal/domain"
	"github.com/m04kA/PMS-InspectionService/pkg/dbmetrics"
	"github.com/m04kA/PMS-InspectionService/pkg/psqlbuilder"
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

// scheduleColumns колонки расписания в порядке сканирования
var scheduleColumns = []string{
	"id",
	"region",
	"schedule_date",
	"start_time",
	"end_time",
	"slot_duration_minutes",
	"max_capacity",
	"status",
	"note",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с расписаниями и слотами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписаний
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// CreateWithSlots создает расписание вместе со сгенерированными слотами.
// Должен вызываться внутри транзакции - расписание и слоты пишутся атомарно.
// Возвращает ErrScheduleExists при нарушении уникальности (region, date).
func (r *Repository) CreateWithSlots(ctx context.Context, schedule *domain.Schedule, windows []domain.SlotWindow) (*domain.Schedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("schedules").
		Columns(
			"region",
			"schedule_date",
			"start_time",
			"end_time",
			"slot_duration_minutes",
			"max_capacity",
			"status",
			"note",
		).
		Values(
			schedule.Region,
			schedule.ScheduleDate,
			schedule.StartTime,
			schedule.EndTime,
			schedule.SlotDurationMinutes,
			schedule.MaxCapacity,
			schedule.Status,
			schedule.Note,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateWithSlots - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&schedule.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrScheduleExists
		}
		return nil, fmt.Errorf("%w: CreateWithSlots - execute insert: %v", ErrExecQuery, err)
	}

	schedule.CreatedAt = createdAt.Time
	schedule.UpdatedAt = updatedAt.Time

	if len(windows) == 0 {
		return schedule, nil
	}

	insertBuilder := psqlbuilder.Insert("slots").
		Columns("schedule_id", "start_time", "end_time", "max_capacity")

	for _, window := range windows {
		insertBuilder = insertBuilder.Values(schedule.ID, window.StartTime, window.EndTime, schedule.MaxCapacity)
	}

	query, args, err = insertBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateWithSlots - build slots insert: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("%w: CreateWithSlots - execute slots insert: %v", ErrExecQuery, err)
	}

	return schedule, nil
}

// GetByID получает расписание по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Schedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(scheduleColumns...).
		From("schedules").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanSchedule(executor.QueryRowContext(ctx, query, args...), "GetByID")
}

// GetByRegionAndDate получает расписание для региона на конкретную дату
func (r *Repository) GetByRegionAndDate(ctx context.Context, region domain.Region, date time.Time) (*domain.Schedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(scheduleColumns...).
		From("schedules").
		Where(squirrel.Eq{"region": region, "schedule_date": date}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByRegionAndDate - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanSchedule(executor.QueryRowContext(ctx, query, args...), "GetByRegionAndDate")
}

// List получает расписания с фильтрацией по региону и периоду
func (r *Repository) List(ctx context.Context, filter domain.ScheduleFilter) ([]*domain.Schedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(scheduleColumns...).
		From("schedules").
		OrderBy("schedule_date ASC, region ASC")

	if filter.Region != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"region": *filter.Region})
	}
	if filter.DateFrom != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"schedule_date": *filter.DateFrom})
	}
	if filter.DateTo != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"schedule_date": *filter.DateTo})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	schedules := make([]*domain.Schedule, 0)

	for rows.Next() {
		var schedule domain.Schedule
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&schedule.ID,
			&schedule.Region,
			&schedule.ScheduleDate,
			&schedule.StartTime,
			&schedule.EndTime,
			&schedule.SlotDurationMinutes,
			&schedule.MaxCapacity,
			&schedule.Status,
			&schedule.Note,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}

		schedule.CreatedAt = createdAt.Time
		schedule.UpdatedAt = updatedAt.Time

		schedules = append(schedules, &schedule)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return schedules, nil
}

// GetSlots получает слоты расписания с подсчётом активных бронирований.
// Слоты возвращаются в порядке времени начала.
func (r *Repository) GetSlots(ctx context.Context, scheduleID int64) ([]*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"s.id",
		"s.schedule_id",
		"s.start_time",
		"s.end_time",
		"s.max_capacity",
		"s.created_at",
		"COUNT(b.id) FILTER (WHERE b.status IN ('pending', 'confirmed')) AS current_bookings",
	).
		From("slots s").
		LeftJoin("bookings b ON b.slot_id = s.id").
		Where(squirrel.Eq{"s.schedule_id": scheduleID}).
		GroupBy("s.id").
		OrderBy("s.start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetSlots - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetSlots - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	slots := make([]*domain.Slot, 0)

	for rows.Next() {
		var slot domain.Slot
		err := rows.Scan(
			&slot.ID,
			&slot.ScheduleID,
			&slot.StartTime,
			&slot.EndTime,
			&slot.MaxCapacity,
			&slot.CreatedAt,
			&slot.CurrentBookings,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetSlots - scan row: %v", ErrScanRow, err)
		}
		slots = append(slots, &slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetSlots - rows error: %v", ErrScanRow, err)
	}

	return slots, nil
}

// GetSlotByID получает слот по ID.
// Внутри транзакции блокирует строку слота (FOR UPDATE) - это точка
// сериализации для проверки вместимости при конкурентных бронированиях.
func (r *Repository) GetSlotByID(ctx context.Context, slotID int64) (*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"id",
		"schedule_id",
		"start_time",
		"end_time",
		"max_capacity",
		"created_at",
	).
		From("slots").
		Where(squirrel.Eq{"id": slotID})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetSlotByID - build select query: %v", ErrBuildQuery, err)
	}

	var slot domain.Slot
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&slot.ID,
		&slot.ScheduleID,
		&slot.StartTime,
		&slot.EndTime,
		&slot.MaxCapacity,
		&slot.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetSlotByID - scan slot: %v", ErrScanRow, err)
	}

	return &slot, nil
}

// Delete удаляет расписание.
// Слоты и бронирования удаляются каскадно на уровне БД;
// проверка на подтверждённые бронирования - обязанность сервисного слоя.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("schedules").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrScheduleNotFound
	}

	return nil
}

// scanSchedule сканирует одну строку расписания
func (r *Repository) scanSchedule(row *sql.Row, method string) (*domain.Schedule, error) {
	var schedule domain.Schedule
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&schedule.ID,
		&schedule.Region,
		&schedule.ScheduleDate,
		&schedule.StartTime,
		&schedule.EndTime,
		&schedule.SlotDurationMinutes,
		&schedule.MaxCapacity,
		&schedule.Status,
		&schedule.Note,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrScheduleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan schedule: %v", ErrScanRow, method, err)
	}

	schedule.CreatedAt = createdAt.Time
	schedule.UpdatedAt = updatedAt.Time

	return &schedule, nil
}

// isUniqueViolation проверяет ошибку нарушения уникального ограничения PostgreSQL
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}
