package booking

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/PMS-InspectionService/internal/domain"
	"github.com/m04kA/PMS-InspectionService/pkg/dbmetrics"
	"github.com/m04kA/PMS-InspectionService/pkg/psqlbuilder"
)

// bookingColumns колонки бронирования в порядке сканирования
var bookingColumns = []string{
	"id",
	"slot_id",
	"schedule_id",
	"property_id",
	"contact_name",
	"contact_phone",
	"contact_email",
	"note",
	"status",
	"booked_by_type",
	"booked_by_id",
	"created_at",
	"updated_at",
}

// activeStatusValues статусы, занимающие место в слоте, в виде []string для SQL
var activeStatusValues = statusStrings(domain.ActiveStatuses)

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование.
// Проверка вместимости и дубликатов - обязанность вызывающего usecase,
// который обязан выполнять Create в сериализуемой транзакции.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"slot_id",
			"schedule_id",
			"property_id",
			"contact_name",
			"contact_phone",
			"contact_email",
			"note",
			"status",
			"booked_by_type",
			"booked_by_id",
		).
		Values(
			booking.SlotID,
			booking.ScheduleID,
			booking.PropertyID,
			booking.ContactName,
			booking.ContactPhone,
			booking.ContactEmail,
			booking.Note,
			booking.Status,
			booking.BookedByType,
			booking.BookedByID,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID.
// Внутри транзакции блокирует строку (FOR UPDATE) - используется
// при подтверждении/отклонении для защиты от двойной обработки.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanBooking(executor.QueryRowContext(ctx, query, args...), "GetByID")
}

// CountActiveBySlot подсчитывает активные (pending/confirmed) бронирования слота
func (r *Repository) CountActiveBySlot(ctx context.Context, slotID int64) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("bookings").
		Where(squirrel.Eq{"slot_id": slotID, "status": activeStatusValues}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CountActiveBySlot - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountActiveBySlot - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// GetActiveByScheduleAndProperty получает активное бронирование объекта
// в рамках расписания (на любом из его слотов)
func (r *Repository) GetActiveByScheduleAndProperty(ctx context.Context, scheduleID, propertyID int64) (*domain.Booking, error) {
	return r.getByScheduleAndProperty(ctx, scheduleID, propertyID, true)
}

// GetLatestByScheduleAndProperty получает последнее бронирование объекта
// в рамках расписания независимо от статуса.
// Используется публичной страницей для ветки "уже забронировано".
func (r *Repository) GetLatestByScheduleAndProperty(ctx context.Context, scheduleID, propertyID int64) (*domain.Booking, error) {
	return r.getByScheduleAndProperty(ctx, scheduleID, propertyID, false)
}

func (r *Repository) getByScheduleAndProperty(ctx context.Context, scheduleID, propertyID int64, activeOnly bool) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"schedule_id": scheduleID, "property_id": propertyID}).
		OrderBy("created_at DESC").
		Limit(1)

	if activeOnly {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": activeStatusValues})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: getByScheduleAndProperty - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanBooking(executor.QueryRowContext(ctx, query, args...), "getByScheduleAndProperty")
}

// UpdateStatus обновляет статус бронирования
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// RejectPendingByProperty отклоняет все ожидающие бронирования объекта,
// кроме указанного. Каскад при подтверждении: один и тот же объект
// не должен ждать осмотра в нескольких расписаниях.
// Возвращает количество отклонённых бронирований.
func (r *Repository) RejectPendingByProperty(ctx context.Context, propertyID, excludeBookingID int64) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusRejected).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"property_id": propertyID, "status": domain.StatusPending}).
		Where(squirrel.NotEq{"id": excludeBookingID}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: RejectPendingByProperty - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: RejectPendingByProperty - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: RejectPendingByProperty - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected, nil
}

// HasConfirmedBySchedule проверяет, есть ли у расписания подтверждённые бронирования
func (r *Repository) HasConfirmedBySchedule(ctx context.Context, scheduleID int64) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("bookings").
		Where(squirrel.Eq{"schedule_id": scheduleID, "status": domain.StatusConfirmed}).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: HasConfirmedBySchedule - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return false, fmt.Errorf("%w: HasConfirmedBySchedule - scan count: %v", ErrScanRow, err)
	}

	return count > 0, nil
}

// ListWithFilter получает бронирования с данными слота и расписания.
// Поддерживает фильтрацию по статусу, региону, объекту и расписанию.
func (r *Repository) ListWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.BookingDetail, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"b.id",
		"b.slot_id",
		"b.schedule_id",
		"b.property_id",
		"b.contact_name",
		"b.contact_phone",
		"b.contact_email",
		"b.note",
		"b.status",
		"b.booked_by_type",
		"b.booked_by_id",
		"b.created_at",
		"b.updated_at",
		"s.start_time",
		"s.end_time",
		"sch.schedule_date",
		"sch.region",
	).
		From("bookings b").
		Join("slots s ON s.id = b.slot_id").
		Join("schedules sch ON sch.id = b.schedule_id").
		OrderBy("sch.schedule_date ASC", "s.start_time ASC", "b.created_at ASC")

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"b.status": *filter.Status})
	}
	if filter.Region != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"sch.region": *filter.Region})
	}
	if filter.PropertyID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"b.property_id": *filter.PropertyID})
	}
	if filter.ScheduleID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"b.schedule_id": *filter.ScheduleID})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings := make([]*domain.BookingDetail, 0)

	for rows.Next() {
		var detail domain.BookingDetail
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&detail.ID,
			&detail.SlotID,
			&detail.ScheduleID,
			&detail.PropertyID,
			&detail.ContactName,
			&detail.ContactPhone,
			&detail.ContactEmail,
			&detail.Note,
			&detail.Status,
			&detail.BookedByType,
			&detail.BookedByID,
			&createdAt,
			&updatedAt,
			&detail.SlotStartTime,
			&detail.SlotEndTime,
			&detail.ScheduleDate,
			&detail.Region,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListWithFilter - scan row: %v", ErrScanRow, err)
		}

		detail.CreatedAt = createdAt.Time
		detail.UpdatedAt = updatedAt.Time

		bookings = append(bookings, &detail)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListWithFilter - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

func (r *Repository) scanBooking(row *sql.Row, method string) (*domain.Booking, error) {
	var booking domain.Booking
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.SlotID,
		&booking.ScheduleID,
		&booking.PropertyID,
		&booking.ContactName,
		&booking.ContactPhone,
		&booking.ContactEmail,
		&booking.Note,
		&booking.Status,
		&booking.BookedByType,
		&booking.BookedByID,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan booking: %v", ErrScanRow, method, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

// statusStrings конвертирует статусы в []string для SQL условий
func statusStrings(statuses []domain.BookingStatus) []string {
	result := make([]string, len(statuses))
	for i, s := range statuses {
		result[i] = string(s)
	}
	return result
}
