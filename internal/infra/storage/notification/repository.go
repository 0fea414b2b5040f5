package notification

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/PMS-InspectionService/internal/domain"
	"github.com/m04kA/PMS-InspectionService/pkg/dbmetrics"
	"github.com/m04kA/PMS-InspectionService/pkg/psqlbuilder"
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий для записей об уведомлениях и токенов бронирования
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория уведомлений
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetRecord получает запись об уведомлении по паре (schedule, property)
func (r *Repository) GetRecord(ctx context.Context, scheduleID, propertyID int64) (*domain.NotificationRecord, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"schedule_id",
		"property_id",
		"recipient_email",
		"status",
		"sent_at",
	).
		From("notification_records").
		Where(squirrel.Eq{"schedule_id": scheduleID, "property_id": propertyID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetRecord - build select query: %v", ErrBuildQuery, err)
	}

	var record domain.NotificationRecord
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&record.ID,
		&record.ScheduleID,
		&record.PropertyID,
		&record.RecipientEmail,
		&record.Status,
		&record.SentAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetRecord - scan record: %v", ErrScanRow, err)
	}

	return &record, nil
}

// UpsertRecord создает запись об уведомлении или обновляет существующую.
// Уникальность пары (schedule_id, property_id) гарантирует, что запись одна.
func (r *Repository) UpsertRecord(ctx context.Context, record *domain.NotificationRecord) (*domain.NotificationRecord, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("notification_records").
		Columns(
			"schedule_id",
			"property_id",
			"recipient_email",
			"status",
		).
		Values(
			record.ScheduleID,
			record.PropertyID,
			record.RecipientEmail,
			record.Status,
		).
		Suffix(`ON CONFLICT (schedule_id, property_id) DO UPDATE SET
			recipient_email = EXCLUDED.recipient_email,
			status = EXCLUDED.status,
			sent_at = NOW()
			RETURNING id, sent_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: UpsertRecord - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&record.ID, &record.SentAt)
	if err != nil {
		return nil, fmt.Errorf("%w: UpsertRecord - execute insert: %v", ErrExecQuery, err)
	}

	return record, nil
}

// ListRecordsBySchedule получает все записи об уведомлениях для расписания
func (r *Repository) ListRecordsBySchedule(ctx context.Context, scheduleID int64) ([]*domain.NotificationRecord, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"schedule_id",
		"property_id",
		"recipient_email",
		"status",
		"sent_at",
	).
		From("notification_records").
		Where(squirrel.Eq{"schedule_id": scheduleID}).
		OrderBy("sent_at DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListRecordsBySchedule - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListRecordsBySchedule - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	records := make([]*domain.NotificationRecord, 0)

	for rows.Next() {
		var record domain.NotificationRecord
		err := rows.Scan(
			&record.ID,
			&record.ScheduleID,
			&record.PropertyID,
			&record.RecipientEmail,
			&record.Status,
			&record.SentAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListRecordsBySchedule - scan row: %v", ErrScanRow, err)
		}
		records = append(records, &record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListRecordsBySchedule - rows error: %v", ErrScanRow, err)
	}

	return records, nil
}

// CreateToken сохраняет новый токен бронирования
func (r *Repository) CreateToken(ctx context.Context, token *domain.BookingToken) (*domain.BookingToken, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("booking_tokens").
		Columns(
			"token",
			"schedule_id",
			"property_id",
			"recipient_email",
		).
		Values(
			token.Token,
			token.ScheduleID,
			token.PropertyID,
			token.RecipientEmail,
		).
		Suffix("RETURNING created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateToken - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&token.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: CreateToken - execute insert: %v", ErrExecQuery, err)
	}

	return token, nil
}

// GetToken получает токен по его значению
func (r *Repository) GetToken(ctx context.Context, token string) (*domain.BookingToken, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"token",
		"schedule_id",
		"property_id",
		"recipient_email",
		"created_at",
	).
		From("booking_tokens").
		Where(squirrel.Eq{"token": token}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetToken - build select query: %v", ErrBuildQuery, err)
	}

	var result domain.BookingToken
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&result.Token,
		&result.ScheduleID,
		&result.PropertyID,
		&result.RecipientEmail,
		&result.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrTokenNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetToken - scan token: %v", ErrScanRow, err)
	}

	return &result, nil
}

// GetTokenByScheduleAndProperty получает токен для пары (schedule, property).
// Используется, чтобы не перевыпускать токен при повторной отправке.
func (r *Repository) GetTokenByScheduleAndProperty(ctx context.Context, scheduleID, propertyID int64) (*domain.BookingToken, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"token",
		"schedule_id",
		"property_id",
		"recipient_email",
		"created_at",
	).
		From("booking_tokens").
		Where(squirrel.Eq{"schedule_id": scheduleID, "property_id": propertyID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetTokenByScheduleAndProperty - build select query: %v", ErrBuildQuery, err)
	}

	var result domain.BookingToken
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&result.Token,
		&result.ScheduleID,
		&result.PropertyID,
		&result.RecipientEmail,
		&result.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrTokenNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetTokenByScheduleAndProperty - scan token: %v", ErrScanRow, err)
	}

	return &result, nil
}
