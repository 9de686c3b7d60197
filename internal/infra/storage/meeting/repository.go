package meeting

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/matjarhub/booking-service/internal/domain"
	"github.com/matjarhub/booking-service/pkg/dbmetrics"
	"github.com/matjarhub/booking-service/pkg/psqlbuilder"
)

// pgExclusionViolation код ошибки Postgres для exclusion constraint
const pgExclusionViolation = "23P01"

const meetingColumns = `id, manager_id, store_id, start_at, end_at, guest_name, guest_email, guest_phone,
	status, source, cancellation_reason, cancelled_at, created_at, updated_at`

// Repository репозиторий для работы со встречами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория встреч
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// CreateIfSlotFree атомарно создает встречу, если интервал
// [StartAt, EndAt) не пересекается ни с одной активной встречей
// менеджера. Проверка и вставка выполняются одним запросом
// (INSERT ... SELECT ... WHERE NOT EXISTS), поэтому параллельные
// попытки занять один слот не могут пройти обе. Exclusion constraint
// на таблице страхует от гонки на уровне хранилища: нарушение
// маппится в тот же ErrSlotTaken.
func (r *Repository) CreateIfSlotFree(ctx context.Context, m *domain.Meeting) (*domain.Meeting, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	sourceSelect := squirrel.Select().
		Column(squirrel.Expr("?", m.ManagerID)).
		Column(squirrel.Expr("?", m.StoreID)).
		Column(squirrel.Expr("?", m.StartAt)).
		Column(squirrel.Expr("?", m.EndAt)).
		Column(squirrel.Expr("?", m.GuestName)).
		Column(squirrel.Expr("?", m.GuestEmail)).
		Column(squirrel.Expr("?", m.GuestPhone)).
		Column(squirrel.Expr("?", m.Status)).
		Column(squirrel.Expr("?", m.Source)).
		Where(squirrel.Expr(
			// Пересечение полуоткрытых интервалов [start_at, end_at)
			`NOT EXISTS (
				SELECT 1 FROM meetings
				WHERE manager_id = ? AND status = ? AND start_at < ? AND end_at > ?
			)`,
			m.ManagerID, domain.StatusBooked, m.EndAt, m.StartAt,
		))

	query, args, err := psqlbuilder.Insert("meetings").
		Columns(
			"manager_id",
			"store_id",
			"start_at",
			"end_at",
			"guest_name",
			"guest_email",
			"guest_phone",
			"status",
			"source",
		).
		Select(sourceSelect).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateIfSlotFree - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&m.ID,
		&createdAt,
		&updatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		// Условная вставка не прошла: интервал уже занят
		return nil, ErrSlotTaken
	}
	if isExclusionViolation(err) {
		// Проигравший гонку коммит упирается в exclusion constraint
		return nil, ErrSlotTaken
	}
	if err != nil {
		return nil, fmt.Errorf("%w: CreateIfSlotFree - execute insert: %v", ErrExecQuery, err)
	}

	m.CreatedAt = createdAt.Time
	m.UpdatedAt = updatedAt.Time

	return m, nil
}

// GetByID получает встречу по ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Meeting, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(meetingColumns).
		From("meetings").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	m, err := scanMeeting(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMeetingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan meeting: %v", ErrScanRow, err)
	}

	return m, nil
}

// ListBookedBetween получает активные встречи менеджера, начинающиеся
// в интервале [from, to). Используется генератором слотов.
func (r *Repository) ListBookedBetween(ctx context.Context, managerID uuid.UUID, from, to time.Time) ([]*domain.Meeting, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(meetingColumns).
		From("meetings").
		Where(squirrel.Eq{"manager_id": managerID, "status": domain.StatusBooked}).
		Where(squirrel.GtOrEq{"start_at": from}).
		Where(squirrel.Lt{"start_at": to}).
		OrderBy("start_at ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListBookedBetween - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListBookedBetween - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanMeetings(rows)
}

// GetByManagerWithFilter получает встречи менеджера с фильтрацией
// по периоду и статусу
func (r *Repository) GetByManagerWithFilter(ctx context.Context, filter domain.ManagerMeetingsFilter) ([]*domain.Meeting, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(meetingColumns).
		From("meetings").
		Where(squirrel.Eq{"manager_id": filter.ManagerID})

	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"start_at": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.Lt{"start_at": *filter.EndDate})
	}
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}

	selectBuilder = selectBuilder.OrderBy("start_at DESC")

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByManagerWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByManagerWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanMeetings(rows)
}

// Cancel помечает встречу отменённой с указанием причины.
// Физическое удаление не используется, история сохраняется.
func (r *Repository) Cancel(ctx context.Context, id uuid.UUID, reason string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("meetings").
		Set("status", domain.StatusCancelled).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Cancel - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrMeetingNotFound
	}

	return nil
}

func isExclusionViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == pgExclusionViolation
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanMeeting(row rowScanner) (*domain.Meeting, error) {
	var m domain.Meeting
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&m.ID,
		&m.ManagerID,
		&m.StoreID,
		&m.StartAt,
		&m.EndAt,
		&m.GuestName,
		&m.GuestEmail,
		&m.GuestPhone,
		&m.Status,
		&m.Source,
		&m.CancellationReason,
		&m.CancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	m.CreatedAt = createdAt.Time
	m.UpdatedAt = updatedAt.Time

	return &m, nil
}

func scanMeetings(rows *sql.Rows) ([]*domain.Meeting, error) {
	meetings := make([]*domain.Meeting, 0)

	for rows.Next() {
		m, err := scanMeeting(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanMeetings - scan row: %v", ErrScanRow, err)
		}
		meetings = append(meetings, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanMeetings - rows error: %v", ErrScanRow, err)
	}

	return meetings, nil
}
