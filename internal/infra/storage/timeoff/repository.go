package timeoff

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/matjarhub/booking-service/internal/domain"
	"github.com/matjarhub/booking-service/pkg/dbmetrics"
	"github.com/matjarhub/booking-service/pkg/psqlbuilder"
)

const timeOffColumns = "id, manager_id, start_at, end_at, reason, created_at"

// Repository репозиторий блокировок времени (time off)
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория блокировок
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListOverlapping получает блокировки менеджера, пересекающиеся
// с интервалом [from, to]. Границы включительно: блокировка,
// заканчивающаяся ровно на границе дня, тоже учитывается.
func (r *Repository) ListOverlapping(ctx context.Context, managerID uuid.UUID, from, to time.Time) ([]*domain.TimeOff, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(timeOffColumns).
		From("time_off").
		Where(squirrel.Eq{"manager_id": managerID}).
		Where(squirrel.LtOrEq{"start_at": to}).
		Where(squirrel.GtOrEq{"end_at": from}).
		OrderBy("start_at ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListOverlapping - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListOverlapping - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanTimeOff(rows)
}

// ListByManager получает все блокировки менеджера для экрана настроек
func (r *Repository) ListByManager(ctx context.Context, managerID uuid.UUID) ([]*domain.TimeOff, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(timeOffColumns).
		From("time_off").
		Where(squirrel.Eq{"manager_id": managerID}).
		OrderBy("start_at DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByManager - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByManager - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanTimeOff(rows)
}

// Create создает блокировку времени
func (r *Repository) Create(ctx context.Context, t *domain.TimeOff) (*domain.TimeOff, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("time_off").
		Columns("manager_id", "start_at", "end_at", "reason").
		Values(t.ManagerID, t.StartAt, t.EndAt, t.Reason).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&t.ID, &createdAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	t.CreatedAt = createdAt.Time

	return t, nil
}

// Delete удаляет блокировку менеджера
func (r *Repository) Delete(ctx context.Context, managerID, id uuid.UUID) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("time_off").
		Where(squirrel.Eq{"id": id, "manager_id": managerID}).
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
		return ErrTimeOffNotFound
	}

	return nil
}

func scanTimeOff(rows *sql.Rows) ([]*domain.TimeOff, error) {
	blocks := make([]*domain.TimeOff, 0)

	for rows.Next() {
		var t domain.TimeOff
		var createdAt sql.NullTime

		err := rows.Scan(
			&t.ID,
			&t.ManagerID,
			&t.StartAt,
			&t.EndAt,
			&t.Reason,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanTimeOff - scan row: %v", ErrScanRow, err)
		}

		t.CreatedAt = createdAt.Time

		blocks = append(blocks, &t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanTimeOff - rows error: %v", ErrScanRow, err)
	}

	return blocks, nil
}
