package availability

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

const ruleColumns = "id, manager_id, day_of_week, start_time, end_time, is_available, created_at, updated_at"

// Repository репозиторий правил доступности.
// Правила мутируются экранами настроек, генератор слотов только читает.
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория правил доступности
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListOpenForWeekday получает активные (is_available = true) правила
// менеджера на день недели, по возрастанию времени начала
func (r *Repository) ListOpenForWeekday(ctx context.Context, managerID uuid.UUID, weekday time.Weekday) ([]*domain.AvailabilityRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(ruleColumns).
		From("availability_rules").
		Where(squirrel.Eq{
			"manager_id":   managerID,
			"day_of_week":  int(weekday),
			"is_available": true,
		}).
		OrderBy("start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListOpenForWeekday - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListOpenForWeekday - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanRules(rows)
}

// ListByManager получает все правила менеджера для экрана настроек
func (r *Repository) ListByManager(ctx context.Context, managerID uuid.UUID) ([]*domain.AvailabilityRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(ruleColumns).
		From("availability_rules").
		Where(squirrel.Eq{"manager_id": managerID}).
		OrderBy("day_of_week ASC, start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByManager - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByManager - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanRules(rows)
}

// ReplaceForManager заменяет весь недельный набор правил менеджера.
// Вызывается внутри транзакции менеджера расписания.
func (r *Repository) ReplaceForManager(ctx context.Context, managerID uuid.UUID, rules []*domain.AvailabilityRule) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	deleteQuery, deleteArgs, err := psqlbuilder.Delete("availability_rules").
		Where(squirrel.Eq{"manager_id": managerID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceForManager - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return fmt.Errorf("%w: ReplaceForManager - execute delete: %v", ErrExecQuery, err)
	}

	if len(rules) == 0 {
		return nil
	}

	insertBuilder := psqlbuilder.Insert("availability_rules").
		Columns("manager_id", "day_of_week", "start_time", "end_time", "is_available")

	for _, rule := range rules {
		insertBuilder = insertBuilder.Values(
			managerID,
			int(rule.Weekday),
			rule.StartTime,
			rule.EndTime,
			rule.IsAvailable,
		)
	}

	insertQuery, insertArgs, err := insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceForManager - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
		return fmt.Errorf("%w: ReplaceForManager - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

func scanRules(rows *sql.Rows) ([]*domain.AvailabilityRule, error) {
	rules := make([]*domain.AvailabilityRule, 0)

	for rows.Next() {
		var rule domain.AvailabilityRule
		var weekday int
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&rule.ID,
			&rule.ManagerID,
			&weekday,
			&rule.StartTime,
			&rule.EndTime,
			&rule.IsAvailable,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanRules - scan row: %v", ErrScanRow, err)
		}

		rule.Weekday = time.Weekday(weekday)
		rule.CreatedAt = createdAt.Time
		rule.UpdatedAt = updatedAt.Time

		rules = append(rules, &rule)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanRules - rows error: %v", ErrScanRow, err)
	}

	return rules, nil
}
