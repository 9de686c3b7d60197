package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/matjarhub/booking-service/internal/domain"
	"github.com/matjarhub/booking-service/pkg/dbmetrics"
	"github.com/matjarhub/booking-service/pkg/psqlbuilder"
)

// Repository read-only репозиторий магазинов.
// Мутации магазинов принадлежат экранам управления, не этому сервису.
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория магазинов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListByManager получает магазины менеджера для сопоставления по URL
func (r *Repository) ListByManager(ctx context.Context, managerID uuid.UUID) ([]*domain.Store, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "manager_id", "name", "url", "created_at").
		From("stores").
		Where(squirrel.Eq{"manager_id": managerID}).
		OrderBy("name ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByManager - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByManager - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	stores := make([]*domain.Store, 0)

	for rows.Next() {
		var s domain.Store
		var createdAt sql.NullTime

		if err := rows.Scan(&s.ID, &s.ManagerID, &s.Name, &s.URL, &createdAt); err != nil {
			return nil, fmt.Errorf("%w: ListByManager - scan row: %v", ErrScanRow, err)
		}

		s.CreatedAt = createdAt.Time

		stores = append(stores, &s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByManager - rows error: %v", ErrScanRow, err)
	}

	return stores, nil
}
