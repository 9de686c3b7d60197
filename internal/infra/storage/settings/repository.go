package settings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/matjarhub/booking-service/internal/domain"
	"github.com/matjarhub/booking-service/pkg/dbmetrics"
	"github.com/matjarhub/booking-service/pkg/psqlbuilder"
)

// Repository репозиторий настроек встреч (одна строка на менеджера)
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория настроек
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByManager получает настройки встреч менеджера
func (r *Repository) GetByManager(ctx context.Context, managerID uuid.UUID) (*domain.MeetingSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"manager_id",
		"meeting_duration",
		"buffer_before",
		"buffer_after",
		"timezone",
		"min_booking_notice",
		"max_booking_days",
		"created_at",
		"updated_at",
	).
		From("meeting_settings").
		Where(squirrel.Eq{"manager_id": managerID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByManager - build select query: %v", ErrBuildQuery, err)
	}

	var s domain.MeetingSettings
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.ManagerID,
		&s.MeetingDuration,
		&s.BufferBefore,
		&s.BufferAfter,
		&s.Timezone,
		&s.MinBookingNoticeHrs,
		&s.MaxBookingDays,
		&createdAt,
		&updatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSettingsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByManager - scan settings: %v", ErrScanRow, err)
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return &s, nil
}

// Upsert создает или обновляет строку настроек менеджера
func (r *Repository) Upsert(ctx context.Context, s *domain.MeetingSettings) (*domain.MeetingSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("meeting_settings").
		Columns(
			"manager_id",
			"meeting_duration",
			"buffer_before",
			"buffer_after",
			"timezone",
			"min_booking_notice",
			"max_booking_days",
		).
		Values(
			s.ManagerID,
			s.MeetingDuration,
			s.BufferBefore,
			s.BufferAfter,
			s.Timezone,
			s.MinBookingNoticeHrs,
			s.MaxBookingDays,
		).
		Suffix(`ON CONFLICT (manager_id) DO UPDATE SET
			meeting_duration = EXCLUDED.meeting_duration,
			buffer_before = EXCLUDED.buffer_before,
			buffer_after = EXCLUDED.buffer_after,
			timezone = EXCLUDED.timezone,
			min_booking_notice = EXCLUDED.min_booking_notice,
			max_booking_days = EXCLUDED.max_booking_days,
			updated_at = NOW()
		RETURNING created_at, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build upsert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute upsert: %v", ErrExecQuery, err)
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return s, nil
}
