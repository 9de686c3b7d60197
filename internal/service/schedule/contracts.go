package schedule

import (
	"context"

	"github.com/google/uuid"

	"github.com/matjarhub/booking-service/internal/domain"
)

// AvailabilityRepository интерфейс репозитория правил доступности
type AvailabilityRepository interface {
	ListByManager(ctx context.Context, managerID uuid.UUID) ([]*domain.AvailabilityRule, error)
	ReplaceForManager(ctx context.Context, managerID uuid.UUID, rules []*domain.AvailabilityRule) error
}

// TimeOffRepository интерфейс репозитория блокировок времени
type TimeOffRepository interface {
	ListByManager(ctx context.Context, managerID uuid.UUID) ([]*domain.TimeOff, error)
	Create(ctx context.Context, t *domain.TimeOff) (*domain.TimeOff, error)
	Delete(ctx context.Context, managerID, id uuid.UUID) error
}

// SettingsRepository интерфейс репозитория настроек встреч
type SettingsRepository interface {
	GetByManager(ctx context.Context, managerID uuid.UUID) (*domain.MeetingSettings, error)
	Upsert(ctx context.Context, s *domain.MeetingSettings) (*domain.MeetingSettings, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
