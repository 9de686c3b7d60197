package get_available_slots

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/matjarhub/booking-service/internal/domain"
	"github.com/matjarhub/booking-service/internal/integrations/profileservice"
)

// MeetingRepository интерфейс репозитория встреч
type MeetingRepository interface {
	// ListBookedBetween получает активные встречи менеджера, начинающиеся в [from, to)
	ListBookedBetween(ctx context.Context, managerID uuid.UUID, from, to time.Time) ([]*domain.Meeting, error)
}

// AvailabilityRepository интерфейс репозитория правил доступности
type AvailabilityRepository interface {
	ListOpenForWeekday(ctx context.Context, managerID uuid.UUID, weekday time.Weekday) ([]*domain.AvailabilityRule, error)
}

// TimeOffRepository интерфейс репозитория блокировок времени
type TimeOffRepository interface {
	ListOverlapping(ctx context.Context, managerID uuid.UUID, from, to time.Time) ([]*domain.TimeOff, error)
}

// SettingsRepository интерфейс репозитория настроек встреч
type SettingsRepository interface {
	GetByManager(ctx context.Context, managerID uuid.UUID) (*domain.MeetingSettings, error)
}

// ProfileServiceClient интерфейс клиента сервиса профилей
type ProfileServiceClient interface {
	GetManagerBySlug(ctx context.Context, slug string) (*profileservice.Manager, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
