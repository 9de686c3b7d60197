package create_booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/matjarhub/booking-service/internal/domain"
	"github.com/matjarhub/booking-service/internal/integrations/notifier"
	"github.com/matjarhub/booking-service/internal/integrations/profileservice"
)

// MeetingRepository интерфейс репозитория встреч
type MeetingRepository interface {
	// CreateIfSlotFree атомарно создает встречу, отклоняя пересечения
	CreateIfSlotFree(ctx context.Context, m *domain.Meeting) (*domain.Meeting, error)
}

// SettingsRepository интерфейс репозитория настроек встреч
type SettingsRepository interface {
	GetByManager(ctx context.Context, managerID uuid.UUID) (*domain.MeetingSettings, error)
}

// StoreRepository интерфейс репозитория магазинов
type StoreRepository interface {
	ListByManager(ctx context.Context, managerID uuid.UUID) ([]*domain.Store, error)
}

// StoreMatcher интерфейс сопоставления URL магазина
type StoreMatcher interface {
	Match(stores []*domain.Store, rawURL string) *uuid.UUID
}

// ProfileServiceClient интерфейс клиента сервиса профилей
type ProfileServiceClient interface {
	GetManagerBySlug(ctx context.Context, slug string) (*profileservice.Manager, error)
}

// NotifierClient интерфейс диспетчера уведомлений (fire-and-forget)
type NotifierClient interface {
	DispatchBookingConfirmed(confirmation *notifier.BookingConfirmation)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
