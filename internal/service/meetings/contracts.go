package meetings

import (
	"context"

	"github.com/google/uuid"

	"github.com/matjarhub/booking-service/internal/domain"
)

// MeetingRepository интерфейс репозитория встреч
type MeetingRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Meeting, error)
	GetByManagerWithFilter(ctx context.Context, filter domain.ManagerMeetingsFilter) ([]*domain.Meeting, error)
	Cancel(ctx context.Context, id uuid.UUID, reason string) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
