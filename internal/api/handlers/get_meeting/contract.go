package get_meeting

import (
	"context"

	"github.com/google/uuid"

	"github.com/matjarhub/booking-service/internal/service/meetings/models"
)

type MeetingsService interface {
	GetByID(ctx context.Context, id uuid.UUID, managerID uuid.UUID) (*models.MeetingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
