package cancel_meeting

import (
	"context"

	"github.com/google/uuid"

	"github.com/matjarhub/booking-service/internal/service/meetings/models"
)

type MeetingsService interface {
	Cancel(ctx context.Context, meetingID uuid.UUID, req *models.CancelMeetingRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
