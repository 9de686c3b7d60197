package get_manager_meetings

import (
	"context"

	"github.com/matjarhub/booking-service/internal/service/meetings/models"
)

type MeetingsService interface {
	GetManagerMeetings(ctx context.Context, req *models.GetManagerMeetingsRequest) (*models.MeetingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
