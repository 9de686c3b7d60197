package delete_time_off

import (
	"context"

	"github.com/google/uuid"
)

type ScheduleService interface {
	DeleteTimeOff(ctx context.Context, managerID, id uuid.UUID) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
