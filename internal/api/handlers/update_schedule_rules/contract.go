package update_schedule_rules

import (
	"context"

	"github.com/matjarhub/booking-service/internal/service/schedule/models"
)

type ScheduleService interface {
	ReplaceRules(ctx context.Context, req *models.ReplaceRulesRequest) ([]models.AvailabilityRuleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
