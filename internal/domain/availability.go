package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/matjarhub/booking-service/pkg/types"
)

// AvailabilityRule recurring weekly open-hours interval for a manager.
// Several rules on the same weekday union as independent open intervals.
type AvailabilityRule struct {
	ID          uuid.UUID
	ManagerID   uuid.UUID
	Weekday     time.Weekday // 0=Sunday .. 6=Saturday
	StartTime   types.TimeString
	EndTime     types.TimeString
	IsAvailable bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsValidInterval проверяет, что интервал правила не пустой
func (r *AvailabilityRule) IsValidInterval() bool {
	return r.StartTime.IsBefore(r.EndTime)
}
