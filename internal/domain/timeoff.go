package domain

import (
	"time"

	"github.com/google/uuid"
)

// TimeOff ad hoc blackout interval overriding availability rules.
// No slot may be offered inside [StartAt, EndAt).
type TimeOff struct {
	ID        uuid.UUID
	ManagerID uuid.UUID
	StartAt   time.Time
	EndAt     time.Time
	Reason    *string

	CreatedAt time.Time
}

// Covers проверяет пересечение блокировки с интервалом [start, end)
func (t *TimeOff) Covers(start, end time.Time) bool {
	return start.Before(t.EndAt) && end.After(t.StartAt)
}
