package notifier

import (
	"time"

	"github.com/google/uuid"
)

// BookingConfirmation payload уведомления о созданной встрече
type BookingConfirmation struct {
	MeetingID   uuid.UUID `json:"meeting_id"`
	ManagerID   uuid.UUID `json:"manager_id"`
	ManagerName string    `json:"manager_name"`
	GuestName   string    `json:"guest_name"`
	GuestEmail  string    `json:"guest_email"`
	StartAt     time.Time `json:"start_at"`
	EndAt       time.Time `json:"end_at"`
}
