package domain

import (
	"time"

	"github.com/google/uuid"
)

// MeetingSettings per-manager booking policy. One row per manager,
// defaults apply when the row is absent.
type MeetingSettings struct {
	ManagerID           uuid.UUID
	MeetingDuration     int // minutes
	BufferBefore        int // minutes
	BufferAfter         int // minutes
	Timezone            string
	MinBookingNoticeHrs int
	MaxBookingDays      int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DefaultMeetingSettings возвращает настройки по умолчанию для менеджера
func DefaultMeetingSettings(managerID uuid.UUID) *MeetingSettings {
	return &MeetingSettings{
		ManagerID:           managerID,
		MeetingDuration:     DefaultMeetingDurationMinutes,
		BufferBefore:        DefaultBufferBeforeMinutes,
		BufferAfter:         DefaultBufferAfterMinutes,
		Timezone:            DefaultTimezone,
		MinBookingNoticeHrs: DefaultMinBookingNoticeHours,
		MaxBookingDays:      DefaultMaxBookingDays,
	}
}

// Location резолвит таймзону менеджера.
// При некорректном значении в БД возвращает таймзону по умолчанию.
func (s *MeetingSettings) Location() *time.Location {
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		loc, _ = time.LoadLocation(DefaultTimezone)
	}
	return loc
}

// HasBookingHorizon returns true if there is a limit on how far in
// advance meetings can be booked
func (s *MeetingSettings) HasBookingHorizon() bool {
	return s.MaxBookingDays > 0
}
