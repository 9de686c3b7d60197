package domain

import (
	"time"

	"github.com/google/uuid"
)

// MeetingStatus represents the status of a meeting
type MeetingStatus string

const (
	StatusBooked    MeetingStatus = "booked"
	StatusCancelled MeetingStatus = "cancelled"
)

// MeetingSource источник создания встречи
const (
	SourceBookingPage = "booking_page"
	SourceDashboard   = "dashboard"
)

// Meeting represents a confirmed reservation of a slot by a guest
type Meeting struct {
	ID        uuid.UUID
	ManagerID uuid.UUID
	StoreID   *uuid.UUID
	StartAt   time.Time
	EndAt     time.Time

	GuestName  string
	GuestEmail string
	GuestPhone *string

	Status MeetingStatus
	Source string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the meeting still occupies its slot
func (m *Meeting) IsActive() bool {
	return m.Status == StatusBooked
}

// CanBeCancelled returns true if the meeting can be cancelled
func (m *Meeting) CanBeCancelled() bool {
	return m.Status == StatusBooked
}

// Overlaps проверяет реальное пересечение с интервалом [start, end).
// Граничащие интервалы пересечением не считаются.
func (m *Meeting) Overlaps(start, end time.Time) bool {
	return m.StartAt.Before(end) && m.EndAt.After(start)
}

// ManagerMeetingsFilter фильтр для выборки встреч менеджера
type ManagerMeetingsFilter struct {
	ManagerID uuid.UUID      // Обязательный параметр
	StartDate *time.Time     // Начало периода (опционально)
	EndDate   *time.Time     // Конец периода (опционально)
	Status    *MeetingStatus // Фильтр по статусу (опционально)
}
