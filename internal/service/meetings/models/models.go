package models

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/matjarhub/booking-service/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе встречи
	ErrInvalidStatus = errors.New("invalid meeting status")
)

// CancelMeetingRequest запрос на отмену встречи
type CancelMeetingRequest struct {
	ManagerID uuid.UUID `json:"managerId"`
	Reason    string    `json:"reason"`
}

// GetManagerMeetingsRequest запрос на получение встреч менеджера
type GetManagerMeetingsRequest struct {
	ManagerID uuid.UUID  `json:"managerId"`
	StartDate *time.Time `json:"startDate,omitempty"` // Начало периода (опционально)
	EndDate   *time.Time `json:"endDate,omitempty"`   // Конец периода (опционально)
	Status    *string    `json:"status,omitempty"`    // Фильтр по статусу (опционально)
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetManagerMeetingsRequest) ToDomainFilter() (domain.ManagerMeetingsFilter, error) {
	filter := domain.ManagerMeetingsFilter{
		ManagerID: r.ManagerID,
		StartDate: r.StartDate,
		EndDate:   r.EndDate,
	}

	if r.Status != nil {
		status, err := ToDomainMeetingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// MeetingResponse ответ с данными встречи
type MeetingResponse struct {
	ID         uuid.UUID  `json:"id"`
	ManagerID  uuid.UUID  `json:"managerId"`
	StoreID    *uuid.UUID `json:"storeId,omitempty"`
	StartAt    time.Time  `json:"startAt"`
	EndAt      time.Time  `json:"endAt"`
	GuestName  string     `json:"guestName"`
	GuestEmail string     `json:"guestEmail"`
	GuestPhone *string    `json:"guestPhone,omitempty"`
	Status     string     `json:"status"`
	Source     string     `json:"source"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// MeetingListResponse ответ со списком встреч
type MeetingListResponse struct {
	Meetings []MeetingResponse `json:"meetings"`
}

// FromDomainMeeting конвертирует domain модель в DTO
func FromDomainMeeting(m *domain.Meeting) *MeetingResponse {
	if m == nil {
		return nil
	}

	resp := &MeetingResponse{
		ID:                 m.ID,
		ManagerID:          m.ManagerID,
		StoreID:            m.StoreID,
		StartAt:            m.StartAt,
		EndAt:              m.EndAt,
		GuestName:          m.GuestName,
		GuestEmail:         m.GuestEmail,
		GuestPhone:         m.GuestPhone,
		Status:             string(m.Status),
		Source:             m.Source,
		CancellationReason: m.CancellationReason,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}

	if m.CancelledAt != nil {
		cancelledStr := m.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainMeetingList конвертирует список domain моделей в DTO
func FromDomainMeetingList(meetings []*domain.Meeting) *MeetingListResponse {
	resp := &MeetingListResponse{
		Meetings: make([]MeetingResponse, 0, len(meetings)),
	}

	for _, m := range meetings {
		if converted := FromDomainMeeting(m); converted != nil {
			resp.Meetings = append(resp.Meetings, *converted)
		}
	}

	return resp
}

// ToDomainMeetingStatus конвертирует строку в domain.MeetingStatus с валидацией
func ToDomainMeetingStatus(status string) (domain.MeetingStatus, error) {
	s := domain.MeetingStatus(status)

	switch s {
	case domain.StatusBooked, domain.StatusCancelled:
		return s, nil
	default:
		return "", ErrInvalidStatus
	}
}
