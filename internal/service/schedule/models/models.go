package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/matjarhub/booking-service/internal/domain"
	"github.com/matjarhub/booking-service/pkg/types"
)

var (
	// ErrInvalidWeekday возвращается при некорректном дне недели
	ErrInvalidWeekday = errors.New("weekday must be between 0 (Sunday) and 6 (Saturday)")

	// ErrInvalidTimeInterval возвращается при пустом или перевёрнутом интервале
	ErrInvalidTimeInterval = errors.New("start time must be before end time")

	// ErrInvalidTimeOffInterval возвращается при некорректном интервале блокировки
	ErrInvalidTimeOffInterval = errors.New("time off start must be before end")
)

// AvailabilityRuleInput правило доступности во входящем запросе
type AvailabilityRuleInput struct {
	Weekday     int    `json:"weekday"` // 0=Sunday .. 6=Saturday
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	IsAvailable bool   `json:"isAvailable"`
}

// ToDomain конвертирует и валидирует правило доступности
func (r *AvailabilityRuleInput) ToDomain(managerID uuid.UUID) (*domain.AvailabilityRule, error) {
	if r.Weekday < 0 || r.Weekday > 6 {
		return nil, ErrInvalidWeekday
	}

	start, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, fmt.Errorf("invalid start time %q: %w", r.StartTime, err)
	}

	end, err := types.NewTimeStringFromString(r.EndTime)
	if err != nil {
		return nil, fmt.Errorf("invalid end time %q: %w", r.EndTime, err)
	}

	rule := &domain.AvailabilityRule{
		ManagerID:   managerID,
		Weekday:     time.Weekday(r.Weekday),
		StartTime:   start,
		EndTime:     end,
		IsAvailable: r.IsAvailable,
	}

	if !rule.IsValidInterval() {
		return nil, ErrInvalidTimeInterval
	}

	return rule, nil
}

// ReplaceRulesRequest запрос на полную замену правил доступности
type ReplaceRulesRequest struct {
	ManagerID uuid.UUID               `json:"-"`
	Rules     []AvailabilityRuleInput `json:"rules"`
}

// AvailabilityRuleResponse правило доступности в ответе API
type AvailabilityRuleResponse struct {
	ID          uuid.UUID `json:"id"`
	Weekday     int       `json:"weekday"`
	StartTime   string    `json:"startTime"`
	EndTime     string    `json:"endTime"`
	IsAvailable bool      `json:"isAvailable"`
}

// UpdateSettingsRequest запрос на обновление настроек встреч
type UpdateSettingsRequest struct {
	ManagerID           uuid.UUID `json:"-"`
	MeetingDuration     int       `json:"meetingDuration"` // minutes
	BufferBefore        int       `json:"bufferBefore"`    // minutes
	BufferAfter         int       `json:"bufferAfter"`     // minutes
	Timezone            string    `json:"timezone"`
	MinBookingNoticeHrs int       `json:"minBookingNoticeHrs"`
	MaxBookingDays      int       `json:"maxBookingDays"`
}

// Validate проверяет бизнес-границы настроек
func (r *UpdateSettingsRequest) Validate() error {
	if r.MeetingDuration < domain.MinMeetingDurationMinutes || r.MeetingDuration > domain.MaxMeetingDurationMinutes {
		return fmt.Errorf("meeting duration must be between %d and %d minutes",
			domain.MinMeetingDurationMinutes, domain.MaxMeetingDurationMinutes)
	}

	if r.BufferBefore < domain.MinBufferMinutes || r.BufferBefore > domain.MaxBufferMinutes {
		return fmt.Errorf("buffer before must be between %d and %d minutes",
			domain.MinBufferMinutes, domain.MaxBufferMinutes)
	}

	if r.BufferAfter < domain.MinBufferMinutes || r.BufferAfter > domain.MaxBufferMinutes {
		return fmt.Errorf("buffer after must be between %d and %d minutes",
			domain.MinBufferMinutes, domain.MaxBufferMinutes)
	}

	if r.MinBookingNoticeHrs < domain.MinNoticeHours || r.MinBookingNoticeHrs > domain.MaxNoticeHours {
		return fmt.Errorf("min booking notice must be between %d and %d hours",
			domain.MinNoticeHours, domain.MaxNoticeHours)
	}

	if r.MaxBookingDays < domain.MinBookingDaysHorizon || r.MaxBookingDays > domain.MaxBookingDaysHorizon {
		return fmt.Errorf("max booking days must be between %d and %d",
			domain.MinBookingDaysHorizon, domain.MaxBookingDaysHorizon)
	}

	if _, err := time.LoadLocation(r.Timezone); err != nil {
		return fmt.Errorf("unknown timezone %q", r.Timezone)
	}

	return nil
}

// ToDomain конвертирует запрос в domain модель
func (r *UpdateSettingsRequest) ToDomain() *domain.MeetingSettings {
	return &domain.MeetingSettings{
		ManagerID:           r.ManagerID,
		MeetingDuration:     r.MeetingDuration,
		BufferBefore:        r.BufferBefore,
		BufferAfter:         r.BufferAfter,
		Timezone:            r.Timezone,
		MinBookingNoticeHrs: r.MinBookingNoticeHrs,
		MaxBookingDays:      r.MaxBookingDays,
	}
}

// SettingsResponse настройки встреч в ответе API
type SettingsResponse struct {
	MeetingDuration     int    `json:"meetingDuration"`
	BufferBefore        int    `json:"bufferBefore"`
	BufferAfter         int    `json:"bufferAfter"`
	Timezone            string `json:"timezone"`
	MinBookingNoticeHrs int    `json:"minBookingNoticeHrs"`
	MaxBookingDays      int    `json:"maxBookingDays"`
}

// CreateTimeOffRequest запрос на создание блокировки времени
type CreateTimeOffRequest struct {
	ManagerID uuid.UUID `json:"-"`
	StartAt   time.Time `json:"startAt"`
	EndAt     time.Time `json:"endAt"`
	Reason    *string   `json:"reason,omitempty"`
}

// ToDomain конвертирует и валидирует блокировку времени
func (r *CreateTimeOffRequest) ToDomain() (*domain.TimeOff, error) {
	if !r.StartAt.Before(r.EndAt) {
		return nil, ErrInvalidTimeOffInterval
	}

	return &domain.TimeOff{
		ManagerID: r.ManagerID,
		StartAt:   r.StartAt,
		EndAt:     r.EndAt,
		Reason:    r.Reason,
	}, nil
}

// TimeOffResponse блокировка времени в ответе API
type TimeOffResponse struct {
	ID        uuid.UUID `json:"id"`
	StartAt   time.Time `json:"startAt"`
	EndAt     time.Time `json:"endAt"`
	Reason    *string   `json:"reason,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// ScheduleResponse полное расписание менеджера: правила, блокировки, настройки
type ScheduleResponse struct {
	Rules    []AvailabilityRuleResponse `json:"rules"`
	TimeOff  []TimeOffResponse          `json:"timeOff"`
	Settings SettingsResponse           `json:"settings"`
}

// FromDomainRule конвертирует domain правило в DTO
func FromDomainRule(r *domain.AvailabilityRule) AvailabilityRuleResponse {
	return AvailabilityRuleResponse{
		ID:          r.ID,
		Weekday:     int(r.Weekday),
		StartTime:   string(r.StartTime),
		EndTime:     string(r.EndTime),
		IsAvailable: r.IsAvailable,
	}
}

// FromDomainRules конвертирует список domain правил в DTO
func FromDomainRules(rules []*domain.AvailabilityRule) []AvailabilityRuleResponse {
	resp := make([]AvailabilityRuleResponse, 0, len(rules))
	for _, r := range rules {
		resp = append(resp, FromDomainRule(r))
	}
	return resp
}

// FromDomainTimeOff конвертирует domain блокировку в DTO
func FromDomainTimeOff(t *domain.TimeOff) TimeOffResponse {
	return TimeOffResponse{
		ID:        t.ID,
		StartAt:   t.StartAt,
		EndAt:     t.EndAt,
		Reason:    t.Reason,
		CreatedAt: t.CreatedAt,
	}
}

// FromDomainTimeOffList конвертирует список domain блокировок в DTO
func FromDomainTimeOffList(items []*domain.TimeOff) []TimeOffResponse {
	resp := make([]TimeOffResponse, 0, len(items))
	for _, t := range items {
		resp = append(resp, FromDomainTimeOff(t))
	}
	return resp
}

// FromDomainSettings конвертирует domain настройки в DTO
func FromDomainSettings(s *domain.MeetingSettings) SettingsResponse {
	return SettingsResponse{
		MeetingDuration:     s.MeetingDuration,
		BufferBefore:        s.BufferBefore,
		BufferAfter:         s.BufferAfter,
		Timezone:            s.Timezone,
		MinBookingNoticeHrs: s.MinBookingNoticeHrs,
		MaxBookingDays:      s.MaxBookingDays,
	}
}
