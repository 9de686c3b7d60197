package create_booking

import (
	"fmt"
	"strings"
	"time"

	"github.com/matjarhub/booking-service/pkg/types"
)

// validateRequest проверяет обязательные поля запроса.
// Возвращает ErrInvalidInput с перечислением отсутствующих полей.
// Синтаксическая проверка email принадлежит границе HTTP, здесь
// требуется только наличие.
func validateRequest(req *Request) error {
	missing := make([]string, 0)

	if req.BookingSlug == "" {
		missing = append(missing, "slug")
	}
	if req.Date.IsZero() {
		missing = append(missing, "date")
	}
	if req.StartTime.IsZero() {
		missing = append(missing, "time")
	}
	if strings.TrimSpace(req.GuestName) == "" {
		missing = append(missing, "guest_name")
	}
	if strings.TrimSpace(req.GuestEmail) == "" {
		missing = append(missing, "guest_email")
	}

	if len(missing) > 0 {
		return &ValidationError{MissingFields: missing}
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	return nil
}

// resolveStartAt строит момент начала встречи из даты и времени слота
// в таймзоне менеджера
func resolveStartAt(date time.Time, startTime types.TimeString, loc *time.Location) (time.Time, error) {
	minutes, err := startTime.Minutes()
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid startTime: %v", ErrInvalidInput, err)
	}

	y, m, d := date.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc).Add(time.Duration(minutes) * time.Minute), nil
}

// validateBookingNotice проверяет минимальное время до брони
func validateBookingNotice(startAt time.Time, now time.Time, minNoticeHours int) error {
	minAllowed := now.Add(time.Duration(minNoticeHours) * time.Hour)
	if startAt.Before(minAllowed) {
		return fmt.Errorf("%w: must book at least %d hours in advance", ErrTooLateToBook, minNoticeHours)
	}
	return nil
}
