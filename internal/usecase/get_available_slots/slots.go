package get_available_slots

import (
	"time"

	"github.com/matjarhub/booking-service/internal/domain"
	"github.com/matjarhub/booking-service/pkg/types"
)

// buildDaySlots генерирует слоты дня по правилам доступности менеджера.
// Каждый интервал правила обходится независимо с фиксированным шагом
// meetingDuration; буферы поджимают предлагаемое окно интервала с обеих
// сторон. Дубликаты времени от перекрывающихся правил отбрасываются
// (остаётся первое вхождение). Слот помечается недоступным, если он
// пересекает блокировку времени или активную встречу либо начинается
// раньше now + minBookingNotice.
func buildDaySlots(
	rules []*domain.AvailabilityRule,
	blocks []*domain.TimeOff,
	meetings []*domain.Meeting,
	settings *domain.MeetingSettings,
	dayStart time.Time,
	now time.Time,
) ([]domain.Slot, error) {
	duration := settings.MeetingDuration
	minAllowedStart := now.Add(time.Duration(settings.MinBookingNoticeHrs) * time.Hour)

	slots := make([]domain.Slot, 0)
	seen := make(map[types.TimeString]struct{})

	for _, rule := range rules {
		if !rule.IsValidInterval() {
			continue
		}

		startMin, err := rule.StartTime.Minutes()
		if err != nil {
			return nil, err
		}
		endMin, err := rule.EndTime.Minutes()
		if err != nil {
			return nil, err
		}

		// Буферы принадлежат окну интервала, а не вставляются между слотами
		effStart := startMin + settings.BufferBefore
		effEnd := endMin - settings.BufferAfter

		for m := effStart; m+duration <= effEnd; m += duration {
			ts, err := types.FromMinutes(m)
			if err != nil {
				return nil, err
			}

			if _, ok := seen[ts]; ok {
				continue
			}
			seen[ts] = struct{}{}

			slotStart := dayStart.Add(time.Duration(m) * time.Minute)
			slotEnd := slotStart.Add(time.Duration(duration) * time.Minute)

			slots = append(slots, domain.Slot{
				Time:      ts,
				Available: isSlotFree(slotStart, slotEnd, blocks, meetings, minAllowedStart),
			})
		}
	}

	return slots, nil
}

// isSlotFree проверяет слот [start, end) против блокировок, активных
// встреч и минимального времени до брони
func isSlotFree(start, end time.Time, blocks []*domain.TimeOff, meetings []*domain.Meeting, minAllowedStart time.Time) bool {
	if start.Before(minAllowedStart) {
		return false
	}

	for _, block := range blocks {
		if block.Covers(start, end) {
			return false
		}
	}

	for _, m := range meetings {
		if m.IsActive() && m.Overlaps(start, end) {
			return false
		}
	}

	return true
}

// dayBounds возвращает полночь запрошенной даты и полночь следующего
// дня в таймзоне менеджера
func dayBounds(date time.Time, loc *time.Location) (time.Time, time.Time) {
	y, m, d := date.Date()
	dayStart := time.Date(y, m, d, 0, 0, 0, 0, loc)
	return dayStart, dayStart.AddDate(0, 0, 1)
}

// isBeyondHorizon проверяет, что дата дальше горизонта бронирования
func isBeyondHorizon(dayStart time.Time, now time.Time, settings *domain.MeetingSettings, loc *time.Location) bool {
	if !settings.HasBookingHorizon() {
		return false
	}
	y, m, d := now.In(loc).Date()
	horizon := time.Date(y, m, d, 0, 0, 0, 0, loc).AddDate(0, 0, settings.MaxBookingDays)
	return dayStart.After(horizon)
}

// isPastDay проверяет, что дата уже прошла в таймзоне менеджера
func isPastDay(dayStart time.Time, now time.Time, loc *time.Location) bool {
	y, m, d := now.In(loc).Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, loc)
	return dayStart.Before(today)
}
