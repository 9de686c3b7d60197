package get_available_slots

import (
	"time"

	"github.com/matjarhub/booking-service/internal/domain"
	getAvailableSlots "github.com/matjarhub/booking-service/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Manager  ManagerInfo  `json:"manager"`
	Settings SettingsInfo `json:"settings"`
	Date     string       `json:"date"`
	Slots    []SlotInfo   `json:"available_slots"`
}

// ManagerInfo публичные данные менеджера на странице бронирования
type ManagerInfo struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

// SettingsInfo публичная часть настроек встреч
type SettingsInfo struct {
	MeetingDuration  int    `json:"meeting_duration"`
	Timezone         string `json:"timezone"`
	MinBookingNotice int    `json:"min_booking_notice"`
	MaxBookingDays   int    `json:"max_booking_days"`
}

// SlotInfo модель временного слота
type SlotInfo struct {
	Time      string `json:"time"`
	Available bool   `json:"available"`
}

// ToUseCaseRequest создает запрос use case из параметров URL
func ToUseCaseRequest(slug, dateStr string) (*getAvailableSlots.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.Request{
		BookingSlug: slug,
		Date:        date,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]SlotInfo, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = SlotInfo{
			Time:      slot.Time.String(),
			Available: slot.Available,
		}
	}

	return &AvailableSlotsResponse{
		Manager: ManagerInfo{
			ID:        resp.Manager.ID.String(),
			Name:      resp.Manager.Name,
			AvatarURL: resp.Manager.AvatarURL,
		},
		Settings: SettingsInfo{
			MeetingDuration:  resp.Settings.MeetingDuration,
			Timezone:         resp.Settings.Timezone,
			MinBookingNotice: resp.Settings.MinBookingNotice,
			MaxBookingDays:   resp.Settings.MaxBookingDays,
		},
		Date:  resp.Date.Format(domain.DateFormat),
		Slots: slots,
	}
}
