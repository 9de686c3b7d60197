package get_available_slots

import (
	"time"

	"github.com/google/uuid"

	"github.com/matjarhub/booking-service/internal/domain"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	BookingSlug string    // slug публичной страницы бронирования
	Date        time.Time // Календарная дата (без времени), интерпретируется в таймзоне менеджера
}

// Response модель ответа со списком слотов на день
type Response struct {
	Manager  ManagerSummary  // Данные менеджера для страницы бронирования
	Settings SettingsSummary // Политика бронирования менеджера
	Date     time.Time       // Дата, на которую запрашивались слоты
	Slots    []domain.Slot   // Слоты дня с признаком доступности
}

// ManagerSummary публичные данные менеджера
type ManagerSummary struct {
	ID        uuid.UUID
	Name      string
	AvatarURL string
}

// SettingsSummary публичная часть настроек встреч
type SettingsSummary struct {
	MeetingDuration  int    // Длительность встречи в минутах
	Timezone         string // Таймзона менеджера (IANA)
	MinBookingNotice int    // Минимальное время до брони в часах
	MaxBookingDays   int    // Горизонт бронирования в днях
}
