package create_booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/matjarhub/booking-service/pkg/types"
)

// Request модель запроса на создание брони
type Request struct {
	BookingSlug string           // slug публичной страницы бронирования
	Date        time.Time        // Дата встречи (без времени), в таймзоне менеджера
	StartTime   types.TimeString // Время начала слота (например, "09:00")
	GuestName   string           // Имя гостя
	GuestEmail  string           // Email гостя
	GuestPhone  *string          // Телефон гостя (опционально)
	StoreURL    *string          // URL магазина для best-effort привязки (опционально)
}

// Response модель ответа с созданной встречей
type Response struct {
	MeetingID   uuid.UUID  // ID созданной встречи
	ManagerID   uuid.UUID  // ID менеджера
	ManagerName string     // Имя менеджера
	StoreID     *uuid.UUID // ID привязанного магазина (если нашёлся)
	StartAt     time.Time  // Начало встречи
	EndAt       time.Time  // Конец встречи
	GuestName   string     // Имя гостя
	GuestEmail  string     // Email гостя
	CreatedAt   time.Time  // Время создания
}
