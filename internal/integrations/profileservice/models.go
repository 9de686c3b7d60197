package profileservice

import "github.com/google/uuid"

// RoleManager роль account manager в сервисе профилей.
// Публичная страница бронирования существует только у менеджеров.
const RoleManager = "manager"

// Manager профиль менеджера из сервиса профилей
type Manager struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	AvatarURL   string    `json:"avatar_url"`
	BookingSlug string    `json:"booking_slug"`
	Role        string    `json:"role"`
}

// IsManager проверяет, что профиль принадлежит account manager
func (m *Manager) IsManager() bool {
	return m.Role == RoleManager
}

// ErrorResponse модель ошибки от сервиса профилей
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
