package domain

import (
	"time"

	"github.com/google/uuid"
)

// Store магазин, закреплённый за менеджером.
// В контуре бронирования используется только для привязки встречи
// к магазину по URL, мутации принадлежат другим экранам.
type Store struct {
	ID        uuid.UUID
	ManagerID uuid.UUID
	Name      string
	URL       string

	CreatedAt time.Time
}
