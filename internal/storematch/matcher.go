package storematch

import (
	"strings"

	"github.com/google/uuid"

	"github.com/matjarhub/booking-service/internal/domain"
)

// Matcher best-effort сопоставление URL магазина с магазинами менеджера.
// Стратегия изолирована за интерфейсом, чтобы её можно было заменить
// (точная нормализация, Levenshtein, сравнение по домену) без изменения
// логики бронирования.
type Matcher interface {
	// Match возвращает ID подходящего магазина или nil, если совпадения нет.
	// Отсутствие совпадения не является ошибкой.
	Match(stores []*domain.Store, rawURL string) *uuid.UUID
}

// ContainsMatcher сопоставляет нормализованные URL двунаправленной
// проверкой вхождения подстроки. Короткие нормализованные значения
// отбрасываются: на них двунаправленный contains даёт ложные
// срабатывания.
type ContainsMatcher struct {
	// MinLength минимальная длина нормализованного URL, участвующего
	// в сравнении
	MinLength int
}

// NewContainsMatcher создает matcher с порогом длины по умолчанию
func NewContainsMatcher() *ContainsMatcher {
	return &ContainsMatcher{MinLength: 4}
}

// Match реализует Matcher
func (m *ContainsMatcher) Match(stores []*domain.Store, rawURL string) *uuid.UUID {
	needle := Normalize(rawURL)
	if len(needle) < m.MinLength {
		return nil
	}

	for _, store := range stores {
		candidate := Normalize(store.URL)
		if len(candidate) < m.MinLength {
			continue
		}
		if strings.Contains(candidate, needle) || strings.Contains(needle, candidate) {
			id := store.ID
			return &id
		}
	}

	return nil
}

// Normalize приводит URL к сопоставимому виду: без протокола,
// без "www.", без завершающего слеша, в нижнем регистре
func Normalize(rawURL string) string {
	s := strings.TrimSpace(strings.ToLower(rawURL))
	s = strings.TrimPrefix(s, "https://")
	s = strings.TrimPrefix(s, "http://")
	s = strings.TrimPrefix(s, "www.")
	s = strings.TrimSuffix(s, "/")
	return s
}
