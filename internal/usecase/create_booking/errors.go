package create_booking

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrManagerNotFound возвращается, когда slug страницы бронирования
	// не резолвится в менеджера
	ErrManagerNotFound = errors.New("create_booking: manager not found")

	// ErrSlotNotAvailable возвращается, когда интервал уже занят
	// (включая проигравших гонку за один слот)
	ErrSlotNotAvailable = errors.New("create_booking: slot is not available")

	// ErrTooLateToBook возвращается при нарушении минимального времени
	// до брони
	ErrTooLateToBook = errors.New("create_booking: too late to book this slot")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)

// ValidationError перечисляет отсутствующие обязательные поля запроса.
// Разворачивается в ErrInvalidInput.
type ValidationError struct {
	MissingFields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%v: missing required fields: %s", ErrInvalidInput, strings.Join(e.MissingFields, ", "))
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }
