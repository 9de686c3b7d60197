package get_available_slots

import "errors"

var (
	// ErrManagerNotFound возвращается, когда slug страницы бронирования
	// не резолвится в менеджера
	ErrManagerNotFound = errors.New("get_available_slots: manager not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_available_slots: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_slots: internal error")
)
