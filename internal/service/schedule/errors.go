package schedule

import "errors"

var (
	// ErrTimeOffNotFound возвращается, когда блокировка не найдена
	ErrTimeOffNotFound = errors.New("schedule.service: time off not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("schedule.service: invalid input")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("schedule.service: internal error")
)
