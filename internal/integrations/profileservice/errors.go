package profileservice

import "errors"

var (
	// ErrManagerNotFound возвращается, когда slug не резолвится в менеджера
	ErrManagerNotFound = errors.New("manager not found for booking slug")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("profileservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("profileservice client: invalid response")
)
