package meetings

import "errors"

var (
	// ErrMeetingNotFound возвращается, когда встреча не найдена
	ErrMeetingNotFound = errors.New("meetings.service: meeting not found")

	// ErrAccessDenied возвращается при попытке работать с чужой встречей
	ErrAccessDenied = errors.New("meetings.service: access denied")

	// ErrCannotCancel возвращается, когда встреча уже отменена
	ErrCannotCancel = errors.New("meetings.service: meeting cannot be cancelled")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("meetings.service: invalid input")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("meetings.service: internal error")
)
