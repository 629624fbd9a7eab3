package appointments

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("appointments: appointment not found")

	// ErrAccessDenied возвращается, когда у роли нет прав на операцию
	ErrAccessDenied = errors.New("appointments: access denied")

	// ErrCannotCancel возвращается, когда запись не может быть отменена
	ErrCannotCancel = errors.New("appointments: appointment cannot be cancelled")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("appointments: invalid input data")

	// ErrBackendUnavailable возвращается при сбое или недоступности бэкенда больницы
	ErrBackendUnavailable = errors.New("appointments: backend unavailable")
)
