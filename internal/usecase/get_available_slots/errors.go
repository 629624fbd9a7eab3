package get_available_slots

import "errors"

var (
	// ErrDoctorNotFound возвращается, когда врач не найден
	ErrDoctorNotFound = errors.New("get_available_slots: doctor not found")

	// ErrInvalidDate возвращается, когда дата в прошлом
	ErrInvalidDate = errors.New("get_available_slots: date is in the past")

	// ErrAppendNotAllowed возвращается, когда дополнительный слот запрошен при наличии свободных
	ErrAppendNotAllowed = errors.New("get_available_slots: additional slot is not allowed")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_available_slots: invalid input data")

	// ErrBackendUnavailable возвращается при сбое или недоступности бэкенда больницы
	ErrBackendUnavailable = errors.New("get_available_slots: backend unavailable")
)
