package sessions

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("sessions: invalid input data")

	// ErrInvalidCredentials возвращается при неверном логине или пароле
	ErrInvalidCredentials = errors.New("sessions: invalid credentials")

	// ErrSessionNotFound возвращается, когда сессия не найдена или истекла
	ErrSessionNotFound = errors.New("sessions: session not found")

	// ErrBackendUnavailable возвращается при сбое или недоступности бэкенда больницы
	ErrBackendUnavailable = errors.New("sessions: backend unavailable")

	// ErrInternal возвращается при ошибках хранилища сессий
	ErrInternal = errors.New("sessions: internal error")
)
