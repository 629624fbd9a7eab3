package hospitalapi

import "errors"

var (
	// ErrDoctorNotFound возвращается, когда врач не найден
	ErrDoctorNotFound = errors.New("hospitalapi: doctor not found")

	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("hospitalapi: appointment not found")

	// ErrSlotTaken возвращается, когда слот уже занят другой записью (409)
	ErrSlotTaken = errors.New("hospitalapi: slot is already taken")

	// ErrRejected возвращается, когда бэкенд отклонил запрос как некорректный (400)
	ErrRejected = errors.New("hospitalapi: request rejected")

	// ErrInvalidCredentials возвращается при неверном логине или пароле
	ErrInvalidCredentials = errors.New("hospitalapi: invalid credentials")

	// ErrUnauthorized возвращается, когда токен отсутствует или истек
	ErrUnauthorized = errors.New("hospitalapi: unauthorized")

	// ErrInvalidResponse возвращается при некорректном ответе от бэкенда
	ErrInvalidResponse = errors.New("hospitalapi: invalid response")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("hospitalapi: internal error")
)
