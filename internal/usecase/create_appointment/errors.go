package create_appointment

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrInvalidDate возвращается, когда дата приема в прошлом
	ErrInvalidDate = errors.New("create_appointment: appointment date is in the past")

	// ErrDoctorNotFound возвращается, когда врач не найден
	ErrDoctorNotFound = errors.New("create_appointment: doctor not found")

	// ErrDepartmentMismatch возвращается, когда врач не работает в указанном отделении
	ErrDepartmentMismatch = errors.New("create_appointment: doctor does not belong to the department")

	// ErrNoSchedule возвращается, когда у врача не задано время начала приема
	ErrNoSchedule = errors.New("create_appointment: doctor has no consultation time")

	// ErrSlotNotFound возвращается, когда слота с таким токеном нет
	ErrSlotNotFound = errors.New("create_appointment: slot not found")

	// ErrSlotNotAvailable возвращается, когда слот занят, просрочен или занят параллельно
	ErrSlotNotAvailable = errors.New("create_appointment: slot is not available")

	// ErrRejected возвращается, когда бэкенд отклонил запись
	ErrRejected = errors.New("create_appointment: appointment rejected by backend")

	// ErrBackendUnavailable возвращается при сбое REST API больницы
	ErrBackendUnavailable = errors.New("create_appointment: hospital backend unavailable")
)
