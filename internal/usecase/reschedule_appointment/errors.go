package reschedule_appointment

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reschedule_appointment: invalid input data")

	// ErrInvalidDate возвращается, когда новая дата в прошлом
	ErrInvalidDate = errors.New("reschedule_appointment: date is in the past")

	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("reschedule_appointment: appointment not found")

	// ErrCannotReschedule возвращается, когда запись уже отменена или завершена
	ErrCannotReschedule = errors.New("reschedule_appointment: appointment cannot be rescheduled")

	// ErrDoctorNotFound возвращается, когда врач записи не найден
	ErrDoctorNotFound = errors.New("reschedule_appointment: doctor not found")

	// ErrNoSchedule возвращается, когда у врача не задано время начала приема
	ErrNoSchedule = errors.New("reschedule_appointment: doctor has no consultation time")

	// ErrSameSlot возвращается при переносе на тот же слот того же дня
	ErrSameSlot = errors.New("reschedule_appointment: appointment already holds this slot")

	// ErrSlotNotFound возвращается, когда слота с таким токеном нет
	ErrSlotNotFound = errors.New("reschedule_appointment: slot not found")

	// ErrSlotNotAvailable возвращается, когда слот занят, просрочен или занят параллельно
	ErrSlotNotAvailable = errors.New("reschedule_appointment: slot is not available")

	// ErrRejected возвращается, когда бэкенд отклонил перенос
	ErrRejected = errors.New("reschedule_appointment: reschedule rejected by backend")

	// ErrBackendUnavailable возвращается при сбое REST API больницы
	ErrBackendUnavailable = errors.New("reschedule_appointment: hospital backend unavailable")
)
