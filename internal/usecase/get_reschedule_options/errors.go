package get_reschedule_options

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_reschedule_options: invalid input data")

	// ErrInvalidDate возвращается, когда новая дата в прошлом
	ErrInvalidDate = errors.New("get_reschedule_options: date is in the past")

	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("get_reschedule_options: appointment not found")

	// ErrCannotReschedule возвращается, когда запись уже отменена или завершена
	ErrCannotReschedule = errors.New("get_reschedule_options: appointment cannot be rescheduled")

	// ErrDoctorNotFound возвращается, когда врач записи не найден
	ErrDoctorNotFound = errors.New("get_reschedule_options: doctor not found")

	// ErrAppendNotAllowed возвращается, когда слот добавляют при наличии свободных
	ErrAppendNotAllowed = errors.New("get_reschedule_options: free slots are still available")

	// ErrBackendUnavailable возвращается при сбое REST API больницы
	ErrBackendUnavailable = errors.New("get_reschedule_options: hospital backend unavailable")
)
