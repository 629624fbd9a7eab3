package get_available_slots

import (
	"fmt"
	"time"

	"github.com/m04kA/HMS-AppointmentService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.DoctorID <= 0 {
		return fmt.Errorf("%w: doctorID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if !req.Context.IsValid() {
		return fmt.Errorf("%w: unknown context %q", ErrInvalidInput, req.Context)
	}

	if req.ExtraSlots < 0 || req.ExtraSlots > domain.MaxExtraSlots {
		return fmt.Errorf("%w: extraSlots must be between 0 and %d", ErrInvalidInput, domain.MaxExtraSlots)
	}

	return nil
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	// Обнуляем время, чтобы сравнивать только даты
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return dateOnly.Before(nowOnly)
}
