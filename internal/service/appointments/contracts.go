package appointments

import (
	"context"

	"github.com/m04kA/HMS-AppointmentService/internal/domain"
)

// HospitalClient интерфейс клиента REST API больницы
type HospitalClient interface {
	GetAppointment(ctx context.Context, appointmentID int64) (*domain.Appointment, error)
	CancelAppointment(ctx context.Context, appointmentID int64, reason string) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
