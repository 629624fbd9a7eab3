package reschedule_appointment

import (
	"context"
	"time"

	"github.com/m04kA/HMS-AppointmentService/internal/domain"
	"github.com/m04kA/HMS-AppointmentService/internal/integrations/hospitalapi"
)

// HospitalClient интерфейс клиента REST API больницы
type HospitalClient interface {
	GetAppointment(ctx context.Context, appointmentID int64) (*domain.Appointment, error)
	GetDoctor(ctx context.Context, doctorID int64) (*domain.Doctor, error)
	GetBookedAppointments(ctx context.Context, doctorID int64, date time.Time) ([]domain.BookedAppointment, error)
	RescheduleAppointment(ctx context.Context, appointmentID int64, req hospitalapi.AppointmentRequest) (*domain.Appointment, error)
}

// ConfigProvider интерфейс получения действующей конфигурации расписания
type ConfigProvider interface {
	Effective(ctx context.Context, departmentID int64, doctorID *int64, schedulingContext domain.SchedulingContext) *domain.SchedulingConfig
}

// Metrics интерфейс для учета отправленных переносов
type Metrics interface {
	IncSubmission(operation, outcome string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
