package hospitalapi

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/m04kA/HMS-AppointmentService/internal/domain"
	"github.com/m04kA/HMS-AppointmentService/pkg/types"
)

// Doctor модель врача из бэкенда
type Doctor struct {
	ID               int64   `json:"id"`
	Name             string  `json:"name"`
	DepartmentID     int64   `json:"department_id"`
	ConsultationTime *string `json:"consultation_time"` // "HH:MM:SS", может отсутствовать
	ConsultationFee  float64 `json:"consultation_fee"`
}

// ToDomain проверяет ответ и конвертирует его в domain.Doctor
func (d *Doctor) ToDomain() (*domain.Doctor, error) {
	if d.ID <= 0 {
		return nil, fmt.Errorf("%w: doctor id must be positive", ErrInvalidResponse)
	}

	doctor := &domain.Doctor{
		ID:              d.ID,
		Name:            d.Name,
		DepartmentID:    d.DepartmentID,
		ConsultationFee: d.ConsultationFee,
	}

	if d.ConsultationTime != nil && *d.ConsultationTime != "" {
		start, err := types.NewTimeStringFromString(*d.ConsultationTime)
		if err != nil {
			return nil, fmt.Errorf("%w: doctor id=%d consultation_time: %v", ErrInvalidResponse, d.ID, err)
		}
		doctor.ConsultationStart = &start
	}

	return doctor, nil
}

// BookedAppointment занятый слот врача на дату
type BookedAppointment struct {
	ID              int64  `json:"id"`
	AppointmentTime string `json:"appointment_time"` // "HH:MM:SS"
	Token           int    `json:"token"`
}

// ToDomain проверяет строку и конвертирует ее в domain.BookedAppointment
func (b *BookedAppointment) ToDomain() (domain.BookedAppointment, error) {
	booked := domain.BookedAppointment{
		AppointmentID: b.ID,
		Token:         b.Token,
	}

	if b.AppointmentTime != "" {
		t, err := types.NewTimeStringFromString(b.AppointmentTime)
		if err != nil {
			return domain.BookedAppointment{}, fmt.Errorf("%w: appointment id=%d time: %v", ErrInvalidResponse, b.ID, err)
		}
		booked.Time = t
	}

	if booked.Time.IsZero() && booked.Token <= 0 {
		return domain.BookedAppointment{}, fmt.Errorf("%w: appointment id=%d has neither time nor token", ErrInvalidResponse, b.ID)
	}

	return booked, nil
}

// Appointment модель записи из бэкенда
type Appointment struct {
	ID              int64     `json:"id"`
	PatientID       int64     `json:"patient_id"`
	DoctorID        int64     `json:"doctor_id"`
	DepartmentID    int64     `json:"department_id"`
	AppointmentDate string    `json:"appointment_date"` // "YYYY-MM-DD"
	AppointmentTime string    `json:"appointment_time"` // "HH:MM:SS"
	Token           int       `json:"token"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
}

// ToDomain проверяет ответ и конвертирует его в domain.Appointment
func (a *Appointment) ToDomain() (*domain.Appointment, error) {
	if a.ID <= 0 {
		return nil, fmt.Errorf("%w: appointment id must be positive", ErrInvalidResponse)
	}

	date, err := time.Parse(domain.DateFormat, a.AppointmentDate)
	if err != nil {
		return nil, fmt.Errorf("%w: appointment id=%d date: %v", ErrInvalidResponse, a.ID, err)
	}

	t, err := types.NewTimeStringFromString(a.AppointmentTime)
	if err != nil {
		return nil, fmt.Errorf("%w: appointment id=%d time: %v", ErrInvalidResponse, a.ID, err)
	}

	status := domain.AppointmentStatus(a.Status)
	if status == "" {
		status = domain.AppointmentScheduled
	}

	return &domain.Appointment{
		ID:           a.ID,
		PatientID:    a.PatientID,
		DoctorID:     a.DoctorID,
		DepartmentID: a.DepartmentID,
		Date:         date,
		Time:         t,
		Token:        a.Token,
		Status:       status,
		CreatedAt:    a.CreatedAt,
	}, nil
}

// AppointmentRequest тело запроса на создание или перенос записи
type AppointmentRequest struct {
	PatientID       int64  `json:"patient_id,omitempty"`
	DoctorID        int64  `json:"doctor_id"`
	DepartmentID    int64  `json:"department_id"`
	AppointmentDate string `json:"appointment_date"`
	AppointmentTime string `json:"appointment_time"`
}

// NewAppointmentRequest собирает тело запроса из даты и времени выбранного слота
func NewAppointmentRequest(patientID, doctorID, departmentID int64, date time.Time, start types.TimeString) AppointmentRequest {
	return AppointmentRequest{
		PatientID:       patientID,
		DoctorID:        doctorID,
		DepartmentID:    departmentID,
		AppointmentDate: date.Format(domain.DateFormat),
		AppointmentTime: start.WithSeconds(),
	}
}

type cancelRequest struct {
	Reason string `json:"reason"`
}

// Credentials данные для входа
type Credentials struct {
	Username string      `json:"username"`
	Password string      `json:"password"`
	Role     domain.Role `json:"role"`
}

// LoginResult результат успешного входа
type LoginResult struct {
	Token   string          `json:"token"`
	Role    domain.Role     `json:"role"`
	Profile json.RawMessage `json:"profile"`
}

// ErrorResponse модель ошибки бэкенда
type ErrorResponse struct {
	Detail  string `json:"detail"`
	Message string `json:"message"`
}

func (e ErrorResponse) String() string {
	if e.Detail != "" {
		return e.Detail
	}
	return e.Message
}
