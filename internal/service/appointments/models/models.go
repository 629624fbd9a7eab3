package models

import (
	"time"

	"github.com/m04kA/HMS-AppointmentService/internal/domain"
)

// CancelAppointmentRequest запрос на отмену записи
type CancelAppointmentRequest struct {
	Role               domain.Role `json:"-"`
	CancellationReason string      `json:"cancellationReason"`
}

// AppointmentResponse ответ с данными записи
type AppointmentResponse struct {
	ID              int64     `json:"id"`
	PatientID       int64     `json:"patientId"`
	DoctorID        int64     `json:"doctorId"`
	DepartmentID    int64     `json:"departmentId"`
	AppointmentDate string    `json:"appointmentDate"`
	AppointmentTime string    `json:"appointmentTime"`
	Token           int       `json:"token"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"createdAt,omitempty"`
}

// FromDomainAppointment конвертирует domain модель в DTO
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	if a == nil {
		return nil
	}

	return &AppointmentResponse{
		ID:              a.ID,
		PatientID:       a.PatientID,
		DoctorID:        a.DoctorID,
		DepartmentID:    a.DepartmentID,
		AppointmentDate: a.Date.Format(domain.DateFormat),
		AppointmentTime: a.Time.String(),
		Token:           a.Token,
		Status:          string(a.Status),
		CreatedAt:       a.CreatedAt,
	}
}
