package create_appointment

import (
	"time"

	"github.com/m04kA/HMS-AppointmentService/internal/domain"
	createAppointment "github.com/m04kA/HMS-AppointmentService/internal/usecase/create_appointment"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	PatientID       int64  `json:"patientId"`
	DoctorID        int64  `json:"doctorId"`
	DepartmentID    int64  `json:"departmentId"`
	AppointmentDate string `json:"appointmentDate"` // "2026-10-15"
	Token           int    `json:"token"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID              int64   `json:"id"`
	PatientID       int64   `json:"patientId"`
	DoctorID        int64   `json:"doctorId"`
	DepartmentID    int64   `json:"departmentId"`
	AppointmentDate string  `json:"appointmentDate"`
	StartTime       string  `json:"startTime"`
	EndTime         string  `json:"endTime"`
	Token           int     `json:"token"`
	Status          string  `json:"status"`
	ConsultationFee float64 `json:"consultationFee"`
	CreatedAt       string  `json:"createdAt,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateAppointmentRequest) ToUseCaseRequest() (*createAppointment.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.AppointmentDate)
	if err != nil {
		return nil, err
	}

	return &createAppointment.Request{
		PatientID:    r.PatientID,
		DoctorID:     r.DoctorID,
		DepartmentID: r.DepartmentID,
		Date:         date,
		Token:        r.Token,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createAppointment.Response) *AppointmentResponse {
	result := &AppointmentResponse{
		ID:              resp.ID,
		PatientID:       resp.PatientID,
		DoctorID:        resp.DoctorID,
		DepartmentID:    resp.DepartmentID,
		AppointmentDate: resp.Date.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		EndTime:         resp.EndTime.String(),
		Token:           resp.Token,
		Status:          resp.Status,
		ConsultationFee: resp.ConsultationFee,
	}
	if !resp.CreatedAt.IsZero() {
		result.CreatedAt = resp.CreatedAt.Format(time.RFC3339)
	}
	return result
}
