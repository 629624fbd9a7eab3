package reschedule_appointment

import (
	"time"

	"github.com/m04kA/HMS-AppointmentService/internal/domain"
	rescheduleAppointment "github.com/m04kA/HMS-AppointmentService/internal/usecase/reschedule_appointment"
)

// RescheduleAppointmentRequest HTTP request model
type RescheduleAppointmentRequest struct {
	AppointmentDate string `json:"appointmentDate"`
	Token           int    `json:"token"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID              int64  `json:"id"`
	PatientID       int64  `json:"patientId"`
	DoctorID        int64  `json:"doctorId"`
	DepartmentID    int64  `json:"departmentId"`
	AppointmentDate string `json:"appointmentDate"`
	StartTime       string `json:"startTime"`
	EndTime         string `json:"endTime"`
	Token           int    `json:"token"`
	Status          string `json:"status"`
	PreviousDate    string `json:"previousDate"`
	PreviousTime    string `json:"previousTime"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *RescheduleAppointmentRequest) ToUseCaseRequest(appointmentID int64) (*rescheduleAppointment.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.AppointmentDate)
	if err != nil {
		return nil, err
	}

	return &rescheduleAppointment.Request{
		AppointmentID: appointmentID,
		Date:          date,
		Token:         r.Token,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *rescheduleAppointment.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:              resp.ID,
		PatientID:       resp.PatientID,
		DoctorID:        resp.DoctorID,
		DepartmentID:    resp.DepartmentID,
		AppointmentDate: resp.Date.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		EndTime:         resp.EndTime.String(),
		Token:           resp.Token,
		Status:          resp.Status,
		PreviousDate:    resp.PreviousDate.Format(domain.DateFormat),
		PreviousTime:    resp.PreviousTime.String(),
	}
}
