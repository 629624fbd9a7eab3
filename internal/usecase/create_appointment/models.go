package create_appointment

import (
	"time"

	"github.com/m04kA/HMS-AppointmentService/pkg/types"
)

// Request модель запроса на создание записи
type Request struct {
	PatientID    int64     // ID пациента
	DoctorID     int64     // ID врача
	DepartmentID int64     // ID отделения
	Date         time.Time // Дата приема (без времени)
	Token        int       // Номер выбранного слота, начиная с 1
}

// Response модель ответа с созданной записью
type Response struct {
	ID              int64
	PatientID       int64
	DoctorID        int64
	DepartmentID    int64
	Date            time.Time
	StartTime       types.TimeString
	EndTime         types.TimeString
	Token           int
	Status          string
	ConsultationFee float64
	CreatedAt       time.Time
}
