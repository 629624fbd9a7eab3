package reschedule_appointment

import (
	"time"

	"github.com/m04kA/HMS-AppointmentService/pkg/types"
)

// Request модель запроса на перенос записи
type Request struct {
	AppointmentID int64     // ID переносимой записи
	Date          time.Time // Новая дата приема
	Token         int       // Номер нового слота, начиная с 1
}

// Response модель ответа с перенесенной записью
type Response struct {
	ID           int64
	PatientID    int64
	DoctorID     int64
	DepartmentID int64
	Date         time.Time
	StartTime    types.TimeString
	EndTime      types.TimeString
	Token        int
	Status       string
	PreviousDate time.Time
	PreviousTime types.TimeString
}
