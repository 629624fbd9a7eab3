package get_reschedule_options

import (
	"time"

	"github.com/m04kA/HMS-AppointmentService/internal/domain"
	"github.com/m04kA/HMS-AppointmentService/pkg/types"
)

// Request модель запроса на получение слотов для переноса
type Request struct {
	AppointmentID int64     // ID переносимой записи
	Date          time.Time // Новая дата приема
	ExtraSlots    int       // Количество добавленных вручную слотов
}

// Response модель ответа со слотами для переноса
type Response struct {
	AppointmentID       int64
	DoctorID            int64
	DepartmentID        int64
	Date                time.Time
	CurrentDate         time.Time
	CurrentTime         types.TimeString
	CurrentToken        int
	IntervalMinutes     int
	HasSchedule         bool
	Slots               []domain.Slot
	SelectedToken       *int // слот текущей записи, если новая дата совпадает с текущей
	NeedsAdditionalSlot bool
	Truncated           bool // список короче MaxSlots, так как слоты не переходят через полночь
}
