package get_available_slots

import (
	"time"

	"github.com/m04kA/HMS-AppointmentService/internal/domain"
)

// Request модель запроса на получение слотов врача
type Request struct {
	DoctorID   int64                    // ID врача
	Date       time.Time                // Дата приема (без времени)
	Context    domain.SchedulingContext // booking или reschedule
	ExtraSlots int                      // Количество добавленных вручную слотов
}

// Response модель ответа со списком слотов
type Response struct {
	DoctorID            int64
	DepartmentID        int64
	Date                time.Time
	Context             domain.SchedulingContext
	IntervalMinutes     int
	ConsultationFee     float64
	HasSchedule         bool // false когда у врача не задано время начала приема
	Slots               []domain.Slot
	NeedsAdditionalSlot bool // все слоты заняты или истекли
	Truncated           bool // список короче MaxSlots, так как слоты не переходят через полночь
}
