package get_available_slots

import (
	"fmt"
	"strconv"
	"time"

	"github.com/m04kA/HMS-AppointmentService/internal/domain"
	getAvailableSlots "github.com/m04kA/HMS-AppointmentService/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	DoctorID            int64   `json:"doctorId"`
	DepartmentID        int64   `json:"departmentId"`
	Date                string  `json:"date"`
	Context             string  `json:"context"`
	IntervalMinutes     int     `json:"intervalMinutes"`
	ConsultationFee     float64 `json:"consultationFee"`
	HasSchedule         bool    `json:"hasSchedule"`
	NeedsAdditionalSlot bool    `json:"needsAdditionalSlot"`
	Truncated           bool    `json:"truncated"`
	Slots               []Slot  `json:"slots"`
}

// Slot модель слота очереди врача
type Slot struct {
	Token     int    `json:"token"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	IsBooked  bool   `json:"isBooked"`
	IsExpired bool   `json:"isExpired"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]Slot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = Slot{
			Token:     slot.Token,
			StartTime: slot.StartTime.String(),
			EndTime:   slot.EndTime.String(),
			IsBooked:  slot.IsBooked,
			IsExpired: slot.IsExpired,
		}
	}

	return &AvailableSlotsResponse{
		DoctorID:            resp.DoctorID,
		DepartmentID:        resp.DepartmentID,
		Date:                resp.Date.Format(domain.DateFormat),
		Context:             string(resp.Context),
		IntervalMinutes:     resp.IntervalMinutes,
		ConsultationFee:     resp.ConsultationFee,
		HasSchedule:         resp.HasSchedule,
		NeedsAdditionalSlot: resp.NeedsAdditionalSlot,
		Truncated:           resp.Truncated,
		Slots:               slots,
	}
}

// ToUseCaseRequest создает запрос use case из query параметров
// Пустой context означает запись, пустой extraSlots означает 0
func ToUseCaseRequest(doctorID int64, dateStr, contextStr, extraSlotsStr string) (*getAvailableSlots.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, fmt.Errorf("invalid date: %w", err)
	}

	schedulingContext := domain.ContextBooking
	if contextStr != "" {
		schedulingContext = domain.SchedulingContext(contextStr)
	}

	extraSlots := 0
	if extraSlotsStr != "" {
		extraSlots, err = strconv.Atoi(extraSlotsStr)
		if err != nil {
			return nil, fmt.Errorf("invalid extraSlots: %w", err)
		}
	}

	return &getAvailableSlots.Request{
		DoctorID:   doctorID,
		Date:       date,
		Context:    schedulingContext,
		ExtraSlots: extraSlots,
	}, nil
}
