package get_reschedule_options

import (
	"fmt"
	"strconv"
	"time"

	"github.com/m04kA/HMS-AppointmentService/internal/domain"
	getRescheduleOptions "github.com/m04kA/HMS-AppointmentService/internal/usecase/get_reschedule_options"
)

// RescheduleOptionsResponse HTTP response model
type RescheduleOptionsResponse struct {
	AppointmentID       int64  `json:"appointmentId"`
	DoctorID            int64  `json:"doctorId"`
	DepartmentID        int64  `json:"departmentId"`
	Date                string `json:"date"`
	CurrentDate         string `json:"currentDate"`
	CurrentTime         string `json:"currentTime"`
	CurrentToken        int    `json:"currentToken"`
	IntervalMinutes     int    `json:"intervalMinutes"`
	HasSchedule         bool   `json:"hasSchedule"`
	SelectedToken       *int   `json:"selectedToken"`
	NeedsAdditionalSlot bool   `json:"needsAdditionalSlot"`
	Truncated           bool   `json:"truncated"`
	Slots               []Slot `json:"slots"`
}

// Slot модель слота очереди врача
type Slot struct {
	Token      int    `json:"token"`
	StartTime  string `json:"startTime"`
	EndTime    string `json:"endTime"`
	IsBooked   bool   `json:"isBooked"`
	IsExpired  bool   `json:"isExpired"`
	IsSelected bool   `json:"isSelected"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getRescheduleOptions.Response) *RescheduleOptionsResponse {
	slots := make([]Slot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = Slot{
			Token:      slot.Token,
			StartTime:  slot.StartTime.String(),
			EndTime:    slot.EndTime.String(),
			IsBooked:   slot.IsBooked,
			IsExpired:  slot.IsExpired,
			IsSelected: slot.IsSelected,
		}
	}

	return &RescheduleOptionsResponse{
		AppointmentID:       resp.AppointmentID,
		DoctorID:            resp.DoctorID,
		DepartmentID:        resp.DepartmentID,
		Date:                resp.Date.Format(domain.DateFormat),
		CurrentDate:         resp.CurrentDate.Format(domain.DateFormat),
		CurrentTime:         resp.CurrentTime.String(),
		CurrentToken:        resp.CurrentToken,
		IntervalMinutes:     resp.IntervalMinutes,
		HasSchedule:         resp.HasSchedule,
		SelectedToken:       resp.SelectedToken,
		NeedsAdditionalSlot: resp.NeedsAdditionalSlot,
		Truncated:           resp.Truncated,
		Slots:               slots,
	}
}

// ToUseCaseRequest создает запрос use case из query параметров
func ToUseCaseRequest(appointmentID int64, dateStr, extraSlotsStr string) (*getRescheduleOptions.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, fmt.Errorf("invalid date: %w", err)
	}

	extraSlots := 0
	if extraSlotsStr != "" {
		extraSlots, err = strconv.Atoi(extraSlotsStr)
		if err != nil {
			return nil, fmt.Errorf("invalid extraSlots: %w", err)
		}
	}

	return &getRescheduleOptions.Request{
		AppointmentID: appointmentID,
		Date:          date,
		ExtraSlots:    extraSlots,
	}, nil
}
