package update_scheduling_config

import (
	"github.com/m04kA/HMS-AppointmentService/internal/domain"
	"github.com/m04kA/HMS-AppointmentService/internal/service/config/models"
)

// UpdateSchedulingConfigRequest HTTP request model
type UpdateSchedulingConfigRequest struct {
	DoctorID        *int64 `json:"doctorId,omitempty"`
	Context         string `json:"context"`
	IntervalMinutes *int   `json:"intervalMinutes,omitempty"`
	MaxSlots        *int   `json:"maxSlots,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
// Роль берется из сессии, а не из тела запроса
func (r *UpdateSchedulingConfigRequest) ToServiceRequest(departmentID int64, role domain.Role) *models.UpdateConfigRequest {
	schedulingContext := domain.ContextBooking
	if r.Context != "" {
		schedulingContext = domain.SchedulingContext(r.Context)
	}

	return &models.UpdateConfigRequest{
		Role:            role,
		DepartmentID:    departmentID,
		DoctorID:        r.DoctorID,
		Context:         schedulingContext,
		IntervalMinutes: r.IntervalMinutes,
		MaxSlots:        r.MaxSlots,
	}
}
