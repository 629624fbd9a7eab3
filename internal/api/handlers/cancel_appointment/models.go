package cancel_appointment

import (
	"github.com/m04kA/HMS-AppointmentService/internal/domain"
	"github.com/m04kA/HMS-AppointmentService/internal/service/appointments/models"
)

// CancelAppointmentRequest HTTP request model
type CancelAppointmentRequest struct {
	CancellationReason string `json:"cancellationReason"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
// Роль берется из сессии, а не из тела запроса
func (r *CancelAppointmentRequest) ToServiceRequest(role domain.Role) *models.CancelAppointmentRequest {
	return &models.CancelAppointmentRequest{
		Role:               role,
		CancellationReason: r.CancellationReason,
	}
}
