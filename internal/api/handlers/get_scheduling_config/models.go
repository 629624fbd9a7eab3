package get_scheduling_config

import (
	"strconv"

	"github.com/m04kA/HMS-AppointmentService/internal/domain"
	"github.com/m04kA/HMS-AppointmentService/internal/service/config/models"
)

// ToServiceRequest формирует запрос к сервису из URL и query параметров
func ToServiceRequest(departmentID int64, doctorIDStr string, contextStr string) (*models.GetConfigRequest, error) {
	req := &models.GetConfigRequest{
		DepartmentID: departmentID,
		DoctorID:     nil, // nil означает конфигурацию отделения
		Context:      domain.ContextBooking,
	}

	if doctorIDStr != "" {
		doctorID, err := strconv.ParseInt(doctorIDStr, 10, 64)
		if err != nil {
			return nil, err
		}
		req.DoctorID = &doctorID
	}

	if contextStr != "" {
		req.Context = domain.SchedulingContext(contextStr)
	}

	return req, nil
}
