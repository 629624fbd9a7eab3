package list_scheduling_configs

import (
	"context"

	"github.com/m04kA/HMS-AppointmentService/internal/service/config/models"
)

type ConfigService interface {
	ListByDepartment(ctx context.Context, departmentID int64) (*models.ConfigListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
