package delete_scheduling_config

import (
	"context"

	"github.com/m04kA/HMS-AppointmentService/internal/domain"
)

type ConfigService interface {
	Delete(ctx context.Context, role domain.Role, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
