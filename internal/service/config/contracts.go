package config

import (
	"context"

	"github.com/m04kA/HMS-AppointmentService/internal/domain"
)

// ConfigRepository интерфейс репозитория конфигурации расписания
type ConfigRepository interface {
	Upsert(ctx context.Context, config *domain.SchedulingConfig) (*domain.SchedulingConfig, error)
	GetByID(ctx context.Context, id int64) (*domain.SchedulingConfig, error)
	GetByScope(ctx context.Context, departmentID *int64, doctorID *int64, schedulingContext domain.SchedulingContext) (*domain.SchedulingConfig, error)
	GetConfigWithHierarchy(ctx context.Context, departmentID int64, doctorID *int64, schedulingContext domain.SchedulingContext) (*domain.SchedulingConfig, error)
	ListByDepartment(ctx context.Context, departmentID int64) ([]*domain.SchedulingConfig, error)
	Delete(ctx context.Context, id int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
