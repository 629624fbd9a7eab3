package models

import (
	"time"

	"github.com/m04kA/HMS-AppointmentService/internal/domain"
)

// Request модели

// GetConfigRequest запрос на получение действующей конфигурации
type GetConfigRequest struct {
	DepartmentID int64                    `json:"departmentId"`
	DoctorID     *int64                   `json:"doctorId,omitempty"` // nil означает конфигурацию отделения
	Context      domain.SchedulingContext `json:"context"`
}

// UpdateConfigRequest запрос на создание или изменение конфигурации
// Незаданные поля берутся из действующей конфигурации
type UpdateConfigRequest struct {
	Role            domain.Role              `json:"-"`
	DepartmentID    int64                    `json:"departmentId"`
	DoctorID        *int64                   `json:"doctorId,omitempty"`
	Context         domain.SchedulingContext `json:"context"`
	IntervalMinutes *int                     `json:"intervalMinutes,omitempty"`
	MaxSlots        *int                     `json:"maxSlots,omitempty"`
}

// Response модели

// ConfigResponse ответ с данными конфигурации расписания
type ConfigResponse struct {
	ID              int64                    `json:"id,omitempty"`
	DepartmentID    *int64                   `json:"departmentId,omitempty"`
	DoctorID        *int64                   `json:"doctorId,omitempty"`
	Context         domain.SchedulingContext `json:"context"`
	IntervalMinutes int                      `json:"intervalMinutes"`
	MaxSlots        int                      `json:"maxSlots"`
	IsDefault       bool                     `json:"isDefault"`
	CreatedAt       *time.Time               `json:"createdAt,omitempty"`
	UpdatedAt       *time.Time               `json:"updatedAt,omitempty"`
}

// ConfigListResponse ответ со списком конфигураций
type ConfigListResponse struct {
	Configs []ConfigResponse `json:"configs"`
}

// Методы конвертации

// FromDomainConfig конвертирует domain модель в DTO
func FromDomainConfig(c *domain.SchedulingConfig) *ConfigResponse {
	if c == nil {
		return nil
	}

	resp := &ConfigResponse{
		ID:              c.ID,
		DepartmentID:    c.DepartmentID,
		DoctorID:        c.DoctorID,
		Context:         c.Context,
		IntervalMinutes: c.IntervalMinutes,
		MaxSlots:        c.MaxSlots,
		IsDefault:       c.IsDefault,
	}
	if !c.CreatedAt.IsZero() {
		createdAt := c.CreatedAt
		resp.CreatedAt = &createdAt
	}
	if !c.UpdatedAt.IsZero() {
		updatedAt := c.UpdatedAt
		resp.UpdatedAt = &updatedAt
	}

	return resp
}

// FromDomainConfigList конвертирует список domain моделей в DTO
func FromDomainConfigList(configs []*domain.SchedulingConfig) *ConfigListResponse {
	resp := &ConfigListResponse{
		Configs: make([]ConfigResponse, 0, len(configs)),
	}

	for _, config := range configs {
		if configResp := FromDomainConfig(config); configResp != nil {
			resp.Configs = append(resp.Configs, *configResp)
		}
	}

	return resp
}

// ApplyToConfig применяет обновления к конфигурации
// Обновляются только непустые (not nil) поля из request
func (r *UpdateConfigRequest) ApplyToConfig(config *domain.SchedulingConfig) {
	if r.IntervalMinutes != nil {
		config.IntervalMinutes = *r.IntervalMinutes
	}
	if r.MaxSlots != nil {
		config.MaxSlots = *r.MaxSlots
	}
}
