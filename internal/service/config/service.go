package config

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/HMS-AppointmentService/internal/domain"
	configRepo "github.com/m04kA/HMS-AppointmentService/internal/infra/storage/config"
	"github.com/m04kA/HMS-AppointmentService/internal/service/config/models"
)

// Service сервис для работы с конфигурацией расписания
type Service struct {
	configRepo ConfigRepository
	defaults   domain.SchedulingDefaults
	logger     Logger
}

// NewService создает новый экземпляр сервиса конфигурации
func NewService(
	configRepo ConfigRepository,
	defaults domain.SchedulingDefaults,
	logger Logger,
) *Service {
	return &Service{
		configRepo: configRepo,
		defaults:   defaults,
		logger:     logger,
	}
}

// Effective возвращает действующую конфигурацию для генерации слотов
// Приоритет: врач > отделение > глобальная > значения по умолчанию
// При недоступности хранилища используются значения по умолчанию
func (s *Service) Effective(ctx context.Context, departmentID int64, doctorID *int64, schedulingContext domain.SchedulingContext) *domain.SchedulingConfig {
	config, err := s.configRepo.GetConfigWithHierarchy(ctx, departmentID, doctorID, schedulingContext)
	if err == nil {
		s.logger.Info("Effective: using config id=%d (level: %s) for department=%d, context=%s",
			config.ID, getConfigLevel(config), departmentID, schedulingContext)
		return config
	}

	if !errors.Is(err, configRepo.ErrConfigNotFound) {
		s.logger.Error("Effective: repository unavailable, applying defaults for department=%d, context=%s: %v",
			departmentID, schedulingContext, err)
	}

	return s.defaults.For(schedulingContext)
}

// Get получает действующую конфигурацию
// Доступно всем ролям
func (s *Service) Get(ctx context.Context, req *models.GetConfigRequest) (*models.ConfigResponse, error) {
	s.logger.Info("Get: fetching config for department=%d, doctor=%v, context=%s",
		req.DepartmentID, req.DoctorID, req.Context)

	if err := validateScope(req.DepartmentID, req.DoctorID, req.Context); err != nil {
		s.logger.Warn("Get: validation failed: %v", err)
		return nil, err
	}

	return models.FromDomainConfig(s.Effective(ctx, req.DepartmentID, req.DoctorID, req.Context)), nil
}

// GetByID получает сохраненную конфигурацию по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.ConfigResponse, error) {
	s.logger.Info("GetByID: fetching config id=%d", id)

	config, err := s.configRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, configRepo.ErrConfigNotFound) {
			s.logger.Warn("GetByID: config id=%d not found", id)
			return nil, ErrConfigNotFound
		}
		s.logger.Error("GetByID: repository error for config id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainConfig(config), nil
}

// ListByDepartment получает все сохраненные конфигурации, действующие в отделении
func (s *Service) ListByDepartment(ctx context.Context, departmentID int64) (*models.ConfigListResponse, error) {
	s.logger.Info("ListByDepartment: fetching configs for department=%d", departmentID)

	if departmentID <= 0 {
		return nil, fmt.Errorf("%w: departmentId must be positive", ErrInvalidInput)
	}

	configs, err := s.configRepo.ListByDepartment(ctx, departmentID)
	if err != nil {
		s.logger.Error("ListByDepartment: repository error for department=%d: %v", departmentID, err)
		return nil, fmt.Errorf("%w: ListByDepartment - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListByDepartment: fetched %d configs for department=%d", len(configs), departmentID)
	return models.FromDomainConfigList(configs), nil
}

// Update создает или изменяет конфигурацию отделения или врача
// Доступно только администраторам
func (s *Service) Update(ctx context.Context, req *models.UpdateConfigRequest) (*models.ConfigResponse, error) {
	s.logger.Info("Update: updating config for department=%d, doctor=%v, context=%s by role=%s",
		req.DepartmentID, req.DoctorID, req.Context, req.Role)

	// 1. Проверяем права доступа
	if req.Role != domain.RoleAdmin {
		s.logger.Warn("Update: role=%s is not allowed to change scheduling config", req.Role)
		return nil, ErrAccessDenied
	}

	// 2. Валидируем область действия
	if err := validateScope(req.DepartmentID, req.DoctorID, req.Context); err != nil {
		s.logger.Warn("Update: validation failed: %v", err)
		return nil, err
	}
	if req.IntervalMinutes == nil && req.MaxSlots == nil {
		return nil, fmt.Errorf("%w: nothing to update", ErrInvalidInput)
	}

	// 3. Стартуем с сохраненной конфигурации этой области или с действующей
	config, err := s.configRepo.GetByScope(ctx, &req.DepartmentID, req.DoctorID, req.Context)
	if err != nil {
		if !errors.Is(err, configRepo.ErrConfigNotFound) {
			s.logger.Error("Update: failed to get existing config: %v", err)
			return nil, fmt.Errorf("%w: failed to get existing config: %v", ErrInternal, err)
		}

		effective := s.Effective(ctx, req.DepartmentID, req.DoctorID, req.Context)
		departmentID := req.DepartmentID
		config = &domain.SchedulingConfig{
			DepartmentID:    &departmentID,
			DoctorID:        req.DoctorID,
			Context:         req.Context,
			IntervalMinutes: effective.IntervalMinutes,
			MaxSlots:        effective.MaxSlots,
		}
	}

	// 4. Применяем изменения и проверяем границы
	req.ApplyToConfig(config)
	if err := validateConfigData(config.IntervalMinutes, config.MaxSlots); err != nil {
		s.logger.Warn("Update: validation failed: %v", err)
		return nil, err
	}

	// 5. Сохраняем
	saved, err := s.configRepo.Upsert(ctx, config)
	if err != nil {
		s.logger.Error("Update: repository error: %v", err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully saved config id=%d (level: %s)", saved.ID, getConfigLevel(saved))
	return models.FromDomainConfig(saved), nil
}

// Delete удаляет сохраненную конфигурацию
// Доступно только администраторам
func (s *Service) Delete(ctx context.Context, role domain.Role, id int64) error {
	s.logger.Info("Delete: deleting config id=%d by role=%s", id, role)

	if role != domain.RoleAdmin {
		s.logger.Warn("Delete: role=%s is not allowed to delete scheduling config", role)
		return ErrAccessDenied
	}

	if err := s.configRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, configRepo.ErrConfigNotFound) {
			s.logger.Warn("Delete: config id=%d not found", id)
			return ErrConfigNotFound
		}
		s.logger.Error("Delete: repository error for config id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted config id=%d", id)
	return nil
}

func validateScope(departmentID int64, doctorID *int64, schedulingContext domain.SchedulingContext) error {
	if departmentID <= 0 {
		return fmt.Errorf("%w: departmentId must be positive", ErrInvalidInput)
	}
	if doctorID != nil && *doctorID <= 0 {
		return fmt.Errorf("%w: doctorId must be positive", ErrInvalidInput)
	}
	if !schedulingContext.IsValid() {
		return fmt.Errorf("%w: unknown context %q", ErrInvalidInput, schedulingContext)
	}
	return nil
}

func validateConfigData(intervalMinutes, maxSlots int) error {
	if intervalMinutes < domain.MinIntervalMinutes || intervalMinutes > domain.MaxIntervalMinutes {
		return fmt.Errorf("%w: intervalMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinIntervalMinutes, domain.MaxIntervalMinutes)
	}
	if maxSlots < domain.MinMaxSlots || maxSlots > domain.MaxMaxSlots {
		return fmt.Errorf("%w: maxSlots must be between %d and %d",
			ErrInvalidInput, domain.MinMaxSlots, domain.MaxMaxSlots)
	}
	return nil
}

func getConfigLevel(config *domain.SchedulingConfig) string {
	switch {
	case config.IsDefault:
		return "default"
	case config.IsDoctorSpecific():
		return "doctor"
	case config.IsDepartmentWide():
		return "department"
	default:
		return "global"
	}
}
