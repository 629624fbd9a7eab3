package appointments

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/HMS-AppointmentService/internal/domain"
	"github.com/m04kA/HMS-AppointmentService/internal/integrations/hospitalapi"
	"github.com/m04kA/HMS-AppointmentService/internal/service/appointments/models"
)

// Роли, которым разрешено отменять записи
var cancelRoles = map[domain.Role]bool{
	domain.RoleAdmin:        true,
	domain.RoleReceptionist: true,
	domain.RoleDoctor:       true,
}

// Service сервис для работы с записями на прием
type Service struct {
	client HospitalClient
	logger Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(client HospitalClient, logger Logger) *Service {
	return &Service{
		client: client,
		logger: logger,
	}
}

// GetByID получает запись по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%d", id)

	appointment, err := s.get(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	return models.FromDomainAppointment(appointment), nil
}

// Cancel отменяет запись с указанием причины
func (s *Service) Cancel(ctx context.Context, id int64, req *models.CancelAppointmentRequest) error {
	s.logger.Info("Cancel: cancelling appointment id=%d by role=%s", id, req.Role)

	// 1. Проверяем права доступа
	if !cancelRoles[req.Role] {
		s.logger.Warn("Cancel: role=%s is not allowed to cancel appointments", req.Role)
		return ErrAccessDenied
	}

	// 2. Валидируем причину отмены
	reason := strings.TrimSpace(req.CancellationReason)
	if reason == "" {
		return fmt.Errorf("%w: cancellationReason is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(reason) > domain.MaxCancellationReasonLength {
		return fmt.Errorf("%w: cancellationReason must not exceed %d characters",
			ErrInvalidInput, domain.MaxCancellationReasonLength)
	}

	// 3. Получаем запись и проверяем статус
	appointment, err := s.get(ctx, "Cancel", id)
	if err != nil {
		return err
	}
	if !appointment.CanBeCancelled() {
		s.logger.Warn("Cancel: appointment id=%d cannot be cancelled, status=%s", id, appointment.Status)
		return ErrCannotCancel
	}

	// 4. Отменяем запись в бэкенде
	if err := s.client.CancelAppointment(ctx, id, reason); err != nil {
		switch {
		case errors.Is(err, hospitalapi.ErrAppointmentNotFound):
			s.logger.Warn("Cancel: appointment id=%d not found during cancellation", id)
			return ErrAppointmentNotFound
		case errors.Is(err, hospitalapi.ErrRejected):
			s.logger.Warn("Cancel: backend rejected cancellation of appointment id=%d: %v", id, err)
			return fmt.Errorf("%w: %v", ErrCannotCancel, err)
		default:
			s.logger.Error("Cancel: backend error for appointment id=%d: %v", id, err)
			return fmt.Errorf("%w: Cancel: %w", ErrBackendUnavailable, err)
		}
	}

	s.logger.Info("Cancel: successfully cancelled appointment id=%d", id)
	return nil
}

func (s *Service) get(ctx context.Context, op string, id int64) (*domain.Appointment, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: appointmentId must be positive", ErrInvalidInput)
	}

	appointment, err := s.client.GetAppointment(ctx, id)
	if err != nil {
		if errors.Is(err, hospitalapi.ErrAppointmentNotFound) {
			s.logger.Warn("%s: appointment id=%d not found", op, id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("%s: backend error for appointment id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s: %w", ErrBackendUnavailable, op, err)
	}

	return appointment, nil
}
