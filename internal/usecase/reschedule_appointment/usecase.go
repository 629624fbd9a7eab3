package reschedule_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/HMS-AppointmentService/internal/domain"
	"github.com/m04kA/HMS-AppointmentService/internal/integrations/hospitalapi"
	"github.com/m04kA/HMS-AppointmentService/internal/scheduler"
	"github.com/m04kA/HMS-AppointmentService/pkg/metrics"
)

// UseCase use case для переноса записи на другой слот
type UseCase struct {
	client         HospitalClient
	configProvider ConfigProvider
	metrics        Metrics
	timeProvider   TimeProvider
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	client HospitalClient,
	configProvider ConfigProvider,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		client:         client,
		configProvider: configProvider,
		metrics:        metrics,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
	}
}

// Execute выполняет use case переноса записи
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RescheduleAppointment: appointment=%d, date=%s, token=%d",
		req.AppointmentID, req.Date.Format(domain.DateFormat), req.Token)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RescheduleAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()
	if isDateInPast(req.Date, now) {
		uc.logger.Warn("RescheduleAppointment: date %s is in the past", req.Date.Format(domain.DateFormat))
		return nil, ErrInvalidDate
	}

	// 3. Получаем запись
	appointment, err := uc.client.GetAppointment(ctx, req.AppointmentID)
	if err != nil {
		if errors.Is(err, hospitalapi.ErrAppointmentNotFound) {
			uc.logger.Warn("RescheduleAppointment: appointment id=%d not found", req.AppointmentID)
			return nil, ErrAppointmentNotFound
		}
		uc.logger.Error("RescheduleAppointment: failed to get appointment id=%d: %v", req.AppointmentID, err)
		return nil, fmt.Errorf("%w: failed to get appointment: %w", ErrBackendUnavailable, err)
	}

	// 4. Проверяем статус записи
	if !appointment.CanBeRescheduled() {
		uc.logger.Warn("RescheduleAppointment: appointment id=%d has status %s", appointment.ID, appointment.Status)
		return nil, ErrCannotReschedule
	}

	// 5. Получаем врача записи
	doctor, err := uc.client.GetDoctor(ctx, appointment.DoctorID)
	if err != nil {
		if errors.Is(err, hospitalapi.ErrDoctorNotFound) {
			uc.logger.Warn("RescheduleAppointment: doctor id=%d not found", appointment.DoctorID)
			return nil, ErrDoctorNotFound
		}
		uc.logger.Error("RescheduleAppointment: failed to get doctor id=%d: %v", appointment.DoctorID, err)
		return nil, fmt.Errorf("%w: failed to get doctor: %w", ErrBackendUnavailable, err)
	}

	if !doctor.HasSchedule() {
		uc.logger.Warn("RescheduleAppointment: doctor id=%d has no consultation time", doctor.ID)
		return nil, ErrNoSchedule
	}

	// 6. Получаем конфигурацию расписания для переноса
	config := uc.configProvider.Effective(ctx, doctor.DepartmentID, &doctor.ID, domain.ContextReschedule)

	// 7. Получаем занятые слоты на новую дату без самой записи
	booked, err := uc.client.GetBookedAppointments(ctx, doctor.ID, req.Date)
	if err != nil {
		uc.logger.Error("RescheduleAppointment: failed to get appointments for doctor id=%d: %v", doctor.ID, err)
		return nil, fmt.Errorf("%w: failed to get appointments: %w", ErrBackendUnavailable, err)
	}
	booked = scheduler.WithoutAppointment(booked, appointment, req.Date)

	// 8. Генерируем слоты
	slots := scheduler.GenerateSlots(scheduler.Request{
		ConsultationStart: doctor.ConsultationStart,
		Date:              req.Date,
		Booked:            booked,
		IntervalMinutes:   config.IntervalMinutes,
		MaxSlots:          config.MaxSlots,
		Now:               now,
	})

	if extra := req.Token - len(slots); extra > 0 && len(slots) > 0 {
		slots, err = scheduler.Expand(slots, booked, config.IntervalMinutes, extra)
		if err != nil {
			uc.logger.Warn("RescheduleAppointment: cannot add %d extra slots for token=%d: %v", extra, req.Token, err)
			return nil, fmt.Errorf("%w: %v", ErrSlotNotAvailable, err)
		}
	}

	// 9. Выбираем слот
	slots, err = scheduler.SelectSlot(slots, req.Token)
	if err != nil {
		uc.logger.Warn("RescheduleAppointment: cannot select token=%d: %v", req.Token, err)
		if errors.Is(err, scheduler.ErrSlotNotFound) {
			return nil, ErrSlotNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrSlotNotAvailable, err)
	}
	slot, _ := scheduler.Selected(slots)

	// 10. Перенос на тот же слот ничего не меняет
	if isSameDay(req.Date, appointment.Date) && slot.StartTime.Equal(appointment.Time) {
		uc.logger.Warn("RescheduleAppointment: appointment id=%d already holds %s", appointment.ID, slot.StartTime)
		return nil, ErrSameSlot
	}

	// 11. Отправляем перенос в бэкенд
	updated, err := uc.client.RescheduleAppointment(ctx, appointment.ID, hospitalapi.NewAppointmentRequest(
		0, doctor.ID, doctor.DepartmentID, req.Date, slot.StartTime))
	if err != nil {
		switch {
		case errors.Is(err, hospitalapi.ErrSlotTaken):
			uc.metrics.IncSubmission(metrics.SubmissionReschedule, metrics.OutcomeConflict)
			uc.logger.Warn("RescheduleAppointment: slot %s token=%d was taken concurrently", slot.StartTime, slot.Token)
			return nil, ErrSlotNotAvailable
		case errors.Is(err, hospitalapi.ErrAppointmentNotFound):
			uc.metrics.IncSubmission(metrics.SubmissionReschedule, metrics.OutcomeNotFound)
			uc.logger.Warn("RescheduleAppointment: appointment id=%d disappeared", appointment.ID)
			return nil, ErrAppointmentNotFound
		case errors.Is(err, hospitalapi.ErrRejected):
			uc.metrics.IncSubmission(metrics.SubmissionReschedule, metrics.OutcomeRejected)
			uc.logger.Warn("RescheduleAppointment: backend rejected reschedule: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrRejected, err)
		default:
			uc.metrics.IncSubmission(metrics.SubmissionReschedule, metrics.OutcomeError)
			uc.logger.Error("RescheduleAppointment: failed to reschedule appointment id=%d: %v", appointment.ID, err)
			return nil, fmt.Errorf("%w: failed to reschedule appointment: %w", ErrBackendUnavailable, err)
		}
	}

	uc.metrics.IncSubmission(metrics.SubmissionReschedule, metrics.OutcomeOK)
	uc.logger.Info("RescheduleAppointment: appointment id=%d moved from %s %s to %s %s",
		appointment.ID, appointment.Date.Format(domain.DateFormat), appointment.Time,
		req.Date.Format(domain.DateFormat), slot.StartTime)

	token := updated.Token
	if token == 0 {
		token = slot.Token
	}
	status := updated.Status
	if status == "" {
		status = domain.AppointmentRescheduled
	}

	return &Response{
		ID:           appointment.ID,
		PatientID:    appointment.PatientID,
		DoctorID:     doctor.ID,
		DepartmentID: doctor.DepartmentID,
		Date:         req.Date,
		StartTime:    slot.StartTime,
		EndTime:      slot.EndTime,
		Token:        token,
		Status:       string(status),
		PreviousDate: appointment.Date,
		PreviousTime: appointment.Time,
	}, nil
}
