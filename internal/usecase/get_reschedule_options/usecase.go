package get_reschedule_options

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/HMS-AppointmentService/internal/domain"
	"github.com/m04kA/HMS-AppointmentService/internal/integrations/hospitalapi"
	"github.com/m04kA/HMS-AppointmentService/internal/scheduler"
)

// UseCase use case для получения слотов, на которые можно перенести запись
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

// Execute выполняет use case получения слотов для переноса
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetRescheduleOptions: appointment=%d, date=%s, extra=%d",
		req.AppointmentID, req.Date.Format(domain.DateFormat), req.ExtraSlots)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetRescheduleOptions: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()
	if isDateInPast(req.Date, now) {
		uc.logger.Warn("GetRescheduleOptions: date %s is in the past", req.Date.Format(domain.DateFormat))
		return nil, ErrInvalidDate
	}

	// 3. Получаем запись
	appointment, err := uc.client.GetAppointment(ctx, req.AppointmentID)
	if err != nil {
		if errors.Is(err, hospitalapi.ErrAppointmentNotFound) {
			uc.logger.Warn("GetRescheduleOptions: appointment id=%d not found", req.AppointmentID)
			return nil, ErrAppointmentNotFound
		}
		uc.logger.Error("GetRescheduleOptions: failed to get appointment id=%d: %v", req.AppointmentID, err)
		return nil, fmt.Errorf("%w: failed to get appointment: %w", ErrBackendUnavailable, err)
	}

	// 4. Проверяем статус записи
	if !appointment.CanBeRescheduled() {
		uc.logger.Warn("GetRescheduleOptions: appointment id=%d has status %s", appointment.ID, appointment.Status)
		return nil, ErrCannotReschedule
	}

	// 5. Получаем врача записи
	doctor, err := uc.client.GetDoctor(ctx, appointment.DoctorID)
	if err != nil {
		if errors.Is(err, hospitalapi.ErrDoctorNotFound) {
			uc.logger.Warn("GetRescheduleOptions: doctor id=%d not found", appointment.DoctorID)
			return nil, ErrDoctorNotFound
		}
		uc.logger.Error("GetRescheduleOptions: failed to get doctor id=%d: %v", appointment.DoctorID, err)
		return nil, fmt.Errorf("%w: failed to get doctor: %w", ErrBackendUnavailable, err)
	}

	resp := &Response{
		AppointmentID: appointment.ID,
		DoctorID:      doctor.ID,
		DepartmentID:  doctor.DepartmentID,
		Date:          req.Date,
		CurrentDate:   appointment.Date,
		CurrentTime:   appointment.Time,
		CurrentToken:  appointment.Token,
		HasSchedule:   doctor.HasSchedule(),
		Slots:         []domain.Slot{},
	}

	if !doctor.HasSchedule() {
		uc.logger.Info("GetRescheduleOptions: doctor id=%d has no consultation time", doctor.ID)
		return resp, nil
	}

	// 6. Получаем конфигурацию расписания для переноса
	config := uc.configProvider.Effective(ctx, doctor.DepartmentID, &doctor.ID, domain.ContextReschedule)
	resp.IntervalMinutes = config.IntervalMinutes

	// 7. Получаем занятые слоты на новую дату без самой записи
	booked, err := uc.client.GetBookedAppointments(ctx, doctor.ID, req.Date)
	if err != nil {
		uc.logger.Error("GetRescheduleOptions: failed to get appointments for doctor id=%d: %v", doctor.ID, err)
		return nil, fmt.Errorf("%w: failed to get appointments: %w", ErrBackendUnavailable, err)
	}
	booked = scheduler.WithoutAppointment(booked, appointment, req.Date)

	// 8. Генерируем слоты
	slotsReq := scheduler.Request{
		ConsultationStart: doctor.ConsultationStart,
		Date:              req.Date,
		Booked:            booked,
		IntervalMinutes:   config.IntervalMinutes,
		MaxSlots:          config.MaxSlots,
		Now:               now,
	}
	slots := scheduler.GenerateSlots(slotsReq)
	if scheduler.Truncated(slotsReq, slots) {
		resp.Truncated = true
		uc.logger.Info("GetRescheduleOptions: slot list cut at midnight: doctor=%d, date=%s, slots=%d of %d",
			doctor.ID, req.Date.Format(domain.DateFormat), len(slots), config.MaxSlots)
	}

	slots, err = scheduler.Expand(slots, booked, config.IntervalMinutes, req.ExtraSlots)
	if err != nil {
		uc.logger.Warn("GetRescheduleOptions: cannot add %d extra slots: %v", req.ExtraSlots, err)
		return nil, fmt.Errorf("%w: %v", ErrAppendNotAllowed, err)
	}

	// 9. В тот же день предвыбираем текущий слот записи
	if isSameDay(req.Date, appointment.Date) {
		if current, ok := scheduler.MatchesCurrentAppointment(slots, appointment.Time); ok {
			selected, err := scheduler.SelectSlot(slots, current.Token)
			if err == nil {
				slots = selected
				token := current.Token
				resp.SelectedToken = &token
			}
		}
	}

	uc.metrics.AddSlotsGenerated(string(domain.ContextReschedule), len(slots))

	resp.Slots = slots
	resp.NeedsAdditionalSlot = scheduler.NeedsAdditionalSlot(slots)

	uc.logger.Info("GetRescheduleOptions: generated %d slots for appointment=%d, date=%s, preselected=%t",
		len(slots), appointment.ID, req.Date.Format(domain.DateFormat), resp.SelectedToken != nil)

	return resp, nil
}
