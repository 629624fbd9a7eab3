package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/HMS-AppointmentService/internal/domain"
	"github.com/m04kA/HMS-AppointmentService/internal/integrations/hospitalapi"
	"github.com/m04kA/HMS-AppointmentService/internal/scheduler"
)

// UseCase use case для получения слотов врача на дату
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

// Execute выполняет use case получения слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: doctor=%d, date=%s, context=%s, extra=%d",
		req.DoctorID, req.Date.Format(domain.DateFormat), req.Context, req.ExtraSlots)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()
	if isDateInPast(req.Date, now) {
		uc.logger.Warn("GetAvailableSlots: date %s is in the past", req.Date.Format(domain.DateFormat))
		return nil, ErrInvalidDate
	}

	// 3. Получаем врача
	doctor, err := uc.client.GetDoctor(ctx, req.DoctorID)
	if err != nil {
		if errors.Is(err, hospitalapi.ErrDoctorNotFound) {
			uc.logger.Warn("GetAvailableSlots: doctor id=%d not found", req.DoctorID)
			return nil, ErrDoctorNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get doctor id=%d: %v", req.DoctorID, err)
		return nil, fmt.Errorf("%w: failed to get doctor: %w", ErrBackendUnavailable, err)
	}

	resp := &Response{
		DoctorID:        doctor.ID,
		DepartmentID:    doctor.DepartmentID,
		Date:            req.Date,
		Context:         req.Context,
		ConsultationFee: doctor.ConsultationFee,
		HasSchedule:     doctor.HasSchedule(),
		Slots:           []domain.Slot{},
	}

	// 4. Без времени начала приема слотов нет
	if !doctor.HasSchedule() {
		uc.logger.Info("GetAvailableSlots: doctor id=%d has no consultation time", doctor.ID)
		return resp, nil
	}

	// 5. Получаем конфигурацию расписания с учетом иерархии
	config := uc.configProvider.Effective(ctx, doctor.DepartmentID, &doctor.ID, req.Context)
	resp.IntervalMinutes = config.IntervalMinutes

	// 6. Получаем занятые слоты (404 уже означает пустой список)
	booked, err := uc.client.GetBookedAppointments(ctx, doctor.ID, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get appointments for doctor id=%d: %v", doctor.ID, err)
		return nil, fmt.Errorf("%w: failed to get appointments: %w", ErrBackendUnavailable, err)
	}

	// 7. Генерируем слоты
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
		uc.logger.Info("GetAvailableSlots: slot list cut at midnight: doctor=%d, date=%s, slots=%d of %d",
			doctor.ID, req.Date.Format(domain.DateFormat), len(slots), config.MaxSlots)
	}

	// 8. Добавляем слоты, добавленные вручную
	slots, err = scheduler.Expand(slots, booked, config.IntervalMinutes, req.ExtraSlots)
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: cannot add %d extra slots: %v", req.ExtraSlots, err)
		return nil, fmt.Errorf("%w: %v", ErrAppendNotAllowed, err)
	}

	uc.metrics.AddSlotsGenerated(string(req.Context), len(slots))

	resp.Slots = slots
	resp.NeedsAdditionalSlot = scheduler.NeedsAdditionalSlot(slots)

	uc.logger.Info("GetAvailableSlots: generated %d slots for doctor=%d, date=%s, booked=%d, needsAdditional=%t",
		len(slots), doctor.ID, req.Date.Format(domain.DateFormat), len(booked), resp.NeedsAdditionalSlot)

	return resp, nil
}
