package create_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/HMS-AppointmentService/internal/domain"
	"github.com/m04kA/HMS-AppointmentService/internal/integrations/hospitalapi"
	"github.com/m04kA/HMS-AppointmentService/internal/scheduler"
	"github.com/m04kA/HMS-AppointmentService/pkg/metrics"
)

// UseCase use case для записи пациента на слот
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

// Execute выполняет use case создания записи
// Слоты пересчитываются заново, выбранному токену доверять нельзя
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: patient=%d, doctor=%d, department=%d, date=%s, token=%d",
		req.PatientID, req.DoctorID, req.DepartmentID, req.Date.Format(domain.DateFormat), req.Token)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()
	if isDateInPast(req.Date, now) {
		uc.logger.Warn("CreateAppointment: date %s is in the past", req.Date.Format(domain.DateFormat))
		return nil, ErrInvalidDate
	}

	// 3. Получаем врача
	doctor, err := uc.client.GetDoctor(ctx, req.DoctorID)
	if err != nil {
		if errors.Is(err, hospitalapi.ErrDoctorNotFound) {
			uc.logger.Warn("CreateAppointment: doctor id=%d not found", req.DoctorID)
			return nil, ErrDoctorNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get doctor id=%d: %v", req.DoctorID, err)
		return nil, fmt.Errorf("%w: failed to get doctor: %w", ErrBackendUnavailable, err)
	}

	// 4. Врач должен работать в указанном отделении
	if doctor.DepartmentID != req.DepartmentID {
		uc.logger.Warn("CreateAppointment: doctor id=%d belongs to department=%d, not %d",
			doctor.ID, doctor.DepartmentID, req.DepartmentID)
		return nil, ErrDepartmentMismatch
	}

	// 5. Без времени начала приема записаться нельзя
	if !doctor.HasSchedule() {
		uc.logger.Warn("CreateAppointment: doctor id=%d has no consultation time", doctor.ID)
		return nil, ErrNoSchedule
	}

	// 6. Получаем конфигурацию расписания для записи
	config := uc.configProvider.Effective(ctx, doctor.DepartmentID, &doctor.ID, domain.ContextBooking)

	// 7. Получаем занятые слоты
	booked, err := uc.client.GetBookedAppointments(ctx, doctor.ID, req.Date)
	if err != nil {
		uc.logger.Error("CreateAppointment: failed to get appointments for doctor id=%d: %v", doctor.ID, err)
		return nil, fmt.Errorf("%w: failed to get appointments: %w", ErrBackendUnavailable, err)
	}

	// 8. Генерируем слоты
	slots := scheduler.GenerateSlots(scheduler.Request{
		ConsultationStart: doctor.ConsultationStart,
		Date:              req.Date,
		Booked:            booked,
		IntervalMinutes:   config.IntervalMinutes,
		MaxSlots:          config.MaxSlots,
		Now:               now,
	})

	// 9. Токен за пределами списка возможен только для добавленных вручную слотов
	if extra := req.Token - len(slots); extra > 0 && len(slots) > 0 {
		slots, err = scheduler.Expand(slots, booked, config.IntervalMinutes, extra)
		if err != nil {
			uc.logger.Warn("CreateAppointment: cannot add %d extra slots for token=%d: %v", extra, req.Token, err)
			return nil, fmt.Errorf("%w: %v", ErrSlotNotAvailable, err)
		}
	}

	// 10. Выбираем слот
	slots, err = scheduler.SelectSlot(slots, req.Token)
	if err != nil {
		uc.logger.Warn("CreateAppointment: cannot select token=%d: %v", req.Token, err)
		if errors.Is(err, scheduler.ErrSlotNotFound) {
			return nil, ErrSlotNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrSlotNotAvailable, err)
	}
	slot, _ := scheduler.Selected(slots)

	// 11. Отправляем запись в бэкенд
	created, err := uc.client.CreateAppointment(ctx, hospitalapi.NewAppointmentRequest(
		req.PatientID, doctor.ID, doctor.DepartmentID, req.Date, slot.StartTime))
	if err != nil {
		switch {
		case errors.Is(err, hospitalapi.ErrSlotTaken):
			uc.metrics.IncSubmission(metrics.SubmissionCreate, metrics.OutcomeConflict)
			uc.logger.Warn("CreateAppointment: slot %s token=%d was taken concurrently", slot.StartTime, slot.Token)
			return nil, ErrSlotNotAvailable
		case errors.Is(err, hospitalapi.ErrRejected):
			uc.metrics.IncSubmission(metrics.SubmissionCreate, metrics.OutcomeRejected)
			uc.logger.Warn("CreateAppointment: backend rejected appointment: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrRejected, err)
		default:
			uc.metrics.IncSubmission(metrics.SubmissionCreate, metrics.OutcomeError)
			uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
			return nil, fmt.Errorf("%w: failed to create appointment: %w", ErrBackendUnavailable, err)
		}
	}

	uc.metrics.IncSubmission(metrics.SubmissionCreate, metrics.OutcomeOK)
	uc.logger.Info("CreateAppointment: successfully created appointment id=%d, token=%d, time=%s",
		created.ID, slot.Token, slot.StartTime)

	// Бэкенд может не вернуть токен, тогда используем выбранный
	token := created.Token
	if token == 0 {
		token = slot.Token
	}

	return &Response{
		ID:              created.ID,
		PatientID:       req.PatientID,
		DoctorID:        doctor.ID,
		DepartmentID:    doctor.DepartmentID,
		Date:            req.Date,
		StartTime:       slot.StartTime,
		EndTime:         slot.EndTime,
		Token:           token,
		Status:          string(created.Status),
		ConsultationFee: doctor.ConsultationFee,
		CreatedAt:       created.CreatedAt,
	}, nil
}
