package create_appointment

import (
	"errors"
	"net/http"

	"github.com/m04kA/HMS-AppointmentService/internal/api/handlers"
	createAppointment "github.com/m04kA/HMS-AppointmentService/internal/usecase/create_appointment"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты приема, ожидается YYYY-MM-DD"
	msgInvalidInput       = "требуются patientId, doctorId, departmentId и token"
	msgDateInPast         = "нельзя записаться на прошедшую дату"
	msgDoctorNotFound     = "врач не найден"
	msgDepartmentMismatch = "врач не работает в указанном отделении"
	msgNoSchedule         = "у врача не задано время приема"
	msgSlotNotFound       = "слот не найден"
	msgSlotNotAvailable   = "выбранный слот недоступен"
	msgRejected           = "запись отклонена сервисом больницы"
)

type Handler struct {
	useCase CreateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase CreateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /appointments - Failed to parse date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createAppointment.ErrInvalidInput):
			h.logger.Warn("POST /appointments - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createAppointment.ErrInvalidDate):
			h.logger.Warn("POST /appointments - Date in past: date=%s", req.AppointmentDate)
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, createAppointment.ErrDoctorNotFound):
			h.logger.Warn("POST /appointments - Doctor not found: doctor_id=%d", req.DoctorID)
			handlers.RespondNotFound(w, msgDoctorNotFound)

		case errors.Is(err, createAppointment.ErrDepartmentMismatch):
			h.logger.Warn("POST /appointments - Department mismatch: doctor_id=%d, department_id=%d",
				req.DoctorID, req.DepartmentID)
			handlers.RespondBadRequest(w, msgDepartmentMismatch)

		case errors.Is(err, createAppointment.ErrNoSchedule):
			h.logger.Warn("POST /appointments - Doctor has no schedule: doctor_id=%d", req.DoctorID)
			handlers.RespondBadRequest(w, msgNoSchedule)

		case errors.Is(err, createAppointment.ErrSlotNotFound):
			h.logger.Warn("POST /appointments - Slot not found: doctor_id=%d, token=%d", req.DoctorID, req.Token)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, createAppointment.ErrSlotNotAvailable):
			h.logger.Warn("POST /appointments - Slot not available: doctor_id=%d, token=%d", req.DoctorID, req.Token)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, createAppointment.ErrRejected):
			h.logger.Warn("POST /appointments - Rejected by backend: patient_id=%d, error=%v", req.PatientID, err)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgRejected)

		case errors.Is(err, createAppointment.ErrBackendUnavailable):
			h.logger.Error("POST /appointments - Backend error: patient_id=%d, doctor_id=%d, error=%v",
				req.PatientID, req.DoctorID, err)
			handlers.RespondBackendError(w, err)

		default:
			h.logger.Error("POST /appointments - Failed to create appointment: patient_id=%d, doctor_id=%d, error=%v",
				req.PatientID, req.DoctorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /appointments - Appointment created successfully: appointment_id=%d, patient_id=%d, doctor_id=%d, token=%d",
		result.ID, result.PatientID, result.DoctorID, result.Token)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
