package reschedule_appointment

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/HMS-AppointmentService/internal/api/handlers"
	rescheduleAppointment "github.com/m04kA/HMS-AppointmentService/internal/usecase/reschedule_appointment"
)

const (
	msgInvalidAppointmentID = "некорректный ID записи"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidDate          = "некорректный формат даты приема, ожидается YYYY-MM-DD"
	msgInvalidInput         = "требуется token нового слота"
	msgDateInPast           = "нельзя перенести запись на прошедшую дату"
	msgNotFound             = "запись не найдена"
	msgDoctorNotFound       = "врач не найден"
	msgCannotReschedule     = "запись не может быть перенесена"
	msgNoSchedule           = "у врача не задано время приема"
	msgSameSlot             = "запись уже занимает этот слот"
	msgSlotNotFound         = "слот не найден"
	msgSlotNotAvailable     = "выбранный слот недоступен"
	msgRejected             = "перенос отклонен сервисом больницы"
)

type Handler struct {
	useCase RescheduleAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase RescheduleAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PUT /api/v1/appointments/{appointmentId}/reschedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	appointmentID, err := strconv.ParseInt(vars["appointmentId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /appointments/{id}/reschedule - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	var req RescheduleAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /appointments/{id}/reschedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(appointmentID)
	if err != nil {
		h.logger.Warn("PUT /appointments/{id}/reschedule - Failed to parse date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, rescheduleAppointment.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, rescheduleAppointment.ErrInvalidDate):
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, rescheduleAppointment.ErrAppointmentNotFound):
			h.logger.Warn("PUT /appointments/{id}/reschedule - Appointment not found: appointment_id=%d", appointmentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, rescheduleAppointment.ErrDoctorNotFound):
			handlers.RespondNotFound(w, msgDoctorNotFound)

		case errors.Is(err, rescheduleAppointment.ErrCannotReschedule):
			h.logger.Warn("PUT /appointments/{id}/reschedule - Cannot reschedule: appointment_id=%d", appointmentID)
			handlers.RespondConflict(w, msgCannotReschedule)

		case errors.Is(err, rescheduleAppointment.ErrNoSchedule):
			handlers.RespondBadRequest(w, msgNoSchedule)

		case errors.Is(err, rescheduleAppointment.ErrSameSlot):
			handlers.RespondBadRequest(w, msgSameSlot)

		case errors.Is(err, rescheduleAppointment.ErrSlotNotFound):
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, rescheduleAppointment.ErrSlotNotAvailable):
			h.logger.Warn("PUT /appointments/{id}/reschedule - Slot not available: appointment_id=%d, token=%d",
				appointmentID, req.Token)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, rescheduleAppointment.ErrRejected):
			h.logger.Warn("PUT /appointments/{id}/reschedule - Rejected by backend: appointment_id=%d, error=%v",
				appointmentID, err)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgRejected)

		case errors.Is(err, rescheduleAppointment.ErrBackendUnavailable):
			h.logger.Error("PUT /appointments/{id}/reschedule - Backend error: appointment_id=%d, error=%v",
				appointmentID, err)
			handlers.RespondBackendError(w, err)

		default:
			h.logger.Error("PUT /appointments/{id}/reschedule - Failed to reschedule: appointment_id=%d, error=%v",
				appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /appointments/{id}/reschedule - Appointment rescheduled successfully: appointment_id=%d, token=%d",
		appointmentID, result.Token)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
