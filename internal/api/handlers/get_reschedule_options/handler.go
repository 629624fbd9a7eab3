package get_reschedule_options

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/HMS-AppointmentService/internal/api/handlers"
	getRescheduleOptions "github.com/m04kA/HMS-AppointmentService/internal/usecase/get_reschedule_options"
)

const (
	msgInvalidAppointmentID = "некорректный ID записи"
	msgMissingDate          = "дата обязательна"
	msgInvalidQuery         = "некорректные параметры запроса: date в формате YYYY-MM-DD, extraSlots число"
	msgInvalidInput         = "некорректные параметры запроса"
	msgDateInPast           = "нельзя перенести запись на прошедшую дату"
	msgNotFound             = "запись не найдена"
	msgDoctorNotFound       = "врач не найден"
	msgCannotReschedule     = "запись не может быть перенесена"
	msgAppendNotAllowed     = "дополнительный слот можно добавить только когда все слоты заняты"
)

type Handler struct {
	useCase GetRescheduleOptionsUseCase
	logger  Logger
}

func NewHandler(useCase GetRescheduleOptionsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/appointments/{appointmentId}/reschedule-options
// Query params: date (required, YYYY-MM-DD), extraSlots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	appointmentID, err := strconv.ParseInt(vars["appointmentId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /appointments/{id}/reschedule-options - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	query := r.URL.Query()
	dateStr := query.Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /appointments/{id}/reschedule-options - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	useCaseReq, err := ToUseCaseRequest(appointmentID, dateStr, query.Get("extraSlots"))
	if err != nil {
		h.logger.Warn("GET /appointments/{id}/reschedule-options - Invalid query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getRescheduleOptions.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, getRescheduleOptions.ErrInvalidDate):
			h.logger.Warn("GET /appointments/{id}/reschedule-options - Date in past: appointment_id=%d, date=%s",
				appointmentID, dateStr)
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, getRescheduleOptions.ErrAppointmentNotFound):
			h.logger.Warn("GET /appointments/{id}/reschedule-options - Appointment not found: appointment_id=%d", appointmentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, getRescheduleOptions.ErrDoctorNotFound):
			h.logger.Warn("GET /appointments/{id}/reschedule-options - Doctor not found: appointment_id=%d", appointmentID)
			handlers.RespondNotFound(w, msgDoctorNotFound)

		case errors.Is(err, getRescheduleOptions.ErrCannotReschedule):
			h.logger.Warn("GET /appointments/{id}/reschedule-options - Cannot reschedule: appointment_id=%d", appointmentID)
			handlers.RespondConflict(w, msgCannotReschedule)

		case errors.Is(err, getRescheduleOptions.ErrAppendNotAllowed):
			handlers.RespondConflict(w, msgAppendNotAllowed)

		case errors.Is(err, getRescheduleOptions.ErrBackendUnavailable):
			h.logger.Error("GET /appointments/{id}/reschedule-options - Backend error: appointment_id=%d, error=%v",
				appointmentID, err)
			handlers.RespondBackendError(w, err)

		default:
			h.logger.Error("GET /appointments/{id}/reschedule-options - Failed to get options: appointment_id=%d, error=%v",
				appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /appointments/{id}/reschedule-options - Options retrieved: appointment_id=%d, date=%s, slots_count=%d",
		appointmentID, dateStr, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
