package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/HMS-AppointmentService/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/HMS-AppointmentService/internal/usecase/get_available_slots"
)

const (
	msgInvalidDoctorID  = "некорректный ID врача"
	msgMissingDate      = "дата обязательна"
	msgInvalidQuery     = "некорректные параметры запроса: date в формате YYYY-MM-DD, extraSlots число"
	msgInvalidInput     = "некорректные параметры запроса"
	msgDateInPast       = "нельзя получить слоты на прошедшую дату"
	msgDoctorNotFound   = "врач не найден"
	msgAppendNotAllowed = "дополнительный слот можно добавить только когда все слоты заняты"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/doctors/{doctorId}/available-slots
// Query params: date (required, YYYY-MM-DD), context (booking|reschedule), extraSlots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	// Извлекаем doctorId из URL
	doctorID, err := strconv.ParseInt(vars["doctorId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /doctors/{id}/available-slots - Invalid doctor ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDoctorID)
		return
	}

	query := r.URL.Query()
	dateStr := query.Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /doctors/{id}/available-slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	useCaseReq, err := ToUseCaseRequest(doctorID, dateStr, query.Get("context"), query.Get("extraSlots"))
	if err != nil {
		h.logger.Warn("GET /doctors/{id}/available-slots - Invalid query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /doctors/{id}/available-slots - Invalid input: doctor_id=%d, error=%v", doctorID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, getAvailableSlots.ErrInvalidDate):
			h.logger.Warn("GET /doctors/{id}/available-slots - Date in past: doctor_id=%d, date=%s", doctorID, dateStr)
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, getAvailableSlots.ErrDoctorNotFound):
			h.logger.Warn("GET /doctors/{id}/available-slots - Doctor not found: doctor_id=%d", doctorID)
			handlers.RespondNotFound(w, msgDoctorNotFound)

		case errors.Is(err, getAvailableSlots.ErrAppendNotAllowed):
			h.logger.Warn("GET /doctors/{id}/available-slots - Append not allowed: doctor_id=%d, extra=%d",
				doctorID, useCaseReq.ExtraSlots)
			handlers.RespondConflict(w, msgAppendNotAllowed)

		case errors.Is(err, getAvailableSlots.ErrBackendUnavailable):
			h.logger.Error("GET /doctors/{id}/available-slots - Backend error: doctor_id=%d, error=%v", doctorID, err)
			handlers.RespondBackendError(w, err)

		default:
			h.logger.Error("GET /doctors/{id}/available-slots - Failed to get slots: doctor_id=%d, error=%v", doctorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("GET /doctors/{id}/available-slots - Slots retrieved successfully: doctor_id=%d, date=%s, slots_count=%d",
		doctorID, dateStr, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, response)
}
