package get_scheduling_config

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/HMS-AppointmentService/internal/api/handlers"
	"github.com/m04kA/HMS-AppointmentService/internal/service/config"
)

const (
	msgInvalidDepartmentID = "некорректный ID отделения"
	msgInvalidParams       = "некорректные параметры запроса"
)

type Handler struct {
	service ConfigService
	logger  Logger
}

func NewHandler(service ConfigService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/departments/{departmentId}/scheduling-config
// Query params: doctorId, context (опционально)
// Если сохраненной конфигурации нет, возвращаются значения по умолчанию
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	departmentID, err := strconv.ParseInt(vars["departmentId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /departments/{id}/scheduling-config - Invalid department ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDepartmentID)
		return
	}

	serviceReq, err := ToServiceRequest(departmentID, r.URL.Query().Get("doctorId"), r.URL.Query().Get("context"))
	if err != nil {
		h.logger.Warn("GET /departments/{id}/scheduling-config - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.Get(r.Context(), serviceReq)
	if err != nil {
		if errors.Is(err, config.ErrInvalidInput) {
			h.logger.Warn("GET /departments/{id}/scheduling-config - Invalid parameters: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)
			return
		}

		h.logger.Error("GET /departments/{id}/scheduling-config - Failed to get config: department_id=%d, error=%v",
			departmentID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /departments/{id}/scheduling-config - Config retrieved: department_id=%d, config_id=%d, default=%t",
		departmentID, result.ID, result.IsDefault)
	handlers.RespondJSON(w, http.StatusOK, result)
}
