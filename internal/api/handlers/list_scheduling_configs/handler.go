package list_scheduling_configs

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/HMS-AppointmentService/internal/api/handlers"
	"github.com/m04kA/HMS-AppointmentService/internal/service/config"
)

const msgInvalidDepartmentID = "некорректный ID отделения"

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

// Handle GET /api/v1/departments/{departmentId}/scheduling-configs
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	departmentID, err := strconv.ParseInt(vars["departmentId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /departments/{id}/scheduling-configs - Invalid department ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDepartmentID)
		return
	}

	result, err := h.service.ListByDepartment(r.Context(), departmentID)
	if err != nil {
		if errors.Is(err, config.ErrInvalidInput) {
			handlers.RespondBadRequest(w, msgInvalidDepartmentID)
			return
		}

		h.logger.Error("GET /departments/{id}/scheduling-configs - Failed to list configs: department_id=%d, error=%v",
			departmentID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /departments/{id}/scheduling-configs - Configs retrieved: department_id=%d, count=%d",
		departmentID, len(result.Configs))
	handlers.RespondJSON(w, http.StatusOK, result)
}
