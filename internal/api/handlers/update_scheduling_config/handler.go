package update_scheduling_config

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/HMS-AppointmentService/internal/api/handlers"
	"github.com/m04kA/HMS-AppointmentService/internal/api/middleware"
	"github.com/m04kA/HMS-AppointmentService/internal/service/config"
)

const (
	msgInvalidDepartmentID = "некорректный ID отделения"
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgUnauthorized        = "требуется вход в систему"
	msgForbidden           = "доступ запрещен"
	msgInvalidData         = "некорректные данные конфигурации"
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

// Handle PUT /api/v1/departments/{departmentId}/scheduling-config
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	departmentID, err := strconv.ParseInt(vars["departmentId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /departments/{id}/scheduling-config - Invalid department ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDepartmentID)
		return
	}

	role, ok := middleware.GetRole(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req UpdateSchedulingConfigRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /departments/{id}/scheduling-config - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Сервис сам проверит права администратора
	result, err := h.service.Update(r.Context(), req.ToServiceRequest(departmentID, role))
	if err != nil {
		switch {
		case errors.Is(err, config.ErrAccessDenied):
			h.logger.Warn("PUT /departments/{id}/scheduling-config - Access denied: department_id=%d, role=%s",
				departmentID, role)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, config.ErrInvalidInput):
			h.logger.Warn("PUT /departments/{id}/scheduling-config - Invalid data: department_id=%d, error=%v",
				departmentID, err)
			handlers.RespondBadRequest(w, msgInvalidData)

		default:
			h.logger.Error("PUT /departments/{id}/scheduling-config - Failed to update config: department_id=%d, error=%v",
				departmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /departments/{id}/scheduling-config - Config updated successfully: department_id=%d, config_id=%d",
		departmentID, result.ID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
