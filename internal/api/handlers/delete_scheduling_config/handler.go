package delete_scheduling_config

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
	msgInvalidConfigID = "некорректный ID конфигурации"
	msgUnauthorized    = "требуется вход в систему"
	msgForbidden       = "доступ запрещен"
	msgNotFound        = "конфигурация не найдена"
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

// Handle DELETE /api/v1/scheduling-configs/{configId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	configID, err := strconv.ParseInt(vars["configId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /scheduling-configs/{id} - Invalid config ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidConfigID)
		return
	}

	role, ok := middleware.GetRole(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	if err := h.service.Delete(r.Context(), role, configID); err != nil {
		switch {
		case errors.Is(err, config.ErrAccessDenied):
			h.logger.Warn("DELETE /scheduling-configs/{id} - Access denied: config_id=%d, role=%s", configID, role)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, config.ErrConfigNotFound):
			h.logger.Warn("DELETE /scheduling-configs/{id} - Config not found: config_id=%d", configID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("DELETE /scheduling-configs/{id} - Failed to delete config: config_id=%d, error=%v",
				configID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /scheduling-configs/{id} - Config deleted successfully: config_id=%d", configID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
