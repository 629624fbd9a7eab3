package logout

import (
	"net/http"

	"github.com/m04kA/HMS-AppointmentService/internal/api/handlers"
	"github.com/m04kA/HMS-AppointmentService/internal/api/middleware"
)

type Handler struct {
	service SessionService
	logger  Logger
}

func NewHandler(service SessionService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/sessions
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID := r.Header.Get(middleware.SessionHeader)

	if err := h.service.Logout(r.Context(), sessionID); err != nil {
		h.logger.Error("DELETE /sessions - Failed to logout: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("DELETE /sessions - Session removed")
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
