package login

import (
	"errors"
	"net/http"

	"github.com/m04kA/HMS-AppointmentService/internal/api/handlers"
	"github.com/m04kA/HMS-AppointmentService/internal/service/sessions"
	"github.com/m04kA/HMS-AppointmentService/internal/service/sessions/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "требуются имя пользователя, пароль и роль"
	msgInvalidCredentials = "неверное имя пользователя или пароль"
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

// Handle POST /api/v1/sessions
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /sessions - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Login(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, sessions.ErrInvalidInput):
			h.logger.Warn("POST /sessions - Invalid input: username=%s, role=%s", req.Username, req.Role)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, sessions.ErrInvalidCredentials):
			h.logger.Warn("POST /sessions - Invalid credentials: username=%s, role=%s", req.Username, req.Role)
			handlers.RespondUnauthorized(w, msgInvalidCredentials)

		case errors.Is(err, sessions.ErrBackendUnavailable):
			h.logger.Error("POST /sessions - Backend unavailable: username=%s, error=%v", req.Username, err)
			handlers.RespondBackendError(w, err)

		default:
			h.logger.Error("POST /sessions - Failed to login: username=%s, error=%v", req.Username, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /sessions - Session created: username=%s, role=%s", result.Username, result.Role)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
