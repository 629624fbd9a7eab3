package models

import (
	"encoding/json"

	"github.com/m04kA/HMS-AppointmentService/internal/domain"
)

// LoginRequest запрос на вход в дашборд
type LoginRequest struct {
	Username string      `json:"username"`
	Password string      `json:"password"`
	Role     domain.Role `json:"role"`
}

// LoginResponse ответ с идентификатором созданной сессии
type LoginResponse struct {
	SessionID string          `json:"sessionId"`
	Role      domain.Role     `json:"role"`
	Username  string          `json:"username"`
	Profile   json.RawMessage `json:"profile,omitempty"`
}
