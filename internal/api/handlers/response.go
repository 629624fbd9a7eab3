package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/m04kA/HMS-AppointmentService/internal/integrations/hospitalapi"
)

const (
	msgInternalError      = "внутренняя ошибка сервера"
	msgBackendUnavailable = "сервис больницы недоступен"
	msgBackendSession     = "сессия в сервисе больницы истекла, войдите заново"
)

// ErrorResponse тело ответа с ошибкой
type ErrorResponse struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
}

// RespondJSON пишет JSON ответ с указанным статусом
// data == nil означает ответ без тела
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	if data == nil {
		w.WriteHeader(status)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// RespondError пишет ошибку в формате {"error": "...", "code": N}
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, ErrorResponse{Error: message, Code: status})
}

func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, message)
}

func RespondUnauthorized(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusUnauthorized, message)
}

func RespondForbidden(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusForbidden, message)
}

func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, message)
}

func RespondConflict(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusConflict, message)
}

func RespondTooManyRequests(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusTooManyRequests, message)
}

func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, msgInternalError)
}

// RespondBackendError отвечает на сбой REST API больницы
// Истекший токен бэкенда возвращается как 401, остальное как 502
func RespondBackendError(w http.ResponseWriter, err error) {
	if errors.Is(err, hospitalapi.ErrUnauthorized) {
		RespondUnauthorized(w, msgBackendSession)
		return
	}
	RespondError(w, http.StatusBadGateway, msgBackendUnavailable)
}

// DecodeJSON декодирует тело запроса, неизвестные поля считаются ошибкой
func DecodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return errors.New("empty request body")
	}

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(v); err != nil {
		return fmt.Errorf("decode request body: %w", err)
	}
	return nil
}
