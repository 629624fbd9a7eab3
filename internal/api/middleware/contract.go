package middleware

import (
	"context"
	"time"

	"github.com/m04kA/HMS-AppointmentService/internal/domain"
)

// SessionResolver интерфейс получения сессии по идентификатору
type SessionResolver interface {
	Resolve(ctx context.Context, sessionID string) (*domain.Session, error)
}

// HTTPMetrics интерфейс для учета HTTP запросов
type HTTPMetrics interface {
	ObserveHTTPRequest(method, route string, statusCode int, duration time.Duration)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
