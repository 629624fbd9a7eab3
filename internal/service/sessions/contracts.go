package sessions

import (
	"context"
	"time"

	"github.com/m04kA/HMS-AppointmentService/internal/integrations/hospitalapi"
)

// AuthClient интерфейс входа в бэкенд больницы
type AuthClient interface {
	Login(ctx context.Context, creds hospitalapi.Credentials) (*hospitalapi.LoginResult, error)
}

// Store key-value хранилище сессий
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Remove(ctx context.Context, key string) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
