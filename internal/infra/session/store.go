package session

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound возвращается, когда ключ отсутствует или истек
var ErrNotFound = errors.New("session.store: key not found")

// ErrStore возвращается при ошибках хранилища
var ErrStore = errors.New("session.store: storage error")

// Store key-value хранилище сессий
// ttl <= 0 означает хранение без срока действия
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Remove(ctx context.Context, key string) error
}
