package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/m04kA/HMS-AppointmentService/internal/api/handlers"
	"github.com/m04kA/HMS-AppointmentService/internal/domain"
	"github.com/m04kA/HMS-AppointmentService/internal/integrations/hospitalapi"
	"github.com/m04kA/HMS-AppointmentService/internal/service/sessions"
)

// SessionHeader заголовок с идентификатором сессии
const SessionHeader = "X-Session-ID"

const (
	msgMissingSession = "требуется заголовок X-Session-ID"
	msgInvalidSession = "сессия не найдена или истекла"
	msgForbidden      = "доступ запрещен"
)

type sessionKey struct{}

// Auth проверяет сессию из заголовка X-Session-ID
// Сессия и токен бэкенда кладутся в контекст запроса
func Auth(resolver SessionResolver, logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionID := r.Header.Get(SessionHeader)
			if sessionID == "" {
				handlers.RespondUnauthorized(w, msgMissingSession)
				return
			}

			session, err := resolver.Resolve(r.Context(), sessionID)
			if err != nil {
				if errors.Is(err, sessions.ErrSessionNotFound) {
					logger.Warn("Auth: session not found: path=%s", r.URL.Path)
					handlers.RespondUnauthorized(w, msgInvalidSession)
					return
				}
				logger.Error("Auth: failed to resolve session: %v", err)
				handlers.RespondInternalError(w)
				return
			}

			ctx := context.WithValue(r.Context(), sessionKey{}, session)
			ctx = hospitalapi.WithToken(ctx, session.Token)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole пропускает запрос только для перечисленных ролей
// Должен стоять после Auth
func RequireRole(roles ...domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, ok := GetSession(r.Context())
			if !ok {
				handlers.RespondUnauthorized(w, msgMissingSession)
				return
			}

			for _, role := range roles {
				if session.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}

			handlers.RespondForbidden(w, msgForbidden)
		})
	}
}

// GetSession возвращает сессию текущего запроса
func GetSession(ctx context.Context) (*domain.Session, bool) {
	session, ok := ctx.Value(sessionKey{}).(*domain.Session)
	return session, ok && session != nil
}

// GetRole возвращает роль пользователя текущего запроса
func GetRole(ctx context.Context) (domain.Role, bool) {
	session, ok := GetSession(ctx)
	if !ok {
		return "", false
	}
	return session.Role, true
}

// WithSession кладет сессию в контекст, используется в тестах обработчиков
func WithSession(ctx context.Context, session *domain.Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, session)
}
