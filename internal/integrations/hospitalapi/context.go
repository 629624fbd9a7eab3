package hospitalapi

import "context"

type tokenKey struct{}

// WithToken кладет токен авторизации бэкенда в контекст запроса
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

// TokenFromContext достает токен авторизации из контекста
func TokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(tokenKey{}).(string)
	return token, ok && token != ""
}
