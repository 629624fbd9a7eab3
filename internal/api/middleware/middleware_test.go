package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/HMS-AppointmentService/internal/domain"
	"github.com/m04kA/HMS-AppointmentService/internal/integrations/hospitalapi"
	"github.com/m04kA/HMS-AppointmentService/internal/service/sessions"
	"github.com/m04kA/HMS-AppointmentService/pkg/logger"
)

type fakeResolver struct {
	sessions map[string]*domain.Session
	err      error
}

func (f *fakeResolver) Resolve(_ context.Context, sessionID string) (*domain.Session, error) {
	if f.err != nil {
		return nil, f.err
	}
	session, ok := f.sessions[sessionID]
	if !ok {
		return nil, sessions.ErrSessionNotFound
	}
	return session, nil
}

type fakeHTTPMetrics struct {
	routes []string
	codes  []int
}

func (f *fakeHTTPMetrics) ObserveHTTPRequest(_ string, route string, statusCode int, _ time.Duration) {
	f.routes = append(f.routes, route)
	f.codes = append(f.codes, statusCode)
}

func okHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func TestAuth(t *testing.T) {
	resolver := &fakeResolver{sessions: map[string]*domain.Session{
		"s-1": {ID: "s-1", Token: "backend-token", Role: domain.RoleReceptionist},
	}}

	var gotToken string
	var gotRole domain.Role
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotToken, _ = hospitalapi.TokenFromContext(r.Context())
		gotRole, _ = GetRole(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	handler := Auth(resolver, logger.Nop())(next)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/appointments/1", nil)
	req.Header.Set(SessionHeader, "s-1")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "backend-token", gotToken)
	assert.Equal(t, domain.RoleReceptionist, gotRole)
}

func TestAuth_Rejects(t *testing.T) {
	tests := []struct {
		name     string
		resolver *fakeResolver
		header   string
		wantCode int
	}{
		{name: "missing header", resolver: &fakeResolver{}, wantCode: http.StatusUnauthorized},
		{name: "unknown session", resolver: &fakeResolver{}, header: "nope", wantCode: http.StatusUnauthorized},
		{name: "store failure", resolver: &fakeResolver{err: sessions.ErrInternal}, header: "s-1", wantCode: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := Auth(tt.resolver, logger.Nop())(http.HandlerFunc(okHandler))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set(SessionHeader, tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}

func TestRequireRole(t *testing.T) {
	handler := RequireRole(domain.RoleAdmin)(http.HandlerFunc(okHandler))

	tests := []struct {
		name     string
		session  *domain.Session
		wantCode int
	}{
		{name: "admin", session: &domain.Session{Role: domain.RoleAdmin}, wantCode: http.StatusOK},
		{name: "doctor", session: &domain.Session{Role: domain.RoleDoctor}, wantCode: http.StatusForbidden},
		{name: "no session", wantCode: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPut, "/", nil)
			if tt.session != nil {
				req = req.WithContext(WithSession(req.Context(), tt.session))
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}

func TestRequestID(t *testing.T) {
	var seen string
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NotEmpty(t, seen)
	assert.Equal(t, seen, rec.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "client-id")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, "client-id", seen)
}

func TestMetricsMiddleware_UsesRouteTemplate(t *testing.T) {
	m := &fakeHTTPMetrics{}

	r := mux.NewRouter()
	r.Use(MetricsMiddleware(m))
	r.HandleFunc("/api/v1/appointments/{appointmentId}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/appointments/77", nil))

	assert.Equal(t, []string{"/api/v1/appointments/{appointmentId}"}, m.routes)
	assert.Equal(t, []int{http.StatusNotFound}, m.codes)
}

func TestRateLimiter(t *testing.T) {
	limiter := NewRateLimiter(1, 2, logger.Nop())
	handler := limiter.Middleware(http.HandlerFunc(okHandler))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/sessions", nil)
		req.RemoteAddr = "10.0.0.1:5555"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	// Другой IP имеет собственный лимит
	req := httptest.NewRequest(http.MethodPost, "/api/v1/sessions", nil)
	req.Header.Set("X-Forwarded-For", "10.0.0.2, 10.0.0.1")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
