package sessions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/HMS-AppointmentService/internal/domain"
	"github.com/m04kA/HMS-AppointmentService/internal/infra/session"
	"github.com/m04kA/HMS-AppointmentService/internal/integrations/hospitalapi"
	"github.com/m04kA/HMS-AppointmentService/internal/service/sessions/models"
)

// Service сервис сессий дашборда
// Хранит токен бэкенда и профиль роли под случайным идентификатором сессии
type Service struct {
	client       AuthClient
	store        Store
	ttl          time.Duration
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса сессий
func NewService(client AuthClient, store Store, ttl time.Duration, logger Logger) *Service {
	return &Service{
		client:       client,
		store:        store,
		ttl:          ttl,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Login выполняет вход в бэкенд и создает сессию
func (s *Service) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	s.logger.Info("Login: username=%s, role=%s", req.Username, req.Role)

	// 1. Валидация входных данных
	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: username and password are required", ErrInvalidInput)
	}
	if !req.Role.IsValid() {
		return nil, fmt.Errorf("%w: unknown role %q", ErrInvalidInput, req.Role)
	}

	// 2. Вход в бэкенд
	result, err := s.client.Login(ctx, hospitalapi.Credentials{
		Username: username,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		if errors.Is(err, hospitalapi.ErrInvalidCredentials) {
			s.logger.Warn("Login: invalid credentials for username=%s", username)
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("Login: backend error for username=%s: %v", username, err)
		return nil, fmt.Errorf("%w: Login: %w", ErrBackendUnavailable, err)
	}

	// Бэкенд мог выдать другую роль, доверяем ему
	role := result.Role
	if !role.IsValid() {
		s.logger.Warn("Login: backend returned unknown role=%s for username=%s", role, username)
		return nil, fmt.Errorf("%w: unknown role %q in login response", ErrBackendUnavailable, role)
	}

	// 3. Сохраняем сессию
	sess := domain.Session{
		ID:        uuid.NewString(),
		Token:     result.Token,
		Role:      role,
		Username:  username,
		Profile:   result.Profile,
		CreatedAt: s.timeProvider.Now(),
	}

	payload, err := json.Marshal(sess)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to encode session: %v", ErrInternal, err)
	}
	if err := s.store.Set(ctx, sess.ID, payload, s.ttl); err != nil {
		s.logger.Error("Login: failed to store session: %v", err)
		return nil, fmt.Errorf("%w: failed to store session: %v", ErrInternal, err)
	}

	s.logger.Info("Login: session created for username=%s, role=%s", username, role)

	return &models.LoginResponse{
		SessionID: sess.ID,
		Role:      sess.Role,
		Username:  sess.Username,
		Profile:   sess.Profile,
	}, nil
}

// Resolve загружает сессию по идентификатору
func (s *Service) Resolve(ctx context.Context, sessionID string) (*domain.Session, error) {
	if sessionID == "" {
		return nil, ErrSessionNotFound
	}

	payload, err := s.store.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		s.logger.Error("Resolve: failed to load session: %v", err)
		return nil, fmt.Errorf("%w: failed to load session: %v", ErrInternal, err)
	}

	var sess domain.Session
	if err := json.Unmarshal(payload, &sess); err != nil {
		s.logger.Error("Resolve: corrupted session payload, removing: %v", err)
		_ = s.store.Remove(ctx, sessionID)
		return nil, ErrSessionNotFound
	}
	sess.ID = sessionID

	return &sess, nil
}

// Logout удаляет сессию, повторный вызов не является ошибкой
func (s *Service) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}

	if err := s.store.Remove(ctx, sessionID); err != nil {
		s.logger.Error("Logout: failed to remove session: %v", err)
		return fmt.Errorf("%w: failed to remove session: %v", ErrInternal, err)
	}

	s.logger.Info("Logout: session removed")
	return nil
}
