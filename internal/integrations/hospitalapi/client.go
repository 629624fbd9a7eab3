package hospitalapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/m04kA/HMS-AppointmentService/internal/domain"
	"github.com/m04kA/HMS-AppointmentService/pkg/metrics"
)

// Операции для метрик
const (
	opGetDoctor             = "get_doctor"
	opGetBookedAppointments = "get_booked_appointments"
	opGetAppointment        = "get_appointment"
	opCreateAppointment     = "create_appointment"
	opRescheduleAppointment = "reschedule_appointment"
	opCancelAppointment     = "cancel_appointment"
	opLogin                 = "login"
)

// Client клиент для REST API больницы
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
	metrics    Metrics
}

// NewClient создает новый экземпляр клиента
func NewClient(baseURL string, timeout time.Duration, log Logger, m Metrics) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log:     log,
		metrics: m,
	}
}

// GetDoctor получает врача с временем начала приема и стоимостью консультации
func (c *Client) GetDoctor(ctx context.Context, doctorID int64) (*domain.Doctor, error) {
	started := time.Now()

	resp, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/doctors/%d", doctorID), nil)
	if err != nil {
		c.observe(opGetDoctor, metrics.OutcomeError, started)
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusNotFound:
		c.observe(opGetDoctor, metrics.OutcomeNotFound, started)
		return nil, ErrDoctorNotFound
	default:
		c.observe(opGetDoctor, metrics.OutcomeError, started)
		return nil, unexpectedStatus(resp)
	}

	var doctor Doctor
	if err := json.NewDecoder(resp.Body).Decode(&doctor); err != nil {
		c.observe(opGetDoctor, metrics.OutcomeError, started)
		return nil, fmt.Errorf("%w: failed to decode doctor: %v", ErrInvalidResponse, err)
	}

	result, err := doctor.ToDomain()
	if err != nil {
		c.observe(opGetDoctor, metrics.OutcomeError, started)
		return nil, err
	}

	c.observe(opGetDoctor, metrics.OutcomeOK, started)
	return result, nil
}

// GetBookedAppointments получает занятые слоты врача на дату
// 404 от бэкенда означает отсутствие записей
func (c *Client) GetBookedAppointments(ctx context.Context, doctorID int64, date time.Time) ([]domain.BookedAppointment, error) {
	started := time.Now()

	query := url.Values{}
	query.Set("date", date.Format(domain.DateFormat))
	path := fmt.Sprintf("/appointments/doctor/%d?%s", doctorID, query.Encode())

	resp, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		c.observe(opGetBookedAppointments, metrics.OutcomeError, started)
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusNotFound:
		c.log.Info("HospitalAPI: no appointments for doctor=%d on %s", doctorID, date.Format(domain.DateFormat))
		c.observe(opGetBookedAppointments, metrics.OutcomeNotFound, started)
		return []domain.BookedAppointment{}, nil
	default:
		c.observe(opGetBookedAppointments, metrics.OutcomeError, started)
		return nil, unexpectedStatus(resp)
	}

	var rows []BookedAppointment
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		c.observe(opGetBookedAppointments, metrics.OutcomeError, started)
		return nil, fmt.Errorf("%w: failed to decode appointments: %v", ErrInvalidResponse, err)
	}

	booked := make([]domain.BookedAppointment, 0, len(rows))
	for i := range rows {
		b, err := rows[i].ToDomain()
		if err != nil {
			c.observe(opGetBookedAppointments, metrics.OutcomeError, started)
			return nil, err
		}
		booked = append(booked, b)
	}

	c.observe(opGetBookedAppointments, metrics.OutcomeOK, started)
	return booked, nil
}

// GetAppointment получает запись по ID
func (c *Client) GetAppointment(ctx context.Context, appointmentID int64) (*domain.Appointment, error) {
	started := time.Now()

	resp, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/appointments/%d", appointmentID), nil)
	if err != nil {
		c.observe(opGetAppointment, metrics.OutcomeError, started)
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusNotFound:
		c.observe(opGetAppointment, metrics.OutcomeNotFound, started)
		return nil, ErrAppointmentNotFound
	default:
		c.observe(opGetAppointment, metrics.OutcomeError, started)
		return nil, unexpectedStatus(resp)
	}

	result, err := decodeAppointment(resp.Body)
	if err != nil {
		c.observe(opGetAppointment, metrics.OutcomeError, started)
		return nil, err
	}

	c.observe(opGetAppointment, metrics.OutcomeOK, started)
	return result, nil
}

// CreateAppointment создает запись на выбранный слот
func (c *Client) CreateAppointment(ctx context.Context, req AppointmentRequest) (*domain.Appointment, error) {
	return c.submitAppointment(ctx, opCreateAppointment, http.MethodPost, "/appointments", req)
}

// RescheduleAppointment переносит запись на другой слот
func (c *Client) RescheduleAppointment(ctx context.Context, appointmentID int64, req AppointmentRequest) (*domain.Appointment, error) {
	path := fmt.Sprintf("/appointments/%d/reschedule", appointmentID)
	return c.submitAppointment(ctx, opRescheduleAppointment, http.MethodPut, path, req)
}

// CancelAppointment отменяет запись с указанием причины
func (c *Client) CancelAppointment(ctx context.Context, appointmentID int64, reason string) error {
	started := time.Now()

	path := fmt.Sprintf("/appointments/%d/cancel", appointmentID)
	resp, err := c.do(ctx, http.MethodPatch, path, cancelRequest{Reason: reason})
	if err != nil {
		c.observe(opCancelAppointment, metrics.OutcomeError, started)
		return err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusNoContent:
		c.observe(opCancelAppointment, metrics.OutcomeOK, started)
		return nil
	case http.StatusNotFound:
		c.observe(opCancelAppointment, metrics.OutcomeNotFound, started)
		return ErrAppointmentNotFound
	case http.StatusBadRequest, http.StatusConflict:
		c.observe(opCancelAppointment, metrics.OutcomeRejected, started)
		return fmt.Errorf("%w: %s", ErrRejected, readError(resp.Body))
	default:
		c.observe(opCancelAppointment, metrics.OutcomeError, started)
		return unexpectedStatus(resp)
	}
}

// Login выполняет вход в бэкенд и возвращает токен и профиль роли
func (c *Client) Login(ctx context.Context, creds Credentials) (*LoginResult, error) {
	started := time.Now()

	resp, err := c.do(ctx, http.MethodPost, "/auth/login", creds)
	if err != nil {
		c.observe(opLogin, metrics.OutcomeError, started)
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusUnauthorized, http.StatusForbidden:
		c.observe(opLogin, metrics.OutcomeRejected, started)
		return nil, ErrInvalidCredentials
	default:
		c.observe(opLogin, metrics.OutcomeError, started)
		return nil, unexpectedStatus(resp)
	}

	var result LoginResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		c.observe(opLogin, metrics.OutcomeError, started)
		return nil, fmt.Errorf("%w: failed to decode login response: %v", ErrInvalidResponse, err)
	}
	if result.Token == "" {
		c.observe(opLogin, metrics.OutcomeError, started)
		return nil, fmt.Errorf("%w: empty token in login response", ErrInvalidResponse)
	}
	if result.Role == "" {
		result.Role = creds.Role
	}

	c.observe(opLogin, metrics.OutcomeOK, started)
	return &result, nil
}

func (c *Client) submitAppointment(ctx context.Context, op, method, path string, req AppointmentRequest) (*domain.Appointment, error) {
	started := time.Now()

	resp, err := c.do(ctx, method, path, req)
	if err != nil {
		c.observe(op, metrics.OutcomeError, started)
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
		// Продолжаем обработку
	case http.StatusConflict:
		c.observe(op, metrics.OutcomeConflict, started)
		return nil, fmt.Errorf("%w: %s", ErrSlotTaken, readError(resp.Body))
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		c.observe(op, metrics.OutcomeRejected, started)
		return nil, fmt.Errorf("%w: %s", ErrRejected, readError(resp.Body))
	case http.StatusNotFound:
		c.observe(op, metrics.OutcomeNotFound, started)
		return nil, ErrAppointmentNotFound
	default:
		c.observe(op, metrics.OutcomeError, started)
		return nil, unexpectedStatus(resp)
	}

	result, err := decodeAppointment(resp.Body)
	if err != nil {
		c.observe(op, metrics.OutcomeError, started)
		return nil, err
	}

	c.observe(op, metrics.OutcomeOK, started)
	return result, nil
}

// do выполняет запрос с токеном из контекста
// 401 от бэкенда превращается в ErrUnauthorized для всех операций кроме входа
func (c *Client) do(ctx context.Context, method, path string, body interface{}) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to encode request: %v", ErrInternal, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token, ok := TokenFromContext(ctx); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error("HospitalAPI: %s %s failed: %v", method, path, err)
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}

	if resp.StatusCode == http.StatusUnauthorized && path != "/auth/login" {
		resp.Body.Close()
		c.log.Warn("HospitalAPI: %s %s unauthorized", method, path)
		return nil, ErrUnauthorized
	}

	return resp, nil
}

func (c *Client) observe(op, outcome string, started time.Time) {
	if c.metrics == nil {
		return
	}
	c.metrics.ObserveRemoteCall(op, outcome, time.Since(started))
}

func decodeAppointment(body io.Reader) (*domain.Appointment, error) {
	var appointment Appointment
	if err := json.NewDecoder(body).Decode(&appointment); err != nil {
		return nil, fmt.Errorf("%w: failed to decode appointment: %v", ErrInvalidResponse, err)
	}
	return appointment.ToDomain()
}

func unexpectedStatus(resp *http.Response) error {
	return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, readError(resp.Body))
}

// readError извлекает текст ошибки из тела ответа
func readError(body io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(body, 4096))
	if err != nil {
		return ""
	}

	var errResp ErrorResponse
	if err := json.Unmarshal(raw, &errResp); err == nil && errResp.String() != "" {
		return errResp.String()
	}
	return strings.TrimSpace(string(raw))
}

// IsRemoteFailure проверяет, что ошибка вызвана недоступностью или сбоем бэкенда
func IsRemoteFailure(err error) bool {
	return errors.Is(err, ErrInternal) || errors.Is(err, ErrInvalidResponse)
}
