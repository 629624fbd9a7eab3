package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome значения для меток результата
const (
	OutcomeOK       = "ok"
	OutcomeNotFound = "not_found"
	OutcomeConflict = "conflict"
	OutcomeRejected = "rejected"
	OutcomeError    = "error"
)

// Операции для appointment_submissions_total
const (
	SubmissionCreate     = "create"
	SubmissionReschedule = "reschedule"
)

// Metrics набор метрик сервиса
// Все методы безопасны для nil-получателя (метрики выключены)
type Metrics struct {
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	remoteCallDuration  *prometheus.HistogramVec
	bookingSubmissions  *prometheus.CounterVec
	slotsGenerated      *prometheus.CounterVec
	dbQueryDuration     *prometheus.HistogramVec
	dbConnections       *prometheus.GaugeVec
}

// New создает метрики и регистрирует их в prometheus.DefaultRegisterer
func New(serviceName string) *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer, serviceName)
}

// NewWithRegisterer создает метрики и регистрирует их в указанном реестре
func NewWithRegisterer(reg prometheus.Registerer, serviceName string) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		httpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "http_requests_total",
				Help:        "Total number of HTTP requests",
				ConstLabels: constLabels,
			},
			[]string{"method", "route", "status_code"},
		),
		httpRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:        "http_request_duration_seconds",
				Help:        "Duration of HTTP requests in seconds",
				Buckets:     prometheus.DefBuckets,
				ConstLabels: constLabels,
			},
			[]string{"method", "route"},
		),
		remoteCallDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:        "hospital_api_call_duration_seconds",
				Help:        "Duration of hospital API calls in seconds",
				Buckets:     []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
				ConstLabels: constLabels,
			},
			[]string{"operation", "outcome"},
		),
		bookingSubmissions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "appointment_submissions_total",
				Help:        "Appointment booking and reschedule submissions by outcome",
				ConstLabels: constLabels,
			},
			[]string{"operation", "outcome"},
		),
		slotsGenerated: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "slots_generated_total",
				Help:        "Number of generated appointment slots",
				ConstLabels: constLabels,
			},
			[]string{"context"},
		),
		dbQueryDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:        "db_query_duration_seconds",
				Help:        "Duration of database queries in seconds",
				Buckets:     []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
				ConstLabels: constLabels,
			},
			[]string{"operation", "status"},
		),
		dbConnections: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name:        "db_connections",
				Help:        "Database connection pool state",
				ConstLabels: constLabels,
			},
			[]string{"state"},
		),
	}

	reg.MustRegister(
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.remoteCallDuration,
		m.bookingSubmissions,
		m.slotsGenerated,
		m.dbQueryDuration,
		m.dbConnections,
	)

	return m
}

// ObserveHTTPRequest фиксирует обработанный HTTP запрос
func (m *Metrics) ObserveHTTPRequest(method, route string, statusCode int, duration time.Duration) {
	if m == nil {
		return
	}
	m.httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(statusCode)).Inc()
	m.httpRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// ObserveRemoteCall фиксирует вызов внешнего API больницы
func (m *Metrics) ObserveRemoteCall(operation, outcome string, duration time.Duration) {
	if m == nil {
		return
	}
	m.remoteCallDuration.WithLabelValues(operation, outcome).Observe(duration.Seconds())
}

// IncSubmission фиксирует попытку записи или переноса приёма
func (m *Metrics) IncSubmission(operation, outcome string) {
	if m == nil {
		return
	}
	m.bookingSubmissions.WithLabelValues(operation, outcome).Inc()
}

// AddSlotsGenerated фиксирует количество сгенерированных слотов
func (m *Metrics) AddSlotsGenerated(schedulingContext string, count int) {
	if m == nil {
		return
	}
	m.slotsGenerated.WithLabelValues(schedulingContext).Add(float64(count))
}

// ObserveDBQuery фиксирует выполнение SQL запроса
func (m *Metrics) ObserveDBQuery(operation, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.dbQueryDuration.WithLabelValues(operation, status).Observe(duration.Seconds())
}

// SetDBConnections фиксирует состояние пула соединений
func (m *Metrics) SetDBConnections(open, inUse, idle int) {
	if m == nil {
		return
	}
	m.dbConnections.WithLabelValues("open").Set(float64(open))
	m.dbConnections.WithLabelValues("in_use").Set(float64(inUse))
	m.dbConnections.WithLabelValues("idle").Set(float64(idle))
}
