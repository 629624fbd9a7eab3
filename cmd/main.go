package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelAppointmentHandler "github.com/m04kA/HMS-AppointmentService/internal/api/handlers/cancel_appointment"
	createAppointmentHandler "github.com/m04kA/HMS-AppointmentService/internal/api/handlers/create_appointment"
	deleteSchedulingConfigHandler "github.com/m04kA/HMS-AppointmentService/internal/api/handlers/delete_scheduling_config"
	getAppointmentHandler "github.com/m04kA/HMS-AppointmentService/internal/api/handlers/get_appointment"
	getAvailableSlotsHandler "github.com/m04kA/HMS-AppointmentService/internal/api/handlers/get_available_slots"
	getRescheduleOptionsHandler "github.com/m04kA/HMS-AppointmentService/internal/api/handlers/get_reschedule_options"
	getSchedulingConfigHandler "github.com/m04kA/HMS-AppointmentService/internal/api/handlers/get_scheduling_config"
	listSchedulingConfigsHandler "github.com/m04kA/HMS-AppointmentService/internal/api/handlers/list_scheduling_configs"
	loginHandler "github.com/m04kA/HMS-AppointmentService/internal/api/handlers/login"
	logoutHandler "github.com/m04kA/HMS-AppointmentService/internal/api/handlers/logout"
	rescheduleAppointmentHandler "github.com/m04kA/HMS-AppointmentService/internal/api/handlers/reschedule_appointment"
	updateSchedulingConfigHandler "github.com/m04kA/HMS-AppointmentService/internal/api/handlers/update_scheduling_config"
	"github.com/m04kA/HMS-AppointmentService/internal/api/middleware"
	"github.com/m04kA/HMS-AppointmentService/internal/config"
	"github.com/m04kA/HMS-AppointmentService/internal/domain"
	"github.com/m04kA/HMS-AppointmentService/internal/infra/session"
	configRepo "github.com/m04kA/HMS-AppointmentService/internal/infra/storage/config"
	"github.com/m04kA/HMS-AppointmentService/internal/integrations/hospitalapi"
	appointmentsService "github.com/m04kA/HMS-AppointmentService/internal/service/appointments"
	configService "github.com/m04kA/HMS-AppointmentService/internal/service/config"
	sessionsService "github.com/m04kA/HMS-AppointmentService/internal/service/sessions"
	createAppointmentUC "github.com/m04kA/HMS-AppointmentService/internal/usecase/create_appointment"
	getAvailableSlotsUC "github.com/m04kA/HMS-AppointmentService/internal/usecase/get_available_slots"
	getRescheduleOptionsUC "github.com/m04kA/HMS-AppointmentService/internal/usecase/get_reschedule_options"
	rescheduleAppointmentUC "github.com/m04kA/HMS-AppointmentService/internal/usecase/reschedule_appointment"
	"github.com/m04kA/HMS-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/HMS-AppointmentService/pkg/logger"
	"github.com/m04kA/HMS-AppointmentService/pkg/metrics"
)

const sessionCleanupInterval = time.Minute

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting HMS-AppointmentService...")

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// Метрики (nil означает, что метрики выключены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Конфигурация расписания деградирует к значениям по умолчанию, поэтому недоступная БД не фатальна
	if err := db.PingContext(ctx); err != nil {
		log.Error("Failed to ping database, scheduling defaults will be used: %v", err)
	} else {
		log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
			cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)
	}

	var configRepository *configRepo.Repository
	if cfg.Metrics.Enabled {
		configRepository = configRepo.NewRepository(dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh))
		log.Info("Database metrics collection started")
	} else {
		configRepository = configRepo.NewRepository(db)
	}

	// Хранилище сессий
	var sessionStore sessionsService.Store
	switch cfg.Sessions.Backend {
	case config.SessionBackendRedis:
		redisClient, err := session.NewRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Fatal("Failed to connect to redis: %v", err)
		}
		defer redisClient.Close()

		sessionStore = session.NewRedisStore(redisClient, cfg.Sessions.KeyPrefix)
		log.Info("Session store: redis (addr=%s, db=%d)", cfg.Redis.Addr, cfg.Redis.DB)
	default:
		memoryStore := session.NewMemoryStore()
		go memoryStore.RunCleanup(ctx, sessionCleanupInterval)

		sessionStore = memoryStore
		log.Info("Session store: memory")
	}

	// Клиент API больницы
	hospitalClient := hospitalapi.NewClient(
		cfg.HospitalAPI.URL,
		time.Duration(cfg.HospitalAPI.Timeout)*time.Second,
		log,
		metricsCollector,
	)
	log.Info("Hospital API client initialized (url=%s, timeout=%ds)", cfg.HospitalAPI.URL, cfg.HospitalAPI.Timeout)

	// Инициализируем сервисы
	configSvc := configService.NewService(configRepository, cfg.Scheduling.Defaults(), log)
	appointmentSvc := appointmentsService.NewService(hospitalClient, log)
	sessionSvc := sessionsService.NewService(
		hospitalClient,
		sessionStore,
		time.Duration(cfg.Sessions.TTLMinutes)*time.Minute,
		log,
	)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(hospitalClient, configSvc, metricsCollector, log)
	createAppointmentUseCase := createAppointmentUC.NewUseCase(hospitalClient, configSvc, metricsCollector, log)
	getRescheduleOptionsUseCase := getRescheduleOptionsUC.NewUseCase(hospitalClient, configSvc, metricsCollector, log)
	rescheduleAppointmentUseCase := rescheduleAppointmentUC.NewUseCase(hospitalClient, configSvc, metricsCollector, log)

	// Инициализируем handlers
	login := loginHandler.NewHandler(sessionSvc, log)
	logout := logoutHandler.NewHandler(sessionSvc, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentSvc, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentSvc, log)
	getRescheduleOptions := getRescheduleOptionsHandler.NewHandler(getRescheduleOptionsUseCase, log)
	rescheduleAppointment := rescheduleAppointmentHandler.NewHandler(rescheduleAppointmentUseCase, log)
	getSchedulingConfig := getSchedulingConfigHandler.NewHandler(configSvc, log)
	listSchedulingConfigs := listSchedulingConfigsHandler.NewHandler(configSvc, log)
	updateSchedulingConfig := updateSchedulingConfigHandler.NewHandler(configSvc, log)
	deleteSchedulingConfig := deleteSchedulingConfigHandler.NewHandler(configSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без сессии)
	// ============================================================

	loginLimiter := middleware.NewRateLimiter(cfg.RateLimit.LoginPerMinute, cfg.RateLimit.LoginBurst, log)
	api.Handle("/sessions", loginLimiter.Middleware(http.HandlerFunc(login.Handle))).Methods(http.MethodPost)

	// Выход идемпотентен, поэтому не требует действующей сессии
	api.HandleFunc("/sessions", logout.Handle).Methods(http.MethodDelete)

	// ============================================================
	// PROTECTED ROUTES (требуют X-Session-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(sessionSvc, log))

	// --- Слоты и записи ---
	protected.HandleFunc("/doctors/{doctorId}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{appointmentId}/cancel", cancelAppointment.Handle).Methods(http.MethodPatch)

	// --- Перенос записи ---
	protected.HandleFunc("/appointments/{appointmentId}/reschedule-options",
		getRescheduleOptions.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{appointmentId}/reschedule",
		rescheduleAppointment.Handle).Methods(http.MethodPut)

	// --- Конфигурация расписания ---
	protected.HandleFunc("/departments/{departmentId}/scheduling-config",
		getSchedulingConfig.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/departments/{departmentId}/scheduling-configs",
		listSchedulingConfigs.Handle).Methods(http.MethodGet)

	admin := protected.PathPrefix("").Subrouter()
	admin.Use(middleware.RequireRole(domain.RoleAdmin))

	admin.HandleFunc("/departments/{departmentId}/scheduling-config",
		updateSchedulingConfig.Handle).Methods(http.MethodPut)
	admin.HandleFunc("/scheduling-configs/{configId}",
		deleteSchedulingConfig.Handle).Methods(http.MethodDelete)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем фоновую очистку сессий и сбор метрик пула
	stop()
	close(stopMetricsCh)

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
