package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/m04kA/HMS-AppointmentService/internal/domain"
)

// ErrInvalidConfig возвращается при недопустимых значениях конфигурации
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Session backends
const (
	SessionBackendMemory = "memory"
	SessionBackendRedis  = "redis"
)

// Config конфигурация сервиса
type Config struct {
	Server      ServerConfig      `toml:"server"`
	Logs        LogsConfig        `toml:"logs"`
	Database    DatabaseConfig    `toml:"database"`
	HospitalAPI HospitalAPIConfig `toml:"hospital_api"`
	Sessions    SessionsConfig    `toml:"sessions"`
	Redis       RedisConfig       `toml:"redis"`
	Scheduling  SchedulingConfig  `toml:"scheduling"`
	RateLimit   RateLimitConfig   `toml:"rate_limit"`
	Metrics     MetricsConfig     `toml:"metrics"`
}

// ServerConfig параметры HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// LogsConfig параметры логирования
type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"` // Пустая строка - только stdout
}

// DatabaseConfig параметры подключения к postgres
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// DSN возвращает строку подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// HospitalAPIConfig параметры внешнего REST API больницы
type HospitalAPIConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"` // секунды
}

// SessionsConfig параметры хранилища сессий
type SessionsConfig struct {
	Backend    string `toml:"backend"`     // memory | redis
	TTLMinutes int    `toml:"ttl_minutes"` // время жизни сессии
	KeyPrefix  string `toml:"key_prefix"`
}

// RedisConfig параметры подключения к redis
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// SchedulingConfig значения по умолчанию для генерации слотов
type SchedulingConfig struct {
	BookingIntervalMinutes    int `toml:"booking_interval_minutes"`
	RescheduleIntervalMinutes int `toml:"reschedule_interval_minutes"`
	MaxSlots                  int `toml:"max_slots"`
}

// Defaults конвертирует секцию в domain.SchedulingDefaults
func (s SchedulingConfig) Defaults() domain.SchedulingDefaults {
	return domain.SchedulingDefaults{
		BookingIntervalMinutes:    s.BookingIntervalMinutes,
		RescheduleIntervalMinutes: s.RescheduleIntervalMinutes,
		MaxSlots:                  s.MaxSlots,
	}
}

// RateLimitConfig ограничение частоты входа
type RateLimitConfig struct {
	LoginPerMinute int `toml:"login_per_minute"`
	LoginBurst     int `toml:"login_burst"`
}

// MetricsConfig параметры prometheus метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// Load загружает конфигурацию из TOML файла
// Путь можно переопределить переменной окружения CONFIG_PATH
func Load(path string) (*Config, error) {
	if envPath := os.Getenv("CONFIG_PATH"); envPath != "" {
		path = envPath
	}

	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config %s: %w", path, err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// applyDefaults заполняет незаданные значения
func (c *Config) applyDefaults() {
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 15
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 15
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10
	}
	if c.Logs.Level == "" {
		c.Logs.Level = "info"
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 10
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 300
	}
	if c.HospitalAPI.Timeout == 0 {
		c.HospitalAPI.Timeout = 10
	}
	if c.Sessions.Backend == "" {
		c.Sessions.Backend = SessionBackendMemory
	}
	if c.Sessions.TTLMinutes == 0 {
		c.Sessions.TTLMinutes = domain.DefaultSessionTTLMinutes
	}
	if c.Sessions.KeyPrefix == "" {
		c.Sessions.KeyPrefix = "hms:session:"
	}
	if c.Scheduling.BookingIntervalMinutes == 0 {
		c.Scheduling.BookingIntervalMinutes = domain.DefaultBookingIntervalMinutes
	}
	if c.Scheduling.RescheduleIntervalMinutes == 0 {
		c.Scheduling.RescheduleIntervalMinutes = domain.DefaultRescheduleIntervalMinutes
	}
	if c.Scheduling.MaxSlots == 0 {
		c.Scheduling.MaxSlots = domain.DefaultMaxSlots
	}
	if c.RateLimit.LoginPerMinute == 0 {
		c.RateLimit.LoginPerMinute = 20
	}
	if c.RateLimit.LoginBurst == 0 {
		c.RateLimit.LoginBurst = 5
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "hms-appointment-service"
	}
}

// Validate проверяет значения конфигурации
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port=%d out of range", ErrInvalidConfig, c.Server.HTTPPort)
	}
	if c.HospitalAPI.URL == "" {
		return fmt.Errorf("%w: hospital_api.url is required", ErrInvalidConfig)
	}
	if c.Sessions.Backend != SessionBackendMemory && c.Sessions.Backend != SessionBackendRedis {
		return fmt.Errorf("%w: unknown sessions.backend %q", ErrInvalidConfig, c.Sessions.Backend)
	}
	if c.Sessions.Backend == SessionBackendRedis && c.Redis.Addr == "" {
		return fmt.Errorf("%w: redis.addr is required for redis sessions", ErrInvalidConfig)
	}
	if err := validateInterval("scheduling.booking_interval_minutes", c.Scheduling.BookingIntervalMinutes); err != nil {
		return err
	}
	if err := validateInterval("scheduling.reschedule_interval_minutes", c.Scheduling.RescheduleIntervalMinutes); err != nil {
		return err
	}
	if c.Scheduling.MaxSlots < domain.MinMaxSlots || c.Scheduling.MaxSlots > domain.MaxMaxSlots {
		return fmt.Errorf("%w: scheduling.max_slots=%d must be between %d and %d",
			ErrInvalidConfig, c.Scheduling.MaxSlots, domain.MinMaxSlots, domain.MaxMaxSlots)
	}
	return nil
}

func validateInterval(name string, value int) error {
	if value < domain.MinIntervalMinutes || value > domain.MaxIntervalMinutes {
		return fmt.Errorf("%w: %s=%d must be between %d and %d",
			ErrInvalidConfig, name, value, domain.MinIntervalMinutes, domain.MaxIntervalMinutes)
	}
	return nil
}
