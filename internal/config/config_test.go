package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_AppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
[hospital_api]
url = "http://hospital.local/api"

[database]
host = "localhost"
port = 5432
user = "hms"
password = "secret"
dbname = "hms"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, "info", cfg.Logs.Level)
	assert.Equal(t, SessionBackendMemory, cfg.Sessions.Backend)
	assert.Equal(t, 5, cfg.Scheduling.BookingIntervalMinutes)
	assert.Equal(t, 10, cfg.Scheduling.RescheduleIntervalMinutes)
	assert.Equal(t, 50, cfg.Scheduling.MaxSlots)
	assert.Equal(t, "host=localhost port=5432 user=hms password=secret dbname=hms sslmode=disable", cfg.Database.DSN())

	defaults := cfg.Scheduling.Defaults()
	assert.Equal(t, 10, defaults.RescheduleIntervalMinutes)
}

func TestLoad_ConfigPathFromEnv(t *testing.T) {
	path := writeConfig(t, `
[server]
http_port = 9090

[hospital_api]
url = "http://hospital.local/api"
`)
	t.Setenv("CONFIG_PATH", path)

	cfg, err := Load("does-not-exist.toml")
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.HTTPPort)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "missing api url", content: `[server]
http_port = 8080`},
		{name: "unknown session backend", content: `[hospital_api]
url = "http://x"
[sessions]
backend = "files"`},
		{name: "redis without addr", content: `[hospital_api]
url = "http://x"
[sessions]
backend = "redis"`},
		{name: "interval too small", content: `[hospital_api]
url = "http://x"
[scheduling]
booking_interval_minutes = 1`},
		{name: "too many slots", content: `[hospital_api]
url = "http://x"
[scheduling]
max_slots = 1000`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}
