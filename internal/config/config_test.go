package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setPostgresEnv(t *testing.T) {
	t.Helper()
	t.Setenv("PLACES_PRIMARY.ENV", "local")
	t.Setenv("PLACES_DATABASE.HOST", "localhost")
	t.Setenv("PLACES_DATABASE.USER", "places")
	t.Setenv("PLACES_DATABASE.PASSWORD", "secret")
	t.Setenv("PLACES_DATABASE.NAME", "places")
}

func TestLoadConfig_AppliesDefaults(t *testing.T) {
	setPostgresEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "local", cfg.Primary.Env)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 30, cfg.Server.ReadTimeout)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSAllowedOrigins)
	assert.Equal(t, "static", cfg.Server.StaticDir)
	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "disable", cfg.Database.SSLMode)

	require.NotNil(t, cfg.Observability)
	assert.Equal(t, ServiceName, cfg.Observability.ServiceName)
	assert.Equal(t, "local", cfg.Observability.Environment)
	assert.Equal(t, "info", cfg.Observability.Logging.Level)
}

func TestLoadConfig_DoubleUnderscoreNesting(t *testing.T) {
	setPostgresEnv(t)
	t.Setenv("PLACES_SERVER__PORT", "9090")
	t.Setenv("PLACES_SERVER__CORS_ALLOWED_ORIGINS", "http://a.test,http://b.test")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Server.CORSAllowedOrigins)
}

func TestLoadConfig_CORSOriginsList(t *testing.T) {
	setPostgresEnv(t)
	t.Setenv("PLACES_SERVER.CORS_ALLOWED_ORIGINS", " http://a.test , ,http://b.test,")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Server.CORSAllowedOrigins)
}

func TestEnvKeyValue(t *testing.T) {
	key, value := envKeyValue("PLACES_DATABASE__HOST", "db,replica")
	assert.Equal(t, "database.host", key)
	assert.Equal(t, "db,replica", value)

	key, value = envKeyValue("PLACES_SERVER__CORS_ALLOWED_ORIGINS", "http://a.test")
	assert.Equal(t, "server.cors_allowed_origins", key)
	assert.Equal(t, []string{"http://a.test"}, value)
}

func TestLoadConfig_SQLiteNeedsOnlyPath(t *testing.T) {
	t.Setenv("PLACES_PRIMARY.ENV", "test")
	t.Setenv("PLACES_DATABASE.DRIVER", "sqlite")
	t.Setenv("PLACES_DATABASE.PATH", ":memory:")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, ":memory:", cfg.Database.Path)
}

func TestLoadConfig_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{
			name: "missing environment",
			env: map[string]string{
				"PLACES_DATABASE.DRIVER": "sqlite",
				"PLACES_DATABASE.PATH":   "places.db",
			},
		},
		{
			name: "postgres without host",
			env: map[string]string{
				"PLACES_PRIMARY.ENV":   "local",
				"PLACES_DATABASE.USER": "places",
				"PLACES_DATABASE.NAME": "places",
			},
		},
		{
			name: "sqlite without path",
			env: map[string]string{
				"PLACES_PRIMARY.ENV":     "local",
				"PLACES_DATABASE.DRIVER": "sqlite",
			},
		},
		{
			name: "unknown driver",
			env: map[string]string{
				"PLACES_PRIMARY.ENV":     "local",
				"PLACES_DATABASE.DRIVER": "oracle",
			},
		},
		{
			name: "invalid notify email",
			env: map[string]string{
				"PLACES_PRIMARY.ENV":              "local",
				"PLACES_DATABASE.DRIVER":          "sqlite",
				"PLACES_DATABASE.PATH":            ":memory:",
				"PLACES_INTEGRATION.NOTIFY_EMAIL": "not-an-email",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := LoadConfig()
			assert.Error(t, err)
		})
	}
}

func TestNotificationsEnabled(t *testing.T) {
	cfg := &Config{}
	assert.False(t, cfg.NotificationsEnabled())

	cfg.Redis.Address = "localhost:6379"
	cfg.Integration.ResendAPIKey = "re_test"
	assert.False(t, cfg.NotificationsEnabled())

	cfg.Integration.NotifyEmail = "ops@example.com"
	assert.True(t, cfg.NotificationsEnabled())
}

func TestObservabilityConfig_Validate(t *testing.T) {
	cfg := DefaultObservabilityConfig()
	require.NoError(t, cfg.Validate())

	cfg.Logging.Level = "verbose"
	assert.Error(t, cfg.Validate())

	cfg = DefaultObservabilityConfig()
	cfg.Logging.SlowQueryThreshold = -time.Second
	assert.Error(t, cfg.Validate())

	cfg = DefaultObservabilityConfig()
	cfg.ServiceName = ""
	assert.Error(t, cfg.Validate())
}

func TestObservabilityConfig_GetLogLevel(t *testing.T) {
	cfg := DefaultObservabilityConfig()
	cfg.Logging.Level = ""

	cfg.Environment = "production"
	assert.Equal(t, "info", cfg.GetLogLevel())

	cfg.Environment = "development"
	assert.Equal(t, "debug", cfg.GetLogLevel())

	cfg.Logging.Level = "warn"
	assert.Equal(t, "warn", cfg.GetLogLevel())
}

func TestObservabilityConfig_ChecksEnabled(t *testing.T) {
	cfg := DefaultObservabilityConfig()
	assert.True(t, cfg.ChecksEnabled("database"))
	assert.True(t, cfg.ChecksEnabled("redis"))

	cfg.HealthChecks.Checks = []string{"database"}
	assert.False(t, cfg.ChecksEnabled("redis"))

	cfg.HealthChecks.Enabled = false
	assert.False(t, cfg.ChecksEnabled("database"))
}
