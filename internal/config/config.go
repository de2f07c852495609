// Package config manages environment variables.
//
// It reads variables from the process environment (and a `.env`
// file when present), loads them into structured Go types and
// validates that required values are present so they can be reused
// across the application runtime.
package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	// Side-effect import: loads `.env` into the process environment
	// before any variable is read.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

/*
	Env vars are read with the PLACES_ prefix. Keys are lowercased and
	the prefix removed; nesting uses "." (or "__" for shells that do not
	allow dots in variable names):

	  PLACES_SERVER.PORT      -> server.port -> Config.Server.Port
	  PLACES_DATABASE__HOST   -> database.host -> Config.Database.Host
*/

// EnvPrefix is the prefix every configuration variable carries.
const EnvPrefix = "PLACES_"

// ServiceName identifies this application in logs and APM.
const ServiceName = "placesapi"

// Supported database drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMySQL    = "mysql"
)

// Config is the root configuration object for the application.
//
// Observability is a pointer because it is optional. If not provided,
// defaults are injected at load time.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Database      DatabaseConfig       `koanf:"database" validate:"required"`
	Redis         RedisConfig          `koanf:"redis"`
	Integration   IntegrationConfig    `koanf:"integration"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig groups settings for the HTTP server runtime.
// Timeouts are expressed in seconds.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"required"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"required"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"required"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required"`

	// StaticDir holds index.html and the OpenAPI assets.
	StaticDir string `koanf:"static_dir" validate:"required"`
}

// DatabaseConfig contains connection parameters and pool tuning.
//
// Network settings are required for postgres and mysql; Path is the
// database file for sqlite (":memory:" is accepted).
type DatabaseConfig struct {
	Driver          string `koanf:"driver" validate:"required,oneof=postgres sqlite mysql"`
	Host            string `koanf:"host" validate:"required_unless=Driver sqlite"`
	Port            int    `koanf:"port" validate:"required_unless=Driver sqlite"`
	User            string `koanf:"user" validate:"required_unless=Driver sqlite"`
	Password        string `koanf:"password"`
	Name            string `koanf:"name" validate:"required_unless=Driver sqlite"`
	SSLMode         string `koanf:"ssl_mode"`
	Path            string `koanf:"path" validate:"required_if=Driver sqlite"`
	MaxOpenConns    int    `koanf:"max_open_conns" validate:"required"`
	MaxIdleConns    int    `koanf:"max_idle_conns" validate:"required"`
	ConnMaxLifetime int    `koanf:"conn_max_lifetime" validate:"required"`
	ConnMaxIdleTime int    `koanf:"conn_max_idle_time" validate:"required"`
}

// RedisConfig contains Redis connection details ("host:port").
// Redis is optional; it backs the notification queue.
type RedisConfig struct {
	Address string `koanf:"address"`
}

// IntegrationConfig holds third-party credentials.
type IntegrationConfig struct {
	ResendAPIKey string `koanf:"resend_api_key"`

	// NotifyEmail receives a message for every created place.
	NotifyEmail string `koanf:"notify_email" validate:"omitempty,email"`
	FromEmail   string `koanf:"from_email" validate:"omitempty,email"`
}

// NotificationsEnabled reports whether place-created notifications
// can be queued and delivered.
func (c *Config) NotificationsEnabled() bool {
	return c.Redis.Address != "" &&
		c.Integration.ResendAPIKey != "" &&
		c.Integration.NotifyEmail != ""
}

// listKeys are decoded from comma-separated env values.
var listKeys = map[string]bool{
	"server.cors_allowed_origins": true,
}

func envKeyValue(s, v string) (string, any) {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	key = strings.ReplaceAll(key, "__", ".")

	if !listKeys[key] {
		return key, v
	}

	var items []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return key, items
}

func defaults() map[string]any {
	return map[string]any{
		"server.port":                 "8080",
		"server.read_timeout":         30,
		"server.write_timeout":        30,
		"server.idle_timeout":         60,
		"server.cors_allowed_origins": []string{"*"},
		"server.static_dir":           "static",

		"database.driver":             DriverPostgres,
		"database.port":               5432,
		"database.ssl_mode":           "disable",
		"database.max_open_conns":     25,
		"database.max_idle_conns":     25,
		"database.conn_max_lifetime":  300,
		"database.conn_max_idle_time": 300,

		"integration.from_email": "onboarding@resend.dev",
	}
}

// LoadConfig loads configuration from defaults and environment
// variables, validates it and applies observability defaults.
func LoadConfig() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("could not load config defaults: %w", err)
	}

	err := k.Load(env.ProviderWithValue(EnvPrefix, ".", envKeyValue), nil)
	if err != nil {
		return nil, fmt.Errorf("could not load env variables: %w", err)
	}

	mainConfig := &Config{}
	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, fmt.Errorf("could not unmarshal main config: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(mainConfig); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	if mainConfig.Observability == nil {
		mainConfig.Observability = DefaultObservabilityConfig()
	}

	// Service name and environment always follow the primary config so
	// logs and traces are labelled consistently.
	mainConfig.Observability.ServiceName = ServiceName
	mainConfig.Observability.Environment = mainConfig.Primary.Env

	if err := mainConfig.Observability.Validate(); err != nil {
		return nil, fmt.Errorf("invalid observability config: %w", err)
	}

	return mainConfig, nil
}
