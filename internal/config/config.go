package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix every configuration variable carries.
// Nested keys are separated by a double underscore, e.g. EMPLOYEE_API_DATABASE__HOST.
const EnvPrefix = "EMPLOYEE_API_"

// Storage drivers
const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds the application configuration with validation
type Config struct {
	// Application settings
	Port int       `koanf:"port" validate:"required,min=1,max=65535"`
	Log  LogConfig `koanf:"log"`

	// Storage settings
	Storage  StorageConfig  `koanf:"storage"`
	Database DatabaseConfig `koanf:"database"`
	SQLite   SQLiteConfig   `koanf:"sqlite"`

	// External services
	Notification NotificationConfig `koanf:"notification"`

	// Security settings
	Security SecurityConfig `koanf:"security"`

	// Performance settings
	Server ServerConfig `koanf:"server"`
}

// LogConfig holds logger configuration
type LogConfig struct {
	Level  string `koanf:"level" validate:"required,oneof=debug info warn error"`
	Format string `koanf:"format" validate:"required,oneof=json console"`
}

// StorageConfig selects the repository backend
type StorageConfig struct {
	Driver      string `koanf:"driver" validate:"required,oneof=memory postgres sqlite"`
	AutoMigrate bool   `koanf:"auto_migrate"`
}

// DatabaseConfig holds PostgreSQL configuration
type DatabaseConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port" validate:"min=1,max=65535"`
	User            string        `koanf:"user"`
	Password        string        `koanf:"password"`
	Name            string        `koanf:"name"`
	SSLMode         string        `koanf:"ssl_mode" validate:"oneof=disable require verify-ca verify-full"`
	MaxOpenConns    int           `koanf:"max_open_conns" validate:"min=1"`
	MaxIdleConns    int           `koanf:"max_idle_conns" validate:"min=1"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `koanf:"conn_max_idle_time"`
}

// SQLiteConfig holds SQLite configuration
type SQLiteConfig struct {
	Path string `koanf:"path"`
}

// NotificationConfig holds the change-notification webhook configuration.
// An empty URL disables notifications.
type NotificationConfig struct {
	URL            string        `koanf:"url" validate:"omitempty,url"`
	Timeout        time.Duration `koanf:"timeout" validate:"required"`
	RetryAttempts  int           `koanf:"retry_attempts" validate:"min=0,max=10"`
	RetryDelay     time.Duration `koanf:"retry_delay"`
	MaxPayloadSize int64         `koanf:"max_payload_size" validate:"min=1024"`
}

// SecurityConfig holds security-related configuration
type SecurityConfig struct {
	RateLimitRPS    int           `koanf:"rate_limit_rps" validate:"min=1"`
	RateLimitBurst  int           `koanf:"rate_limit_burst" validate:"min=1"`
	RequestTimeout  time.Duration `koanf:"request_timeout" validate:"required"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"required"`
	EnableCORS      bool          `koanf:"enable_cors"`
	AllowedOrigins  []string      `koanf:"allowed_origins"`
	TrustedProxies  []string      `koanf:"trusted_proxies"`
}

// ServerConfig holds server performance configuration
type ServerConfig struct {
	ReadTimeout    time.Duration `koanf:"read_timeout" validate:"required"`
	WriteTimeout   time.Duration `koanf:"write_timeout" validate:"required"`
	IdleTimeout    time.Duration `koanf:"idle_timeout" validate:"required"`
	MaxHeaderBytes int           `koanf:"max_header_bytes" validate:"min=1024"`
	MaxBodyBytes   int64         `koanf:"max_body_bytes" validate:"min=1024"`
}

// Default returns the configuration used when no environment overrides are present.
func Default() *Config {
	return &Config{
		Port: 8080,
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Storage: StorageConfig{
			Driver:      DriverMemory,
			AutoMigrate: true,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    25,
			ConnMaxLifetime: 5 * time.Minute,
			ConnMaxIdleTime: 5 * time.Minute,
		},
		SQLite: SQLiteConfig{
			Path: "employees.db",
		},
		Notification: NotificationConfig{
			Timeout:        10 * time.Second,
			RetryAttempts:  3,
			RetryDelay:     time.Second,
			MaxPayloadSize: 1024 * 1024,
		},
		Security: SecurityConfig{
			RateLimitRPS:    100,
			RateLimitBurst:  200,
			RequestTimeout:  30 * time.Second,
			ShutdownTimeout: 30 * time.Second,
			EnableCORS:      true,
			AllowedOrigins:  []string{"*"},
			TrustedProxies:  []string{},
		},
		Server: ServerConfig{
			ReadTimeout:    10 * time.Second,
			WriteTimeout:   10 * time.Second,
			IdleTimeout:    120 * time.Second,
			MaxHeaderBytes: 1 << 20, // 1MB
			MaxBodyBytes:   1 << 20,
		},
	}
}

// LoadConfig loads and validates the configuration from environment variables.
// A .env file in the working directory is loaded first when present.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	k := koanf.New(".")
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// envKey maps EMPLOYEE_API_SERVER__READ_TIMEOUT to server.read_timeout.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(key, "__", ".")
}

// validateConfig runs tag validation, then the rules that depend on the chosen driver
func validateConfig(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return err
	}

	var errs []string
	switch cfg.Storage.Driver {
	case DriverPostgres:
		if cfg.Database.User == "" {
			errs = append(errs, "database user is required")
		}
		if cfg.Database.Password == "" {
			errs = append(errs, "database password is required")
		}
		if cfg.Database.Name == "" {
			errs = append(errs, "database name is required")
		}
	case DriverSQLite:
		if cfg.SQLite.Path == "" {
			errs = append(errs, "sqlite path is required")
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("validation errors: %s", strings.Join(errs, "; "))
	}

	return nil
}

// GetDatabaseDSN returns the PostgreSQL connection string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host, c.Database.Port, c.Database.User,
		c.Database.Password, c.Database.Name, c.Database.SSLMode)
}

// GetSQLiteDSN returns the SQLite connection string with foreign keys and a busy timeout
func (c *Config) GetSQLiteDSN() string {
	return fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000", c.SQLite.Path)
}

// NotificationsEnabled reports whether a webhook URL is configured
func (c *Config) NotificationsEnabled() bool {
	return c.Notification.URL != ""
}
