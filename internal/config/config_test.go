package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, DriverMemory, cfg.Storage.Driver)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 30*time.Second, cfg.Security.RequestTimeout)
	assert.False(t, cfg.NotificationsEnabled())
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("EMPLOYEE_API_PORT", "9000")
	t.Setenv("EMPLOYEE_API_LOG__LEVEL", "debug")
	t.Setenv("EMPLOYEE_API_STORAGE__DRIVER", "sqlite")
	t.Setenv("EMPLOYEE_API_SQLITE__PATH", "/tmp/staff.db")
	t.Setenv("EMPLOYEE_API_SERVER__READ_TIMEOUT", "3s")
	t.Setenv("EMPLOYEE_API_SECURITY__ENABLE_CORS", "false")
	t.Setenv("EMPLOYEE_API_NOTIFICATION__URL", "http://hooks.local/employees")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, DriverSQLite, cfg.Storage.Driver)
	assert.Equal(t, "/tmp/staff.db", cfg.SQLite.Path)
	assert.Equal(t, 3*time.Second, cfg.Server.ReadTimeout)
	assert.False(t, cfg.Security.EnableCORS)
	assert.True(t, cfg.NotificationsEnabled())

	// untouched keys keep their defaults
	assert.Equal(t, 10*time.Second, cfg.Server.WriteTimeout)
}

func TestLoadConfig_InvalidDriver(t *testing.T) {
	t.Setenv("EMPLOYEE_API_STORAGE__DRIVER", "mongo")

	_, err := LoadConfig()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "configuration validation failed")
}

func TestLoadConfig_PostgresRequiresCredentials(t *testing.T) {
	t.Setenv("EMPLOYEE_API_STORAGE__DRIVER", "postgres")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database user is required")
	assert.Contains(t, err.Error(), "database name is required")
}

func TestLoadConfig_InvalidNotificationURL(t *testing.T) {
	t.Setenv("EMPLOYEE_API_NOTIFICATION__URL", "not a url")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "port", envKey("EMPLOYEE_API_PORT"))
	assert.Equal(t, "database.max_open_conns", envKey("EMPLOYEE_API_DATABASE__MAX_OPEN_CONNS"))
}

func TestGetDatabaseDSN(t *testing.T) {
	cfg := Default()
	cfg.Database.User = "app"
	cfg.Database.Password = "secret"
	cfg.Database.Name = "staff"

	assert.Equal(t, "host=localhost port=5432 user=app password=secret dbname=staff sslmode=disable", cfg.GetDatabaseDSN())
}
