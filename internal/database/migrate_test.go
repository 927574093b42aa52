package database

import (
	"context"
	"employee-api/internal/config"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrate_Postgres(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta(`CREATE TABLE IF NOT EXISTS employees ( id BIGSERIAL PRIMARY KEY`)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, Migrate(context.Background(), db, config.DriverPostgres))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrate_SQLite(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta(`id INTEGER PRIMARY KEY AUTOINCREMENT`)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, Migrate(context.Background(), db, config.DriverSQLite))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrate_Failure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta(`CREATE TABLE`)).WillReturnError(errors.New("permission denied"))

	err = Migrate(context.Background(), db, config.DriverPostgres)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "permission denied")
}

func TestMigrate_UnknownDriver(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	assert.Error(t, Migrate(context.Background(), db, config.DriverMemory))
}

func TestInitDB_MemoryDriverHasNoDatabase(t *testing.T) {
	cfg := config.Default()

	_, err := InitDB(cfg)
	assert.Error(t, err)
}
