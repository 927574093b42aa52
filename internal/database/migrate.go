package database

import (
	"context"
	"database/sql"
	"employee-api/internal/config"
	"fmt"
)

const createEmployeesPostgres = `
CREATE TABLE IF NOT EXISTS employees (
    id BIGSERIAL PRIMARY KEY,
    name TEXT NOT NULL,
    role TEXT NOT NULL
);
`

const createEmployeesSQLite = `
CREATE TABLE IF NOT EXISTS employees (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    role TEXT NOT NULL
);
`

// Migrate creates the employees table for the given driver. It is safe to run repeatedly.
func Migrate(ctx context.Context, db *sql.DB, driver string) error {
	var ddl string
	switch driver {
	case config.DriverPostgres:
		ddl = createEmployeesPostgres
	case config.DriverSQLite:
		ddl = createEmployeesSQLite
	default:
		return fmt.Errorf("no migrations for storage driver %q", driver)
	}

	if _, err := db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("failed to create employees table: %w", err)
	}
	return nil
}
