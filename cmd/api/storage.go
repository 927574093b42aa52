package main

import (
	"context"
	"database/sql"
	"employee-api/internal/config"
	"employee-api/internal/database"
	"employee-api/internal/repository"
	"fmt"

	"github.com/rs/zerolog"
)

// Backend is what serve needs from a storage driver
type Backend interface {
	repository.EmployeeRepository
	repository.Pinger
}

// storage bundles the repository with the database handle behind it, if any
type storage struct {
	Repository Backend
	db         *sql.DB
}

// Close releases the database handle
func (s *storage) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// openStorage builds the repository for the configured driver, migrating the schema when enabled
func openStorage(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*storage, error) {
	if cfg.Storage.Driver == config.DriverMemory {
		log.Warn().Msg("using in-memory storage; data is lost on restart")
		return &storage{Repository: repository.NewMemoryEmployeeRepository()}, nil
	}

	db, err := database.InitDB(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if cfg.Storage.AutoMigrate {
		if err := database.Migrate(ctx, db, cfg.Storage.Driver); err != nil {
			db.Close()
			return nil, err
		}
		log.Info().Str("driver", cfg.Storage.Driver).Msg("schema migrated")
	}

	s := &storage{db: db}
	switch cfg.Storage.Driver {
	case config.DriverPostgres:
		s.Repository = repository.NewPostgresEmployeeRepository(db)
	case config.DriverSQLite:
		s.Repository = repository.NewSQLiteEmployeeRepository(db)
	default:
		db.Close()
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.Storage.Driver)
	}

	return s, nil
}
