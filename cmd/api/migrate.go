package main

import (
	"employee-api/internal/config"
	"employee-api/internal/database"
	"fmt"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the employees schema",
	Long:  "Apply the employees schema to the configured SQL database. Safe to run repeatedly.",
	RunE:  runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, log, err := loadRuntime()
	if err != nil {
		return err
	}

	if cfg.Storage.Driver == config.DriverMemory {
		log.Info().Msg("memory storage needs no migration")
		return nil
	}

	db, err := database.InitDB(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	if err := database.Migrate(cmd.Context(), db, cfg.Storage.Driver); err != nil {
		return err
	}

	log.Info().Str("driver", cfg.Storage.Driver).Msg("migration complete")
	return nil
}
