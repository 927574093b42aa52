package main

import (
	"employee-api/internal/config"
	"employee-api/internal/logger"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "employee-api",
	Short: "Employee HTTP API",
	Long:  "Serves the employee resource over HTTP with POST, GET, PUT and DELETE semantics",
	RunE:  runServe,
	// Errors are logged by main
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadRuntime loads configuration and builds the process logger
func loadRuntime() (*config.Config, zerolog.Logger, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, zerolog.Nop(), fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, logger.New(cfg.Log), nil
}
