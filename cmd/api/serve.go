package main

import (
	"context"
	"employee-api/internal/config"
	"employee-api/internal/handler"
	"employee-api/internal/notification"
	"employee-api/internal/router"
	"employee-api/internal/service"
	servicenotification "employee-api/internal/service/notification"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long:  "Start the HTTP server and block until SIGINT or SIGTERM",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, log, err := loadRuntime()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := openStorage(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer store.Close()

	svc := service.NewEmployeeService(store.Repository, newChangeNotifier(cfg, log), log)

	h := handler.NewEmployeeHandler(svc, store.Repository, log)
	h.MaxBodyBytes = cfg.Server.MaxBodyBytes

	server := &http.Server{
		Addr:           fmt.Sprintf(":%d", cfg.Port),
		Handler:        router.NewRouter(h, cfg, log),
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().
			Int("port", cfg.Port).
			Str("storage", cfg.Storage.Driver).
			Int("rate_limit_rps", cfg.Security.RateLimitRPS).
			Int("rate_limit_burst", cfg.Security.RateLimitBurst).
			Bool("cors", cfg.Security.EnableCORS).
			Dur("request_timeout", cfg.Security.RequestTimeout).
			Msg("starting server")

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("server is shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Security.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		return err
	}

	log.Info().Msg("server exited gracefully")
	return nil
}

// newChangeNotifier returns nil when no webhook is configured
func newChangeNotifier(cfg *config.Config, log zerolog.Logger) service.ChangeNotifier {
	if !cfg.NotificationsEnabled() {
		log.Info().Msg("change notifications disabled")
		return nil
	}

	client := notification.NewNotifierWithConfig(notification.NotificationConfig{
		URL:            cfg.Notification.URL,
		Timeout:        cfg.Notification.Timeout,
		RetryAttempts:  cfg.Notification.RetryAttempts,
		RetryDelay:     cfg.Notification.RetryDelay,
		MaxPayloadSize: cfg.Notification.MaxPayloadSize,
	}, log)

	return servicenotification.NewServiceAdapter(client)
}
