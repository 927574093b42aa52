package router

import (
	"employee-api/internal/config"
	"employee-api/internal/handler"
	"employee-api/internal/middleware"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

// NewRouter creates a new router and sets up the routes with security middleware.
func NewRouter(h handler.EmployeeHandlerInterface, cfg *config.Config, logger zerolog.Logger) *mux.Router {
	r := mux.NewRouter()

	securityMW := middleware.NewSecurityMiddleware(&cfg.Security)
	loggingMW := middleware.NewLoggingMiddleware(logger)

	// Applied in order; mux.Use middleware only runs for matched routes,
	// so the fallback handlers below are wrapped the same way.
	chain := []mux.MiddlewareFunc{
		middleware.RequestID,
		securityMW.TrustedProxy,
		loggingMW.LogRequests,
		securityMW.SecurityHeaders,
		securityMW.CORS,
		securityMW.RateLimit,
		securityMW.RequestTimeout,
	}
	r.Use(chain...)

	// Employee operations
	r.HandleFunc(handler.EmployeesPath, h.CreateEmployeeHandler).Methods(http.MethodPost)
	r.HandleFunc(handler.EmployeesPath+"/{id}", h.GetEmployeeHandler).Methods(http.MethodGet)
	r.HandleFunc(handler.EmployeesPath+"/{id}", h.UpsertEmployeeHandler).Methods(http.MethodPut)
	r.HandleFunc(handler.EmployeesPath+"/{id}", h.DeleteEmployeeHandler).Methods(http.MethodDelete)

	// Health check
	r.HandleFunc("/health", h.HealthHandler).Methods(http.MethodGet)

	r.NotFoundHandler = wrap(http.HandlerFunc(h.RouteNotFoundHandler), chain)
	r.MethodNotAllowedHandler = wrap(http.HandlerFunc(h.MethodNotAllowedHandler), chain)

	return r
}

func wrap(h http.Handler, chain []mux.MiddlewareFunc) http.Handler {
	for i := len(chain) - 1; i >= 0; i-- {
		h = chain[i](h)
	}
	return h
}
