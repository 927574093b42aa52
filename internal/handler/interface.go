package handler

import (
	"net/http"
)

// EmployeeHandlerInterface defines the contract for employee HTTP handlers.
// The router depends on this interface rather than the concrete handler.
type EmployeeHandlerInterface interface {
	// Employee verbs
	CreateEmployeeHandler(w http.ResponseWriter, r *http.Request)
	GetEmployeeHandler(w http.ResponseWriter, r *http.Request)
	UpsertEmployeeHandler(w http.ResponseWriter, r *http.Request)
	DeleteEmployeeHandler(w http.ResponseWriter, r *http.Request)

	// Dispatcher fallbacks
	RouteNotFoundHandler(w http.ResponseWriter, r *http.Request)
	MethodNotAllowedHandler(w http.ResponseWriter, r *http.Request)

	// Health and monitoring
	HealthHandler(w http.ResponseWriter, r *http.Request)
}

// Ensure EmployeeHandler implements EmployeeHandlerInterface at compile time
var _ EmployeeHandlerInterface = (*EmployeeHandler)(nil)
