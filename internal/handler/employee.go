package handler

import (
	"context"
	"employee-api/internal/model"
	"employee-api/internal/repository"
	"employee-api/internal/service"
	apperrors "employee-api/pkg/errors"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

// Constants for limits and timeouts
const (
	DefaultMaxBodyBytes = 1 << 20
	HealthCheckTimeout  = 2 * time.Second
)

// EmployeeService is the behaviour the handlers need from the service layer
type EmployeeService interface {
	Create(ctx context.Context, name, role string) (model.Employee, error)
	Get(ctx context.Context, id int64) (model.Employee, bool, error)
	Upsert(ctx context.Context, id int64, name, role string) (model.Employee, service.UpsertOutcome, error)
	Delete(ctx context.Context, id int64) error
}

// EmployeeHandler handles the HTTP requests for employees.
type EmployeeHandler struct {
	Service      EmployeeService
	Storage      repository.Pinger
	Logger       zerolog.Logger
	MaxBodyBytes int64

	// Helper components for cleaner code organization
	ErrorHandler   *ErrorHandler
	ResponseHelper *ResponseHelper
}

// NewEmployeeHandler creates a new EmployeeHandler; storage may be nil when no health probe is available
func NewEmployeeHandler(svc EmployeeService, storage repository.Pinger, logger zerolog.Logger) *EmployeeHandler {
	return &EmployeeHandler{
		Service:        svc,
		Storage:        storage,
		Logger:         logger,
		MaxBodyBytes:   DefaultMaxBodyBytes,
		ErrorHandler:   NewErrorHandler(logger),
		ResponseHelper: NewResponseHelper(),
	}
}

// CreateEmployeeHandler handles POST /employees. Every call creates a new employee.
func (h *EmployeeHandler) CreateEmployeeHandler(w http.ResponseWriter, r *http.Request) {
	payload, ok := h.decodePayload(w, r)
	if !ok {
		return
	}

	employee, err := h.Service.Create(r.Context(), payload.Name, payload.Role)
	if err != nil {
		h.ErrorHandler.HandleError(w, r, err, "create")
		return
	}

	h.ResponseHelper.SetCommonHeaders(w)
	w.Header().Set("Location", h.ResponseHelper.EmployeeURL(employee.ID))
	h.ErrorHandler.SendJSONResponse(w, http.StatusCreated, employee)
}

// GetEmployeeHandler handles GET /employees/{id}. An absent employee yields 404 with no body.
func (h *EmployeeHandler) GetEmployeeHandler(w http.ResponseWriter, r *http.Request) {
	id, valid := h.ErrorHandler.ParseAndValidateID(w, r, mux.Vars(r)["id"])
	if !valid {
		return
	}

	employee, found, err := h.Service.Get(r.Context(), id)
	if err != nil {
		h.ErrorHandler.HandleError(w, r, err, "retrieve")
		return
	}

	h.ResponseHelper.SetCommonHeaders(w)
	if !found {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	h.ErrorHandler.SendJSONResponse(w, http.StatusOK, employee)
}

// UpsertEmployeeHandler handles PUT /employees/{id}: 201 when the id was absent, 200 when it was replaced.
// The path id wins over any id in the body.
func (h *EmployeeHandler) UpsertEmployeeHandler(w http.ResponseWriter, r *http.Request) {
	id, valid := h.ErrorHandler.ParseAndValidateID(w, r, mux.Vars(r)["id"])
	if !valid {
		return
	}

	payload, ok := h.decodePayload(w, r)
	if !ok {
		return
	}

	employee, outcome, err := h.Service.Upsert(r.Context(), id, payload.Name, payload.Role)
	if err != nil {
		h.ErrorHandler.HandleError(w, r, err, "save")
		return
	}

	status := http.StatusOK
	if outcome == service.OutcomeCreated {
		status = http.StatusCreated
	}

	h.ResponseHelper.SetCommonHeaders(w)
	w.Header().Set("Content-Location", h.ResponseHelper.EmployeeURL(id))
	h.ErrorHandler.SendJSONResponse(w, status, employee)
}

// DeleteEmployeeHandler handles DELETE /employees/{id}. It answers 204 whether or not the employee existed.
func (h *EmployeeHandler) DeleteEmployeeHandler(w http.ResponseWriter, r *http.Request) {
	id, valid := h.ErrorHandler.ParseAndValidateID(w, r, mux.Vars(r)["id"])
	if !valid {
		return
	}

	if err := h.Service.Delete(r.Context(), id); err != nil {
		h.ErrorHandler.HandleError(w, r, err, "delete")
		return
	}

	h.ResponseHelper.SetCommonHeaders(w)
	w.WriteHeader(http.StatusNoContent)
}

// RouteNotFoundHandler answers requests no route matched
func (h *EmployeeHandler) RouteNotFoundHandler(w http.ResponseWriter, r *http.Request) {
	appErr := apperrors.RouteNotFoundError().WithDetail("path", r.URL.Path)
	h.ErrorHandler.SendErrorResponse(w, appErr.GetHTTPStatus(), appErr.Message, string(appErr.Code), appErr.Details)
}

// MethodNotAllowedHandler answers requests whose path matched but verb did not
func (h *EmployeeHandler) MethodNotAllowedHandler(w http.ResponseWriter, r *http.Request) {
	appErr := apperrors.MethodNotAllowedError(r.Method)
	h.ErrorHandler.SendErrorResponse(w, appErr.GetHTTPStatus(), appErr.Message, string(appErr.Code), nil)
}

// HealthHandler reports whether the storage backend answers
func (h *EmployeeHandler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	var storageErr error
	if h.Storage != nil {
		ctx, cancel := context.WithTimeout(r.Context(), HealthCheckTimeout)
		defer cancel()
		storageErr = h.Storage.Ping(ctx)
	}

	data := h.ResponseHelper.CreateHealthCheckData(storageErr)
	status := http.StatusOK
	if storageErr != nil {
		h.Logger.Warn().Err(storageErr).Msg("health check failed")
		status = http.StatusServiceUnavailable
	}

	h.ErrorHandler.SendJSONResponse(w, status, data)
}

// decodePayload reads a single JSON object from the body, answering 400 when it does not fit
func (h *EmployeeHandler) decodePayload(w http.ResponseWriter, r *http.Request) (model.EmployeePayload, bool) {
	var payload model.EmployeePayload

	body := http.MaxBytesReader(w, r.Body, h.MaxBodyBytes)
	decoder := json.NewDecoder(body)
	if err := decoder.Decode(&payload); err != nil {
		h.ErrorHandler.HandleJSONDecodeError(w, r, err)
		return model.EmployeePayload{}, false
	}

	if err := decoder.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		h.ErrorHandler.HandleJSONDecodeError(w, r, fmt.Errorf("unexpected data after JSON object"))
		return model.EmployeePayload{}, false
	}

	return payload, true
}
