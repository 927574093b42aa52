package handler

import (
	apperrors "employee-api/pkg/errors"
	"employee-api/pkg/validation"
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"
)

// ErrorResponse is the JSON document written for every error
type ErrorResponse struct {
	Error   string                 `json:"error"`
	Code    string                 `json:"code,omitempty"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// ErrorHandler provides centralized error handling functionality for handlers
type ErrorHandler struct {
	Logger zerolog.Logger
}

// NewErrorHandler creates a new ErrorHandler instance
func NewErrorHandler(logger zerolog.Logger) *ErrorHandler {
	return &ErrorHandler{Logger: logger}
}

// SendErrorResponse sends a structured error response
func (e *ErrorHandler) SendErrorResponse(w http.ResponseWriter, statusCode int, message, code string, details map[string]interface{}) {
	if len(details) == 0 {
		details = nil
	}
	e.SendJSONResponse(w, statusCode, ErrorResponse{
		Error:   message,
		Code:    code,
		Details: details,
	})
}

// SendJSONResponse sends a generic JSON response
func (e *ErrorHandler) SendJSONResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	body, err := json.Marshal(data)
	if err != nil {
		e.Logger.Error().Err(err).Msg("failed to encode JSON response")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write(apperrors.InternalError("Failed to encode response", err).ToJSON())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if _, err := w.Write(body); err != nil {
		e.Logger.Debug().Err(err).Msg("failed to write response body")
	}
}

// HandleError maps an error onto its HTTP response; errors that are not
// AppErrors are treated as internal failures.
func (e *ErrorHandler) HandleError(w http.ResponseWriter, r *http.Request, err error, operation string) {
	appErr := apperrors.WrapError(err, "Failed to "+operation+" employee")
	status := appErr.GetHTTPStatus()

	event := e.Logger.Warn()
	if status >= http.StatusInternalServerError {
		event = e.Logger.Error()
	}
	event.Err(err).
		Str("operation", operation).
		Str("code", string(appErr.Code)).
		Str("path", r.URL.Path).
		Msg("request failed")

	e.SendErrorResponse(w, status, appErr.Message, string(appErr.Code), appErr.Details)
}

// HandleJSONDecodeError handles JSON decoding errors
func (e *ErrorHandler) HandleJSONDecodeError(w http.ResponseWriter, r *http.Request, err error) {
	e.HandleError(w, r, apperrors.MalformedPayloadError(err), "decode")
}

// ParseAndValidateID parses the id path parameter, answering 400 when it is unusable
func (e *ErrorHandler) ParseAndValidateID(w http.ResponseWriter, r *http.Request, raw string) (int64, bool) {
	id, err := validation.ParseEmployeeID(raw)
	if err != nil {
		appErr := apperrors.InvalidParameterError("id", err).WithDetail("reason", err.Error())
		e.HandleError(w, r, appErr, "parse")
		return 0, false
	}
	return id, true
}
