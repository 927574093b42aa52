package handler

import (
	"fmt"
	"net/http"
	"time"
)

// EmployeesPath is the collection path all employee URLs hang off
const EmployeesPath = "/employees"

// ResponseHelper provides common response utilities
type ResponseHelper struct{}

// NewResponseHelper creates a new ResponseHelper instance
func NewResponseHelper() *ResponseHelper {
	return &ResponseHelper{}
}

// EmployeeURL returns the canonical URL of the employee with the given id
func (rh *ResponseHelper) EmployeeURL(id int64) string {
	return fmt.Sprintf("%s/%d", EmployeesPath, id)
}

// SetCommonHeaders sets common HTTP headers for all responses
func (rh *ResponseHelper) SetCommonHeaders(w http.ResponseWriter) {
	w.Header().Set("X-API-Version", "v1")
}

// HealthStatus is the body of the health endpoint
type HealthStatus struct {
	Status    string    `json:"status"`
	Service   string    `json:"service"`
	Storage   string    `json:"storage"`
	Error     string    `json:"error,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// CreateHealthCheckData creates health check response data
func (rh *ResponseHelper) CreateHealthCheckData(storageErr error) HealthStatus {
	status := HealthStatus{
		Status:    "healthy",
		Service:   "employee-api",
		Storage:   "up",
		Timestamp: time.Now().UTC(),
	}
	if storageErr != nil {
		status.Status = "degraded"
		status.Storage = "down"
		status.Error = storageErr.Error()
	}
	return status
}
