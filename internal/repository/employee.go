package repository

import (
	"context"
	"employee-api/internal/model"
	"errors"
	"fmt"
	"time"
)

// Custom errors for better error handling
var (
	// ErrUnavailable wraps every failure of the backing store.
	ErrUnavailable = errors.New("employee repository unavailable")
	// ErrConflict is returned when the store rejects a write on a uniqueness constraint.
	ErrConflict = errors.New("employee id conflict")
	// ErrInvalidID is returned for negative identifiers.
	ErrInvalidID = errors.New("invalid employee id")
)

// Default per-operation deadline applied on top of the caller's context.
const operationTimeout = 5 * time.Second

// EmployeeRepository is the storage contract the service layer depends on.
//
// FindByID has no side effects and reports absence with found == false and a nil error.
// Save assigns a fresh id to a transient employee and otherwise performs an atomic
// upsert at the employee's id. DeleteByID is a no-op for an absent id.
type EmployeeRepository interface {
	FindByID(ctx context.Context, id int64) (employee model.Employee, found bool, err error)
	Save(ctx context.Context, employee model.Employee) (model.Employee, error)
	DeleteByID(ctx context.Context, id int64) error
}

// Pinger is implemented by repositories that can report backend health.
type Pinger interface {
	Ping(ctx context.Context) error
}

func unavailable(operation string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrUnavailable, operation, err)
}

func checkID(employee model.Employee) error {
	if employee.ID < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidID, employee.ID)
	}
	return nil
}
