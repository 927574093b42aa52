package service

import (
	"context"
	"employee-api/internal/model"
	"employee-api/internal/repository"
)

// Resolver answers whether an employee id is currently present.
type Resolver struct {
	repo repository.EmployeeRepository
}

// NewResolver creates a Resolver over the given repository
func NewResolver(repo repository.EmployeeRepository) *Resolver {
	return &Resolver{repo: repo}
}

// Resolve returns the current record and true when present, or false when absent.
// A non-nil error means presence could not be determined.
func (r *Resolver) Resolve(ctx context.Context, id int64) (model.Employee, bool, error) {
	return r.repo.FindByID(ctx, id)
}
