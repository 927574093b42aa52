package repository

import (
	"context"
	"employee-api/internal/model"
	"sync"
)

// MemoryEmployeeRepository keeps employees in a map guarded by a mutex.
// Every Save runs under the write lock, so same-id upserts are serialized.
type MemoryEmployeeRepository struct {
	mu        sync.RWMutex
	employees map[int64]model.Employee
	lastID    int64
}

// NewMemoryEmployeeRepository creates an empty MemoryEmployeeRepository.
func NewMemoryEmployeeRepository() *MemoryEmployeeRepository {
	return &MemoryEmployeeRepository{employees: make(map[int64]model.Employee)}
}

// FindByID retrieves a single employee by its ID.
func (r *MemoryEmployeeRepository) FindByID(ctx context.Context, id int64) (model.Employee, bool, error) {
	if err := ctx.Err(); err != nil {
		return model.Employee{}, false, unavailable("find employee", err)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.employees[id]
	return e, ok, nil
}

// Save inserts a transient employee under a fresh id or replaces the record at its id.
func (r *MemoryEmployeeRepository) Save(ctx context.Context, employee model.Employee) (model.Employee, error) {
	if err := checkID(employee); err != nil {
		return model.Employee{}, err
	}
	if err := ctx.Err(); err != nil {
		return model.Employee{}, unavailable("save employee", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if employee.IsTransient() {
		r.lastID++
		employee = model.NewEmployeeWithID(r.lastID, employee.Name, employee.Role)
	} else if employee.ID > r.lastID {
		// keep server-assigned ids ahead of client-assigned ones
		r.lastID = employee.ID
	}

	r.employees[employee.ID] = employee
	return employee, nil
}

// DeleteByID deletes an employee; deleting an absent id is not an error.
func (r *MemoryEmployeeRepository) DeleteByID(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return unavailable("delete employee", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.employees, id)
	return nil
}

// Ping always succeeds for the in-memory store.
func (r *MemoryEmployeeRepository) Ping(ctx context.Context) error {
	return nil
}

// Len returns the number of stored employees.
func (r *MemoryEmployeeRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.employees)
}
