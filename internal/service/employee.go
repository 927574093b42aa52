package service

import (
	"context"
	"employee-api/internal/model"
	"employee-api/internal/repository"
	apperrors "employee-api/pkg/errors"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// ChangeNotifier receives a notice after every successful write
type ChangeNotifier interface {
	NotifyEmployeeChange(ctx context.Context, change EmployeeChange) error
}

// ChangeType represents the kind of write that happened
type ChangeType string

const (
	ChangeCreated ChangeType = "created"
	ChangeUpdated ChangeType = "updated"
	ChangeDeleted ChangeType = "deleted"
)

// EmployeeChange describes a write that was applied to the repository
type EmployeeChange struct {
	Type       ChangeType
	EmployeeID int64
	Employee   *model.Employee
}

// UpsertOutcome tells which branch an upsert took
type UpsertOutcome int

const (
	OutcomeCreated UpsertOutcome = iota + 1
	OutcomeUpdated
)

// notifyTimeout bounds a single asynchronous notification
const notifyTimeout = 10 * time.Second

// EmployeeService implements the verb semantics on top of an EmployeeRepository.
// It holds no mutable state of its own.
type EmployeeService struct {
	repo     repository.EmployeeRepository
	resolver *Resolver
	notifier ChangeNotifier
	logger   zerolog.Logger
}

// NewEmployeeService creates a new employee service; notifier may be nil
func NewEmployeeService(repo repository.EmployeeRepository, notifier ChangeNotifier, logger zerolog.Logger) *EmployeeService {
	return &EmployeeService{
		repo:     repo,
		resolver: NewResolver(repo),
		notifier: notifier,
		logger:   logger,
	}
}

// Create always stores a new employee under a repository-assigned id.
func (s *EmployeeService) Create(ctx context.Context, name, role string) (model.Employee, error) {
	saved, err := s.repo.Save(ctx, model.NewEmployee(name, role))
	if err != nil {
		return model.Employee{}, storageError("create", err)
	}

	s.publish(EmployeeChange{Type: ChangeCreated, EmployeeID: saved.ID, Employee: &saved})
	return saved, nil
}

// Get looks an employee up without touching anything else.
func (s *EmployeeService) Get(ctx context.Context, id int64) (model.Employee, bool, error) {
	employee, found, err := s.resolver.Resolve(ctx, id)
	if err != nil {
		return model.Employee{}, false, storageError("retrieve", err)
	}
	return employee, found, nil
}

// Upsert stores name and role at the caller-supplied id, creating the record if
// it is absent and replacing it otherwise.
func (s *EmployeeService) Upsert(ctx context.Context, id int64, name, role string) (model.Employee, UpsertOutcome, error) {
	_, found, err := s.resolver.Resolve(ctx, id)
	if err != nil {
		return model.Employee{}, 0, storageError("retrieve", err)
	}

	outcome, change := OutcomeCreated, ChangeCreated
	if found {
		outcome, change = OutcomeUpdated, ChangeUpdated
	}

	saved, err := s.repo.Save(ctx, model.NewEmployeeWithID(id, name, role))
	if err != nil {
		return model.Employee{}, 0, storageError("save", err)
	}

	s.publish(EmployeeChange{Type: change, EmployeeID: saved.ID, Employee: &saved})
	return saved, outcome, nil
}

// Delete removes the employee whether or not it exists.
func (s *EmployeeService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.DeleteByID(ctx, id); err != nil {
		return storageError("delete", err)
	}

	s.publish(EmployeeChange{Type: ChangeDeleted, EmployeeID: id})
	return nil
}

// publish hands the change to the notifier without blocking the caller
func (s *EmployeeService) publish(change EmployeeChange) {
	if s.notifier == nil {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()

		if err := s.notifier.NotifyEmployeeChange(ctx, change); err != nil {
			s.logger.Warn().Err(err).
				Int64("employee_id", change.EmployeeID).
				Str("change", string(change.Type)).
				Msg("failed to publish employee change")
		}
	}()
}

func storageError(operation string, err error) error {
	switch {
	case errors.Is(err, repository.ErrConflict):
		return apperrors.ConflictError(operation, err)
	case errors.Is(err, repository.ErrInvalidID):
		return apperrors.InvalidParameterError("id", err)
	case errors.Is(err, repository.ErrUnavailable):
		return apperrors.RepositoryUnavailableError(operation, err)
	default:
		return apperrors.RepositoryUnavailableError(operation, fmt.Errorf("%w: %w", repository.ErrUnavailable, err))
	}
}
