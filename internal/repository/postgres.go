package repository

import (
	"context"
	"database/sql"
	"employee-api/internal/model"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

// PostgreSQL error code for unique_violation
const pqUniqueViolation = "23505"

// PostgresEmployeeRepository stores employees in a PostgreSQL table backed by a BIGSERIAL id.
type PostgresEmployeeRepository struct {
	DB *sql.DB
}

// NewPostgresEmployeeRepository creates a new PostgresEmployeeRepository.
func NewPostgresEmployeeRepository(db *sql.DB) *PostgresEmployeeRepository {
	return &PostgresEmployeeRepository{DB: db}
}

// FindByID retrieves a single employee by its ID.
func (r *PostgresEmployeeRepository) FindByID(ctx context.Context, id int64) (model.Employee, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, operationTimeout)
	defer cancel()

	query := `SELECT id, name, role FROM employees WHERE id = $1`

	var e model.Employee
	if err := r.DB.QueryRowContext(ctx, query, id).Scan(&e.ID, &e.Name, &e.Role); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Employee{}, false, nil
		}
		return model.Employee{}, false, unavailable("find employee", err)
	}
	return e, true, nil
}

// Save inserts a transient employee or upserts an identified one.
func (r *PostgresEmployeeRepository) Save(ctx context.Context, employee model.Employee) (model.Employee, error) {
	if err := checkID(employee); err != nil {
		return model.Employee{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, operationTimeout)
	defer cancel()

	if employee.IsTransient() {
		return r.insert(ctx, employee)
	}
	return r.upsert(ctx, employee)
}

func (r *PostgresEmployeeRepository) insert(ctx context.Context, employee model.Employee) (model.Employee, error) {
	query := `
		INSERT INTO employees (name, role)
		VALUES ($1, $2)
		RETURNING id, name, role`

	var saved model.Employee
	err := r.DB.QueryRowContext(ctx, query, employee.Name, employee.Role).
		Scan(&saved.ID, &saved.Name, &saved.Role)
	if err != nil {
		return model.Employee{}, translateError("create employee", err)
	}
	return saved, nil
}

// upsert writes the record at its id and moves the sequence past it so that
// later server-assigned ids never collide with client-assigned ones.
func (r *PostgresEmployeeRepository) upsert(ctx context.Context, employee model.Employee) (model.Employee, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return model.Employee{}, unavailable("begin upsert", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO employees (id, name, role)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, role = EXCLUDED.role
		RETURNING id, name, role`

	var saved model.Employee
	err = tx.QueryRowContext(ctx, query, employee.ID, employee.Name, employee.Role).
		Scan(&saved.ID, &saved.Name, &saved.Role)
	if err != nil {
		return model.Employee{}, translateError("upsert employee", err)
	}

	sequenceQuery := `SELECT setval('employees_id_seq', GREATEST($1, (SELECT last_value FROM employees_id_seq)))`
	if _, err := tx.ExecContext(ctx, sequenceQuery, employee.ID); err != nil {
		return model.Employee{}, unavailable("advance id sequence", err)
	}

	if err := tx.Commit(); err != nil {
		return model.Employee{}, unavailable("commit upsert", err)
	}
	return saved, nil
}

// DeleteByID deletes an employee; deleting an absent id is not an error.
func (r *PostgresEmployeeRepository) DeleteByID(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, operationTimeout)
	defer cancel()

	if _, err := r.DB.ExecContext(ctx, `DELETE FROM employees WHERE id = $1`, id); err != nil {
		return unavailable("delete employee", err)
	}
	return nil
}

// Ping checks the database connection.
func (r *PostgresEmployeeRepository) Ping(ctx context.Context) error {
	if err := r.DB.PingContext(ctx); err != nil {
		return unavailable("ping", err)
	}
	return nil
}

func translateError(operation string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
		return fmt.Errorf("%w: %s: %s", ErrConflict, operation, pqErr.Message)
	}
	return unavailable(operation, err)
}
