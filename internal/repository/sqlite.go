package repository

import (
	"context"
	"database/sql"
	"employee-api/internal/model"
	"errors"
)

// SQLiteEmployeeRepository stores employees in a SQLite table with an AUTOINCREMENT id,
// which never hands out an id that was used before, even after deletion.
type SQLiteEmployeeRepository struct {
	DB *sql.DB
}

// NewSQLiteEmployeeRepository creates a new SQLiteEmployeeRepository.
func NewSQLiteEmployeeRepository(db *sql.DB) *SQLiteEmployeeRepository {
	return &SQLiteEmployeeRepository{DB: db}
}

// FindByID retrieves a single employee by its ID.
func (r *SQLiteEmployeeRepository) FindByID(ctx context.Context, id int64) (model.Employee, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, operationTimeout)
	defer cancel()

	var e model.Employee
	err := r.DB.QueryRowContext(ctx, `SELECT id, name, role FROM employees WHERE id = ?`, id).
		Scan(&e.ID, &e.Name, &e.Role)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Employee{}, false, nil
		}
		return model.Employee{}, false, unavailable("find employee", err)
	}
	return e, true, nil
}

// Save inserts a transient employee or upserts an identified one.
func (r *SQLiteEmployeeRepository) Save(ctx context.Context, employee model.Employee) (model.Employee, error) {
	if err := checkID(employee); err != nil {
		return model.Employee{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, operationTimeout)
	defer cancel()

	if employee.IsTransient() {
		result, err := r.DB.ExecContext(ctx,
			`INSERT INTO employees (name, role) VALUES (?, ?)`,
			employee.Name, employee.Role)
		if err != nil {
			return model.Employee{}, unavailable("create employee", err)
		}

		id, err := result.LastInsertId()
		if err != nil {
			return model.Employee{}, unavailable("read assigned id", err)
		}
		return model.NewEmployeeWithID(id, employee.Name, employee.Role), nil
	}

	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO employees (id, name, role) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name, role = excluded.role`,
		employee.ID, employee.Name, employee.Role)
	if err != nil {
		return model.Employee{}, unavailable("upsert employee", err)
	}
	return employee, nil
}

// DeleteByID deletes an employee; deleting an absent id is not an error.
func (r *SQLiteEmployeeRepository) DeleteByID(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, operationTimeout)
	defer cancel()

	if _, err := r.DB.ExecContext(ctx, `DELETE FROM employees WHERE id = ?`, id); err != nil {
		return unavailable("delete employee", err)
	}
	return nil
}

// Ping checks the database connection.
func (r *SQLiteEmployeeRepository) Ping(ctx context.Context) error {
	if err := r.DB.PingContext(ctx); err != nil {
		return unavailable("ping", err)
	}
	return nil
}
