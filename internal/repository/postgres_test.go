package repository

import (
	"context"
	"database/sql"
	"employee-api/internal/model"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupPostgres(t testing.TB) (*sql.DB, sqlmock.Sqlmock, *PostgresEmployeeRepository) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	return db, mock, NewPostgresEmployeeRepository(db)
}

var (
	pgSelect   = regexp.QuoteMeta(`SELECT id, name, role FROM employees WHERE id = $1`)
	pgInsert   = regexp.QuoteMeta(`INSERT INTO employees (name, role) VALUES ($1, $2) RETURNING id, name, role`)
	pgUpsert   = regexp.QuoteMeta(`INSERT INTO employees (id, name, role) VALUES ($1, $2, $3) ON CONFLICT (id) DO UPDATE`)
	pgSequence = regexp.QuoteMeta(`SELECT setval('employees_id_seq'`)
	pgDelete   = regexp.QuoteMeta(`DELETE FROM employees WHERE id = $1`)
)

func TestPostgresFindByID_Found(t *testing.T) {
	db, mock, repo := setupPostgres(t)
	defer db.Close()

	mock.ExpectQuery(pgSelect).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "role"}).AddRow(int64(1), "Mary", "Manager"))

	e, found, err := repo.FindByID(context.Background(), 1)

	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, model.NewEmployeeWithID(1, "Mary", "Manager"), e)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresFindByID_Absent(t *testing.T) {
	db, mock, repo := setupPostgres(t)
	defer db.Close()

	mock.ExpectQuery(pgSelect).
		WithArgs(int64(9)).
		WillReturnError(sql.ErrNoRows)

	_, found, err := repo.FindByID(context.Background(), 9)

	assert.NoError(t, err)
	assert.False(t, found)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresFindByID_Unavailable(t *testing.T) {
	db, mock, repo := setupPostgres(t)
	defer db.Close()

	mock.ExpectQuery(pgSelect).WillReturnError(errors.New("connection refused"))

	_, found, err := repo.FindByID(context.Background(), 1)

	assert.False(t, found)
	assert.True(t, errors.Is(err, ErrUnavailable))
	assert.Contains(t, err.Error(), "connection refused")
}

func TestPostgresSave_TransientGetsAssignedID(t *testing.T) {
	db, mock, repo := setupPostgres(t)
	defer db.Close()

	mock.ExpectQuery(pgInsert).
		WithArgs("Mary", "Manager").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "role"}).AddRow(int64(1), "Mary", "Manager"))
	mock.ExpectQuery(pgInsert).
		WithArgs("Mary", "Manager").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "role"}).AddRow(int64(2), "Mary", "Manager"))

	first, err := repo.Save(context.Background(), model.NewEmployee("Mary", "Manager"))
	require.NoError(t, err)
	second, err := repo.Save(context.Background(), model.NewEmployee("Mary", "Manager"))
	require.NoError(t, err)

	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, int64(2), second.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSave_IdentifiedUpsertsAndAdvancesSequence(t *testing.T) {
	db, mock, repo := setupPostgres(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(pgUpsert).
		WithArgs(int64(7), "Tom", "Manager").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "role"}).AddRow(int64(7), "Tom", "Manager"))
	mock.ExpectExec(pgSequence).
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	saved, err := repo.Save(context.Background(), model.NewEmployeeWithID(7, "Tom", "Manager"))

	require.NoError(t, err)
	assert.Equal(t, model.NewEmployeeWithID(7, "Tom", "Manager"), saved)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSave_UpsertFailureRollsBack(t *testing.T) {
	db, mock, repo := setupPostgres(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(pgUpsert).WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	_, err := repo.Save(context.Background(), model.NewEmployeeWithID(7, "Tom", "Manager"))

	assert.True(t, errors.Is(err, ErrUnavailable))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSave_UniqueViolation(t *testing.T) {
	db, mock, repo := setupPostgres(t)
	defer db.Close()

	mock.ExpectQuery(pgInsert).
		WillReturnError(&pq.Error{Code: pqUniqueViolation, Message: `duplicate key value violates unique constraint "employees_pkey"`})

	_, err := repo.Save(context.Background(), model.NewEmployee("Mary", "Manager"))

	assert.True(t, errors.Is(err, ErrConflict))
	assert.False(t, errors.Is(err, ErrUnavailable))
}

func TestPostgresSave_NegativeID(t *testing.T) {
	db, mock, repo := setupPostgres(t)
	defer db.Close()

	_, err := repo.Save(context.Background(), model.NewEmployeeWithID(-1, "Tom", "Manager"))

	assert.True(t, errors.Is(err, ErrInvalidID))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresDeleteByID_AbsentIsNoop(t *testing.T) {
	db, mock, repo := setupPostgres(t)
	defer db.Close()

	mock.ExpectExec(pgDelete).
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, repo.DeleteByID(context.Background(), 3))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresDeleteByID_Unavailable(t *testing.T) {
	db, mock, repo := setupPostgres(t)
	defer db.Close()

	mock.ExpectExec(pgDelete).WillReturnError(errors.New("connection reset"))

	err := repo.DeleteByID(context.Background(), 3)
	assert.True(t, errors.Is(err, ErrUnavailable))
}
