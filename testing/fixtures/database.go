// Package fixtures holds helpers for tests that load datasets through a fixture session.
package fixtures

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/gaborage/dbfixture/database/sqldb"
	"github.com/gaborage/dbfixture/dataset"
	"github.com/gaborage/dbfixture/diff"
	"github.com/gaborage/dbfixture/fixture"
	"github.com/gaborage/dbfixture/profile"
	"github.com/gaborage/dbfixture/testing/mocks"
)

// TB is the subset of testing.TB the helpers use.
type TB interface {
	require.TestingT
	Helper()
	Cleanup(func())
}

// NewSQLMockSession creates a session for p on a go-sqlmock connection that matches
// statements exactly. Unmet expectations fail the test at cleanup.
func NewSQLMockSession(t TB, p profile.Profile, opts ...fixture.Option) (*fixture.Session, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)

	s, err := fixture.NewSession(sqldb.New(db, p.Vendor), p, opts...)
	require.NoError(t, err)

	t.Cleanup(func() {
		require.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return s, mock
}

// Load applies ds with the session's setup operation and fails the test on error.
func Load(t TB, s *fixture.Session, ds *dataset.Dataset) {
	t.Helper()
	_, err := s.Setup(context.Background(), ds)
	require.NoError(t, err)
}

// AssertDataset fails the test with every difference between expected and the live
// tables it names.
func AssertDataset(t TB, s *fixture.Session, expected *dataset.Dataset, opts ...diff.Option) bool {
	t.Helper()
	d, err := s.Compare(context.Background(), expected, opts...)
	require.NoError(t, err)
	if d.Empty() {
		return true
	}
	t.Errorf("dataset mismatch:\n%s", d.String())
	return false
}

// AddTable adds a table with rows to ds and fails the test on error.
func AddTable(t TB, ds *dataset.Dataset, name string, columns []dataset.Column, rows ...[]any) *dataset.Table {
	t.Helper()
	tbl, err := ds.NewTable(name, columns)
	require.NoError(t, err)
	for _, r := range rows {
		require.NoError(t, tbl.AddRow(r...))
	}
	return tbl
}

// SQL Result Builders

// NewMockRows creates sql.Rows for testing with the provided columns and data.
//
// Example:
//
//	rows := fixtures.NewMockRows(
//	  []string{"id", "name"},
//	  [][]any{
//	    {1, "Alice"},
//	    {2, "Bob"},
//	  },
//	)
func NewMockRows(columns []string, rows [][]any) *sql.Rows {
	db, sqlMock, err := sqlmock.New()
	if err != nil {
		panic(err) // This should never happen in tests
	}
	defer db.Close()

	sqlRows := sqlmock.NewRows(columns)
	for _, row := range rows {
		driverValues := make([]driver.Value, len(row))
		for i, val := range row {
			driverValues[i] = val
		}
		sqlRows.AddRow(driverValues...)
	}

	sqlMock.ExpectQuery(".*").WillReturnRows(sqlRows)

	result, err := db.QueryContext(context.Background(), "SELECT")
	if err != nil {
		panic(err) // This should never happen in tests
	}
	return result
}

// NewMockResult creates sql.Result for testing Exec operations.
//
// Example:
//
//	result := fixtures.NewMockResult(0, 5) // lastInsertId=0, rowsAffected=5
func NewMockResult(lastInsertID, rowsAffected int64) sql.Result {
	return &mockResult{
		lastInsertID: lastInsertID,
		rowsAffected: rowsAffected,
	}
}

// NewErrorResult creates sql.Result whose methods return err.
func NewErrorResult(err error) sql.Result {
	return &mockResult{
		err: err,
	}
}

type mockResult struct {
	lastInsertID int64
	rowsAffected int64
	err          error
}

func (r *mockResult) LastInsertId() (int64, error) {
	return r.lastInsertID, r.err
}

func (r *mockResult) RowsAffected() (int64, error) {
	return r.rowsAffected, r.err
}

// Transaction Helpers

// NewSuccessfulTransaction creates a mock transaction that commits successfully and
// reports one affected row for every Exec.
func NewSuccessfulTransaction() *mocks.MockTx {
	mockTx := &mocks.MockTx{}
	mockTx.ExpectSuccessfulTransaction()
	mockTx.On("Exec", mock.Anything, mock.Anything, mock.Anything).Return(NewMockResult(0, 1), nil)
	return mockTx
}

// NewFailedTransaction creates a mock transaction that fails on commit.
func NewFailedTransaction(commitErr error) *mocks.MockTx {
	if commitErr == nil {
		commitErr = errors.New("transaction commit failed")
	}

	mockTx := &mocks.MockTx{}
	mockTx.ExpectFailedTransaction(commitErr)
	mockTx.On("Exec", mock.Anything, mock.Anything, mock.Anything).Return(NewMockResult(0, 1), nil)
	return mockTx
}

// NewFailingDatabase creates a mock database whose Begin and statements fail with err.
func NewFailingDatabase(vendor string, err error) *mocks.MockDatabase {
	if err == nil {
		err = sql.ErrConnDone
	}

	mockDB := &mocks.MockDatabase{}
	mockDB.ExpectHealthCheck(false)
	mockDB.ExpectDatabaseType(vendor)
	mockDB.On("Query", mock.Anything, mock.Anything, mock.Anything).Return(nil, err)
	mockDB.On("Exec", mock.Anything, mock.Anything, mock.Anything).Return(nil, err)
	mockDB.On("Begin", mock.Anything).Return(nil, err)
	return mockDB
}
