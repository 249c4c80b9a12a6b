// Package types contains the connection contracts consumed by the fixture engine.
// These interfaces are separate from the main database package to avoid import cycles
// and to make them easily accessible for mocking and testing.
//
//nolint:revive // Package name "types" is intentionally generic to avoid circular imports.
package types

import (
	"context"
	"database/sql"
	"errors"
)

// Database vendor identifiers shared across the database packages.
type Vendor = string

const (
	PostgreSQL Vendor = "postgresql"
	Oracle     Vendor = "oracle"
	MySQL      Vendor = "mysql"
	SQLServer  Vendor = "sqlserver"
	SQLite     Vendor = "sqlite"
)

// Vendors lists every vendor with a built-in profile.
func Vendors() []Vendor {
	return []Vendor{PostgreSQL, Oracle, MySQL, SQLServer, SQLite}
}

// Row represents a single result set row with basic scanning behaviour.
type Row interface {
	Scan(dest ...any) error
	Err() error
}

type sqlRowAdapter struct {
	row *sql.Row
}

// NewRowFromSQL wraps the provided *sql.Row in a Row.
// If row is nil, NewRowFromSQL returns nil.
func NewRowFromSQL(row *sql.Row) Row {
	if row == nil {
		return nil
	}
	return &sqlRowAdapter{row: row}
}

func (r *sqlRowAdapter) Scan(dest ...any) error {
	if r == nil || r.row == nil {
		return errors.New("sqlRowAdapter: underlying sql.Row is nil")
	}
	return r.row.Scan(dest...)
}

func (r *sqlRowAdapter) Err() error {
	if r == nil || r.row == nil {
		return errors.New("sqlRowAdapter: underlying sql.Row is nil")
	}
	return r.row.Err()
}

// Querier defines the query execution operations shared by connections and transactions.
// Metadata handlers only need a Querier, which keeps them usable inside or outside a
// transaction scope.
type Querier interface {
	// Query executes a SQL query that returns rows. The caller closes the rows.
	Query(ctx context.Context, query string, args ...any) (*sql.Rows, error)

	// QueryRow executes a SQL query that is expected to return at most one row.
	// Errors are deferred until Row's Scan method is called.
	QueryRow(ctx context.Context, query string, args ...any) Row

	// Exec executes a SQL statement that doesn't return rows.
	Exec(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Preparer creates prepared statements.
type Preparer interface {
	Prepare(ctx context.Context, query string) (Statement, error)
}

// Statement defines the interface for prepared statements
type Statement interface {
	Query(ctx context.Context, args ...any) (*sql.Rows, error)
	QueryRow(ctx context.Context, args ...any) Row
	Exec(ctx context.Context, args ...any) (sql.Result, error)

	Close() error
}

// Tx defines the interface for database transactions
type Tx interface {
	Querier
	Preparer

	Commit() error
	Rollback() error
}

// Interface is the connection/session collaborator the engine consumes: parameterized
// statements, execution and a transaction scope.
type Interface interface {
	Querier
	Preparer

	Begin(ctx context.Context) (Tx, error)
	BeginTx(ctx context.Context, opts *sql.TxOptions) (Tx, error)

	Health(ctx context.Context) error
	Close() error

	// DatabaseType returns the vendor identifier for this connection.
	DatabaseType() string
}
