package tracking

import (
	"context"
	"database/sql"
	"time"

	"github.com/gaborage/dbfixture/database/types"
	"github.com/gaborage/dbfixture/logger"
)

// Connection wraps types.Interface and logs every operation it delegates.
type Connection struct {
	conn     types.Interface
	logger   logger.Logger
	vendor   string
	settings Settings
}

var _ types.Interface = (*Connection)(nil)

// NewConnection returns a types.Interface wrapping conn. conn.DatabaseType() is the
// logged vendor.
func NewConnection(conn types.Interface, log logger.Logger, settings Settings) types.Interface {
	return &Connection{
		conn:     conn,
		logger:   log,
		vendor:   conn.DatabaseType(),
		settings: settings,
	}
}

// Query executes a query with tracking
func (tc *Connection) Query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	start := time.Now()
	rows, err := tc.conn.Query(ctx, query, args...)

	tc.trackOperation(ctx, query, args, start, 0, err)
	return rows, err
}

// QueryRow executes a single row query; tracking happens when the row is scanned.
func (tc *Connection) QueryRow(ctx context.Context, query string, args ...any) types.Row {
	start := time.Now()
	row := tc.conn.QueryRow(ctx, query, args...)

	return wrapRowWithTracker(row, func(err error) {
		tc.trackOperation(ctx, query, args, start, 0, err)
	})
}

// Exec executes a statement with tracking
func (tc *Connection) Exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	start := time.Now()
	result, err := tc.conn.Exec(ctx, query, args...)

	tc.trackOperation(ctx, query, args, start, extractRowsAffected(result, err), err)
	return result, err
}

// Prepare prepares a statement with tracking
func (tc *Connection) Prepare(ctx context.Context, query string) (types.Statement, error) {
	start := time.Now()
	stmt, err := tc.conn.Prepare(ctx, query)

	tc.trackOperation(ctx, "PREPARE: "+query, nil, start, 0, err)
	if err != nil {
		return nil, err
	}
	return NewStatement(stmt, tc.logger, tc.vendor, query, tc.settings), nil
}

// Begin starts a transaction with tracking
func (tc *Connection) Begin(ctx context.Context) (types.Tx, error) {
	start := time.Now()
	tx, err := tc.conn.Begin(ctx)
	tc.trackOperation(ctx, "BEGIN", nil, start, 0, err)
	if err != nil {
		return nil, err
	}
	return NewTransaction(tx, tc.logger, tc.vendor, tc.settings), nil
}

// BeginTx starts a transaction with options and tracking
func (tc *Connection) BeginTx(ctx context.Context, opts *sql.TxOptions) (types.Tx, error) {
	start := time.Now()
	tx, err := tc.conn.BeginTx(ctx, opts)
	tc.trackOperation(ctx, "BEGIN_TX", nil, start, 0, err)
	if err != nil {
		return nil, err
	}
	return NewTransaction(tx, tc.logger, tc.vendor, tc.settings), nil
}

// Health checks database connection health (no tracking needed)
func (tc *Connection) Health(ctx context.Context) error {
	return tc.conn.Health(ctx)
}

// Close closes the database connection (no tracking needed)
func (tc *Connection) Close() error {
	return tc.conn.Close()
}

// DatabaseType returns the database type (no tracking needed)
func (tc *Connection) DatabaseType() string {
	return tc.conn.DatabaseType()
}

// Unwrap returns the wrapped connection.
func (tc *Connection) Unwrap() types.Interface {
	return tc.conn
}

func (tc *Connection) trackOperation(ctx context.Context, query string, args []any, start time.Time, rowsAffected int64, err error) {
	TrackDBOperation(ctx, &Context{
		Logger:   tc.logger,
		Vendor:   tc.vendor,
		Settings: tc.settings,
	}, query, args, start, rowsAffected, err)
}
