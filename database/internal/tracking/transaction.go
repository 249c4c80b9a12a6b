package tracking

import (
	"context"
	"database/sql"
	"time"

	"github.com/gaborage/dbfixture/database/types"
	"github.com/gaborage/dbfixture/logger"
)

// Transaction wraps types.Tx and logs every operation, commit and rollback.
type Transaction struct {
	tx       types.Tx
	logger   logger.Logger
	vendor   string
	settings Settings
	tc       *Context
}

// NewTransaction wraps tx.
func NewTransaction(tx types.Tx, log logger.Logger, vendor string, settings Settings) types.Tx {
	t := &Transaction{
		tx:       tx,
		logger:   log,
		vendor:   vendor,
		settings: settings,
	}
	t.tc = &Context{
		Logger:   t.logger,
		Vendor:   t.vendor,
		Settings: t.settings,
	}
	return t
}

var _ types.Tx = (*Transaction)(nil)

// Query executes a query within a transaction with tracking
func (tx *Transaction) Query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	start := time.Now()
	rows, err := tx.tx.Query(ctx, query, args...)

	TrackDBOperation(ctx, tx.tc, query, args, start, 0, err)
	return rows, err
}

// QueryRow executes a single row query within a transaction with tracking
func (tx *Transaction) QueryRow(ctx context.Context, query string, args ...any) types.Row {
	start := time.Now()
	row := tx.tx.QueryRow(ctx, query, args...)

	return wrapRowWithTracker(row, func(err error) {
		TrackDBOperation(ctx, tx.tc, query, args, start, 0, err)
	})
}

// Exec executes a statement within a transaction with tracking
func (tx *Transaction) Exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	start := time.Now()
	result, err := tx.tx.Exec(ctx, query, args...)

	TrackDBOperation(ctx, tx.tc, query, args, start, extractRowsAffected(result, err), err)
	return result, err
}

// Prepare prepares a statement within a transaction with tracking
func (tx *Transaction) Prepare(ctx context.Context, query string) (types.Statement, error) {
	start := time.Now()
	stmt, err := tx.tx.Prepare(ctx, query)

	TrackDBOperation(ctx, tx.tc, "TX_PREPARE: "+query, nil, start, 0, err)
	if err != nil {
		return nil, err
	}
	return NewStatement(stmt, tx.logger, tx.vendor, query, tx.settings), nil
}

// Commit commits the transaction
func (tx *Transaction) Commit() error {
	start := time.Now()
	err := tx.tx.Commit()

	TrackDBOperation(context.Background(), tx.tc, "TX_COMMIT", nil, start, 0, err)
	return err
}

// Rollback rolls back the transaction
func (tx *Transaction) Rollback() error {
	start := time.Now()
	err := tx.tx.Rollback()

	TrackDBOperation(context.Background(), tx.tc, "TX_ROLLBACK", nil, start, 0, err)
	return err
}
