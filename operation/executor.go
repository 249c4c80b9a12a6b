package operation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gaborage/dbfixture/database/types"
	"github.com/gaborage/dbfixture/dataset"
	"github.com/gaborage/dbfixture/internal/dml"
	"github.com/gaborage/dbfixture/logger"
	"github.com/gaborage/dbfixture/profile"
	"github.com/gaborage/dbfixture/trace"
)

// conn is what table steps run against: the transaction, or the connection itself
// when transactions are disabled.
type conn interface {
	types.Querier
	types.Preparer
}

// Executor applies datasets using one vendor profile. It holds no per-call state and
// may be shared by goroutines applying to different connections.
type Executor struct {
	profile       profile.Profile
	dml           *dml.Builder
	log           logger.Logger
	batchSize     int
	transactional bool
	ignoreUnknown bool
	calls         *CallLog
}

// Option configures an Executor.
type Option func(*Executor)

// WithLogger sets the executor's logger.
func WithLogger(l logger.Logger) Option {
	return func(e *Executor) {
		if l != nil {
			e.log = l
		}
	}
}

// WithBatchSize sets how many rows are folded into a single multi-row INSERT on
// vendors that support it. The default of 1 executes one row per statement, which
// gives exact row indexes in failures.
func WithBatchSize(n int) Option {
	return func(e *Executor) {
		if n > 0 {
			e.batchSize = n
		}
	}
}

// WithTransaction controls whether Apply runs inside a transaction. It is on by
// default; without it a failure leaves the rows applied so far in place.
func WithTransaction(enabled bool) Option {
	return func(e *Executor) {
		e.transactional = enabled
	}
}

// WithIgnoreUnknownColumns skips dataset columns missing from the live table instead
// of failing with *dataset.NoSuchColumnError.
func WithIgnoreUnknownColumns(ignore bool) Option {
	return func(e *Executor) {
		e.ignoreUnknown = ignore
	}
}

// WithCallLog records every bound parameter into l.
func WithCallLog(l *CallLog) Option {
	return func(e *Executor) {
		e.calls = l
	}
}

// New creates an Executor for the profile.
func New(p profile.Profile, opts ...Option) (*Executor, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	e := &Executor{
		profile:       p,
		dml:           dml.New(p.Vendor, p.Metadata.QuoteIdentifier),
		log:           logger.Nop(),
		batchSize:     1,
		transactional: true,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Profile returns the executor's profile.
func (e *Executor) Profile() profile.Profile { return e.profile }

type step struct {
	kind  Kind
	table *dataset.Table
}

// plan orders table steps: dataset order for writes, reverse order for removals.
func plan(kind Kind, ds *dataset.Dataset) ([]step, error) {
	forward := func(k Kind) []step {
		steps := make([]step, 0, ds.Len())
		for _, t := range ds.Tables() {
			steps = append(steps, step{kind: k, table: t})
		}
		return steps
	}
	reverse := func(k Kind) []step {
		steps := make([]step, 0, ds.Len())
		for _, t := range ds.Reversed().Tables() {
			steps = append(steps, step{kind: k, table: t})
		}
		return steps
	}

	switch kind {
	case Insert, Update, Refresh:
		return forward(kind), nil
	case Delete, DeleteAll, Truncate:
		return reverse(kind), nil
	case CleanInsert:
		return append(reverse(DeleteAll), forward(Insert)...), nil
	}
	return nil, fmt.Errorf("unknown operation %s", kind)
}

// Apply applies ds to db. All table steps run in one transaction unless disabled;
// any failure rolls back and is returned as an *OperationFailure. The connection is
// never closed and every prepared statement is released before returning.
func (e *Executor) Apply(ctx context.Context, kind Kind, ds *dataset.Dataset, db types.Interface) (*Result, error) {
	ctx, traceID := trace.EnsureTraceID(ctx)
	res := &Result{Kind: kind, State: Pending, TraceID: traceID}
	steps, err := plan(kind, ds)
	if err != nil {
		res.State = Failed
		return res, &OperationFailure{Kind: kind, Row: -1, Err: err}
	}

	start := time.Now()
	var (
		q  conn = db
		tx types.Tx
	)
	if e.transactional {
		tx, err = db.Begin(ctx)
		if err != nil {
			res.State = Failed
			return res, &OperationFailure{Kind: kind, Row: -1, Err: fmt.Errorf("begin transaction: %w", err)}
		}
		q = tx
	}
	res.State = Running
	e.log.Debug().
		Str(trace.LogField, traceID).
		Str("operation", kind.String()).
		Int("tables", ds.Len()).
		Bool("transactional", e.transactional).
		Msg("Applying dataset")

	for _, s := range steps {
		tr, err := e.applyTable(ctx, q, s.kind, s.table)
		if err != nil {
			res.State = Failed
			e.rollback(tx, kind, traceID, err)
			return res, asFailure(s.kind, s.table.Name(), err)
		}
		res.Tables = append(res.Tables, tr)
	}

	if tx != nil {
		if err := tx.Commit(); err != nil {
			res.State = Failed
			return res, &OperationFailure{Kind: kind, Row: -1, Err: fmt.Errorf("commit: %w", err)}
		}
	}
	res.State = Committed
	e.log.Debug().
		Str(trace.LogField, traceID).
		Str("operation", kind.String()).
		Int64("affected", res.Affected()).
		Dur("duration", time.Since(start)).
		Msg("Dataset applied")
	return res, nil
}

func (e *Executor) rollback(tx types.Tx, kind Kind, traceID string, cause error) {
	if tx == nil {
		e.log.Warn().Err(cause).Str(trace.LogField, traceID).Str("operation", kind.String()).
			Msg("Operation failed without a transaction, applied rows remain")
		return
	}
	if err := tx.Rollback(); err != nil {
		e.log.Error().Err(err).Str(trace.LogField, traceID).Str("operation", kind.String()).Msg("Rollback failed")
		return
	}
	e.log.Warn().Err(cause).Str(trace.LogField, traceID).Str("operation", kind.String()).Msg("Operation rolled back")
}

func asFailure(kind Kind, table string, err error) error {
	var failure *OperationFailure
	if errors.As(err, &failure) {
		return failure
	}
	return &OperationFailure{Kind: kind, Table: table, Row: -1, Err: err}
}
