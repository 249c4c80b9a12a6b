package operation

import (
	"errors"
	"fmt"
)

var (
	// ErrNoRowsAffected is reported when an UPDATE matched no row.
	ErrNoRowsAffected = errors.New("no rows affected")
	// ErrMissingKey is reported when a row lacks a value for a primary key column.
	ErrMissingKey = errors.New("primary key value missing")
	// ErrEmptyRow is reported when an inserted row has no values at all.
	ErrEmptyRow = errors.New("row has no values")
)

// OperationFailure annotates an error raised while applying a dataset. Row is the
// index of the failing row, or -1 when the failure is not row specific. Count is the
// number of rows in the failing batch.
type OperationFailure struct {
	Kind  Kind
	Table string
	Row   int
	Count int
	Err   error
}

func (e *OperationFailure) Error() string {
	switch {
	case e.Row < 0 && e.Table == "":
		return fmt.Sprintf("%s failed: %v", e.Kind, e.Err)
	case e.Row < 0:
		return fmt.Sprintf("%s %s failed: %v", e.Kind, e.Table, e.Err)
	case e.Count > 1:
		return fmt.Sprintf("%s %s rows %d-%d failed: %v", e.Kind, e.Table, e.Row, e.Row+e.Count-1, e.Err)
	}
	return fmt.Sprintf("%s %s row %d failed: %v", e.Kind, e.Table, e.Row, e.Err)
}

func (e *OperationFailure) Unwrap() error {
	return e.Err
}

// UnsupportedOperationError reports an operation that the table's metadata cannot
// support, such as UPDATE on a table without a resolvable primary key.
type UnsupportedOperationError struct {
	Kind   Kind
	Table  string
	Reason string
}

func (e *UnsupportedOperationError) Error() string {
	return fmt.Sprintf("%s not supported on %s: %s", e.Kind, e.Table, e.Reason)
}
