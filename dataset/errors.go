package dataset

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyName       = errors.New("name must not be empty")
	ErrDuplicateTable  = errors.New("duplicate table")
	ErrDuplicateColumn = errors.New("duplicate column")
	ErrColumnCount     = errors.New("value count does not match column count")
	ErrRowOutOfRange   = errors.New("row index out of range")
	ErrDependencyCycle = errors.New("table dependency cycle")
)

// NoSuchTableError reports a table name absent from a dataset or the live schema.
type NoSuchTableError struct {
	Table string
}

func (e *NoSuchTableError) Error() string {
	return fmt.Sprintf("no such table: %s", e.Table)
}

// NoSuchColumnError reports a column name absent from a table or the live schema.
type NoSuchColumnError struct {
	Table  string
	Column string
}

func (e *NoSuchColumnError) Error() string {
	return fmt.Sprintf("no such column: %s.%s", e.Table, e.Column)
}
