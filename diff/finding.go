// Package diff compares an expected dataset with an actual one and reports every
// structural and value mismatch in a single pass.
package diff

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gaborage/dbfixture/datatype"
)

// Kind classifies a Finding.
type Kind int

const (
	MissingTable Kind = iota + 1
	UnexpectedTable
	ColumnMismatch
	RowCountMismatch
	CellMismatch
)

func (k Kind) String() string {
	switch k {
	case MissingTable:
		return "missing table"
	case UnexpectedTable:
		return "unexpected table"
	case ColumnMismatch:
		return "column mismatch"
	case RowCountMismatch:
		return "row count mismatch"
	case CellMismatch:
		return "cell mismatch"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Finding is a single mismatch. Row is -1 for findings that are not row specific.
// For ColumnMismatch, Expected or Actual holds the column name on the side where it
// exists. For RowCountMismatch they hold the row counts.
type Finding struct {
	Kind     Kind
	Table    string
	Column   string
	Row      int
	Expected any
	Actual   any
	Result   datatype.Result
	Err      error
}

func (f Finding) String() string {
	switch f.Kind {
	case MissingTable:
		return fmt.Sprintf("table %s: missing from actual", f.Table)
	case UnexpectedTable:
		return fmt.Sprintf("table %s: not expected", f.Table)
	case ColumnMismatch:
		if f.Actual == nil {
			return fmt.Sprintf("table %s: column %s missing from actual", f.Table, f.Column)
		}
		return fmt.Sprintf("table %s: column %s not expected", f.Table, f.Column)
	case RowCountMismatch:
		return fmt.Sprintf("table %s: expected %v rows, actual %v", f.Table, f.Expected, f.Actual)
	case CellMismatch:
		var b strings.Builder
		fmt.Fprintf(&b, "table %s row %d column %s: expected %s, actual %s",
			f.Table, f.Row, f.Column, formatValue(f.Expected), formatValue(f.Actual))
		if f.Err != nil {
			fmt.Fprintf(&b, " (%v)", f.Err)
		} else if f.Result == datatype.Incomparable {
			b.WriteString(" (incomparable types)")
		}
		return b.String()
	}
	return fmt.Sprintf("table %s: %s", f.Table, f.Kind)
}

func formatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return "NULL"
	case string:
		return strconv.Quote(x)
	case []byte:
		return fmt.Sprintf("0x%X", x)
	case time.Time:
		return x.Format(time.RFC3339Nano)
	case fmt.Stringer:
		return x.String()
	}
	return fmt.Sprintf("%v", v)
}
