package dataset

import (
	"fmt"
	"slices"

	"github.com/gaborage/dbfixture/datatype"
)

// SortRows returns a copy of t with rows stably ordered by the given columns, using
// each column's DataType ordering. With no columns it sorts by the primary key, or by
// every column when no key is declared. Comparison never sorts implicitly; this is an
// explicit opt-in for sources with no inherent row order.
func SortRows(t *Table, columns ...string) (*Table, error) {
	if len(columns) == 0 {
		columns = t.PrimaryKeys()
	}
	if len(columns) == 0 {
		columns = t.ColumnNames()
	}
	positions := make([]int, len(columns))
	for i, name := range columns {
		pos := t.ColumnIndex(name)
		if pos < 0 {
			return nil, &NoSuchColumnError{Table: t.name, Column: name}
		}
		positions[i] = pos
	}

	out := t.Clone()
	slices.SortStableFunc(out.rows, func(a, b []any) int {
		for _, pos := range positions {
			if c := compareCells(out.columns[pos].Type, a[pos], b[pos]); c != 0 {
				return c
			}
		}
		return 0
	})
	return out, nil
}

// compareCells orders NoValue first, then by DataType. Incomparable or unparsable
// pairs fall back to their textual form so the sort stays total.
func compareCells(dt datatype.DataType, a, b any) int {
	na, nb := IsNoValue(a), IsNoValue(b)
	switch {
	case na && nb:
		return 0
	case na:
		return -1
	case nb:
		return 1
	}
	r, err := dt.Compare(a, b)
	if err == nil && r != datatype.Incomparable {
		return int(r)
	}
	sa, sb := fmt.Sprint(a), fmt.Sprint(b)
	switch {
	case sa < sb:
		return -1
	case sa > sb:
		return 1
	}
	return 0
}
