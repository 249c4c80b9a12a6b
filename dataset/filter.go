package dataset

import (
	"path"
	"strings"
)

// ColumnFilter selects columns by wildcard pattern (path.Match syntax). A pattern
// containing a dot is matched against "table.column", otherwise against the column
// name alone. Matching is case-insensitive. The zero value accepts every column.
type ColumnFilter struct {
	include []string
	exclude []string
}

// IncludeColumns returns a filter accepting only columns matching one of patterns.
func IncludeColumns(patterns ...string) ColumnFilter {
	return ColumnFilter{}.Include(patterns...)
}

// ExcludeColumns returns a filter rejecting columns matching any of patterns.
func ExcludeColumns(patterns ...string) ColumnFilter {
	return ColumnFilter{}.Exclude(patterns...)
}

// Include adds include patterns.
func (f ColumnFilter) Include(patterns ...string) ColumnFilter {
	f.include = appendPatterns(f.include, patterns)
	return f
}

// Exclude adds exclude patterns. Excludes win over includes.
func (f ColumnFilter) Exclude(patterns ...string) ColumnFilter {
	f.exclude = appendPatterns(f.exclude, patterns)
	return f
}

// IsZero reports whether the filter accepts everything.
func (f ColumnFilter) IsZero() bool {
	return len(f.include) == 0 && len(f.exclude) == 0
}

// Accept reports whether column of table passes the filter.
func (f ColumnFilter) Accept(table, column string) bool {
	if len(f.include) > 0 && !matchAny(f.include, table, column) {
		return false
	}
	return !matchAny(f.exclude, table, column)
}

// FilterTable returns a copy of t limited to the accepted columns.
func FilterTable(t *Table, f ColumnFilter) *Table {
	if f.IsZero() {
		return t.Clone()
	}
	var keep []int
	var cols []Column
	for i, c := range t.columns {
		if f.Accept(t.name, c.Name) {
			keep = append(keep, i)
			cols = append(cols, c)
		}
	}
	// Column names were already unique, so NewTable cannot fail here.
	out, _ := NewTable(t.name, cols, WithNamePolicy(t.policy))
	for _, row := range t.rows {
		r := make([]any, len(keep))
		for j, i := range keep {
			r[j] = row[i]
		}
		out.appendNormalized(cloneRow(r))
	}
	return out
}

// FilterColumns returns a copy of ds with every table limited to the accepted columns.
func FilterColumns(ds *Dataset, f ColumnFilter) *Dataset {
	out := New(WithNamePolicy(ds.policy))
	for _, t := range ds.tables {
		_ = out.AddTable(FilterTable(t, f))
	}
	return out
}

func appendPatterns(dst, patterns []string) []string {
	for _, p := range patterns {
		dst = append(dst, strings.ToUpper(p))
	}
	return dst
}

func matchAny(patterns []string, table, column string) bool {
	col := strings.ToUpper(column)
	qualified := strings.ToUpper(table) + "." + col
	for _, p := range patterns {
		name := col
		if strings.Contains(p, ".") {
			name = qualified
		}
		if ok, err := path.Match(p, name); err == nil && ok {
			return true
		}
	}
	return false
}
