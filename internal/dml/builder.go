// Package dml builds the parameterized statements the fixture engine issues, using
// the vendor's placeholder format and identifier quoting.
package dml

import (
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/gaborage/dbfixture/database/types"
)

// Quoter quotes a possibly schema-qualified identifier.
type Quoter func(string) string

// Builder generates DML for one vendor.
type Builder struct {
	vendor string
	sb     squirrel.StatementBuilderType
	quote  Quoter
}

// New creates a Builder. A nil quote leaves identifiers untouched.
func New(vendor string, quote Quoter) *Builder {
	var sb squirrel.StatementBuilderType

	switch vendor {
	case types.PostgreSQL:
		// PostgreSQL uses $1, $2, ... placeholders
		sb = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	case types.Oracle:
		// Oracle uses :1, :2, ... placeholders
		sb = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Colon)
	case types.SQLServer:
		// SQL Server uses @p1, @p2, ... placeholders
		sb = squirrel.StatementBuilder.PlaceholderFormat(squirrel.AtP)
	default:
		sb = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)
	}
	if quote == nil {
		quote = func(s string) string { return s }
	}
	return &Builder{vendor: vendor, sb: sb, quote: quote}
}

// Vendor returns the vendor the builder targets.
func (b *Builder) Vendor() string { return b.vendor }

// SupportsMultiRowInsert reports whether INSERT ... VALUES accepts several row tuples.
func (b *Builder) SupportsMultiRowInsert() bool {
	return b.vendor != types.Oracle
}

// MaxParams returns the largest number of bind parameters a single statement may carry.
func (b *Builder) MaxParams() int {
	switch b.vendor {
	case types.SQLServer:
		return 2100
	case types.SQLite:
		return 32766
	case types.Oracle:
		return 65535
	default:
		return 65535
	}
}

// Insert returns an INSERT with a placeholder tuple for each of rows rows.
func (b *Builder) Insert(table string, columns []string, rows int) (string, error) {
	if len(columns) == 0 {
		return "", fmt.Errorf("insert into %s: no columns", table)
	}
	if rows < 1 {
		rows = 1
	}
	q := b.sb.Insert(b.quote(table)).Columns(b.quoteAll(columns)...)
	for range rows {
		q = q.Values(make([]any, len(columns))...)
	}
	return toSQL(q)
}

// Update returns an UPDATE assigning set and matching the key columns. Placeholders
// are ordered set columns first, then keys.
func (b *Builder) Update(table string, set, keys []string) (string, error) {
	if len(set) == 0 {
		return "", fmt.Errorf("update %s: no columns to set", table)
	}
	if len(keys) == 0 {
		return "", fmt.Errorf("update %s: no key columns", table)
	}
	q := b.sb.Update(b.quote(table))
	for _, c := range set {
		q = q.Set(b.quote(c), nil)
	}
	for _, k := range keys {
		q = q.Where(b.quote(k)+" = ?", nil)
	}
	return toSQL(q)
}

// DeleteByKey returns a DELETE matching the key columns.
func (b *Builder) DeleteByKey(table string, keys []string) (string, error) {
	if len(keys) == 0 {
		return "", fmt.Errorf("delete from %s: no key columns", table)
	}
	q := b.sb.Delete(b.quote(table))
	for _, k := range keys {
		q = q.Where(b.quote(k)+" = ?", nil)
	}
	return toSQL(q)
}

// DeleteMatching returns a DELETE matching every given column against values, using
// IS NULL for nil values. The returned args hold the non-nil values in order.
func (b *Builder) DeleteMatching(table string, columns []string, values []any) (string, []any, error) {
	if len(columns) == 0 || len(columns) != len(values) {
		return "", nil, fmt.Errorf("delete from %s: %d columns for %d values", table, len(columns), len(values))
	}
	cond := make(squirrel.And, len(columns))
	for i, c := range columns {
		if values[i] == nil {
			cond[i] = squirrel.Expr(b.quote(c) + " IS NULL")
			continue
		}
		// Expr keeps []byte values as a single argument.
		cond[i] = squirrel.Expr(b.quote(c)+" = ?", values[i])
	}
	return b.sb.Delete(b.quote(table)).Where(cond).ToSql()
}

// DeleteAll returns an unconditional DELETE.
func (b *Builder) DeleteAll(table string) string {
	return "DELETE FROM " + b.quote(table)
}

// Truncate returns the vendor's TRUNCATE statement. SQLite has none and uses an
// unconditional DELETE.
func (b *Builder) Truncate(table string) string {
	if b.vendor == types.SQLite {
		return b.DeleteAll(table)
	}
	return "TRUNCATE TABLE " + b.quote(table)
}

// CountByKey returns a SELECT COUNT(*) matching the key columns.
func (b *Builder) CountByKey(table string, keys []string) (string, error) {
	if len(keys) == 0 {
		return "", fmt.Errorf("count %s: no key columns", table)
	}
	q := b.sb.Select("COUNT(*)").From(b.quote(table))
	for _, k := range keys {
		q = q.Where(b.quote(k)+" = ?", nil)
	}
	return toSQL(q)
}

// Select returns a SELECT of columns from table ordered by orderBy.
func (b *Builder) Select(table string, columns, orderBy []string) (string, error) {
	if len(columns) == 0 {
		return "", fmt.Errorf("select from %s: no columns", table)
	}
	q := b.sb.Select(b.quoteAll(columns)...).From(b.quote(table))
	if len(orderBy) > 0 {
		q = q.OrderBy(b.quoteAll(orderBy)...)
	}
	return toSQL(q)
}

func (b *Builder) quoteAll(names []string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = b.quote(n)
	}
	return out
}

func toSQL(s squirrel.Sqlizer) (string, error) {
	query, _, err := s.ToSql()
	return query, err
}
