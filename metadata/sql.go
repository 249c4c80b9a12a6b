package metadata

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/gaborage/dbfixture/database/types"
	"github.com/gaborage/dbfixture/datatype"
	"github.com/gaborage/dbfixture/internal/sqllex"
)

// dialect holds the catalog queries and identifier rules of one vendor. Queries take
// (schema, table) arguments, or only (table) when schemaArg is false. An empty schema
// selects the session's current schema.
type dialect struct {
	vendor       string
	existsQuery  string
	columnsQuery string
	fkQuery      string
	schemaArg    bool
	fold         func(string) string
	openQuote    byte
	closeQuote   byte
	reserved     func(string) bool
}

// SQLHandler answers metadata questions from the vendor's system catalog.
type SQLHandler struct {
	d             dialect
	schema        string
	caseSensitive bool
	cache         *sync.Map
	flight        *singleflight.Group
}

var _ Handler = (*SQLHandler)(nil)
var _ DependencyResolver = (*SQLHandler)(nil)

// Option configures an SQLHandler.
type Option func(*SQLHandler)

// WithCaseSensitive disables case folding of unquoted names before catalog lookup.
func WithCaseSensitive(caseSensitive bool) Option {
	return func(h *SQLHandler) {
		h.caseSensitive = caseSensitive
	}
}

// WithColumnCache caches Columns results per table for the handler's lifetime.
// Concurrent lookups of the same uncached table share one catalog query.
// Only use it when the schema does not change while the handler is in use.
func WithColumnCache() Option {
	return func(h *SQLHandler) {
		h.cache = &sync.Map{}
		h.flight = &singleflight.Group{}
	}
}

func newSQLHandler(d dialect, schema string, opts []Option) *SQLHandler {
	h := &SQLHandler{d: d, schema: schema}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Vendor returns the vendor identifier.
func (h *SQLHandler) Vendor() string { return h.d.vendor }

// Schema returns the default schema, empty for the session's current schema.
func (h *SQLHandler) Schema() string { return h.schema }

// FoldCase applies the vendor's folding of unquoted identifiers.
func (h *SQLHandler) FoldCase(name string) string {
	if h.caseSensitive || h.d.fold == nil {
		return name
	}
	return h.d.fold(name)
}

// QuoteIdentifier quotes each dot-separated part of name when it is reserved, contains
// characters outside the plain identifier alphabet, or would change under case folding.
// Already quoted parts are kept.
func (h *SQLHandler) QuoteIdentifier(name string) string {
	parts := strings.Split(strings.TrimSpace(name), ".")
	for i, p := range parts {
		parts[i] = h.quotePart(p)
	}
	return strings.Join(parts, ".")
}

func (h *SQLHandler) quotePart(p string) string {
	if p == "" || sqllex.IsQuoted(p, h.d.openQuote, h.d.closeQuote) {
		return p
	}
	if h.d.reserved != nil && h.d.reserved(p) {
		return sqllex.Quote(h.FoldCase(p), h.d.openQuote, h.d.closeQuote)
	}
	if !sqllex.IsPlainIdentifier(p) || (h.d.fold != nil && h.d.fold(p) != p) {
		return sqllex.Quote(p, h.d.openQuote, h.d.closeQuote)
	}
	return p
}

// TableExists reports whether the table exists in the target schema.
func (h *SQLHandler) TableExists(ctx context.Context, q types.Querier, table string) (bool, error) {
	var n int64
	if err := q.QueryRow(ctx, h.d.existsQuery, h.args(table)...).Scan(&n); err != nil {
		return false, fmt.Errorf("check table %s: %w", table, err)
	}
	return n > 0, nil
}

// Columns returns the table's columns in ordinal order. TypeCode is derived from the
// catalog type name.
func (h *SQLHandler) Columns(ctx context.Context, q types.Querier, table string) ([]ColumnInfo, error) {
	if h.cache == nil {
		return h.loadColumns(ctx, q, table)
	}

	key := h.key(table)
	if cols, ok := h.cache.Load(key); ok {
		return cols.([]ColumnInfo), nil
	}
	v, err, _ := h.flight.Do(key, func() (any, error) {
		if cols, ok := h.cache.Load(key); ok {
			return cols, nil
		}
		cols, err := h.loadColumns(ctx, q, table)
		if err != nil {
			return nil, err
		}
		h.cache.Store(key, cols)
		return cols, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]ColumnInfo), nil
}

func (h *SQLHandler) loadColumns(ctx context.Context, q types.Querier, table string) ([]ColumnInfo, error) {
	rows, err := q.Query(ctx, h.d.columnsQuery, h.args(table)...)
	if err != nil {
		return nil, fmt.Errorf("query columns of %s: %w", table, err)
	}
	defer rows.Close()

	var cols []ColumnInfo
	for rows.Next() {
		var (
			c        ColumnInfo
			nullable string
			pk       int64
		)
		if err := rows.Scan(&c.Name, &c.TypeName, &nullable, &pk); err != nil {
			return nil, fmt.Errorf("scan columns of %s: %w", table, err)
		}
		c.Nullable = isYes(nullable)
		c.PrimaryKey = pk != 0
		c.TypeCode = datatype.CodeForName(c.TypeName)
		cols = append(cols, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read columns of %s: %w", table, err)
	}
	return cols, nil
}

// ForeignKeys returns the foreign key columns declared on table.
func (h *SQLHandler) ForeignKeys(ctx context.Context, q types.Querier, table string) ([]ForeignKey, error) {
	if h.d.fkQuery == "" {
		return nil, nil
	}
	rows, err := q.Query(ctx, h.d.fkQuery, h.args(table)...)
	if err != nil {
		return nil, fmt.Errorf("query foreign keys of %s: %w", table, err)
	}
	defer rows.Close()

	var fks []ForeignKey
	for rows.Next() {
		fk := ForeignKey{Table: table}
		if err := rows.Scan(&fk.Column, &fk.RefTable, &fk.RefColumn); err != nil {
			return nil, fmt.Errorf("scan foreign keys of %s: %w", table, err)
		}
		fks = append(fks, fk)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read foreign keys of %s: %w", table, err)
	}
	return fks, nil
}

func (h *SQLHandler) args(table string) []any {
	schema, name := SplitQualified(table)
	if schema == "" {
		schema = h.schema
	}
	name = h.catalogName(name)
	if !h.d.schemaArg {
		return []any{name}
	}
	return []any{h.catalogName(schema), name}
}

// catalogName converts an identifier to its catalog spelling: quoted names keep their
// case, unquoted names are folded.
func (h *SQLHandler) catalogName(name string) string {
	if sqllex.IsQuoted(name, h.d.openQuote, h.d.closeQuote) {
		return name[1 : len(name)-1]
	}
	return h.FoldCase(name)
}

func (h *SQLHandler) key(table string) string {
	schema, name := SplitQualified(table)
	if schema == "" {
		schema = h.schema
	}
	return h.catalogName(schema) + "." + h.catalogName(name)
}

func isYes(s string) bool {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "YES", "Y", "1", "TRUE":
		return true
	}
	return false
}
