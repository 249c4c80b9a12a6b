// Package metadata resolves tables and columns against a live schema: existence,
// ordered column descriptions, primary keys, foreign keys, and the vendor rules for
// identifier quoting and case folding.
package metadata

import (
	"context"
	"strings"

	"github.com/gaborage/dbfixture/database/types"
)

// ColumnInfo describes a live column.
type ColumnInfo struct {
	Name       string
	TypeCode   int
	TypeName   string
	Nullable   bool
	PrimaryKey bool
}

// ForeignKey is a single referencing column of Table pointing at RefTable.RefColumn.
type ForeignKey struct {
	Table     string
	Column    string
	RefTable  string
	RefColumn string
}

// Handler is the narrow vendor metadata contract consumed by the operation executor
// and the session snapshotter. Catalog queries run on the supplied Querier so they can
// participate in an open transaction.
type Handler interface {
	Vendor() string
	TableExists(ctx context.Context, q types.Querier, table string) (bool, error)
	// Columns returns the table's columns in ordinal order.
	Columns(ctx context.Context, q types.Querier, table string) ([]ColumnInfo, error)
	QuoteIdentifier(name string) string
	FoldCase(name string) string
}

// DependencyResolver is implemented by handlers that can report foreign keys.
type DependencyResolver interface {
	ForeignKeys(ctx context.Context, q types.Querier, table string) ([]ForeignKey, error)
}

// SplitQualified splits "schema.table" into its parts. Unqualified names return an
// empty schema.
func SplitQualified(name string) (schema, table string) {
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		return name[:i], name[i+1:]
	}
	return "", name
}

// PrimaryKeys returns the names of the primary key columns in ordinal order.
func PrimaryKeys(cols []ColumnInfo) []string {
	var keys []string
	for _, c := range cols {
		if c.PrimaryKey {
			keys = append(keys, c.Name)
		}
	}
	return keys
}
