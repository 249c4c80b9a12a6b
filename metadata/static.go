package metadata

import (
	"context"
	"strings"

	"github.com/gaborage/dbfixture/database/types"
	"github.com/gaborage/dbfixture/datatype"
	"github.com/gaborage/dbfixture/internal/sqllex"
)

// Static serves metadata from declared tables without querying the database. It suits
// tests and schemas known up front. Table names match case-insensitively.
type Static struct {
	vendor string
	tables map[string][]ColumnInfo
	fks    map[string][]ForeignKey
}

var _ Handler = (*Static)(nil)
var _ DependencyResolver = (*Static)(nil)

// NewStatic creates an empty Static handler reporting the given vendor.
func NewStatic(vendor string) *Static {
	return &Static{
		vendor: vendor,
		tables: make(map[string][]ColumnInfo),
		fks:    make(map[string][]ForeignKey),
	}
}

// AddTable declares a table. A column with an empty TypeName keeps its TypeCode;
// otherwise the code is derived from the name when unset.
func (s *Static) AddTable(name string, cols ...ColumnInfo) *Static {
	declared := make([]ColumnInfo, len(cols))
	for i, c := range cols {
		if c.TypeCode == 0 && c.TypeName != "" {
			c.TypeCode = datatype.CodeForName(c.TypeName)
		}
		declared[i] = c
	}
	s.tables[strings.ToUpper(name)] = declared
	return s
}

// AddForeignKey declares a foreign key on fk.Table.
func (s *Static) AddForeignKey(fk ForeignKey) *Static {
	key := strings.ToUpper(fk.Table)
	s.fks[key] = append(s.fks[key], fk)
	return s
}

func (s *Static) Vendor() string { return s.vendor }

func (s *Static) TableExists(_ context.Context, _ types.Querier, table string) (bool, error) {
	_, ok := s.tables[strings.ToUpper(table)]
	return ok, nil
}

func (s *Static) Columns(_ context.Context, _ types.Querier, table string) ([]ColumnInfo, error) {
	cols, ok := s.tables[strings.ToUpper(table)]
	if !ok {
		return nil, nil
	}
	out := make([]ColumnInfo, len(cols))
	copy(out, cols)
	return out, nil
}

func (s *Static) ForeignKeys(_ context.Context, _ types.Querier, table string) ([]ForeignKey, error) {
	return s.fks[strings.ToUpper(table)], nil
}

// QuoteIdentifier double-quotes reserved or non-plain parts.
func (s *Static) QuoteIdentifier(name string) string {
	parts := strings.Split(name, ".")
	for i, p := range parts {
		if p != "" && !sqllex.IsQuoted(p, '"', '"') && (sqllex.IsReservedWord(p) || !sqllex.IsPlainIdentifier(p)) {
			parts[i] = sqllex.Quote(p, '"', '"')
		}
	}
	return strings.Join(parts, ".")
}

// FoldCase returns name unchanged.
func (s *Static) FoldCase(name string) string { return name }
