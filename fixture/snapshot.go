package fixture

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/gaborage/dbfixture/dataset"
	"github.com/gaborage/dbfixture/metadata"
)

// Snapshot reads the current rows of tables into a new dataset. Rows are ordered by
// primary key, or by every column when the table has none, so they line up with an
// expected dataset written in the same order.
func (s *Session) Snapshot(ctx context.Context, tables ...string) (*dataset.Dataset, error) {
	if s.closed {
		return nil, ErrClosed
	}
	ds := dataset.New(dataset.WithCaseSensitive(s.caseSensitive))
	for _, name := range tables {
		t, err := s.snapshotTable(ctx, name)
		if err != nil {
			return nil, err
		}
		if err := ds.AddTable(t); err != nil {
			return nil, err
		}
	}
	return ds, nil
}

func (s *Session) snapshotTable(ctx context.Context, name string) (*dataset.Table, error) {
	md := s.profile.Metadata
	ok, err := md.TableExists(ctx, s.db, name)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &dataset.NoSuchTableError{Table: name}
	}
	live, err := md.Columns(ctx, s.db, name)
	if err != nil {
		return nil, err
	}
	if len(live) == 0 {
		return nil, fmt.Errorf("snapshot %s: table has no columns", name)
	}

	cols := make([]dataset.Column, len(live))
	names := make([]string, len(live))
	for i, c := range live {
		names[i] = c.Name
		cols[i] = dataset.Column{
			Name:       c.Name,
			Type:       s.profile.Types.Resolve(c.TypeCode, c.TypeName),
			Nullable:   nullability(c.Nullable),
			PrimaryKey: c.PrimaryKey,
		}
	}
	orderBy := metadata.PrimaryKeys(live)
	if len(orderBy) == 0 {
		orderBy = names
	}

	query, err := s.dml.Select(md.FoldCase(name), names, orderBy)
	if err != nil {
		return nil, err
	}
	t, err := dataset.NewTable(name, cols, dataset.WithCaseSensitive(s.caseSensitive))
	if err != nil {
		return nil, err
	}
	if err := s.fill(ctx, t, query); err != nil {
		return nil, fmt.Errorf("snapshot %s: %w", name, err)
	}
	s.log.Debug().Str("table", name).Int("rows", t.RowCount()).Msg("Snapshot taken")
	return t, nil
}

// QueryTable runs query and returns its result as a table named name. Column types
// come from the driver's reported type names.
func (s *Session) QueryTable(ctx context.Context, name, query string, args ...any) (*dataset.Table, error) {
	if s.closed {
		return nil, ErrClosed
	}
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query table %s: %w", name, err)
	}
	defer rows.Close()

	cts, err := rows.ColumnTypes()
	if err != nil {
		return nil, fmt.Errorf("query table %s: %w", name, err)
	}
	cols := make([]dataset.Column, len(cts))
	for i, ct := range cts {
		nullable, known := ct.Nullable()
		n := dataset.NullableUnknown
		if known {
			n = nullability(nullable)
		}
		cols[i] = dataset.Column{Name: ct.Name(), Type: s.profile.Types.ResolveName(ct.DatabaseTypeName()), Nullable: n}
	}
	t, err := dataset.NewTable(name, cols, dataset.WithCaseSensitive(s.caseSensitive))
	if err != nil {
		return nil, err
	}
	if err := scanInto(t, rows); err != nil {
		return nil, fmt.Errorf("query table %s: %w", name, err)
	}
	return t, nil
}

func (s *Session) fill(ctx context.Context, t *dataset.Table, query string) error {
	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return err
	}
	defer rows.Close()
	return scanInto(t, rows)
}

// scanInto appends every row of rows to t. AddRow parses each value with its column type.
func scanInto(t *dataset.Table, rows *sql.Rows) error {
	n := t.ColumnCount()
	for rows.Next() {
		values := make([]any, n)
		dest := make([]any, n)
		for i := range values {
			dest[i] = &values[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return err
		}
		if err := t.AddRow(values...); err != nil {
			return err
		}
	}
	return rows.Err()
}

func nullability(nullable bool) dataset.Nullability {
	if nullable {
		return dataset.Nullable
	}
	return dataset.NoNulls
}
