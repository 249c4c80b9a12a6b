package dataset

import (
	"fmt"
	"slices"

	"github.com/gaborage/dbfixture/datatype"
)

// Table is a named, ordered list of columns and rows. Row values are normalized by
// their column's DataType when they are added.
type Table struct {
	name    string
	columns []Column
	index   map[string]int
	rows    [][]any
	policy  NamePolicy
}

// NewTable creates an empty table. Column names must be unique under the name policy.
func NewTable(name string, columns []Column, opts ...Option) (*Table, error) {
	if name == "" {
		return nil, fmt.Errorf("table: %w", ErrEmptyName)
	}
	o := applyOptions(opts)
	t := &Table{
		name:    name,
		columns: make([]Column, len(columns)),
		index:   make(map[string]int, len(columns)),
		policy:  o.policy,
	}
	for i, c := range columns {
		if c.Name == "" {
			return nil, fmt.Errorf("table %s column %d: %w", name, i, ErrEmptyName)
		}
		if c.Type == nil {
			c.Type = datatype.Unknown
		}
		key := t.policy.Key(c.Name)
		if _, dup := t.index[key]; dup {
			return nil, fmt.Errorf("table %s: %w: %s", name, ErrDuplicateColumn, c.Name)
		}
		t.index[key] = i
		t.columns[i] = c
	}
	return t, nil
}

// Name returns the table name as declared.
func (t *Table) Name() string { return t.name }

// Policy returns the name matching policy of the table.
func (t *Table) Policy() NamePolicy { return t.policy }

// Columns returns a copy of the column list in declaration order.
func (t *Table) Columns() []Column { return slices.Clone(t.columns) }

// ColumnCount returns the number of columns.
func (t *Table) ColumnCount() int { return len(t.columns) }

// ColumnNames returns the column names in declaration order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.columns))
	for i, c := range t.columns {
		names[i] = c.Name
	}
	return names
}

// ColumnIndex returns the position of the named column, or -1.
func (t *Table) ColumnIndex(name string) int {
	if i, ok := t.index[t.policy.Key(name)]; ok {
		return i
	}
	return -1
}

// Column returns the named column.
func (t *Table) Column(name string) (Column, error) {
	i := t.ColumnIndex(name)
	if i < 0 {
		return Column{}, &NoSuchColumnError{Table: t.name, Column: name}
	}
	return t.columns[i], nil
}

// ColumnAt returns the column at position pos.
func (t *Table) ColumnAt(pos int) Column { return t.columns[pos] }

// PrimaryKeys returns the names of the columns flagged as primary key, in column order.
func (t *Table) PrimaryKeys() []string {
	var keys []string
	for _, c := range t.columns {
		if c.PrimaryKey {
			keys = append(keys, c.Name)
		}
	}
	return keys
}

// RowCount returns the number of rows.
func (t *Table) RowCount() int { return len(t.rows) }

// AddRow appends a row given one value per column, in column order. Values other
// than NoValue are parsed by the column type.
func (t *Table) AddRow(values ...any) error {
	if len(values) != len(t.columns) {
		return fmt.Errorf("table %s: %w: want %d, got %d", t.name, ErrColumnCount, len(t.columns), len(values))
	}
	row := make([]any, len(values))
	for i, v := range values {
		p, err := t.normalize(i, v)
		if err != nil {
			return err
		}
		row[i] = p
	}
	t.rows = append(t.rows, row)
	return nil
}

// AddRecord appends a row given values by column name. Columns missing from the
// record hold NoValue.
func (t *Table) AddRecord(record map[string]any) error {
	row := make([]any, len(t.columns))
	for i := range row {
		row[i] = NoValue
	}
	for name, v := range record {
		i := t.ColumnIndex(name)
		if i < 0 {
			return &NoSuchColumnError{Table: t.name, Column: name}
		}
		p, err := t.normalize(i, v)
		if err != nil {
			return err
		}
		row[i] = p
	}
	t.rows = append(t.rows, row)
	return nil
}

// SetValue replaces a single cell.
func (t *Table) SetValue(row int, column string, v any) error {
	if err := t.checkRow(row); err != nil {
		return err
	}
	i := t.ColumnIndex(column)
	if i < 0 {
		return &NoSuchColumnError{Table: t.name, Column: column}
	}
	p, err := t.normalize(i, v)
	if err != nil {
		return err
	}
	t.rows[row][i] = p
	return nil
}

// Value returns the normalized value of a cell by column name.
func (t *Table) Value(row int, column string) (any, error) {
	if err := t.checkRow(row); err != nil {
		return nil, err
	}
	i := t.ColumnIndex(column)
	if i < 0 {
		return nil, &NoSuchColumnError{Table: t.name, Column: column}
	}
	return t.rows[row][i], nil
}

// ValueAt returns the normalized value of a cell by position.
func (t *Table) ValueAt(row, pos int) (any, error) {
	if err := t.checkRow(row); err != nil {
		return nil, err
	}
	if pos < 0 || pos >= len(t.columns) {
		return nil, fmt.Errorf("table %s: column position %d out of range", t.name, pos)
	}
	return t.rows[row][pos], nil
}

// Row returns a read-only view of row i. It panics if i is out of range.
func (t *Table) Row(i int) Row {
	_ = t.rows[i]
	return Row{table: t, index: i}
}

// Clone returns a deep copy of the table. Byte slices are copied; other normalized
// values are immutable and shared.
func (t *Table) Clone() *Table {
	c := &Table{
		name:    t.name,
		columns: slices.Clone(t.columns),
		index:   make(map[string]int, len(t.index)),
		rows:    make([][]any, len(t.rows)),
		policy:  t.policy,
	}
	for k, v := range t.index {
		c.index[k] = v
	}
	for i, row := range t.rows {
		c.rows[i] = cloneRow(row)
	}
	return c
}

func (t *Table) normalize(pos int, v any) (any, error) {
	if IsNoValue(v) {
		return NoValue, nil
	}
	c := t.columns[pos]
	p, err := c.Type.Parse(v)
	if err != nil {
		return nil, fmt.Errorf("table %s column %s: %w", t.name, c.Name, err)
	}
	return p, nil
}

func (t *Table) checkRow(row int) error {
	if row < 0 || row >= len(t.rows) {
		return fmt.Errorf("table %s: %w: %d of %d", t.name, ErrRowOutOfRange, row, len(t.rows))
	}
	return nil
}

// appendNormalized adds a row that already holds normalized values.
func (t *Table) appendNormalized(row []any) {
	t.rows = append(t.rows, row)
}

func cloneRow(row []any) []any {
	out := make([]any, len(row))
	for i, v := range row {
		if b, ok := v.([]byte); ok {
			v = slices.Clone(b)
		}
		out[i] = v
	}
	return out
}

// Row is a view of a single table row. Positional and by-name access read the same
// underlying cells.
type Row struct {
	table *Table
	index int
}

// Index returns the row's position in its table.
func (r Row) Index() int { return r.index }

// Len returns the number of cells.
func (r Row) Len() int { return len(r.table.columns) }

// At returns the value at column position pos.
func (r Row) At(pos int) any { return r.table.rows[r.index][pos] }

// Get returns the value of the named column.
func (r Row) Get(column string) (any, error) {
	return r.table.Value(r.index, column)
}

// Values returns a copy of the row's values in column order.
func (r Row) Values() []any { return slices.Clone(r.table.rows[r.index]) }
