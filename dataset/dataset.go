package dataset

import (
	"fmt"
	"slices"
)

// Dataset is an ordered sequence of uniquely named tables. Table order is significant
// to the operation executor.
type Dataset struct {
	tables []*Table
	index  map[string]int
	policy NamePolicy
}

// New creates an empty dataset.
func New(opts ...Option) *Dataset {
	o := applyOptions(opts)
	return &Dataset{index: make(map[string]int), policy: o.policy}
}

// Policy returns the table name matching policy.
func (d *Dataset) Policy() NamePolicy { return d.policy }

// AddTable appends t. Table names must be unique under the dataset's name policy.
func (d *Dataset) AddTable(t *Table) error {
	key := d.policy.Key(t.Name())
	if _, dup := d.index[key]; dup {
		return fmt.Errorf("%w: %s", ErrDuplicateTable, t.Name())
	}
	d.index[key] = len(d.tables)
	d.tables = append(d.tables, t)
	return nil
}

// NewTable creates a table with the dataset's name policy and appends it.
func (d *Dataset) NewTable(name string, columns []Column) (*Table, error) {
	t, err := NewTable(name, columns, WithNamePolicy(d.policy))
	if err != nil {
		return nil, err
	}
	if err := d.AddTable(t); err != nil {
		return nil, err
	}
	return t, nil
}

// Table returns the named table or a *NoSuchTableError.
func (d *Dataset) Table(name string) (*Table, error) {
	if i, ok := d.index[d.policy.Key(name)]; ok {
		return d.tables[i], nil
	}
	return nil, &NoSuchTableError{Table: name}
}

// HasTable reports whether the dataset contains the named table.
func (d *Dataset) HasTable(name string) bool {
	_, ok := d.index[d.policy.Key(name)]
	return ok
}

// TableAt returns the table at position i. It panics if i is out of range.
func (d *Dataset) TableAt(i int) *Table { return d.tables[i] }

// Tables returns the tables in dataset order.
func (d *Dataset) Tables() []*Table { return slices.Clone(d.tables) }

// TableNames returns the table names in dataset order.
func (d *Dataset) TableNames() []string {
	names := make([]string, len(d.tables))
	for i, t := range d.tables {
		names[i] = t.Name()
	}
	return names
}

// Len returns the number of tables.
func (d *Dataset) Len() int { return len(d.tables) }

// Clone returns a deep copy of the dataset.
func (d *Dataset) Clone() *Dataset {
	c := New(WithNamePolicy(d.policy))
	for _, t := range d.tables {
		_ = c.AddTable(t.Clone())
	}
	return c
}

// Reversed returns a dataset over the same tables in reverse order.
func (d *Dataset) Reversed() *Dataset {
	c := New(WithNamePolicy(d.policy))
	for i := len(d.tables) - 1; i >= 0; i-- {
		_ = c.AddTable(d.tables[i])
	}
	return c
}

// reordered returns a dataset over the same tables in the given order.
func (d *Dataset) reordered(order []int) *Dataset {
	c := New(WithNamePolicy(d.policy))
	for _, i := range order {
		_ = c.AddTable(d.tables[i])
	}
	return c
}
