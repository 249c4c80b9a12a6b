package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaborage/dbfixture/datatype"
)

func usersTable(t *testing.T, opts ...Option) *Table {
	t.Helper()
	tbl, err := NewTable("users", []Column{
		{Name: "id", Type: datatype.Integer, PrimaryKey: true, Nullable: NoNulls},
		{Name: "name", Type: datatype.VarChar},
		{Name: "score", Type: datatype.Decimal},
	}, opts...)
	require.NoError(t, err)
	return tbl
}

func TestNewTableRejectsDuplicateColumns(t *testing.T) {
	_, err := NewTable("t", []Column{{Name: "a"}, {Name: "A"}})
	assert.ErrorIs(t, err, ErrDuplicateColumn)

	tbl, err := NewTable("t", []Column{{Name: "a"}, {Name: "A"}}, WithCaseSensitive(true))
	require.NoError(t, err)
	assert.Equal(t, 2, tbl.ColumnCount())

	_, err = NewTable("", nil)
	assert.ErrorIs(t, err, ErrEmptyName)
}

func TestNilColumnTypeIsUnknown(t *testing.T) {
	tbl, err := NewTable("t", []Column{{Name: "a"}})
	require.NoError(t, err)
	assert.Same(t, datatype.Unknown, tbl.ColumnAt(0).Type)
}

func TestAddRowNormalizesValues(t *testing.T) {
	tbl := usersTable(t)
	require.NoError(t, tbl.AddRow("1", "alice", "1.50"))
	require.NoError(t, tbl.AddRow(2, nil, NoValue))

	assert.Equal(t, 2, tbl.RowCount())

	v, err := tbl.Value(0, "id")
	require.NoError(t, err)
	assert.Equal(t, int64(1), v)

	v, err = tbl.Value(1, "NAME")
	require.NoError(t, err)
	assert.Nil(t, v)

	v, err = tbl.ValueAt(1, 2)
	require.NoError(t, err)
	assert.True(t, IsNoValue(v))

	err = tbl.AddRow(1, "x")
	assert.ErrorIs(t, err, ErrColumnCount)

	err = tbl.AddRow("abc", "x", 1)
	assert.ErrorIs(t, err, datatype.ErrTypeConversion)
	assert.Equal(t, 2, tbl.RowCount(), "failed rows are not appended")
}

func TestAddRecord(t *testing.T) {
	tbl := usersTable(t)
	require.NoError(t, tbl.AddRecord(map[string]any{"ID": 7, "name": "bob"}))

	row := tbl.Row(0)
	assert.Equal(t, int64(7), row.At(0))
	assert.True(t, IsNoValue(row.At(2)), "missing columns hold NoValue")

	err := tbl.AddRecord(map[string]any{"nope": 1})
	var colErr *NoSuchColumnError
	require.ErrorAs(t, err, &colErr)
	assert.Equal(t, "users", colErr.Table)
	assert.Equal(t, "nope", colErr.Column)
}

func TestRowPositionalAndNamedAccessAgree(t *testing.T) {
	tbl := usersTable(t)
	require.NoError(t, tbl.AddRow(1, "alice", 2))

	row := tbl.Row(0)
	for i, c := range tbl.Columns() {
		byName, err := row.Get(c.Name)
		require.NoError(t, err)
		assert.Equal(t, row.At(i), byName)
	}
	assert.Equal(t, 0, row.Index())
	assert.Len(t, row.Values(), 3)
}

func TestSetValueAndRange(t *testing.T) {
	tbl := usersTable(t)
	require.NoError(t, tbl.AddRow(1, "alice", 2))

	require.NoError(t, tbl.SetValue(0, "name", "carol"))
	v, err := tbl.Value(0, "name")
	require.NoError(t, err)
	assert.Equal(t, "carol", v)

	assert.ErrorIs(t, tbl.SetValue(5, "name", "x"), ErrRowOutOfRange)
	_, err = tbl.Value(-1, "name")
	assert.ErrorIs(t, err, ErrRowOutOfRange)
	_, err = tbl.ValueAt(0, 9)
	assert.Error(t, err)
}

func TestPrimaryKeys(t *testing.T) {
	tbl := usersTable(t)
	assert.Equal(t, []string{"id"}, tbl.PrimaryKeys())
	assert.Equal(t, 0, tbl.ColumnIndex("ID"))
	assert.Equal(t, 1, tbl.ColumnIndex("NAME"))
	assert.Equal(t, -1, tbl.ColumnIndex("missing"))
}

func TestTableCloneIsIsolated(t *testing.T) {
	tbl, err := NewTable("files", []Column{{Name: "data", Type: datatype.Blob}})
	require.NoError(t, err)
	require.NoError(t, tbl.AddRow([]byte{1, 2}))

	c := tbl.Clone()
	v, _ := c.Value(0, "data")
	v.([]byte)[0] = 9
	orig, _ := tbl.Value(0, "data")
	assert.Equal(t, []byte{1, 2}, orig)

	require.NoError(t, c.AddRow([]byte{3}))
	assert.Equal(t, 1, tbl.RowCount())
}
