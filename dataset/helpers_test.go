package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaborage/dbfixture/datatype"
)

func TestColumnFilterAccept(t *testing.T) {
	tests := []struct {
		name   string
		filter ColumnFilter
		table  string
		column string
		want   bool
	}{
		{name: "zero accepts", filter: ColumnFilter{}, table: "t", column: "c", want: true},
		{name: "exclude wildcard", filter: ExcludeColumns("*_AT"), table: "t", column: "created_at", want: false},
		{name: "exclude misses", filter: ExcludeColumns("*_at"), table: "t", column: "name", want: true},
		{name: "qualified exclude", filter: ExcludeColumns("users.id"), table: "USERS", column: "ID", want: false},
		{name: "qualified exclude other table", filter: ExcludeColumns("users.id"), table: "orders", column: "id", want: true},
		{name: "include only", filter: IncludeColumns("id", "name"), table: "t", column: "score", want: false},
		{name: "exclude beats include", filter: IncludeColumns("*").Exclude("id"), table: "t", column: "id", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Accept(tt.table, tt.column))
		})
	}
}

func TestFilterColumns(t *testing.T) {
	ds := New()
	tbl, err := ds.NewTable("users", []Column{
		{Name: "id", Type: datatype.Integer},
		{Name: "name", Type: datatype.VarChar},
		{Name: "updated_at", Type: datatype.Timestamp},
	})
	require.NoError(t, err)
	require.NoError(t, tbl.AddRow(1, "alice", "2024-01-01"))

	out := FilterColumns(ds, ExcludeColumns("*_at"))
	ft, err := out.Table("users")
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "name"}, ft.ColumnNames())
	v, err := ft.Value(0, "name")
	require.NoError(t, err)
	assert.Equal(t, "alice", v)
	assert.Equal(t, 3, tbl.ColumnCount(), "source is untouched")
}

func TestReplace(t *testing.T) {
	ds := New()
	tbl, err := ds.NewTable("t", []Column{{Name: "a"}, {Name: "b", Type: datatype.VarChar}})
	require.NoError(t, err)
	require.NoError(t, tbl.AddRow("[NULL]", "keep"))
	require.NoError(t, tbl.AddRow("x", "[NULL]"))

	out, err := Replace(ds, map[string]any{"[NULL]": nil})
	require.NoError(t, err)
	ot, _ := out.Table("t")

	v, _ := ot.Value(0, "a")
	assert.Nil(t, v)
	v, _ = ot.Value(0, "b")
	assert.Equal(t, "keep", v)
	v, _ = ot.Value(1, "b")
	assert.Nil(t, v)

	orig, _ := tbl.Value(0, "a")
	assert.Equal(t, "[NULL]", orig)
}

func TestSortRows(t *testing.T) {
	tbl, err := NewTable("t", []Column{
		{Name: "id", Type: datatype.Integer, PrimaryKey: true},
		{Name: "name", Type: datatype.VarChar},
	})
	require.NoError(t, err)
	require.NoError(t, tbl.AddRow(10, "b"))
	require.NoError(t, tbl.AddRow(2, "a"))
	require.NoError(t, tbl.AddRow(nil, "c"))

	sorted, err := SortRows(tbl)
	require.NoError(t, err)
	var ids []any
	for i := 0; i < sorted.RowCount(); i++ {
		ids = append(ids, sorted.Row(i).At(0))
	}
	assert.Equal(t, []any{nil, int64(2), int64(10)}, ids, "numeric order with NULL first")

	byName, err := SortRows(tbl, "name")
	require.NoError(t, err)
	assert.Equal(t, "a", byName.Row(0).At(1))

	first, _ := tbl.Value(0, "id")
	assert.Equal(t, int64(10), first, "source order is untouched")

	_, err = SortRows(tbl, "missing")
	var colErr *NoSuchColumnError
	assert.ErrorAs(t, err, &colErr)
}
