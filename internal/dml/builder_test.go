package dml

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaborage/dbfixture/database/types"
)

func upperQuote(s string) string { return `"` + strings.ToUpper(s) + `"` }

func TestInsertPlaceholders(t *testing.T) {
	tests := []struct {
		vendor string
		want   string
	}{
		{types.PostgreSQL, "INSERT INTO users (id,name) VALUES ($1,$2)"},
		{types.Oracle, "INSERT INTO users (id,name) VALUES (:1,:2)"},
		{types.SQLServer, "INSERT INTO users (id,name) VALUES (@p1,@p2)"},
		{types.MySQL, "INSERT INTO users (id,name) VALUES (?,?)"},
		{types.SQLite, "INSERT INTO users (id,name) VALUES (?,?)"},
	}
	for _, tt := range tests {
		t.Run(tt.vendor, func(t *testing.T) {
			got, err := New(tt.vendor, nil).Insert("users", []string{"id", "name"}, 1)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMultiRowInsert(t *testing.T) {
	b := New(types.PostgreSQL, nil)
	got, err := b.Insert("t", []string{"a", "b"}, 2)
	require.NoError(t, err)
	assert.Equal(t, "INSERT INTO t (a,b) VALUES ($1,$2),($3,$4)", got)

	assert.True(t, b.SupportsMultiRowInsert())
	assert.False(t, New(types.Oracle, nil).SupportsMultiRowInsert())

	_, err = b.Insert("t", nil, 1)
	assert.Error(t, err)
}

func TestQuoterIsApplied(t *testing.T) {
	b := New(types.Oracle, upperQuote)
	got, err := b.Insert("emp", []string{"level"}, 1)
	require.NoError(t, err)
	assert.Equal(t, `INSERT INTO "EMP" ("LEVEL") VALUES (:1)`, got)
}

func TestUpdateOrdersSetBeforeKeys(t *testing.T) {
	got, err := New(types.PostgreSQL, nil).Update("users", []string{"name", "email"}, []string{"id"})
	require.NoError(t, err)
	assert.Equal(t, "UPDATE users SET name = $1, email = $2 WHERE id = $3", got)

	_, err = New(types.PostgreSQL, nil).Update("users", []string{"name"}, nil)
	assert.Error(t, err)
}

func TestDelete(t *testing.T) {
	b := New(types.SQLServer, nil)

	got, err := b.DeleteByKey("t", []string{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, "DELETE FROM t WHERE a = @p1 AND b = @p2", got)

	query, args, err := b.DeleteMatching("t", []string{"a", "b", "c"}, []any{int64(1), nil, []byte{1, 2}})
	require.NoError(t, err)
	assert.Equal(t, "DELETE FROM t WHERE (a = @p1 AND b IS NULL AND c = @p2)", query)
	assert.Equal(t, []any{int64(1), []byte{1, 2}}, args)

	_, _, err = b.DeleteMatching("t", []string{"a"}, nil)
	assert.Error(t, err)

	assert.Equal(t, "DELETE FROM t", b.DeleteAll("t"))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "TRUNCATE TABLE t", New(types.PostgreSQL, nil).Truncate("t"))
	assert.Equal(t, "DELETE FROM t", New(types.SQLite, nil).Truncate("t"))
}

func TestCountAndSelect(t *testing.T) {
	b := New(types.MySQL, func(s string) string { return "`" + s + "`" })

	got, err := b.CountByKey("t", []string{"id"})
	require.NoError(t, err)
	assert.Equal(t, "SELECT COUNT(*) FROM `t` WHERE `id` = ?", got)

	got, err = b.Select("t", []string{"id", "name"}, []string{"id"})
	require.NoError(t, err)
	assert.Equal(t, "SELECT `id`, `name` FROM `t` ORDER BY `id`", got)

	got, err = b.Select("t", []string{"id"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "SELECT `id` FROM `t`", got)
}

func TestMaxParams(t *testing.T) {
	assert.Equal(t, 2100, New(types.SQLServer, nil).MaxParams())
	assert.Greater(t, New(types.PostgreSQL, nil).MaxParams(), 2100)
}
