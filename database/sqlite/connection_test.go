package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaborage/dbfixture/config"
	"github.com/gaborage/dbfixture/logger"
)

func TestDSN(t *testing.T) {
	tests := []struct {
		cfg  config.DatabaseConfig
		want string
	}{
		{config.DatabaseConfig{}, "file::memory:?_foreign_keys=on"},
		{config.DatabaseConfig{Database: "/tmp/shop.db"}, "file:/tmp/shop.db?_foreign_keys=on"},
		{config.DatabaseConfig{Database: "file:shop.db?cache=shared"}, "file:shop.db?cache=shared&_foreign_keys=on"},
		{config.DatabaseConfig{ConnectionString: "shop.db"}, "shop.db"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DSN(&tt.cfg))
	}
}

func TestMemoryDatabaseSurvivesAcrossStatements(t *testing.T) {
	conn, err := NewConnection(&config.DatabaseConfig{Database: MemoryDatabase}, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	ctx := context.Background()

	_, err = conn.Exec(ctx, "CREATE TABLE t (id INTEGER PRIMARY KEY)")
	require.NoError(t, err)
	_, err = conn.Exec(ctx, "INSERT INTO t (id) VALUES (?)", 1)
	require.NoError(t, err)

	var n int
	require.NoError(t, conn.QueryRow(ctx, "SELECT COUNT(*) FROM t").Scan(&n))
	assert.Equal(t, 1, n)
	assert.Equal(t, 1, conn.DB().Stats().MaxOpenConnections)
}
