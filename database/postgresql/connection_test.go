package postgresql

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaborage/dbfixture/config"
	"github.com/gaborage/dbfixture/logger"
)

func TestQuoteDSN(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", "''"},
		{"plain_value-1.2", "plain_value-1.2"},
		{"with space", "'with space'"},
		{`it's`, `'it\'s'`},
		{`back\slash`, `'back\\slash'`},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, quoteDSN(tt.in))
	}
}

func TestDSN(t *testing.T) {
	cfg := &config.DatabaseConfig{Host: "localhost", Port: 5432, Username: "app", Password: "p w", Database: "shop"}
	cfg.TLS.Mode = "disable"
	assert.Equal(t, "host=localhost port=5432 user=app password='p w' dbname=shop sslmode=disable", DSN(cfg))

	cfg.ConnectionString = "postgres://u@h/db"
	assert.Equal(t, "postgres://u@h/db", DSN(cfg))
}

func TestNewConnectionUsesHooks(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	origOpen, origPing := openPostgresDB, pingPostgresDB
	t.Cleanup(func() { openPostgresDB, pingPostgresDB = origOpen, origPing })

	var opened *pgx.ConnConfig
	openPostgresDB = func(cfg *pgx.ConnConfig) *sql.DB {
		opened = cfg
		return db
	}
	pingPostgresDB = func(context.Context, *sql.DB) error { return nil }

	cfg := &config.DatabaseConfig{Host: "db", Port: 6543, Username: "app", Database: "shop"}
	conn, err := NewConnection(cfg, logger.Nop())
	require.NoError(t, err)
	assert.Equal(t, "postgresql", conn.DatabaseType())
	assert.Equal(t, "db", opened.Host)
	assert.Equal(t, uint16(6543), opened.Port)

	mock.ExpectClose()
	require.NoError(t, conn.Close())
}

func TestNewConnectionPingFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	mock.ExpectClose()

	origOpen, origPing := openPostgresDB, pingPostgresDB
	t.Cleanup(func() { openPostgresDB, pingPostgresDB = origOpen, origPing })
	openPostgresDB = func(*pgx.ConnConfig) *sql.DB { return db }
	pingPostgresDB = func(context.Context, *sql.DB) error { return errors.New("refused") }

	_, err = NewConnection(&config.DatabaseConfig{Host: "db", Port: 5432, Database: "shop"}, logger.Nop())
	assert.ErrorContains(t, err, "refused")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNewConnectionRejectsBadDSN(t *testing.T) {
	_, err := NewConnection(&config.DatabaseConfig{ConnectionString: "postgres://%zz"}, logger.Nop())
	assert.ErrorContains(t, err, "failed to parse PostgreSQL config")
}
