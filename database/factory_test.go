package database

import (
	"bytes"
	"context"
	"errors"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaborage/dbfixture/config"
	"github.com/gaborage/dbfixture/database/sqldb"
	"github.com/gaborage/dbfixture/logger"
)

func TestValidateDatabaseType(t *testing.T) {
	for _, v := range []string{PostgreSQL, Oracle, MySQL, SQLServer, SQLite} {
		assert.NoError(t, ValidateDatabaseType(v), v)
	}
	err := ValidateDatabaseType("db2")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported database type: db2")
	assert.Len(t, GetSupportedDatabaseTypes(), 5)
}

func TestNewConnectionUnsupported(t *testing.T) {
	_, err := NewConnection(&config.DatabaseConfig{Type: "mongodb"}, logger.Nop())
	assert.ErrorContains(t, err, "unsupported database type: mongodb")
}

func TestNewConnectionDispatchesByVendor(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	orig := newMySQL
	t.Cleanup(func() { newMySQL = orig })
	var called bool
	newMySQL = func(cfg *config.DatabaseConfig, _ logger.Logger) (*sqldb.Connection, error) {
		called = true
		return sqldb.New(db, cfg.Type), nil
	}

	var buf bytes.Buffer
	conn, err := NewConnection(&config.DatabaseConfig{Type: MySQL}, logger.NewWithWriter(&buf, "debug"))
	require.NoError(t, err)
	assert.True(t, called)
	assert.Equal(t, MySQL, conn.DatabaseType())
	assert.IsType(t, &TrackedConnection{}, conn)

	mock.ExpectExec("DELETE FROM t").WillReturnResult(sqlmock.NewResult(0, 3))
	_, err = conn.Exec(context.Background(), "DELETE FROM t")
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"rows_affected":3`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNewConnectionPropagatesDriverError(t *testing.T) {
	orig := newPostgreSQL
	t.Cleanup(func() { newPostgreSQL = orig })
	newPostgreSQL = func(*config.DatabaseConfig, logger.Logger) (*sqldb.Connection, error) {
		return nil, errors.New("connection refused")
	}

	_, err := NewConnection(&config.DatabaseConfig{Type: PostgreSQL}, logger.Nop())
	assert.EqualError(t, err, "connection refused")
}

func TestWrap(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	conn, err := Wrap(db, Oracle, logger.Nop())
	require.NoError(t, err)
	assert.Equal(t, Oracle, conn.DatabaseType())

	_, err = Wrap(db, "informix", logger.Nop())
	assert.Error(t, err)
}
