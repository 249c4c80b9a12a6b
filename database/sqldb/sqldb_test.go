package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaborage/dbfixture/config"
)

func newMock(t *testing.T) (*Connection, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return New(db, "postgresql"), mock
}

func TestConnectionDelegates(t *testing.T) {
	c, mock := newMock(t)
	ctx := context.Background()

	mock.ExpectExec("DELETE FROM t").WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectQuery("SELECT 1").WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(1))

	res, err := c.Exec(ctx, "DELETE FROM t")
	require.NoError(t, err)
	n, err := res.RowsAffected()
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	var one int
	require.NoError(t, c.QueryRow(ctx, "SELECT 1").Scan(&one))
	assert.Equal(t, 1, one)
	assert.Equal(t, "postgresql", c.DatabaseType())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionPreparedStatement(t *testing.T) {
	c, mock := newMock(t)
	ctx := context.Background()

	mock.ExpectBegin()
	prep := mock.ExpectPrepare("INSERT INTO t (a) VALUES ($1)")
	prep.ExpectExec().WithArgs(1).WillReturnResult(sqlmock.NewResult(1, 1))
	prep.WillBeClosed()
	mock.ExpectCommit()

	tx, err := c.Begin(ctx)
	require.NoError(t, err)
	stmt, err := tx.Prepare(ctx, "INSERT INTO t (a) VALUES ($1)")
	require.NoError(t, err)
	_, err = stmt.Exec(ctx, 1)
	require.NoError(t, err)
	require.NoError(t, stmt.Close())
	require.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBeginError(t *testing.T) {
	c, mock := newMock(t)
	mock.ExpectBegin().WillReturnError(errors.New("no connection"))

	tx, err := c.Begin(context.Background())
	assert.Nil(t, tx)
	assert.EqualError(t, err, "no connection")
}

func TestOpenPingsAndConfiguresPool(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)

	cfg := &config.DatabaseConfig{}
	cfg.Pool.Max.Connections = 3

	mock.ExpectPing()
	conn, err := Open(db, "mysql", cfg, Ping)
	require.NoError(t, err)
	assert.Equal(t, 3, conn.DB().Stats().MaxOpenConnections)
	assert.Equal(t, "mysql", conn.DatabaseType())

	mock.ExpectClose()
	require.NoError(t, conn.Close())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOpenClosesOnPingFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	mock.ExpectClose()

	failing := func(context.Context, *sql.DB) error { return errors.New("refused") }
	conn, err := Open(db, "sqlserver", &config.DatabaseConfig{}, failing)
	assert.Nil(t, conn)
	assert.EqualError(t, err, "failed to ping sqlserver database: refused")
	assert.NoError(t, mock.ExpectationsWereMet())
}
