package mysql

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	driver "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaborage/dbfixture/config"
	"github.com/gaborage/dbfixture/logger"
	testconsts "github.com/gaborage/dbfixture/testing"
)

func TestDriverConfigFromFields(t *testing.T) {
	c, err := DriverConfig(&config.DatabaseConfig{
		Host:     "db",
		Port:     testconsts.TestPortMySQL,
		Username: testconsts.TestUsername,
		Password: testconsts.TestPasswordDefault,
		Database: testconsts.TestDatabaseName,
	})
	require.NoError(t, err)

	assert.Equal(t, "db:3306", c.Addr)
	assert.Equal(t, "tcp", c.Net)
	assert.Equal(t, "shop", c.DBName)
	assert.True(t, c.ClientFoundRows)
	assert.True(t, c.ParseTime)
	dsn := c.FormatDSN()
	assert.Contains(t, dsn, "app:secret@tcp(db:3306)/shop?")
	assert.Contains(t, dsn, "clientFoundRows=true")
	assert.Contains(t, dsn, "parseTime=true")
}

func TestDriverConfigFromDSN(t *testing.T) {
	c, err := DriverConfig(&config.DatabaseConfig{ConnectionString: "root@tcp(127.0.0.1:3307)/test"})
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:3307", c.Addr)
	assert.True(t, c.ClientFoundRows)

	_, err = DriverConfig(&config.DatabaseConfig{ConnectionString: "not a dsn"})
	assert.ErrorContains(t, err, "failed to parse MySQL DSN")
}

func TestNewConnection(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	origOpen, origPing := openMySQLDB, pingMySQLDB
	t.Cleanup(func() { openMySQLDB, pingMySQLDB = origOpen, origPing })
	openMySQLDB = func(*driver.Config) (*sql.DB, error) { return db, nil }
	pingMySQLDB = func(context.Context, *sql.DB) error { return nil }

	conn, err := NewConnection(&config.DatabaseConfig{Host: "db", Port: testconsts.TestPortMySQL, Database: testconsts.TestDatabaseName}, logger.Nop())
	require.NoError(t, err)
	assert.Equal(t, "mysql", conn.DatabaseType())

	mock.ExpectClose()
	require.NoError(t, conn.Close())

	openMySQLDB = func(*driver.Config) (*sql.DB, error) { return nil, errors.New("no driver") }
	_, err = NewConnection(&config.DatabaseConfig{Host: "db", Port: testconsts.TestPortMySQL, Database: testconsts.TestDatabaseName}, logger.Nop())
	assert.EqualError(t, err, "failed to open MySQL connection: no driver")
}
