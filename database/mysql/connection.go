// Package mysql opens MySQL and MariaDB connections through go-sql-driver/mysql.
package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"strconv"

	driver "github.com/go-sql-driver/mysql"

	"github.com/gaborage/dbfixture/config"
	"github.com/gaborage/dbfixture/database/sqldb"
	"github.com/gaborage/dbfixture/database/types"
	"github.com/gaborage/dbfixture/logger"
)

var (
	openMySQLDB = func(cfg *driver.Config) (*sql.DB, error) {
		connector, err := driver.NewConnector(cfg)
		if err != nil {
			return nil, err
		}
		return sql.OpenDB(connector), nil
	}
	pingMySQLDB = func(ctx context.Context, db *sql.DB) error {
		return db.PingContext(ctx)
	}
)

// DriverConfig returns the driver configuration for cfg. UPDATE results report matched
// rather than changed rows, and DATETIME columns scan into time.Time.
func DriverConfig(cfg *config.DatabaseConfig) (*driver.Config, error) {
	var c *driver.Config
	if cfg.ConnectionString != "" {
		parsed, err := driver.ParseDSN(cfg.ConnectionString)
		if err != nil {
			return nil, fmt.Errorf("failed to parse MySQL DSN: %w", err)
		}
		c = parsed
	} else {
		c = driver.NewConfig()
		c.User = cfg.Username
		c.Passwd = cfg.Password
		c.Net = "tcp"
		c.Addr = net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
		c.DBName = cfg.Database
		if cfg.TLS.Mode != "" {
			c.TLSConfig = cfg.TLS.Mode
		}
	}
	c.ClientFoundRows = true
	c.ParseTime = true
	return c, nil
}

// NewConnection creates a new MySQL connection
func NewConnection(cfg *config.DatabaseConfig, log logger.Logger) (*sqldb.Connection, error) {
	dc, err := DriverConfig(cfg)
	if err != nil {
		return nil, err
	}
	db, err := openMySQLDB(dc)
	if err != nil {
		return nil, fmt.Errorf("failed to open MySQL connection: %w", err)
	}

	conn, err := sqldb.Open(db, types.MySQL, cfg, pingMySQLDB)
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("addr", dc.Addr).
		Str("database", dc.DBName).
		Msg("Connected to MySQL database")
	return conn, nil
}
