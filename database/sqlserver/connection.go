// Package sqlserver opens SQL Server connections through microsoft/go-mssqldb.
package sqlserver

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"net/url"
	"strconv"

	mssql "github.com/microsoft/go-mssqldb"

	"github.com/gaborage/dbfixture/config"
	"github.com/gaborage/dbfixture/database/sqldb"
	"github.com/gaborage/dbfixture/database/types"
	"github.com/gaborage/dbfixture/logger"
)

var (
	openSQLServerDB = func(dsn string) (*sql.DB, error) {
		connector, err := mssql.NewConnector(dsn)
		if err != nil {
			return nil, err
		}
		return sql.OpenDB(connector), nil
	}
	pingSQLServerDB = func(ctx context.Context, db *sql.DB) error {
		return db.PingContext(ctx)
	}
)

// DSN returns the sqlserver:// URL for cfg.
func DSN(cfg *config.DatabaseConfig) string {
	if cfg.ConnectionString != "" {
		return cfg.ConnectionString
	}
	q := url.Values{}
	if cfg.Database != "" {
		q.Set("database", cfg.Database)
	}
	if cfg.TLS.Mode != "" {
		q.Set("encrypt", cfg.TLS.Mode)
	}
	u := url.URL{
		Scheme:   "sqlserver",
		User:     url.UserPassword(cfg.Username, cfg.Password),
		Host:     net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		RawQuery: q.Encode(),
	}
	return u.String()
}

// NewConnection creates a new SQL Server connection
func NewConnection(cfg *config.DatabaseConfig, log logger.Logger) (*sqldb.Connection, error) {
	db, err := openSQLServerDB(DSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to open SQL Server connection: %w", err)
	}

	conn, err := sqldb.Open(db, types.SQLServer, cfg, pingSQLServerDB)
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("host", cfg.Host).
		Int("port", cfg.Port).
		Str("database", cfg.Database).
		Msg("Connected to SQL Server database")
	return conn, nil
}
