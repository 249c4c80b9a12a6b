// Package oracle opens Oracle connections through the pure-Go go-ora driver.
package oracle

import (
	"context"
	"database/sql"
	"fmt"

	go_ora "github.com/sijms/go-ora/v2"

	"github.com/gaborage/dbfixture/config"
	"github.com/gaborage/dbfixture/database/sqldb"
	"github.com/gaborage/dbfixture/database/types"
	"github.com/gaborage/dbfixture/logger"
)

var (
	openOracleDB = func(dsn string) (*sql.DB, error) {
		return sql.Open("oracle", dsn)
	}
	pingOracleDB = func(ctx context.Context, db *sql.DB) error {
		return db.PingContext(ctx)
	}
)

// DSN returns the go-ora URL for cfg. ServiceName wins over SID; without either the
// database name is used as the service.
func DSN(cfg *config.DatabaseConfig) string {
	switch {
	case cfg.ConnectionString != "":
		return cfg.ConnectionString
	case cfg.Oracle.ServiceName != "":
		return go_ora.BuildUrl(cfg.Host, cfg.Port, cfg.Oracle.ServiceName, cfg.Username, cfg.Password, nil)
	case cfg.Oracle.SID != "":
		return go_ora.BuildUrl(cfg.Host, cfg.Port, "", cfg.Username, cfg.Password, map[string]string{"SID": cfg.Oracle.SID})
	}
	return go_ora.BuildUrl(cfg.Host, cfg.Port, cfg.Database, cfg.Username, cfg.Password, nil)
}

// NewConnection creates a new Oracle connection
func NewConnection(cfg *config.DatabaseConfig, log logger.Logger) (*sqldb.Connection, error) {
	db, err := openOracleDB(DSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to open Oracle connection: %w", err)
	}

	conn, err := sqldb.Open(db, types.Oracle, cfg, pingOracleDB)
	if err != nil {
		return nil, err
	}

	ev := log.Info().
		Str("host", cfg.Host).
		Int("port", cfg.Port)
	switch {
	case cfg.Oracle.ServiceName != "":
		ev = ev.Str("service_name", cfg.Oracle.ServiceName)
	case cfg.Oracle.SID != "":
		ev = ev.Str("sid", cfg.Oracle.SID)
	default:
		ev = ev.Str("database", cfg.Database)
	}
	ev.Msg("Connected to Oracle database")

	return conn, nil
}
