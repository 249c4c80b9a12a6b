// Package sqlite opens SQLite databases through mattn/go-sqlite3.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3" // registers the sqlite3 driver

	"github.com/gaborage/dbfixture/config"
	"github.com/gaborage/dbfixture/database/sqldb"
	"github.com/gaborage/dbfixture/database/types"
	"github.com/gaborage/dbfixture/logger"
)

// MemoryDatabase names a private in-memory database.
const MemoryDatabase = ":memory:"

var (
	openSQLiteDB = func(dsn string) (*sql.DB, error) {
		return sql.Open("sqlite3", dsn)
	}
	pingSQLiteDB = func(ctx context.Context, db *sql.DB) error {
		return db.PingContext(ctx)
	}
)

// DSN returns the go-sqlite3 DSN for cfg with foreign key enforcement enabled.
func DSN(cfg *config.DatabaseConfig) string {
	if cfg.ConnectionString != "" {
		return cfg.ConnectionString
	}
	path := cfg.Database
	if path == "" {
		path = MemoryDatabase
	}
	if !strings.HasPrefix(path, "file:") {
		path = "file:" + path
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_foreign_keys=on"
}

// NewConnection opens a SQLite database. The pool is limited to one connection:
// every connection to ":memory:" would otherwise open its own empty database.
func NewConnection(cfg *config.DatabaseConfig, log logger.Logger) (*sqldb.Connection, error) {
	dsn := DSN(cfg)
	db, err := openSQLiteDB(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	single := *cfg
	single.Pool.Max.Connections = 1
	single.Pool.Idle.Connections = 1
	single.Pool.Idle.Time = 0
	single.Pool.Lifetime.Max = 0

	conn, err := sqldb.Open(db, types.SQLite, &single, pingSQLiteDB)
	if err != nil {
		return nil, err
	}

	log.Info().Str("dsn", dsn).Msg("Opened SQLite database")
	return conn, nil
}
