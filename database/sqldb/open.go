package sqldb

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/gaborage/dbfixture/config"
)

// DefaultConnectTimeout bounds the initial ping when the config sets none.
const DefaultConnectTimeout = 10 * time.Second

// PingFunc verifies a freshly opened pool.
type PingFunc func(ctx context.Context, db *sql.DB) error

// Ping is the default PingFunc.
func Ping(ctx context.Context, db *sql.DB) error {
	return db.PingContext(ctx)
}

// Open applies the pool settings of cfg to db, pings it and wraps it. db is closed
// when the ping fails.
func Open(db *sql.DB, vendor string, cfg *config.DatabaseConfig, ping PingFunc) (*Connection, error) {
	Configure(db, cfg)

	timeout := cfg.Connect.Timeout
	if timeout <= 0 {
		timeout = DefaultConnectTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := ping(ctx, db); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			return nil, fmt.Errorf("failed to ping %s database: %w (close: %v)", vendor, err, closeErr)
		}
		return nil, fmt.Errorf("failed to ping %s database: %w", vendor, err)
	}
	return New(db, vendor), nil
}

// Configure applies the connection pool settings of cfg. Zero values keep the
// database/sql defaults.
func Configure(db *sql.DB, cfg *config.DatabaseConfig) {
	if n := cfg.Pool.Max.Connections; n > 0 {
		db.SetMaxOpenConns(int(n))
	}
	if n := cfg.Pool.Idle.Connections; n > 0 {
		db.SetMaxIdleConns(int(n))
	}
	if d := cfg.Pool.Lifetime.Max; d > 0 {
		db.SetConnMaxLifetime(d)
	}
	if d := cfg.Pool.Idle.Time; d > 0 {
		db.SetConnMaxIdleTime(d)
	}
}
