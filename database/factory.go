package database

import (
	"database/sql"
	"fmt"
	"slices"

	"github.com/gaborage/dbfixture/config"
	"github.com/gaborage/dbfixture/database/internal/tracking"
	"github.com/gaborage/dbfixture/database/mysql"
	"github.com/gaborage/dbfixture/database/oracle"
	"github.com/gaborage/dbfixture/database/postgresql"
	"github.com/gaborage/dbfixture/database/sqldb"
	"github.com/gaborage/dbfixture/database/sqlite"
	"github.com/gaborage/dbfixture/database/sqlserver"
	"github.com/gaborage/dbfixture/database/types"
	"github.com/gaborage/dbfixture/logger"
)

// vendor constructors, swapped in tests
var (
	newPostgreSQL = postgresql.NewConnection
	newOracle     = oracle.NewConnection
	newMySQL      = mysql.NewConnection
	newSQLServer  = sqlserver.NewConnection
	newSQLite     = sqlite.NewConnection
)

// NewConnection creates a new database connection according to cfg and returns it wrapped
// with query tracking. The concrete driver is selected by cfg.Type. If cfg.Type is
// unsupported an error is returned; if the chosen driver fails to initialize, that
// underlying error is returned.
func NewConnection(cfg *config.DatabaseConfig, log logger.Logger) (Interface, error) {
	if err := ValidateDatabaseType(cfg.Type); err != nil {
		return nil, err
	}

	var conn *sqldb.Connection
	var err error

	switch cfg.Type {
	case PostgreSQL:
		conn, err = newPostgreSQL(cfg, log)
	case Oracle:
		conn, err = newOracle(cfg, log)
	case MySQL:
		conn, err = newMySQL(cfg, log)
	case SQLServer:
		conn, err = newSQLServer(cfg, log)
	case SQLite:
		conn, err = newSQLite(cfg, log)
	}

	if err != nil {
		return nil, err
	}

	return tracking.NewConnection(conn, log, tracking.NewSettings(cfg)), nil
}

// Wrap adapts an already opened *sql.DB for vendor, with query tracking using default settings.
func Wrap(db *sql.DB, vendor string, log logger.Logger) (Interface, error) {
	if err := ValidateDatabaseType(vendor); err != nil {
		return nil, err
	}
	return tracking.NewConnection(sqldb.New(db, vendor), log, tracking.NewSettings(nil)), nil
}

// ValidateDatabaseType returns nil if dbType is one of the supported database types.
// If dbType is not supported, it returns an error describing the invalid value and listing the supported types.
func ValidateDatabaseType(dbType string) error {
	supportedTypes := GetSupportedDatabaseTypes()
	if !slices.Contains(supportedTypes, dbType) {
		return fmt.Errorf("unsupported database type: %s (supported: %v)", dbType, supportedTypes)
	}
	return nil
}

// GetSupportedDatabaseTypes returns a list of supported database types
func GetSupportedDatabaseTypes() []string {
	return types.Vendors()
}
