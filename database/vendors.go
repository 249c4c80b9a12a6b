package database

import "github.com/gaborage/dbfixture/database/types"

// Vendor identifiers accepted by NewConnection and Wrap.
const (
	PostgreSQL = types.PostgreSQL
	Oracle     = types.Oracle
	MySQL      = types.MySQL
	SQLServer  = types.SQLServer
	SQLite     = types.SQLite
)
