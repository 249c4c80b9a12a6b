package metadata

import (
	"strings"

	"github.com/gaborage/dbfixture/database/types"
	"github.com/gaborage/dbfixture/internal/sqllex"
)

const (
	pgSchema = `COALESCE(NULLIF($1, ''), current_schema())`

	pgExists = `SELECT COUNT(*) FROM information_schema.tables
WHERE table_schema = ` + pgSchema + ` AND table_name = $2`

	pgColumns = `SELECT c.column_name, c.udt_name, c.is_nullable,
  CASE WHEN EXISTS (
    SELECT 1 FROM information_schema.table_constraints tc
    JOIN information_schema.key_column_usage kcu
      ON kcu.constraint_name = tc.constraint_name AND kcu.table_schema = tc.table_schema AND kcu.table_name = tc.table_name
    WHERE tc.constraint_type = 'PRIMARY KEY' AND tc.table_schema = c.table_schema
      AND tc.table_name = c.table_name AND kcu.column_name = c.column_name
  ) THEN 1 ELSE 0 END
FROM information_schema.columns c
WHERE c.table_schema = ` + pgSchema + ` AND c.table_name = $2
ORDER BY c.ordinal_position`

	pgForeignKeys = `SELECT kcu.column_name, ccu.table_name, ccu.column_name
FROM information_schema.table_constraints tc
JOIN information_schema.key_column_usage kcu
  ON kcu.constraint_name = tc.constraint_name AND kcu.table_schema = tc.table_schema
JOIN information_schema.constraint_column_usage ccu
  ON ccu.constraint_name = tc.constraint_name AND ccu.constraint_schema = tc.table_schema
WHERE tc.constraint_type = 'FOREIGN KEY' AND tc.table_schema = ` + pgSchema + ` AND tc.table_name = $2`
)

const (
	oracleOwner = `NVL(:1, SYS_CONTEXT('USERENV', 'CURRENT_SCHEMA'))`

	oracleExists = `SELECT COUNT(*) FROM ALL_TABLES WHERE OWNER = ` + oracleOwner + ` AND TABLE_NAME = :2`

	oracleColumns = `SELECT c.COLUMN_NAME, c.DATA_TYPE, c.NULLABLE,
  CASE WHEN EXISTS (
    SELECT 1 FROM ALL_CONSTRAINTS k
    JOIN ALL_CONS_COLUMNS kc ON kc.OWNER = k.OWNER AND kc.CONSTRAINT_NAME = k.CONSTRAINT_NAME
    WHERE k.CONSTRAINT_TYPE = 'P' AND k.OWNER = c.OWNER AND k.TABLE_NAME = c.TABLE_NAME
      AND kc.COLUMN_NAME = c.COLUMN_NAME
  ) THEN 1 ELSE 0 END
FROM ALL_TAB_COLUMNS c
WHERE c.OWNER = ` + oracleOwner + ` AND c.TABLE_NAME = :2
ORDER BY c.COLUMN_ID`

	oracleForeignKeys = `SELECT cc.COLUMN_NAME, rc.TABLE_NAME, rcc.COLUMN_NAME
FROM ALL_CONSTRAINTS c
JOIN ALL_CONS_COLUMNS cc ON cc.OWNER = c.OWNER AND cc.CONSTRAINT_NAME = c.CONSTRAINT_NAME
JOIN ALL_CONSTRAINTS rc ON rc.OWNER = c.R_OWNER AND rc.CONSTRAINT_NAME = c.R_CONSTRAINT_NAME
JOIN ALL_CONS_COLUMNS rcc ON rcc.OWNER = rc.OWNER AND rcc.CONSTRAINT_NAME = rc.CONSTRAINT_NAME AND rcc.POSITION = cc.POSITION
WHERE c.CONSTRAINT_TYPE = 'R' AND c.OWNER = ` + oracleOwner + ` AND c.TABLE_NAME = :2`
)

const (
	mysqlSchema = `COALESCE(NULLIF(?, ''), DATABASE())`

	mysqlExists = `SELECT COUNT(*) FROM information_schema.TABLES
WHERE TABLE_SCHEMA = ` + mysqlSchema + ` AND TABLE_NAME = ?`

	mysqlColumns = `SELECT COLUMN_NAME, COLUMN_TYPE, IS_NULLABLE, IF(COLUMN_KEY = 'PRI', 1, 0)
FROM information_schema.COLUMNS
WHERE TABLE_SCHEMA = ` + mysqlSchema + ` AND TABLE_NAME = ?
ORDER BY ORDINAL_POSITION`

	mysqlForeignKeys = `SELECT COLUMN_NAME, REFERENCED_TABLE_NAME, REFERENCED_COLUMN_NAME
FROM information_schema.KEY_COLUMN_USAGE
WHERE TABLE_SCHEMA = ` + mysqlSchema + ` AND TABLE_NAME = ? AND REFERENCED_TABLE_NAME IS NOT NULL`
)

const (
	mssqlSchema = `COALESCE(NULLIF(@p1, ''), SCHEMA_NAME())`

	mssqlExists = `SELECT COUNT(*) FROM INFORMATION_SCHEMA.TABLES
WHERE TABLE_SCHEMA = ` + mssqlSchema + ` AND TABLE_NAME = @p2`

	mssqlColumns = `SELECT c.COLUMN_NAME, c.DATA_TYPE, c.IS_NULLABLE,
  CASE WHEN EXISTS (
    SELECT 1 FROM INFORMATION_SCHEMA.TABLE_CONSTRAINTS tc
    JOIN INFORMATION_SCHEMA.KEY_COLUMN_USAGE kcu
      ON kcu.CONSTRAINT_NAME = tc.CONSTRAINT_NAME AND kcu.TABLE_SCHEMA = tc.TABLE_SCHEMA
    WHERE tc.CONSTRAINT_TYPE = 'PRIMARY KEY' AND tc.TABLE_SCHEMA = c.TABLE_SCHEMA
      AND tc.TABLE_NAME = c.TABLE_NAME AND kcu.COLUMN_NAME = c.COLUMN_NAME
  ) THEN 1 ELSE 0 END
FROM INFORMATION_SCHEMA.COLUMNS c
WHERE c.TABLE_SCHEMA = ` + mssqlSchema + ` AND c.TABLE_NAME = @p2
ORDER BY c.ORDINAL_POSITION`

	mssqlForeignKeys = `SELECT pc.name, rt.name, rc.name
FROM sys.foreign_key_columns fkc
JOIN sys.tables pt ON pt.object_id = fkc.parent_object_id
JOIN sys.columns pc ON pc.object_id = fkc.parent_object_id AND pc.column_id = fkc.parent_column_id
JOIN sys.tables rt ON rt.object_id = fkc.referenced_object_id
JOIN sys.columns rc ON rc.object_id = fkc.referenced_object_id AND rc.column_id = fkc.referenced_column_id
WHERE SCHEMA_NAME(pt.schema_id) = ` + mssqlSchema + ` AND pt.name = @p2`
)

const (
	sqliteExists = `SELECT COUNT(*) FROM sqlite_master WHERE type IN ('table', 'view') AND name = ? COLLATE NOCASE`

	sqliteColumns = `SELECT name, type, CASE WHEN "notnull" = 0 THEN 'YES' ELSE 'NO' END, CASE WHEN pk > 0 THEN 1 ELSE 0 END
FROM pragma_table_info(?)
ORDER BY cid`

	sqliteForeignKeys = `SELECT "from", "table", "to" FROM pragma_foreign_key_list(?)`
)

// NewPostgreSQL returns a handler for PostgreSQL. Unquoted names fold to lower case.
func NewPostgreSQL(schema string, opts ...Option) *SQLHandler {
	return newSQLHandler(dialect{
		vendor:       types.PostgreSQL,
		existsQuery:  pgExists,
		columnsQuery: pgColumns,
		fkQuery:      pgForeignKeys,
		schemaArg:    true,
		fold:         strings.ToLower,
		openQuote:    '"',
		closeQuote:   '"',
		reserved:     sqllex.IsReservedWord,
	}, schema, opts)
}

// NewOracle returns a handler for Oracle. owner selects the schema; unquoted names
// fold to upper case and reserved words are quoted.
func NewOracle(owner string, opts ...Option) *SQLHandler {
	return newSQLHandler(dialect{
		vendor:       types.Oracle,
		existsQuery:  oracleExists,
		columnsQuery: oracleColumns,
		fkQuery:      oracleForeignKeys,
		schemaArg:    true,
		fold:         strings.ToUpper,
		openQuote:    '"',
		closeQuote:   '"',
		reserved:     sqllex.IsOracleReservedWord,
	}, owner, opts)
}

// NewMySQL returns a handler for MySQL. schema defaults to the connection's database.
func NewMySQL(schema string, opts ...Option) *SQLHandler {
	return newSQLHandler(dialect{
		vendor:       types.MySQL,
		existsQuery:  mysqlExists,
		columnsQuery: mysqlColumns,
		fkQuery:      mysqlForeignKeys,
		schemaArg:    true,
		openQuote:    '`',
		closeQuote:   '`',
		reserved:     sqllex.IsReservedWord,
	}, schema, opts)
}

// NewSQLServer returns a handler for SQL Server. schema defaults to the user's
// default schema.
func NewSQLServer(schema string, opts ...Option) *SQLHandler {
	return newSQLHandler(dialect{
		vendor:       types.SQLServer,
		existsQuery:  mssqlExists,
		columnsQuery: mssqlColumns,
		fkQuery:      mssqlForeignKeys,
		schemaArg:    true,
		openQuote:    '[',
		closeQuote:   ']',
		reserved:     sqllex.IsReservedWord,
	}, schema, opts)
}

// NewSQLite returns a handler for SQLite's main database.
func NewSQLite(opts ...Option) *SQLHandler {
	return newSQLHandler(dialect{
		vendor:       types.SQLite,
		existsQuery:  sqliteExists,
		columnsQuery: sqliteColumns,
		fkQuery:      sqliteForeignKeys,
		openQuote:    '"',
		closeQuote:   '"',
		reserved:     sqllex.IsReservedWord,
	}, "", opts)
}

// New returns the catalog handler for vendor.
func New(vendor, schema string, opts ...Option) (*SQLHandler, error) {
	switch vendor {
	case types.PostgreSQL:
		return NewPostgreSQL(schema, opts...), nil
	case types.Oracle:
		return NewOracle(schema, opts...), nil
	case types.MySQL:
		return NewMySQL(schema, opts...), nil
	case types.SQLServer:
		return NewSQLServer(schema, opts...), nil
	case types.SQLite:
		return NewSQLite(opts...), nil
	}
	return nil, &UnsupportedVendorError{Vendor: vendor}
}

// UnsupportedVendorError reports a vendor without a built-in handler.
type UnsupportedVendorError struct {
	Vendor string
}

func (e *UnsupportedVendorError) Error() string {
	return "unsupported database vendor: " + e.Vendor
}
