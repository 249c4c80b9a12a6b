package datatype

import "strings"

// PostgreSQLOverrides binds PostgreSQL catalog names (udt_name spellings included).
func PostgreSQLOverrides() Overrides {
	return Overrides{ByName: map[string]DataType{
		"int2":                        SmallInt,
		"int4":                        Integer,
		"int8":                        BigInt,
		"serial":                      Integer,
		"bigserial":                   BigInt,
		"float4":                      Real,
		"float8":                      Double,
		"money":                       Decimal,
		"bpchar":                      Char,
		"text":                        LongVarChar,
		"citext":                      LongVarChar,
		"json":                        LongVarChar,
		"jsonb":                       LongVarChar,
		"xml":                         LongVarChar,
		"bool":                        Boolean,
		"bytea":                       Binary,
		"uuid":                        UUID,
		"timetz":                      TimeTZ,
		"timestamptz":                 TimestampTZ,
		"time without time zone":      Time,
		"timestamp without time zone": Timestamp,
		"oid":                         BigInt,
	}}
}

// OracleOverrides binds Oracle catalog names. Oracle DATE carries a time of day, so it
// resolves to TIMESTAMP rather than DATE.
func OracleOverrides() Overrides {
	return Overrides{
		ByCode: map[int]DataType{
			CodeDate: Timestamp,
		},
		ByName: map[string]DataType{
			"DATE":                           Timestamp,
			"NUMBER":                         Numeric,
			"FLOAT":                          Double,
			"BINARY_FLOAT":                   Real,
			"BINARY_DOUBLE":                  Double,
			"VARCHAR2":                       VarChar,
			"NVARCHAR2":                      NVarChar,
			"LONG":                           Clob,
			"CLOB":                           Clob,
			"NCLOB":                          NClob,
			"BLOB":                           Blob,
			"RAW":                            VarBinary,
			"LONG RAW":                       Blob,
			"BOOLEAN":                        NumericBoolean,
			"TIMESTAMP WITH LOCAL TIME ZONE": TimestampTZ,
			"ROWID":                          VarChar,
			"XMLTYPE":                        Clob,
		},
	}
}

// MySQLOverrides binds MySQL column types. TINYINT(1) and BIT(1) are booleans.
func MySQLOverrides() Overrides {
	return Overrides{ByName: map[string]DataType{
		"tinyint(1)": Boolean,
		"bit(1)":     Bit,
		"mediumint":  Integer,
		"int":        Integer,
		"datetime":   Timestamp,
		"year":       SmallInt,
		"tinytext":   LongVarChar,
		"mediumtext": LongVarChar,
		"longtext":   Clob,
		"enum":       VarChar,
		"set":        VarChar,
		"json":       LongVarChar,
		"tinyblob":   VarBinary,
		"mediumblob": Blob,
		"longblob":   Blob,
	}}
}

// SQLServerOverrides binds SQL Server type names.
func SQLServerOverrides() Overrides {
	return Overrides{ByName: map[string]DataType{
		"uniqueidentifier": SQLServerUUID,
		"bit":              Boolean,
		"money":            Decimal,
		"smallmoney":       Decimal,
		"datetime":         Timestamp,
		"datetime2":        Timestamp,
		"smalldatetime":    Timestamp,
		"datetimeoffset":   TimestampTZ,
		"ntext":            NClob,
		"text":             Clob,
		"image":            Blob,
		"varbinary":        VarBinary,
		"xml":              LongNVarChar,
	}}
}

// SQLiteOverrides binds the declared types SQLite schemas commonly use.
func SQLiteOverrides() Overrides {
	return Overrides{ByName: map[string]DataType{
		"INTEGER":  BigInt,
		"INT":      BigInt,
		"REAL":     Double,
		"TEXT":     VarChar,
		"BLOB":     Blob,
		"NUMERIC":  Numeric,
		"DATETIME": Timestamp,
		"BOOLEAN":  Boolean,
	}}
}

// VendorOverrides returns the built-in binding table for a vendor identifier.
func VendorOverrides(vendor string) (Overrides, bool) {
	switch strings.ToLower(vendor) {
	case "postgresql", "postgres":
		return PostgreSQLOverrides(), true
	case "oracle":
		return OracleOverrides(), true
	case "mysql":
		return MySQLOverrides(), true
	case "sqlserver", "mssql":
		return SQLServerOverrides(), true
	case "sqlite", "sqlite3":
		return SQLiteOverrides(), true
	}
	return Overrides{}, false
}
