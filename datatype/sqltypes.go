package datatype

import (
	"regexp"
	"strings"
)

// Portable SQL type codes. The numeric values follow the widely used SQL type code
// table so codes reported by drivers or metadata catalogs can be passed through.
const (
	CodeBit           = -7
	CodeTinyInt       = -6
	CodeBigInt        = -5
	CodeLongVarBinary = -4
	CodeVarBinary     = -3
	CodeBinary        = -2
	CodeLongVarChar   = -1
	CodeNull          = 0
	CodeChar          = 1
	CodeNumeric       = 2
	CodeDecimal       = 3
	CodeInteger       = 4
	CodeSmallInt      = 5
	CodeFloat         = 6
	CodeReal          = 7
	CodeDouble        = 8
	CodeVarChar       = 12
	CodeBoolean       = 16
	CodeDate          = 91
	CodeTime          = 92
	CodeTimestamp     = 93
	CodeOther         = 1111
	CodeObject        = 2000
	CodeBlob          = 2004
	CodeClob          = 2005
	CodeNClob         = 2011
	CodeTimeTZ        = 2013
	CodeTimestampTZ   = 2014
	CodeNChar         = -15
	CodeNVarChar      = -9
	CodeLongNVarChar  = -16
)

var typeArgs = regexp.MustCompile(`\s*\([^)]*\)`)

// normalizeName upper-cases a type name and collapses whitespace.
func normalizeName(name string) string {
	return strings.Join(strings.Fields(strings.ToUpper(name)), " ")
}

// baseName strips length/precision arguments: "VARCHAR2(20 CHAR)" -> "VARCHAR2",
// "TIMESTAMP(6) WITH TIME ZONE" -> "TIMESTAMP WITH TIME ZONE".
// Integer modifiers such as UNSIGNED are dropped as well.
func baseName(name string) string {
	fields := strings.Fields(strings.ToUpper(typeArgs.ReplaceAllString(name, "")))
	out := fields[:0]
	for _, f := range fields {
		switch f {
		case "UNSIGNED", "SIGNED", "ZEROFILL":
			continue
		}
		out = append(out, f)
	}
	return strings.Join(out, " ")
}

var codesByName = map[string]int{
	"BIT":                         CodeBit,
	"TINYINT":                     CodeTinyInt,
	"BIGINT":                      CodeBigInt,
	"INT8":                        CodeBigInt,
	"LONGVARBINARY":               CodeLongVarBinary,
	"VARBINARY":                   CodeVarBinary,
	"BINARY VARYING":              CodeVarBinary,
	"BINARY":                      CodeBinary,
	"BYTEA":                       CodeBinary,
	"RAW":                         CodeVarBinary,
	"LONGVARCHAR":                 CodeLongVarChar,
	"CHAR":                        CodeChar,
	"CHARACTER":                   CodeChar,
	"BPCHAR":                      CodeChar,
	"NUMERIC":                     CodeNumeric,
	"NUMBER":                      CodeNumeric,
	"DECIMAL":                     CodeDecimal,
	"DEC":                         CodeDecimal,
	"INTEGER":                     CodeInteger,
	"INT":                         CodeInteger,
	"INT4":                        CodeInteger,
	"MEDIUMINT":                   CodeInteger,
	"SMALLINT":                    CodeSmallInt,
	"INT2":                        CodeSmallInt,
	"FLOAT":                       CodeFloat,
	"FLOAT8":                      CodeDouble,
	"REAL":                        CodeReal,
	"FLOAT4":                      CodeReal,
	"DOUBLE":                      CodeDouble,
	"DOUBLE PRECISION":            CodeDouble,
	"VARCHAR":                     CodeVarChar,
	"CHARACTER VARYING":           CodeVarChar,
	"VARCHAR2":                    CodeVarChar,
	"TEXT":                        CodeLongVarChar,
	"BOOLEAN":                     CodeBoolean,
	"BOOL":                        CodeBoolean,
	"DATE":                        CodeDate,
	"TIME":                        CodeTime,
	"TIME WITHOUT TIME ZONE":       CodeTime,
	"TIME WITH TIME ZONE":         CodeTimeTZ,
	"TIMETZ":                      CodeTimeTZ,
	"TIMESTAMP":                   CodeTimestamp,
	"TIMESTAMP WITHOUT TIME ZONE": CodeTimestamp,
	"DATETIME":                    CodeTimestamp,
	"TIMESTAMP WITH TIME ZONE":    CodeTimestampTZ,
	"TIMESTAMPTZ":                 CodeTimestampTZ,
	"BLOB":                        CodeBlob,
	"CLOB":                        CodeClob,
	"NCLOB":                       CodeNClob,
	"NCHAR":                       CodeNChar,
	"NVARCHAR":                    CodeNVarChar,
	"NVARCHAR2":                   CodeNVarChar,
	"NATIONAL CHARACTER VARYING":  CodeNVarChar,
	"NTEXT":                       CodeLongNVarChar,
}

// CodeForName maps a catalog type name to its SQL type code. Unknown names map to
// CodeOther so vendor-specific names can still be resolved by name in a Registry.
func CodeForName(name string) int {
	n := normalizeName(name)
	if code, ok := codesByName[n]; ok {
		return code
	}
	if code, ok := codesByName[baseName(n)]; ok {
		return code
	}
	return CodeOther
}
