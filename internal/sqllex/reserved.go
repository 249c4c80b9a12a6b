// Package sqllex holds the lexical rules used to decide when an identifier must be
// quoted: per-vendor reserved words and the plain identifier alphabet.
package sqllex

import "strings"

// OracleReservedWords contains the Oracle SQL reserved keywords that require double-quote
// quoting when used as identifiers.
//
// Source: Oracle Database SQL Language Reference, "Oracle SQL Reserved Words".
var OracleReservedWords = map[string]struct{}{
	"ACCESS": {}, "ADD": {}, "ALL": {}, "ALTER": {}, "AND": {}, "ANY": {}, "AS": {}, "ASC": {},
	"AUDIT": {}, "BEGIN": {}, "BETWEEN": {}, "BY": {}, "CASE": {}, "CHAR": {}, "CHECK": {},
	"CLUSTER": {}, "COLUMN": {}, "COMMENT": {}, "COMPRESS": {}, "CONNECT": {}, "CREATE": {},
	"CURRENT": {}, "DATE": {}, "DECIMAL": {}, "DEFAULT": {}, "DELETE": {}, "DESC": {},
	"DISTINCT": {}, "DROP": {}, "ELSE": {}, "EXCLUDE": {}, "EXCLUSIVE": {}, "EXISTS": {},
	"FILE": {}, "FLOAT": {}, "FOR": {}, "FROM": {}, "GRANT": {}, "GROUP": {}, "HAVING": {},
	"IDENTIFIED": {}, "IMMEDIATE": {}, "IN": {}, "INCREMENT": {}, "INDEX": {}, "INITIAL": {},
	"INSERT": {}, "INTEGER": {}, "INTERSECT": {}, "INTO": {}, "IS": {}, "LEVEL": {}, "LIKE": {},
	"LOCK": {}, "LONG": {}, "MAXEXTENTS": {}, "MINUS": {}, "MODE": {}, "MODIFY": {},
	"NOAUDIT": {}, "NOCOMPRESS": {}, "NOT": {}, "NOWAIT": {}, "NULL": {}, "NUMBER": {},
	"OF": {}, "OFFLINE": {}, "ON": {}, "ONLINE": {}, "OPTION": {}, "OR": {}, "ORDER": {},
	"PCTFREE": {}, "PRIOR": {}, "PUBLIC": {}, "RAW": {}, "RENAME": {}, "RESOURCE": {},
	"REVOKE": {}, "ROW": {}, "ROWID": {}, "ROWNUM": {}, "ROWS": {}, "SELECT": {},
	"SESSION": {}, "SET": {}, "SHARE": {}, "SIZE": {}, "SMALLINT": {}, "START": {},
	"SUCCESSFUL": {}, "SYNONYM": {}, "SYSDATE": {}, "TABLE": {}, "THEN": {}, "TO": {},
	"TRIGGER": {}, "UID": {}, "UNION": {}, "UNIQUE": {}, "UPDATE": {}, "USER": {},
	"VALIDATE": {}, "VALUES": {}, "VARCHAR": {}, "VARCHAR2": {}, "VIEW": {}, "WHENEVER": {},
	"WHEN": {}, "WHERE": {}, "WITH": {},
}

// CommonReservedWords contains keywords reserved by PostgreSQL, MySQL, SQL Server and
// SQLite alike that commonly collide with column names.
var CommonReservedWords = map[string]struct{}{
	"ALL": {}, "AND": {}, "ANY": {}, "AS": {}, "ASC": {}, "BETWEEN": {}, "BY": {}, "CASE": {},
	"CHECK": {}, "COLUMN": {}, "CONSTRAINT": {}, "CREATE": {}, "CROSS": {}, "CURRENT_DATE": {},
	"CURRENT_TIME": {}, "CURRENT_TIMESTAMP": {}, "CURRENT_USER": {}, "DEFAULT": {},
	"DELETE": {}, "DESC": {}, "DISTINCT": {}, "DROP": {}, "ELSE": {}, "END": {}, "EXCEPT": {},
	"EXISTS": {}, "FALSE": {}, "FOR": {}, "FOREIGN": {}, "FROM": {}, "FULL": {}, "GRANT": {},
	"GROUP": {}, "HAVING": {}, "IN": {}, "INDEX": {}, "INNER": {}, "INSERT": {},
	"INTERSECT": {}, "INTO": {}, "IS": {}, "JOIN": {}, "KEY": {}, "LEFT": {}, "LIKE": {},
	"LIMIT": {}, "NATURAL": {}, "NOT": {}, "NULL": {}, "OFFSET": {}, "ON": {}, "OR": {},
	"ORDER": {}, "OUTER": {}, "PRIMARY": {}, "REFERENCES": {}, "RIGHT": {}, "SELECT": {},
	"SET": {}, "TABLE": {}, "THEN": {}, "TO": {}, "TRUE": {}, "UNION": {}, "UNIQUE": {},
	"UPDATE": {}, "USER": {}, "USING": {}, "VALUES": {}, "WHEN": {}, "WHERE": {}, "WITH": {},
}

// IsOracleReservedWord checks if a word is an Oracle reserved keyword.
// The check is case-insensitive since Oracle identifiers are case-insensitive by default.
func IsOracleReservedWord(word string) bool {
	_, exists := OracleReservedWords[strings.ToUpper(word)]
	return exists
}

// IsReservedWord checks a word against CommonReservedWords, case-insensitively.
func IsReservedWord(word string) bool {
	_, exists := CommonReservedWords[strings.ToUpper(word)]
	return exists
}

// IsPlainIdentifier reports whether s can be written unquoted: ASCII letters, digits,
// '_', '$' and '#', not starting with a digit.
func IsPlainIdentifier(s string) bool {
	if s == "" {
		return false
	}
	if first := s[0]; first >= '0' && first <= '9' {
		return false
	}
	for _, r := range s {
		if (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' || r == '$' || r == '#' {
			continue
		}
		return false
	}
	return true
}

// IsQuoted reports whether s is already wrapped in the given delimiters.
func IsQuoted(s string, open, closing byte) bool {
	return len(s) >= 2 && s[0] == open && s[len(s)-1] == closing
}

// Quote wraps s in the delimiters, doubling any embedded closing delimiter.
func Quote(s string, open, closing byte) string {
	c := string(closing)
	return string(open) + strings.ReplaceAll(s, c, c+c) + c
}
