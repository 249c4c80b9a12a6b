// Package datatype implements the canonical, vendor-neutral value types used by the
// dataset model, the comparison engine and the operation executor.
//
// A DataType parses raw driver values (or textual fixture literals) into a comparable
// normalized form, orders normalized values, and formats them back into a form that a
// database/sql driver can bind. SQL NULL is always normalized to nil.
package datatype

import "fmt"

// Kind is the storage kind backing a DataType.
type Kind int

const (
	KindObject Kind = iota
	KindString
	KindInteger
	KindDecimal
	KindBoolean
	KindDate
	KindTime
	KindTimestamp
	KindBinary
	KindClob
	KindBlob
	KindUUID
	KindUnknown
)

var kindNames = map[Kind]string{
	KindObject:    "object",
	KindString:    "string",
	KindInteger:   "integer",
	KindDecimal:   "decimal",
	KindBoolean:   "boolean",
	KindDate:      "date",
	KindTime:      "time",
	KindTimestamp: "timestamp",
	KindBinary:    "binary",
	KindClob:      "clob",
	KindBlob:      "blob",
	KindUUID:      "uuid",
	KindUnknown:   "unknown",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// IsLOB reports whether k is a large object kind. Oracle and SQL Server reject
// equality predicates on such columns.
func (k Kind) IsLOB() bool {
	return k == KindClob || k == KindBlob
}

// Result is the outcome of comparing two normalized values.
type Result int

const (
	Less         Result = -1
	Equal        Result = 0
	Greater      Result = 1
	Incomparable Result = 2
)

func (r Result) String() string {
	switch r {
	case Less:
		return "less"
	case Equal:
		return "equal"
	case Greater:
		return "greater"
	case Incomparable:
		return "incomparable"
	default:
		return fmt.Sprintf("result(%d)", int(r))
	}
}

func resultOf(c int) Result {
	switch {
	case c < 0:
		return Less
	case c > 0:
		return Greater
	default:
		return Equal
	}
}
