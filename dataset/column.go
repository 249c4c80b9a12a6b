// Package dataset is the in-memory model the engine applies and compares: an ordered
// set of named tables, each with typed columns and rows of normalized values.
//
// A Dataset is not safe for concurrent mutation. Use Clone to hand an isolated copy to
// another goroutine.
package dataset

import (
	"strings"

	"github.com/gaborage/dbfixture/datatype"
)

// Nullability records whether a column accepts NULL.
type Nullability int

const (
	NullableUnknown Nullability = iota
	Nullable
	NoNulls
)

func (n Nullability) String() string {
	switch n {
	case Nullable:
		return "nullable"
	case NoNulls:
		return "not null"
	default:
		return "unknown"
	}
}

// Column is a named, typed column of a Table. A nil Type is treated as datatype.Unknown.
type Column struct {
	Name       string
	Type       datatype.DataType
	Nullable   Nullability
	PrimaryKey bool
}

type noValue struct{}

func (noValue) String() string { return "<no value>" }

// NoValue marks a cell that was never set. It is distinct from SQL NULL (nil):
// operations omit NoValue cells from statements and comparison skips them.
var NoValue any = noValue{}

// IsNoValue reports whether v is the NoValue marker.
func IsNoValue(v any) bool {
	_, ok := v.(noValue)
	return ok
}

// NamePolicy decides how table and column names are matched.
type NamePolicy struct {
	CaseSensitive bool
}

// Key returns the lookup key for name under the policy.
func (p NamePolicy) Key(name string) string {
	if p.CaseSensitive {
		return name
	}
	return strings.ToUpper(name)
}

// Equal reports whether a and b name the same identifier.
func (p NamePolicy) Equal(a, b string) bool {
	if p.CaseSensitive {
		return a == b
	}
	return strings.EqualFold(a, b)
}

type options struct {
	policy NamePolicy
}

// Option configures a Dataset or Table.
type Option func(*options)

// WithNamePolicy sets the name matching policy.
func WithNamePolicy(p NamePolicy) Option {
	return func(o *options) {
		o.policy = p
	}
}

// WithCaseSensitive toggles case-sensitive name matching. Names are case-insensitive
// by default.
func WithCaseSensitive(caseSensitive bool) Option {
	return func(o *options) {
		o.policy.CaseSensitive = caseSensitive
	}
}

func applyOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
