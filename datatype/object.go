package datatype

import (
	"bytes"
	"reflect"
)

// objectType passes values through untouched. It backs the generic OBJECT fallback
// and the UNKNOWN placeholder used before a column's type is known.
type objectType struct {
	name string
	code int
	kind Kind
}

func (t *objectType) Name() string { return t.name }
func (t *objectType) SQLType() int { return t.code }
func (t *objectType) Kind() Kind   { return t.kind }

func (t *objectType) Parse(raw any) (any, error) {
	v, null := unwrap(raw)
	if null {
		return nil, nil
	}
	if b, ok := v.([]byte); ok {
		return bytes.Clone(b), nil
	}
	return v, nil
}

// Compare uses == when both values share a comparable type. Strings and byte slices
// are ordered as text in any combination. Anything else is Incomparable.
func (t *objectType) Compare(a, b any) (Result, error) {
	return compareWith(t, a, b, func(x, y any) Result {
		tx, ty := reflect.TypeOf(x), reflect.TypeOf(y)
		if tx == ty && tx.Comparable() && x == y {
			return Equal
		}
		bx, okx := textBytes(x)
		by, oky := textBytes(y)
		if okx && oky {
			return resultOf(bytes.Compare(bx, by))
		}
		return Incomparable
	})
}

func textBytes(v any) ([]byte, bool) {
	switch x := v.(type) {
	case []byte:
		return x, true
	case string:
		return []byte(x), true
	}
	return nil, false
}

func (t *objectType) Format(v any) (any, error) {
	return t.Parse(v)
}
