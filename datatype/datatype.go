package datatype

import (
	"database/sql/driver"
	"reflect"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DataType is the canonical representation of a column's value domain.
// Implementations are stateless and shared by every column of the same logical type.
type DataType interface {
	// Name is the canonical type name, e.g. "VARCHAR".
	Name() string
	// SQLType is the portable SQL type code.
	SQLType() int
	Kind() Kind
	// Parse converts a raw driver value or textual literal into the normalized form.
	// NULL parses to nil.
	Parse(raw any) (any, error)
	// Compare parses both values and orders them. Nil sorts before any non-nil value.
	Compare(a, b any) (Result, error)
	// Format converts a value into a form a database/sql driver can bind.
	Format(v any) (any, error)
}

// unwrap strips pointers, sql.Null* wrappers and other driver.Valuer implementations.
// The boolean result reports SQL NULL.
func unwrap(raw any) (any, bool) {
	for range 8 {
		if raw == nil {
			return nil, true
		}
		// nil pointers first: a value-receiver Value() on a nil pointer panics
		if rv := reflect.ValueOf(raw); rv.Kind() == reflect.Pointer && rv.IsNil() {
			return nil, true
		}
		switch v := raw.(type) {
		case decimal.Decimal, uuid.UUID, time.Time, []byte, string:
			return v, false
		case decimal.NullDecimal:
			if !v.Valid {
				return nil, true
			}
			return v.Decimal, false
		case driver.Valuer:
			val, err := v.Value()
			if err != nil {
				return raw, false
			}
			raw = val
			continue
		}

		rv := reflect.ValueOf(raw)
		if rv.Kind() != reflect.Pointer {
			return raw, false
		}
		raw = rv.Elem().Interface()
	}
	return raw, false
}

func compareNulls(a, b any) (Result, bool) {
	switch {
	case a == nil && b == nil:
		return Equal, true
	case a == nil:
		return Less, true
	case b == nil:
		return Greater, true
	}
	return Equal, false
}

// compareWith parses both sides with dt and delegates non-null ordering to cmp.
func compareWith(dt DataType, a, b any, cmp func(x, y any) Result) (Result, error) {
	pa, err := dt.Parse(a)
	if err != nil {
		return Incomparable, err
	}
	pb, err := dt.Parse(b)
	if err != nil {
		return Incomparable, err
	}
	if r, ok := compareNulls(pa, pb); ok {
		return r, nil
	}
	return cmp(pa, pb), nil
}

// Equals reports whether a and b compare Equal under dt.
func Equals(dt DataType, a, b any) bool {
	r, err := dt.Compare(a, b)
	return err == nil && r == Equal
}
