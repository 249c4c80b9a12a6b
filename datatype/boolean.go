package datatype

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var errNotBoolean = errors.New("not a boolean")

// booleanType normalizes to bool. When numeric is set the value binds as 1/0, for
// vendors that store booleans in NUMBER(1) columns.
type booleanType struct {
	name    string
	code    int
	numeric bool
}

func (t *booleanType) Name() string { return t.name }
func (t *booleanType) SQLType() int { return t.code }
func (t *booleanType) Kind() Kind   { return KindBoolean }

func (t *booleanType) Parse(raw any) (any, error) {
	v, null := unwrap(raw)
	if null {
		return nil, nil
	}
	b, err := toBool(v)
	if err != nil {
		return nil, conversionError(t, raw, err)
	}
	return b, nil
}

func (t *booleanType) Compare(a, b any) (Result, error) {
	return compareWith(t, a, b, func(x, y any) Result {
		bx, by := x.(bool), y.(bool)
		switch {
		case bx == by:
			return Equal
		case !bx:
			return Less
		default:
			return Greater
		}
	})
}

func (t *booleanType) Format(v any) (any, error) {
	p, err := t.Parse(v)
	if err != nil || p == nil || !t.numeric {
		return p, err
	}
	if p.(bool) {
		return int64(1), nil
	}
	return int64(0), nil
}

func toBool(v any) (bool, error) {
	switch x := v.(type) {
	case bool:
		return x, nil
	case string:
		return textToBool(x)
	case []byte:
		return textToBool(string(x))
	case decimal.Decimal:
		return !x.IsZero(), nil
	}
	n, err := toInt64(v)
	if err != nil {
		return false, errNotBoolean
	}
	return n != 0, nil
}

func textToBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "t", "1", "yes", "y":
		return true, nil
	case "false", "f", "0", "no", "n":
		return false, nil
	}
	return false, errNotBoolean
}
