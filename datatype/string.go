package datatype

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type stringType struct {
	name string
	code int
	kind Kind
}

func (t *stringType) Name() string { return t.name }
func (t *stringType) SQLType() int { return t.code }
func (t *stringType) Kind() Kind   { return t.kind }

func (t *stringType) Parse(raw any) (any, error) {
	v, null := unwrap(raw)
	if null {
		return nil, nil
	}
	switch x := v.(type) {
	case string:
		return x, nil
	case []byte:
		return string(x), nil
	case bool:
		return strconv.FormatBool(x), nil
	case time.Time:
		return x.Format(time.RFC3339Nano), nil
	case decimal.Decimal:
		return x.String(), nil
	case uuid.UUID:
		return x.String(), nil
	case fmt.Stringer:
		return x.String(), nil
	}

	switch reflect.ValueOf(v).Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return fmt.Sprint(v), nil
	}
	return nil, conversionError(t, raw, nil)
}

func (t *stringType) Compare(a, b any) (Result, error) {
	return compareWith(t, a, b, func(x, y any) Result {
		return resultOf(strings.Compare(x.(string), y.(string)))
	})
}

func (t *stringType) Format(v any) (any, error) {
	return t.Parse(v)
}
