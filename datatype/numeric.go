package datatype

import (
	"cmp"
	"errors"
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	errNotInteger = errors.New("value has a fractional part")
	errOverflow   = errors.New("value out of int64 range")
	errNotNumber  = errors.New("not a number")
)

type integerType struct {
	name string
	code int
}

func (t *integerType) Name() string { return t.name }
func (t *integerType) SQLType() int { return t.code }
func (t *integerType) Kind() Kind   { return KindInteger }

func (t *integerType) Parse(raw any) (any, error) {
	v, null := unwrap(raw)
	if null {
		return nil, nil
	}
	n, err := toInt64(v)
	if err != nil {
		return nil, conversionError(t, raw, err)
	}
	return n, nil
}

func (t *integerType) Compare(a, b any) (Result, error) {
	return compareWith(t, a, b, func(x, y any) Result {
		return resultOf(cmp.Compare(x.(int64), y.(int64)))
	})
}

func (t *integerType) Format(v any) (any, error) {
	return t.Parse(v)
}

func toInt64(v any) (int64, error) {
	switch x := v.(type) {
	case int:
		return int64(x), nil
	case int8:
		return int64(x), nil
	case int16:
		return int64(x), nil
	case int32:
		return int64(x), nil
	case int64:
		return x, nil
	case uint:
		return uintToInt64(uint64(x))
	case uint8:
		return int64(x), nil
	case uint16:
		return int64(x), nil
	case uint32:
		return int64(x), nil
	case uint64:
		return uintToInt64(x)
	case float32:
		return floatToInt64(float64(x))
	case float64:
		return floatToInt64(x)
	case decimal.Decimal:
		return decimalToInt64(x)
	case string:
		return textToInt64(x)
	case []byte:
		return textToInt64(string(x))
	}
	return 0, errNotNumber
}

func uintToInt64(u uint64) (int64, error) {
	if u > math.MaxInt64 {
		return 0, errOverflow
	}
	return int64(u), nil
}

func floatToInt64(f float64) (int64, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, errNotNumber
	}
	if f != math.Trunc(f) {
		return 0, errNotInteger
	}
	if f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, errOverflow
	}
	return int64(f), nil
}

func decimalToInt64(d decimal.Decimal) (int64, error) {
	if !d.IsInteger() {
		return 0, errNotInteger
	}
	bi := d.BigInt()
	if !bi.IsInt64() {
		return 0, errOverflow
	}
	return bi.Int64(), nil
}

// textToInt64 accepts plain integers and integral decimal literals such as "1.0".
func textToInt64(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, errNotNumber
	}
	return decimalToInt64(d)
}

// decimalType normalizes to decimal.Decimal. Approximate types (REAL, FLOAT, DOUBLE)
// bind as float64; exact ones bind the decimal itself.
type decimalType struct {
	name   string
	code   int
	approx bool
}

func (t *decimalType) Name() string { return t.name }
func (t *decimalType) SQLType() int { return t.code }
func (t *decimalType) Kind() Kind   { return KindDecimal }

func (t *decimalType) Parse(raw any) (any, error) {
	v, null := unwrap(raw)
	if null {
		return nil, nil
	}
	d, err := toDecimal(v)
	if err != nil {
		return nil, conversionError(t, raw, err)
	}
	return d, nil
}

func (t *decimalType) Compare(a, b any) (Result, error) {
	return compareWith(t, a, b, func(x, y any) Result {
		return resultOf(x.(decimal.Decimal).Cmp(y.(decimal.Decimal)))
	})
}

func (t *decimalType) Format(v any) (any, error) {
	p, err := t.Parse(v)
	if err != nil || p == nil {
		return p, err
	}
	d := p.(decimal.Decimal)
	if t.approx {
		return d.InexactFloat64(), nil
	}
	return d, nil
}

func toDecimal(v any) (decimal.Decimal, error) {
	switch x := v.(type) {
	case decimal.Decimal:
		return x, nil
	case int:
		return decimal.NewFromInt(int64(x)), nil
	case int8:
		return decimal.NewFromInt(int64(x)), nil
	case int16:
		return decimal.NewFromInt(int64(x)), nil
	case int32:
		return decimal.NewFromInt32(x), nil
	case int64:
		return decimal.NewFromInt(x), nil
	case uint:
		return decimal.NewFromBigInt(new(big.Int).SetUint64(uint64(x)), 0), nil
	case uint8:
		return decimal.NewFromInt(int64(x)), nil
	case uint16:
		return decimal.NewFromInt(int64(x)), nil
	case uint32:
		return decimal.NewFromInt(int64(x)), nil
	case uint64:
		return decimal.NewFromBigInt(new(big.Int).SetUint64(x), 0), nil
	case float32:
		if math.IsNaN(float64(x)) || math.IsInf(float64(x), 0) {
			return decimal.Zero, errNotNumber
		}
		return decimal.NewFromFloat32(x), nil
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return decimal.Zero, errNotNumber
		}
		return decimal.NewFromFloat(x), nil
	case string:
		return textToDecimal(x)
	case []byte:
		return textToDecimal(string(x))
	}
	return decimal.Zero, errNotNumber
}

func textToDecimal(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, errNotNumber
	}
	return d, nil
}
