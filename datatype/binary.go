package datatype

import (
	"bytes"
	"encoding/base64"
	"errors"
)

var errNotBinary = errors.New("not binary data")

// binaryType normalizes to a private []byte copy. Text input is standard base64.
type binaryType struct {
	name string
	code int
	kind Kind
}

func (t *binaryType) Name() string { return t.name }
func (t *binaryType) SQLType() int { return t.code }
func (t *binaryType) Kind() Kind   { return t.kind }

func (t *binaryType) Parse(raw any) (any, error) {
	v, null := unwrap(raw)
	if null {
		return nil, nil
	}
	switch x := v.(type) {
	case []byte:
		return bytes.Clone(x), nil
	case string:
		b, err := base64.StdEncoding.DecodeString(x)
		if err != nil {
			return nil, conversionError(t, raw, err)
		}
		return b, nil
	}
	return nil, conversionError(t, raw, errNotBinary)
}

func (t *binaryType) Compare(a, b any) (Result, error) {
	return compareWith(t, a, b, func(x, y any) Result {
		return resultOf(bytes.Compare(x.([]byte), y.([]byte)))
	})
}

func (t *binaryType) Format(v any) (any, error) {
	return t.Parse(v)
}
