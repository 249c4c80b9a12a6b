package datatype

import (
	"errors"
	"fmt"
)

// ErrTypeConversion is matched by every *TypeConversionError via errors.Is.
var ErrTypeConversion = errors.New("type conversion failed")

// TypeConversionError reports a value that cannot be interpreted under a DataType.
type TypeConversionError struct {
	Type  string
	Value any
	Err   error
}

func (e *TypeConversionError) Error() string {
	msg := fmt.Sprintf("cannot convert %v (%T) to %s", e.Value, e.Value, e.Type)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *TypeConversionError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrTypeConversion.
func (e *TypeConversionError) Is(target error) bool {
	return target == ErrTypeConversion
}

func conversionError(dt DataType, v any, err error) error {
	return &TypeConversionError{Type: dt.Name(), Value: v, Err: err}
}
