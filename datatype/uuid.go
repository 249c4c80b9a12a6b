package datatype

import (
	"bytes"

	"github.com/google/uuid"
	mssql "github.com/microsoft/go-mssqldb"
)

type uuidType struct {
	name string
	code int
	// mixedEndian reads 16-byte values in SQL Server's uniqueidentifier order.
	mixedEndian bool
}

func (t *uuidType) Name() string { return t.name }
func (t *uuidType) SQLType() int { return t.code }
func (t *uuidType) Kind() Kind   { return KindUUID }

func (t *uuidType) Parse(raw any) (any, error) {
	v, null := unwrap(raw)
	if null {
		return nil, nil
	}
	switch x := v.(type) {
	case uuid.UUID:
		return x, nil
	case string:
		u, err := uuid.Parse(x)
		if err != nil {
			return nil, conversionError(t, raw, err)
		}
		return u, nil
	case []byte:
		if len(x) == 16 && t.mixedEndian {
			var u mssql.UniqueIdentifier
			if err := u.Scan(x); err != nil {
				return nil, conversionError(t, raw, err)
			}
			return uuid.UUID(u), nil
		}
		if len(x) == 16 {
			u, err := uuid.FromBytes(x)
			if err != nil {
				return nil, conversionError(t, raw, err)
			}
			return u, nil
		}
		u, err := uuid.ParseBytes(x)
		if err != nil {
			return nil, conversionError(t, raw, err)
		}
		return u, nil
	}
	return nil, conversionError(t, raw, nil)
}

func (t *uuidType) Compare(a, b any) (Result, error) {
	return compareWith(t, a, b, func(x, y any) Result {
		ux, uy := x.(uuid.UUID), y.(uuid.UUID)
		return resultOf(bytes.Compare(ux[:], uy[:]))
	})
}

// Format binds the canonical textual form, accepted by every driver's uuid column.
func (t *uuidType) Format(v any) (any, error) {
	p, err := t.Parse(v)
	if err != nil || p == nil {
		return p, err
	}
	return p.(uuid.UUID).String(), nil
}
