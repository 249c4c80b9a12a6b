package datatype

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommon(t *testing.T) {
	tests := []struct {
		name string
		a, b DataType
		want DataType
		ok   bool
	}{
		{name: "identical", a: Integer, b: Integer, want: Integer, ok: true},
		{name: "same kind", a: Char, b: VarChar, want: Char, ok: true},
		{name: "integer widens to decimal", a: Integer, b: Decimal, want: Decimal, ok: true},
		{name: "widening is symmetric", a: Decimal, b: BigInt, want: Decimal, ok: true},
		{name: "string widens to clob", a: VarChar, b: Clob, want: Clob, ok: true},
		{name: "date widens to timestamp", a: Date, b: Timestamp, want: Timestamp, ok: true},
		{name: "unknown adopts other side", a: Unknown, b: Integer, want: Integer, ok: true},
		{name: "integer vs string", a: Integer, b: VarChar, ok: false},
		{name: "decimal vs boolean", a: Decimal, b: Boolean, ok: false},
		{name: "timestamp does not narrow to date", a: Time, b: Date, ok: false},
		{name: "nil", a: nil, b: Integer, ok: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Common(tt.a, tt.b)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Same(t, tt.want, got)
			}
		})
	}
}

func TestCompareAcrossWidening(t *testing.T) {
	r, err := CompareAcross(Integer, int64(1), Decimal, "1.0")
	require.NoError(t, err)
	assert.Equal(t, Equal, r)

	r, err = CompareAcross(Integer, int64(1), VarChar, "1")
	require.NoError(t, err)
	assert.Equal(t, Incomparable, r)

	r, err = CompareAcross(Date, "2024-01-01", Timestamp, "2024-01-01 00:00:00")
	require.NoError(t, err)
	assert.Equal(t, Equal, r)
}
