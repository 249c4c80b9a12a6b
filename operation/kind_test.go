package operation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaborage/dbfixture/dataset"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		in   string
		want Kind
	}{
		{"insert", Insert},
		{"CLEAN_INSERT", CleanInsert},
		{"clean-insert", CleanInsert},
		{" delete all ", DeleteAll},
		{"Refresh", Refresh},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseKind(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseKind("upsert")
	assert.Error(t, err)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "DELETE_ALL", DeleteAll.String())
	assert.Equal(t, "Kind(42)", Kind(42).String())
}

func TestPlanOrdering(t *testing.T) {
	ds := dataset.New()
	for _, name := range []string{"a", "b", "c"} {
		_, err := ds.NewTable(name, []dataset.Column{{Name: "id"}})
		require.NoError(t, err)
	}

	describe := func(steps []step) []string {
		out := make([]string, len(steps))
		for i, s := range steps {
			out[i] = s.kind.String() + " " + s.table.Name()
		}
		return out
	}

	steps, err := plan(Update, ds)
	require.NoError(t, err)
	assert.Equal(t, []string{"UPDATE a", "UPDATE b", "UPDATE c"}, describe(steps))

	steps, err = plan(Delete, ds)
	require.NoError(t, err)
	assert.Equal(t, []string{"DELETE c", "DELETE b", "DELETE a"}, describe(steps))

	steps, err = plan(CleanInsert, ds)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"DELETE_ALL c", "DELETE_ALL b", "DELETE_ALL a",
		"INSERT a", "INSERT b", "INSERT c",
	}, describe(steps))

	_, err = plan(Kind(0), ds)
	assert.Error(t, err)
}

func TestResultAffected(t *testing.T) {
	r := Result{Tables: []TableResult{{Affected: 2}, {Affected: 3}}}
	assert.Equal(t, int64(5), r.Affected())
}

func TestOperationFailureMessages(t *testing.T) {
	cause := ErrMissingKey
	assert.EqualError(t, &OperationFailure{Kind: Insert, Row: -1, Err: cause}, "INSERT failed: primary key value missing")
	assert.EqualError(t, &OperationFailure{Kind: Update, Table: "t", Row: -1, Err: cause}, "UPDATE t failed: primary key value missing")
	assert.EqualError(t, &OperationFailure{Kind: Delete, Table: "t", Row: 4, Count: 1, Err: cause}, "DELETE t row 4 failed: primary key value missing")
	assert.ErrorIs(t, &OperationFailure{Err: cause}, ErrMissingKey)
}
