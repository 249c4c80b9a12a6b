package trace

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIDFromContext(t *testing.T) {
	_, ok := IDFromContext(context.Background())
	assert.False(t, ok)

	id, ok := IDFromContext(WithTraceID(context.Background(), "run-1"))
	assert.True(t, ok)
	assert.Equal(t, "run-1", id)

	_, ok = IDFromContext(WithTraceID(context.Background(), ""))
	assert.False(t, ok)
}

func TestEnsureTraceID(t *testing.T) {
	ctx, id := EnsureTraceID(context.Background())
	_, err := uuid.Parse(id)
	require.NoError(t, err)

	got, ok := IDFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, id, got)

	same, again := EnsureTraceID(ctx)
	assert.Equal(t, id, again)
	assert.Equal(t, ctx, same)
}
