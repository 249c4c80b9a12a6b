package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var m map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &m))
		out = append(out, m)
	}
	return out
}

func TestNewWithWriterWritesStructuredFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "debug")

	log.Debug().
		Str("table", "users").
		Int("rows", 3).
		Int64("affected", 3).
		Bool("committed", true).
		Dur("elapsed", time.Millisecond).
		Err(errors.New("boom")).
		Msg("applied")

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "debug", lines[0]["level"])
	assert.Equal(t, "users", lines[0]["table"])
	assert.Equal(t, float64(3), lines[0]["rows"])
	assert.Equal(t, true, lines[0]["committed"])
	assert.Equal(t, "boom", lines[0]["error"])
	assert.Equal(t, "applied", lines[0]["message"])
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "warn")

	log.Debug().Msg("hidden")
	log.Info().Msg("hidden")
	log.Warn().Msg("shown")
	log.Error().Msgf("shown %d", 2)

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 2)
	assert.Equal(t, "shown", lines[0]["message"])
	assert.Equal(t, "shown 2", lines[1]["message"])
}

func TestUnknownLevelDefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "chatty")

	log.Debug().Msg("hidden")
	log.Info().Msg("shown")

	assert.Len(t, decodeLines(t, &buf), 1)
}

func TestSensitiveFieldsAreMasked(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "info")

	log.Info().
		Str("password", "hunter2").
		Interface("api_token", "abc").
		Interface("row", map[string]any{"user_password": "x", "name": "alice"}).
		Msg("row")

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, DefaultMaskValue, lines[0]["password"])
	assert.Equal(t, DefaultMaskValue, lines[0]["api_token"])
	row := lines[0]["row"].(map[string]any)
	assert.Equal(t, DefaultMaskValue, row["user_password"])
	assert.Equal(t, "alice", row["name"])
}

func TestWithFieldsFiltersAndAttaches(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "info").WithFields(map[string]any{
		"vendor": "postgresql",
		"dsn":    "postgres://u:p@h/db",
	})

	log.Info().Msg("connected")

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "postgresql", lines[0]["vendor"])
	assert.Equal(t, DefaultMaskValue, lines[0]["dsn"])
}

func TestNopDiscards(t *testing.T) {
	log := Nop()
	assert.NotPanics(t, func() {
		log.Info().Str("k", "v").Msg("nothing")
		log.WithFields(map[string]any{"a": 1}).Error().Msg("nothing")
	})
}
