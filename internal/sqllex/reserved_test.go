package sqllex

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestIsOracleReservedWordCaseInsensitive tests case-insensitive detection
func TestIsOracleReservedWordCaseInsensitive(t *testing.T) {
	testCases := []struct {
		word     string
		expected bool
	}{
		{"LEVEL", true},
		{"level", true},
		{"Level", true},
		{"NUMBER", true},
		{"user", true},
		{"DATE", true},

		{"user_id", false},
		{"account_name", false},
		{"id", false},
		{"", false},
	}

	for _, tc := range testCases {
		t.Run(tc.word, func(t *testing.T) {
			assert.Equal(t, tc.expected, IsOracleReservedWord(tc.word))
		})
	}
}

func TestIsReservedWord(t *testing.T) {
	for _, word := range []string{"order", "GROUP", "Key", "user", "limit"} {
		assert.True(t, IsReservedWord(word), word)
	}
	for _, word := range []string{"id", "name", "created_at", "level"} {
		assert.False(t, IsReservedWord(word), word)
	}
}

func TestReservedWordMapsUpperCase(t *testing.T) {
	for _, m := range []map[string]struct{}{OracleReservedWords, CommonReservedWords} {
		for word := range m {
			assert.Regexp(t, `^[A-Z_0-9]+$`, word)
		}
	}
}

func TestIsPlainIdentifier(t *testing.T) {
	testCases := []struct {
		in       string
		expected bool
	}{
		{"users", true},
		{"USER_ID", true},
		{"col$1", true},
		{"a#b", true},
		{"1col", false},
		{"first name", false},
		{"naïve", false},
		{"a-b", false},
		{"", false},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.expected, IsPlainIdentifier(tc.in))
		})
	}
}

func TestQuote(t *testing.T) {
	assert.Equal(t, `"order"`, Quote("order", '"', '"'))
	assert.Equal(t, `"a""b"`, Quote(`a"b`, '"', '"'))
	assert.Equal(t, "[a]]b]", Quote("a]b", '[', ']'))
	assert.Equal(t, "`x`", Quote("x", '`', '`'))

	assert.True(t, IsQuoted(`"x"`, '"', '"'))
	assert.False(t, IsQuoted(`"`, '"', '"'))
	assert.False(t, IsQuoted("[x", '[', ']'))
}
