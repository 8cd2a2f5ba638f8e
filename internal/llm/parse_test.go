package llm

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeJSON(t *testing.T, s string) any {
	t.Helper()
	var v any
	require.NoError(t, json.Unmarshal([]byte(s), &v))
	return v
}

func TestParseResponse_WellFormed(t *testing.T) {
	inputs := []string{
		`{"name": "Jane", "skills": ["Go", "SQL"]}`,
		`  {"nested": {"a": [1, 2, {"b": null}]}}  `,
		`[{"id": 1}, {"id": 2}]`,
		`{}`,
		`"just a string"`,
		`42`,
	}

	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			res := ParseResponse(in)
			assert.Equal(t, StrategyDirect, res.Strategy)
			assert.Equal(t, decodeJSON(t, in), res.Value)
		})
	}
}

func TestParseResponse_Fenced(t *testing.T) {
	payload := `{"name": "Jane", "education": [{"degree": "BSc"}]}`
	inputs := []string{
		"```json\n" + payload + "\n```",
		"```\n" + payload + "\n```",
		"  ```JSON\n" + payload + "\n```  \n",
		"```json" + payload + "```",
	}

	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			res := ParseResponse(in)
			assert.Equal(t, StrategyFenceStrip, res.Strategy)
			assert.Equal(t, ParseResponse(payload).Value, res.Value)
		})
	}
}

func TestParseResponse_BalancedBlock(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "braces inside string literal",
			input:    `Sure! Here is the result: {"a": "text with } and { inside"} Hope this helps.`,
			expected: `{"a": "text with } and { inside"}`,
		},
		{
			name:     "escaped quote inside string",
			input:    `Output: {"quote": "she said \"}\" loudly"} done`,
			expected: `{"quote": "she said \"}\" loudly"}`,
		},
		{
			name:     "array in prose",
			input:    "The skills are [\"Go\", \"Rust\"] as requested.",
			expected: `["Go", "Rust"]`,
		},
		{
			name:     "array of objects keeps the array",
			input:    `Items: [{"id": 1}, {"id": 2}] end`,
			expected: `[{"id": 1}, {"id": 2}]`,
		},
		{
			name:     "placeholder before the real object",
			input:    `Fill {name} in. {"name": "Jane"}`,
			expected: `{"name": "Jane"}`,
		},
		{
			name:     "fence after preamble",
			input:    "Here you go:\n```json\n{\"a\": 1}\n```",
			expected: `{"a": 1}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ParseResponse(tt.input)
			assert.Equal(t, StrategyBalancedBlock, res.Strategy)
			assert.Equal(t, decodeJSON(t, tt.expected), res.Value)
		})
	}
}

func TestParseResponse_Fallback(t *testing.T) {
	inputs := map[string]string{
		"prose":             "  I could not find any résumé content.  ",
		"empty":             "",
		"unbalanced":        `{"name": "Jane"`,
		"invalid inside":    `here {not: json} there`,
		"fence with junk":   "```json\nnot json\n```",
		"only closing":      "}}]]",
		"whitespace only":   " \n\t ",
		"truncated escapes": `{"a": "\`,
	}

	for name, in := range inputs {
		t.Run(name, func(t *testing.T) {
			var res ParseResult
			require.NotPanics(t, func() { res = ParseResponse(in) })
			assert.Equal(t, StrategyRawText, res.Strategy)
			assert.True(t, res.IsFallback())

			obj, ok := res.Object()
			require.True(t, ok)
			assert.Len(t, obj, 1)
			assert.Equal(t, strings.TrimSpace(in), obj[RawTextKey])
			assert.Equal(t, strings.TrimSpace(in), res.RawText())
		})
	}
}

func TestParseResult_Object(t *testing.T) {
	res := ParseResponse(`[1, 2]`)
	_, ok := res.Object()
	assert.False(t, ok)
	assert.Empty(t, res.RawText())
}
