package services

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSONObject(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		expect map[string]any
	}{
		{
			name:   "bare object",
			input:  `{"match_score": 75}`,
			expect: map[string]any{"match_score": float64(75)},
		},
		{
			name:   "prose around object",
			input:  "Here is the evaluation:\n{\"summary\": \"good\"}\nLet me know if you need more.",
			expect: map[string]any{"summary": "good"},
		},
		{
			name:   "markdown fence",
			input:  "```json\n{\"shortlist\": true}\n```",
			expect: map[string]any{"shortlist": true},
		},
		{
			name:  "nested object needs the wide pass",
			input: "Result:\n{\"Full Name\": \"Ada\", \"Contact Information\": {\"email\": \"a@b.c\", \"phone\": \"1\"}, \"Skills\": [\"Go\"]}\nThanks",
			expect: map[string]any{
				"Full Name":           "Ada",
				"Contact Information": map[string]any{"email": "a@b.c", "phone": "1"},
				"Skills":              []any{"Go"},
			},
		},
		{
			name:   "first of two objects wins",
			input:  `{"a": 1} and later {"b": 2}`,
			expect: map[string]any{"a": float64(1)},
		},
		{
			name:   "trailing commas",
			input:  "{\"skills\": [\"Go\", \"SQL\",\n],\n}",
			expect: map[string]any{"skills": []any{"Go", "SQL"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractJSONObject(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expect, got)
		})
	}
}

func TestExtractJSONObjectFailures(t *testing.T) {
	for _, input := range []string{
		"",
		"I could not evaluate this candidate.",
		"{not json at all}",
		"[1, 2, 3]",
	} {
		_, err := ExtractJSONObject(input)
		assert.ErrorIs(t, err, ErrResponseParse, "input %q", input)
	}
}

func TestExtractJSONObjectRecoversEmbeddedObject(t *testing.T) {
	original := map[string]any{
		"match_score":    float64(82),
		"matched_skills": []any{"Go", "PostgreSQL"},
		"missing_skills": []any{},
		"summary":        "Strong backend profile.",
		"details":        map[string]any{"years": float64(6), "remote": true},
	}

	encoded, err := json.MarshalIndent(original, "", "  ")
	require.NoError(t, err)

	wrappers := []struct{ prefix, suffix string }{
		{"", ""},
		{"Sure! Here you go:\n", ""},
		{"```json\n", "\n```"},
		{"Analysis complete.\n\n", "\n\nThe candidate looks promising overall."},
	}

	for _, w := range wrappers {
		got, err := ExtractJSONObject(w.prefix + string(encoded) + w.suffix)
		require.NoError(t, err)
		assert.Equal(t, original, got)
	}
}
