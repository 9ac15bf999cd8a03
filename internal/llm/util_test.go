package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanJSONBlock(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"json fence", "```json\n{\"paths\": {}}\n```", `{"paths": {}}`},
		{"bare fence", "```\n{\"paths\": {}}\n```", `{"paths": {}}`},
		{"fence with language", "```javascript\n{\"paths\": {}}\n```", `{"paths": {}}`},
		{"plain", `{"paths": {}}`, `{"paths": {}}`},
		{"surrounding whitespace", "  \n{\"a\": 1}\n ", `{"a": 1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanJSONBlock(tt.input))
		})
	}
}

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"object with preamble", "Here is the plan:\n{\"analysis\": {}}", `{"analysis": {}}`},
		{"array with trailing text", "[\"CS 2110\", \"MATH 1920\"] hope this helps", `["CS 2110", "MATH 1920"]`},
		{"nested", "Output: {\"a\": {\"b\": [1, 2]}}", `{"a": {"b": [1, 2]}}`},
		{"fenced", "```json\n{\"courses\": []}\n```", `{"courses": []}`},
		{"no json", "no courses listed", "no courses listed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExtractJSON(tt.input))
		})
	}
}
