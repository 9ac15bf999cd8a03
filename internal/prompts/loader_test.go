package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_ValidPrompt(t *testing.T) {
	ClearCache()

	prompt, err := Get(Courses, "timeline-plan")
	require.NoError(t, err)
	assert.Contains(t, prompt, `"theorist"`)
	assert.Contains(t, prompt, `"engineer"`)
	assert.Contains(t, prompt, `"balanced"`)
}

func TestGet_Errors(t *testing.T) {
	ClearCache()

	_, err := Get("nonexistent.json", "some-key")
	assert.ErrorContains(t, err, "failed to read prompt file")

	_, err = Get(Courses, "nonexistent-key")
	assert.ErrorContains(t, err, "not found")
}

func TestMustGet(t *testing.T) {
	ClearCache()

	assert.Panics(t, func() { MustGet("nonexistent.json", "some-key") })
	assert.NotPanics(t, func() { assert.NotEmpty(t, MustGet(Courses, "advisor-chat")) })
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		template string
		data     map[string]string
		expected string
	}{
		{"all values", "Plan for {{.CareerGoal}} from {{.CurrentSemester}}", map[string]string{"CareerGoal": "ML", "CurrentSemester": "Junior Fall"}, "Plan for ML from Junior Fall"},
		{"missing value kept", "Hello {{.Name}}", map[string]string{}, "Hello {{.Name}}"},
		{"no placeholders", "static", map[string]string{"Key": "v"}, "static"},
		{"value containing placeholder syntax is not re-expanded", "{{.A}}", map[string]string{"A": "{{.B}}", "B": "x"}, "{{.B}}"},
		{"JSON braces untouched", `{"a": {{.V}}}`, map[string]string{"V": "1"}, `{"a": 1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Format(tt.template, tt.data))
		})
	}
}

func TestRender(t *testing.T) {
	ClearCache()

	out, err := Render(Courses, "study-materials", map[string]string{
		"CourseCode":  "CS 2110",
		"CourseTitle": "Object-Oriented Programming and Data Structures",
	})
	require.NoError(t, err)
	assert.Contains(t, out, "CS 2110 - Object-Oriented Programming and Data Structures")

	_, err = Render(Courses, "study-materials", map[string]string{"CourseCode": "CS 2110"})
	assert.ErrorContains(t, err, "missing values for CourseTitle")
}

func TestPlaceholders(t *testing.T) {
	assert.Equal(t, []string{"A", "B"}, Placeholders("{{.B}} {{.A}} {{.B}}"))
	assert.Empty(t, Placeholders("none"))
}

func TestList(t *testing.T) {
	ClearCache()

	keys, err := List(Courses)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"advisor-chat",
		"advisor-course-context",
		"study-materials",
		"timeline-available-courses",
		"timeline-plan",
	}, keys)
}

func TestEveryPromptParses(t *testing.T) {
	ClearCache()

	keys, err := List(Courses)
	require.NoError(t, err)
	for _, k := range keys {
		tmpl := MustGet(Courses, k)
		assert.NotEmpty(t, Placeholders(tmpl), k)
	}
}
