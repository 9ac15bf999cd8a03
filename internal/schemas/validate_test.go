package schemas

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	rootschemas "github.com/jonathan/course-compass/schemas"
)

const pointSchema = `{
	"type": "object",
	"required": ["x", "y"],
	"properties": {"x": {"type": "number"}, "y": {"type": "number"}}
}`

func TestValidateJSONString(t *testing.T) {
	tests := []struct {
		name       string
		doc        string
		wantErrors int
	}{
		{"valid", `{"x": 400, "y": -80}`, 0},
		{"missing field", `{"x": 400}`, 1},
		{"wrong types", `{"x": "a", "y": "b"}`, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateJSONString(pointSchema, tt.doc)
			if tt.wantErrors == 0 {
				assert.NoError(t, err)
				return
			}
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Len(t, ve.Errors, tt.wantErrors)
			assert.Contains(t, ve.Error(), "validation failed")
		})
	}
}

func TestValidateJSONString_MalformedSchema(t *testing.T) {
	err := ValidateJSONString(`{"type": 12}`, `{}`)
	var le *SchemaLoadError
	assert.ErrorAs(t, err, &le)
}

func TestValidateDocument_MalformedJSON(t *testing.T) {
	err := ValidateDocument(rootschemas.GraphData, []byte(`{ invalid json }`))
	var le *SchemaLoadError
	require.ErrorAs(t, err, &le)
	assert.Contains(t, err.Error(), "not valid JSON")
}

func TestValidateDocument_UnknownSchema(t *testing.T) {
	err := ValidateDocument("missing.schema.json", []byte(`{}`))
	assert.ErrorContains(t, err, "not embedded")
}

func TestValidateDocument_RootFieldName(t *testing.T) {
	err := ValidateDocument(rootschemas.GraphData, []byte(`{}`))
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	require.Len(t, ve.Errors, 1)
	assert.Equal(t, "(root)", ve.Errors[0].Field)
	assert.Equal(t, rootschemas.GraphData, ve.Schema)
}

func TestValidateFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "graph_data.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"nodes": [{"id": "CS 1110"}], "links": []}`), 0o644))

	assert.NoError(t, ValidateFile(rootschemas.GraphData, path))
	assert.ErrorContains(t, ValidateFile(rootschemas.GraphData, filepath.Join(dir, "absent.json")), "read")
}
