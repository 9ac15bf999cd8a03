// Package schemas embeds the JSON Schemas for the documents exchanged with
// LLM providers and the course-data snapshot.
package schemas

import (
	"embed"
	"fmt"
)

// Schema file names.
const (
	TimelinePlan   = "timeline_plan.schema.json"
	GraphData      = "graph_data.schema.json"
	StudyMaterials = "study_materials.schema.json"
)

//go:embed *.schema.json
var files embed.FS

// Get returns the raw schema document for name.
func Get(name string) (string, error) {
	data, err := files.ReadFile(name)
	if err != nil {
		return "", fmt.Errorf("unknown schema %s: %w", name, err)
	}
	return string(data), nil
}

// Names lists the embedded schema files.
func Names() []string {
	return []string{TimelinePlan, GraphData, StudyMaterials}
}
