package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonathan/course-compass/internal/schemas"
	"github.com/jonathan/course-compass/internal/types"
	rootschemas "github.com/jonathan/course-compass/schemas"
)

// ReadGraphFile reads and schema-validates a node-link graph file.
func ReadGraphFile(path string) (types.GraphData, error) {
	var data types.GraphData

	raw, err := os.ReadFile(path)
	if err != nil {
		return data, fmt.Errorf("read graph file: %w", err)
	}
	if err := schemas.ValidateDocument(rootschemas.GraphData, raw); err != nil {
		return data, fmt.Errorf("graph file %s: %w", path, err)
	}
	if err := json.Unmarshal(raw, &data); err != nil {
		return data, fmt.Errorf("decode graph file %s: %w", path, err)
	}
	if data.Links == nil {
		data.Links = []types.Edge{}
	}
	return data, nil
}

// WriteGraphFile writes data as indented JSON. The file is written to a
// temporary name and renamed so watchers never see a partial document.
func WriteGraphFile(path string, data types.GraphData) error {
	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("encode graph: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".graph-*.json")
	if err != nil {
		return fmt.Errorf("create temp graph file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(raw); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write graph file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write graph file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace graph file: %w", err)
	}
	return nil
}
