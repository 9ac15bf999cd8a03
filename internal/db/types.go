package db

import (
	"time"

	"github.com/jonathan/course-compass/internal/types"
)

// CachedMaterials is a study_materials row.
type CachedMaterials struct {
	types.CourseStudyMaterials
	// Generated is false when the row holds the fallback list.
	Generated bool
	FetchedAt time.Time
}

// IsStale reports whether the row is older than maxAge. A non-positive
// maxAge never expires.
func (m *CachedMaterials) IsStale(maxAge time.Duration) bool {
	if maxAge <= 0 {
		return false
	}
	return time.Since(m.FetchedAt) > maxAge
}

// SnapshotStats summarises the stored course graph.
type SnapshotStats struct {
	Courses   int
	Edges     int
	UpdatedAt *time.Time
}
