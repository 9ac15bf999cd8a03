// Package types provides type definitions for structured data used throughout the course-compass system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Subject is the department prefix of a course identifier.
type Subject string

// Supported subjects
const (
	SubjectCS   Subject = "CS"
	SubjectMath Subject = "MATH"
)

// Course represents a single node of the course graph as supplied by the course-data provider.
// InDegree, OutDegree and Centrality are precomputed upstream and passed through untouched.
type Course struct {
	ID              string   `json:"id" validate:"required"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	Subject         Subject  `json:"subject" validate:"required,oneof=CS MATH"`
	CatalogNumber   string   `json:"catalog_number"`
	DifficultyScore float64  `json:"difficulty_score" validate:"gte=0,lte=10"`
	EnjoymentScore  float64  `json:"enjoyment_score" validate:"gte=0,lte=10"`
	CommentCount    int      `json:"comment_count" validate:"gte=0"`
	Confidence      string   `json:"confidence,omitempty"`
	InDegree        int      `json:"in_degree"`
	OutDegree       int      `json:"out_degree"`
	Centrality      float64  `json:"centrality" validate:"gte=0,lte=1"`
	Prerequisites   []string `json:"prerequisites,omitempty"`
	Unlocks         []string `json:"unlocks,omitempty"`
}

// NeutralScore is the difficulty/enjoyment value used when a course has no reviews.
const NeutralScore = 5.0

// HasReviews reports whether the scores were computed from at least one review.
// Without reviews the scores are neutral defaults.
func (c Course) HasReviews() bool {
	return c.CommentCount > 0
}

// Edge is a directed prerequisite relationship: Source must be taken before Target.
type Edge struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// GraphData is the node-link snapshot returned by the course-data provider.
type GraphData struct {
	Directed   bool           `json:"directed,omitempty"`
	Multigraph bool           `json:"multigraph,omitempty"`
	Graph      map[string]any `json:"graph,omitempty"`
	Nodes      []Course       `json:"nodes"`
	Links      []Edge         `json:"links"`
}
