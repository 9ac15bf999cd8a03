package state

import (
	"sort"

	"github.com/jonathan/course-compass/internal/graph"
	"github.com/jonathan/course-compass/internal/types"
)

// GraphState backs the course graph view.
type GraphState struct {
	Graph       *graph.Graph
	Selected    *types.Course
	Highlighted map[string]struct{}
	Loading     bool
	Error       *string
}

// InitialGraphState is the state before the first fetch completes.
func InitialGraphState() GraphState {
	return GraphState{Highlighted: map[string]struct{}{}, Loading: true}
}

// IsHighlighted reports whether id is in the highlight set.
func (s GraphState) IsHighlighted(id string) bool {
	_, ok := s.Highlighted[id]
	return ok
}

// HighlightedIDs returns the highlight set sorted by graph order when a graph
// is loaded; ids unknown to the graph follow in lexical order.
func (s GraphState) HighlightedIDs() []string {
	out := make([]string, 0, len(s.Highlighted))
	seen := map[string]struct{}{}
	if s.Graph != nil {
		for _, c := range s.Graph.Courses() {
			if s.IsHighlighted(c.ID) {
				out = append(out, c.ID)
				seen[c.ID] = struct{}{}
			}
		}
	}
	var unknown []string
	for id := range s.Highlighted {
		if _, ok := seen[id]; !ok {
			unknown = append(unknown, id)
		}
	}
	sort.Strings(unknown)
	return append(out, unknown...)
}

// SetGraph replaces the whole graph, ends loading and clears any error.
func SetGraph(g *graph.Graph) func(GraphState) GraphState {
	return func(s GraphState) GraphState {
		s.Graph = g
		s.Loading = false
		s.Error = nil
		return s
	}
}

// SelectCourse sets or clears (nil) the selected course. Highlighting is unaffected.
func SelectCourse(c *types.Course) func(GraphState) GraphState {
	return func(s GraphState) GraphState {
		s.Selected = c
		return s
	}
}

// HighlightCourses replaces the highlight set with ids.
func HighlightCourses(ids []string) func(GraphState) GraphState {
	return func(s GraphState) GraphState {
		set := make(map[string]struct{}, len(ids))
		for _, id := range ids {
			set[id] = struct{}{}
		}
		s.Highlighted = set
		return s
	}
}

// ClearHighlights empties the highlight set.
func ClearHighlights(s GraphState) GraphState {
	s.Highlighted = map[string]struct{}{}
	return s
}

// SetGraphLoading marks a fetch as in progress or finished.
func SetGraphLoading(loading bool) func(GraphState) GraphState {
	return func(s GraphState) GraphState {
		s.Loading = loading
		return s
	}
}

// SetGraphError records (or clears, with "") a fetch error. Loading always ends.
func SetGraphError(msg string) func(GraphState) GraphState {
	return func(s GraphState) GraphState {
		s.Error = errorPtr(msg)
		s.Loading = false
		return s
	}
}

func errorPtr(msg string) *string {
	if msg == "" {
		return nil
	}
	return &msg
}
