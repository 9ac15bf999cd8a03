// Package graph holds the in-memory course graph and the display graphs derived from it.
package graph

import (
	"go.uber.org/zap"

	"github.com/jonathan/course-compass/internal/types"
)

// Graph is an immutable course graph built from one provider snapshot.
//
// The provider's edge list is the single source of truth: every course's
// prerequisite and unlock lists are derived from it once, at construction,
// and are only exposed as copies. A new snapshot means a new Graph.
type Graph struct {
	order   []string
	courses map[string]types.Course
	edges   []types.Edge
	prereqs map[string][]string
	unlocks map[string][]string
	raw     types.GraphData
}

// New validates a provider snapshot and builds the graph.
// Duplicate course ids keep the first occurrence. Edges that reference an
// unknown course, or repeat an earlier edge, are dropped with a warning.
// Degree and centrality fields are passed through unmodified.
func New(data types.GraphData, logger *zap.Logger) *Graph {
	if logger == nil {
		logger = zap.NewNop()
	}

	g := &Graph{
		order:   make([]string, 0, len(data.Nodes)),
		courses: make(map[string]types.Course, len(data.Nodes)),
		prereqs: make(map[string][]string),
		unlocks: make(map[string][]string),
		raw:     data,
	}

	for _, c := range data.Nodes {
		if _, exists := g.courses[c.ID]; exists {
			logger.Warn("duplicate course id in graph snapshot, keeping first", zap.String("course_id", c.ID))
			continue
		}
		c.Prerequisites = nil
		c.Unlocks = nil
		g.courses[c.ID] = c
		g.order = append(g.order, c.ID)
	}

	seen := make(map[types.Edge]struct{}, len(data.Links))
	dropped := 0
	for _, e := range data.Links {
		_, okSrc := g.courses[e.Source]
		_, okDst := g.courses[e.Target]
		if !okSrc || !okDst {
			logger.Warn("dropping edge with unknown course",
				zap.String("source", e.Source),
				zap.String("target", e.Target),
			)
			dropped++
			continue
		}
		if _, dup := seen[e]; dup {
			continue
		}
		seen[e] = struct{}{}
		g.edges = append(g.edges, e)
		g.prereqs[e.Target] = append(g.prereqs[e.Target], e.Source)
		g.unlocks[e.Source] = append(g.unlocks[e.Source], e.Target)
	}

	logger.Debug("course graph built",
		zap.Int("courses", len(g.order)),
		zap.Int("edges", len(g.edges)),
		zap.Int("dropped_edges", dropped),
	)

	return g
}

// Len returns the number of courses.
func (g *Graph) Len() int {
	return len(g.order)
}

// EdgeCount returns the number of validated prerequisite edges.
func (g *Graph) EdgeCount() int {
	return len(g.edges)
}

// Course looks up a course by id. The returned value carries copies of its
// derived prerequisite and unlock lists.
func (g *Graph) Course(id string) (types.Course, bool) {
	c, ok := g.courses[id]
	if !ok {
		return types.Course{}, false
	}
	return g.withRelations(c), true
}

// Prerequisites returns the ids of the courses that must precede id.
func (g *Graph) Prerequisites(id string) []string {
	return cloneStrings(g.prereqs[id])
}

// Unlocks returns the ids of the courses that list id as a prerequisite.
func (g *Graph) Unlocks(id string) []string {
	return cloneStrings(g.unlocks[id])
}

// Courses returns all courses in snapshot order.
func (g *Graph) Courses() []types.Course {
	out := make([]types.Course, 0, len(g.order))
	for _, id := range g.order {
		out = append(out, g.withRelations(g.courses[id]))
	}
	return out
}

// Edges returns the validated edge list in snapshot order.
func (g *Graph) Edges() []types.Edge {
	return append([]types.Edge(nil), g.edges...)
}

// Data exports the graph as a node-link snapshot with derived relations filled in.
func (g *Graph) Data() types.GraphData {
	return types.GraphData{
		Directed:   true,
		Multigraph: g.raw.Multigraph,
		Graph:      g.raw.Graph,
		Nodes:      g.Courses(),
		Links:      g.Edges(),
	}
}

func (g *Graph) withRelations(c types.Course) types.Course {
	c.Prerequisites = cloneStrings(g.prereqs[c.ID])
	c.Unlocks = cloneStrings(g.unlocks[c.ID])
	return c
}

func cloneStrings(s []string) []string {
	if len(s) == 0 {
		return nil
	}
	return append([]string(nil), s...)
}
