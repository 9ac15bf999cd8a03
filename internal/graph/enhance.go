package graph

import "github.com/jonathan/course-compass/internal/types"

// LinkKind distinguishes real prerequisite edges from display-only links.
type LinkKind string

const (
	// LinkPrerequisite is a real prerequisite edge from the provider.
	LinkPrerequisite LinkKind = "prerequisite"
	// LinkSynthetic is a clustering link between same-subject courses. It carries no prerequisite meaning.
	LinkSynthetic LinkKind = "synthetic"
	// LinkRelated connects a focused course to a heuristically related course.
	LinkRelated LinkKind = "related"
)

// maxSyntheticLinks caps the clustering links emitted from a single course.
const maxSyntheticLinks = 3

// DisplayLink is a directed link in a display graph.
type DisplayLink struct {
	Source string   `json:"source"`
	Target string   `json:"target"`
	Kind   LinkKind `json:"kind"`
}

// Synthetic reports whether the link is display-only.
func (l DisplayLink) Synthetic() bool {
	return l.Kind != LinkPrerequisite
}

// DisplayGraph is a renderable graph derived from a Graph. It is never persisted.
type DisplayGraph struct {
	Nodes []types.Course `json:"nodes"`
	Links []DisplayLink  `json:"links"`
}

// EnhanceForDisplay returns the graph unchanged when it has any prerequisite edge.
// When it has none, each course gets links to at most three later courses of the
// same subject, chosen in snapshot order, so the view clusters by subject instead
// of scattering. It is all-or-nothing: partially connected graphs are not filled in.
func EnhanceForDisplay(g *Graph) DisplayGraph {
	nodes := g.Courses()

	if g.EdgeCount() > 0 {
		links := make([]DisplayLink, 0, g.EdgeCount())
		for _, e := range g.edges {
			links = append(links, DisplayLink{Source: e.Source, Target: e.Target, Kind: LinkPrerequisite})
		}
		return DisplayGraph{Nodes: nodes, Links: links}
	}

	links := []DisplayLink{}
	for i, node := range nodes {
		added := 0
		for _, other := range nodes[i+1:] {
			if added == maxSyntheticLinks {
				break
			}
			if other.Subject != node.Subject {
				continue
			}
			links = append(links, DisplayLink{Source: node.ID, Target: other.ID, Kind: LinkSynthetic})
			added++
		}
	}

	return DisplayGraph{Nodes: nodes, Links: links}
}
