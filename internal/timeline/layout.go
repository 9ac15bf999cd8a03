// Package timeline generates career timelines and lays them out for display.
package timeline

import (
	"fmt"

	"github.com/jonathan/course-compass/internal/types"
)

// Spacing holds the layout constants, in renderer units.
type Spacing struct {
	Semester    float64 // horizontal distance between semester columns
	Course      float64 // vertical distance between courses of a semester
	LabelOffset float64 // how far above the first course the semester label sits
}

// DefaultSpacing matches the flow-diagram renderer's defaults.
var DefaultSpacing = Spacing{Semester: 400, Course: 120, LabelOffset: 80}

// NodeKind distinguishes semester labels from course nodes.
type NodeKind string

// Node kinds
const (
	NodeSemester NodeKind = "semester"
	NodeCourse   NodeKind = "course"
)

// EdgeKindSequence marks edges between consecutive semesters. They are a
// sequencing cue only and never mean "prerequisite".
const EdgeKindSequence = "sequence"

// Position is a 2D renderer coordinate.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// NodeData is the payload attached to a node. Course nodes keep the semester
// they belong to so consumers never have to infer it from the position.
type NodeData struct {
	Label         string `json:"label"`
	Code          string `json:"code,omitempty"`
	Title         string `json:"title,omitempty"`
	Reason        string `json:"reason,omitempty"`
	SemesterIndex int    `json:"semester_index"`
	SemesterName  string `json:"semester_name"`
}

// Node is a positioned node of a rendered timeline.
type Node struct {
	ID        string   `json:"id"`
	Kind      NodeKind `json:"type"`
	Data      NodeData `json:"data"`
	Position  Position `json:"position"`
	Draggable bool     `json:"draggable"`
}

// Edge is a directed edge of a rendered timeline.
type Edge struct {
	ID     string `json:"id"`
	Source string `json:"source"`
	Target string `json:"target"`
	Kind   string `json:"type"`
}

// RenderGraph is the positioned graph handed to the flow renderer.
// It is regenerated on every change and never stored.
type RenderGraph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// CourseNodes returns only the course nodes, in layout order.
func (g RenderGraph) CourseNodes() []Node {
	var out []Node
	for _, n := range g.Nodes {
		if n.Kind == NodeCourse {
			out = append(out, n)
		}
	}
	return out
}

// Layout places a timeline path on a grid.
//
// Semester i is column i. Its label sits at (i*Semester, -LabelOffset) and
// cannot be dragged; course j of that semester sits at (i*Semester, j*Course).
// Every course of semester i-1 gets an edge to every course of semester i.
// No edge skips a semester or stays within one, so an empty semester breaks
// the chain between its neighbours. The result depends only on the inputs.
func Layout(path types.TimelinePath, spacing Spacing) RenderGraph {
	out := RenderGraph{Nodes: []Node{}, Edges: []Edge{}}

	for i, sem := range path.Semesters {
		x := float64(i) * spacing.Semester

		out.Nodes = append(out.Nodes, Node{
			ID:        semesterNodeID(i),
			Kind:      NodeSemester,
			Data:      NodeData{Label: sem.Name, SemesterIndex: i, SemesterName: sem.Name},
			Position:  Position{X: x, Y: -spacing.LabelOffset},
			Draggable: false,
		})

		for j, c := range sem.Courses {
			id := courseNodeID(i, j)
			out.Nodes = append(out.Nodes, Node{
				ID:   id,
				Kind: NodeCourse,
				Data: NodeData{
					Label:         c.Code,
					Code:          c.Code,
					Title:         c.Title,
					Reason:        c.Reason,
					SemesterIndex: i,
					SemesterName:  sem.Name,
				},
				Position:  Position{X: x, Y: float64(j) * spacing.Course},
				Draggable: true,
			})

			if i == 0 {
				continue
			}
			for k := range path.Semesters[i-1].Courses {
				src := courseNodeID(i-1, k)
				out.Edges = append(out.Edges, Edge{
					ID:     fmt.Sprintf("e-%s-to-%s", src, id),
					Source: src,
					Target: id,
					Kind:   EdgeKindSequence,
				})
			}
		}
	}

	return out
}

func semesterNodeID(i int) string {
	return fmt.Sprintf("semester-%d", i)
}

func courseNodeID(semester, course int) string {
	return fmt.Sprintf("%d-%d", semester, course)
}
