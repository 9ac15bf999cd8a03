package graph

import "github.com/jonathan/course-compass/internal/types"

// maxRelated caps the size of a focused view.
const maxRelated = 15

// RelatedCourses picks courses "near" focus for an isolated detail view.
//
// This is a coarse approximation of curricular closeness, not prerequisite
// inference: a course is related when it shares the focus's subject and the
// leading digit of its catalog number is within one of the focus's leading
// digit. Results keep input order, exclude focus itself and are capped at 15.
// Courses without a numeric leading digit never match.
func RelatedCourses(focus types.Course, all []types.Course) []types.Course {
	level, ok := leadingDigit(focus.CatalogNumber)
	if !ok {
		return nil
	}

	var related []types.Course
	for _, c := range all {
		if len(related) == maxRelated {
			break
		}
		if c.ID == focus.ID || c.Subject != focus.Subject {
			continue
		}
		other, ok := leadingDigit(c.CatalogNumber)
		if !ok {
			continue
		}
		if diff := level - other; diff >= -1 && diff <= 1 {
			related = append(related, c)
		}
	}
	return related
}

// FocusView builds the display graph for a single focused course: the focus
// first, then its related courses, each linked from the focus.
func FocusView(focus types.Course, all []types.Course) DisplayGraph {
	related := RelatedCourses(focus, all)

	nodes := make([]types.Course, 0, len(related)+1)
	nodes = append(nodes, focus)
	links := make([]DisplayLink, 0, len(related))
	for _, c := range related {
		nodes = append(nodes, c)
		links = append(links, DisplayLink{Source: focus.ID, Target: c.ID, Kind: LinkRelated})
	}

	return DisplayGraph{Nodes: nodes, Links: links}
}

func leadingDigit(catalogNumber string) (int, bool) {
	if catalogNumber == "" {
		return 0, false
	}
	d := catalogNumber[0]
	if d < '0' || d > '9' {
		return 0, false
	}
	return int(d - '0'), true
}
