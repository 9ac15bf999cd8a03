package materials

import (
	"sort"

	"github.com/jonathan/course-compass/internal/extract"
)

// knownCourses maps compact course codes to titles. Only these courses have
// study materials.
var knownCourses = map[string]string{
	"CS1110":   "Introduction to Computing Using Python",
	"CS2110":   "Object-Oriented Programming and Data Structures",
	"CS2800":   "Discrete Structures",
	"CS3110":   "Data Structures and Functional Programming",
	"CS3410":   "Computer System Organization and Programming",
	"CS4410":   "Operating Systems",
	"CS4420":   "Computer Networks",
	"CS4670":   "Introduction to Computer Vision",
	"CS4740":   "Natural Language Processing",
	"CS4780":   "Machine Learning",
	"CS4820":   "Introduction to Algorithms",
	"CS5220":   "Applications of Parallel Computers",
	"CS5300":   "The Architecture of Large-Scale Information Systems",
	"CS5412":   "Cloud Computing",
	"CS5430":   "System Security",
	"CS5780":   "Machine Learning Engineering",
	"MATH2210": "Linear Algebra",
	"MATH2930": "Differential Equations",
	"MATH4710": "Basic Probability",
}

// Lookup resolves any accepted spelling of a code ("cs2110", "CS 2110") to
// its canonical form and title.
func Lookup(code string) (canonical, title string, ok bool) {
	canonical, valid := extract.NormalizeCode(code)
	if !valid {
		return "", "", false
	}
	title, ok = knownCourses[extract.CompactCode(canonical)]
	if !ok {
		return "", "", false
	}
	return canonical, title, true
}

// KnownCodes lists the canonical codes that have materials, sorted.
func KnownCodes() []string {
	out := make([]string, 0, len(knownCourses))
	for compact := range knownCourses {
		code, _ := extract.NormalizeCode(compact)
		out = append(out, code)
	}
	sort.Strings(out)
	return out
}
