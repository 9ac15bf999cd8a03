package observability

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	"github.com/jonathan/course-compass/internal/graph"
	"github.com/jonathan/course-compass/internal/timeline"
	"github.com/jonathan/course-compass/internal/types"
)

func init() {
	color.NoColor = true
}

func samplePlan() *types.TimelinePlan {
	path := func(title string) types.TimelinePath {
		return types.TimelinePath{
			Title:        title,
			TargetCareer: "ML Engineer",
			Semesters: []types.TimelineSemester{
				{Name: "Sophomore Fall", Courses: []types.TimelineCourse{{Code: "CS 2110", Title: "OOP"}}},
				{Name: "Sophomore Spring"},
			},
		}
	}
	return &types.TimelinePlan{
		Analysis: types.TimelineAnalysis{CareerField: "Machine Learning", KeySkillsNeeded: []string{"Python", "Statistics"}},
		Paths:    types.TimelinePaths{Theorist: path("Theory"), Engineer: path("Systems"), Balanced: path("Mix")},
	}
}

func TestPrintTimelinePlan(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintTimelinePlan(samplePlan(), types.PathEngineer)
	out := buf.String()

	assert.Contains(t, out, "CAREER ANALYSIS")
	assert.Contains(t, out, "Machine Learning")
	assert.Contains(t, out, "Python, Statistics")
	assert.Contains(t, out, "* ENGINEER Systems")
	assert.Contains(t, out, "  THEORIST Theory")
	assert.Contains(t, out, "CS 2110")
	assert.Contains(t, out, "(no courses)")
}

func TestPrintTimelinePlan_Nil(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintTimelinePlan(nil, types.PathBalanced)
	assert.Empty(t, buf.String())
}

func TestPrintLayoutStats(t *testing.T) {
	var buf bytes.Buffer
	layout := timeline.Layout(samplePlan().Paths.Balanced, timeline.DefaultSpacing)
	NewPrinter(&buf).PrintLayoutStats(layout)

	out := buf.String()
	assert.Contains(t, out, "Semesters: 2")
	assert.Contains(t, out, "Courses:   1")
	assert.Contains(t, out, "Edges:     0")
}

func TestPrintGraphSummary(t *testing.T) {
	g := graph.New(types.GraphData{
		Nodes: []types.Course{
			{ID: "CS 1110", Subject: types.SubjectCS, Centrality: 0.1},
			{ID: "CS 2110", Subject: types.SubjectCS, Centrality: 0.4, CommentCount: 3},
			{ID: "MATH 1920", Subject: types.SubjectMath, Centrality: 0.2},
		},
		Links: []types.Edge{{Source: "CS 1110", Target: "CS 2110"}},
	}, nil)

	var buf bytes.Buffer
	NewPrinter(&buf).PrintGraphSummary(g)
	out := buf.String()

	assert.Contains(t, out, "Courses:  3")
	assert.Contains(t, out, "Edges:    1")
	assert.Contains(t, out, "Reviewed: 1")
	assert.Contains(t, out, "MATH   1")
	assert.Less(t, bytes.Index(buf.Bytes(), []byte("CS 2110    0.4000")), bytes.Index(buf.Bytes(), []byte("MATH 1920  0.2000")))
}

func TestPrintStudyMaterials(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintStudyMaterials(nil)
	assert.Contains(t, buf.String(), "No study materials available.")

	buf.Reset()
	p.PrintStudyMaterials([]types.CourseStudyMaterials{{
		CourseCode:  "CS 2110",
		CourseTitle: "Object-Oriented Programming",
		Materials: []types.StudyMaterial{{
			Title: "Java Tutorial", Type: types.MaterialDocumentation, URL: "https://docs.oracle.com/javase/tutorial/",
			Difficulty: types.DifficultyBeginner,
		}},
	}})
	out := buf.String()
	assert.Contains(t, out, "CS 2110 Object-Oriented Programming")
	assert.Contains(t, out, "[documentation/beginner] Java Tutorial")
	assert.Contains(t, out, "https://docs.oracle.com/javase/tutorial/")
}

func TestPrintCourseCodes(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)
	p.PrintCourseCodes([]string{"CS 2110", "MATH 1920"})
	assert.Equal(t, "CS 2110\nMATH 1920\n", buf.String())

	buf.Reset()
	p.PrintCourseCodes(nil)
	assert.Contains(t, buf.String(), "No course codes found.")
}
