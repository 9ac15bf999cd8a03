package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/course-compass/internal/graph"
	"github.com/jonathan/course-compass/internal/types"
)

func TestInitialGraphState(t *testing.T) {
	s := InitialGraphState()
	assert.Nil(t, s.Graph)
	assert.Nil(t, s.Selected)
	assert.True(t, s.Loading)
	assert.Nil(t, s.Error)
	assert.Empty(t, s.Highlighted)
}

func TestSetGraph_EndsLoading(t *testing.T) {
	g := graph.New(types.GraphData{Nodes: []types.Course{{ID: "CS 2110", Subject: types.SubjectCS}}}, nil)

	s := SetGraph(g)(InitialGraphState())

	assert.Same(t, g, s.Graph)
	assert.False(t, s.Loading)
}

func TestHighlightCourses_Replaces(t *testing.T) {
	store := NewStore(InitialGraphState())

	store.Dispatch(HighlightCourses([]string{"CS 2110"}))
	store.Dispatch(HighlightCourses([]string{"MATH 1920"}))

	s := store.Get()
	assert.Len(t, s.Highlighted, 1)
	assert.True(t, s.IsHighlighted("MATH 1920"))
	assert.False(t, s.IsHighlighted("CS 2110"))

	s = ClearHighlights(s)
	assert.Empty(t, s.Highlighted)
}

func TestHighlightCourses_DoesNotAliasPreviousState(t *testing.T) {
	before := HighlightCourses([]string{"CS 2110"})(InitialGraphState())
	after := HighlightCourses([]string{"CS 3110"})(before)

	assert.True(t, before.IsHighlighted("CS 2110"))
	assert.False(t, before.IsHighlighted("CS 3110"))
	assert.True(t, after.IsHighlighted("CS 3110"))
}

func TestSelectCourse_IndependentOfHighlight(t *testing.T) {
	s := HighlightCourses([]string{"CS 2110"})(InitialGraphState())
	c := &types.Course{ID: "MATH 1920"}

	s = SelectCourse(c)(s)
	assert.Equal(t, "MATH 1920", s.Selected.ID)
	assert.True(t, s.IsHighlighted("CS 2110"))

	s = SelectCourse(nil)(s)
	assert.Nil(t, s.Selected)
	assert.True(t, s.IsHighlighted("CS 2110"))
}

func TestSetGraphError_ClearsLoading(t *testing.T) {
	s := SetGraphLoading(true)(InitialGraphState())

	s = SetGraphError("provider unreachable")(s)
	require.NotNil(t, s.Error)
	assert.Equal(t, "provider unreachable", *s.Error)
	assert.False(t, s.Loading)

	s = SetGraphError("")(s)
	assert.Nil(t, s.Error)
}

func TestHighlightedIDs_GraphOrder(t *testing.T) {
	g := graph.New(types.GraphData{Nodes: []types.Course{
		{ID: "CS 1110", Subject: types.SubjectCS},
		{ID: "CS 2110", Subject: types.SubjectCS},
		{ID: "MATH 1920", Subject: types.SubjectMath},
	}}, nil)

	s := SetGraph(g)(InitialGraphState())
	s = HighlightCourses([]string{"MATH 1920", "CS 9999", "CS 1110"})(s)

	ids := s.HighlightedIDs()
	require.Len(t, ids, 3)
	assert.Equal(t, []string{"CS 1110", "MATH 1920"}, ids[:2])
	assert.Equal(t, "CS 9999", ids[2])
}

func TestHighlightedIDs_UnknownTailSorted(t *testing.T) {
	g := graph.New(types.GraphData{Nodes: []types.Course{
		{ID: "CS 1110", Subject: types.SubjectCS},
	}}, nil)

	s := SetGraph(g)(InitialGraphState())
	s = HighlightCourses([]string{"MATH 4999", "CS 1110", "CS 9999", "MATH 0001", "CS 5000"})(s)

	for range 20 {
		assert.Equal(t, []string{"CS 1110", "CS 5000", "CS 9999", "MATH 0001", "MATH 4999"}, s.HighlightedIDs())
	}
}
