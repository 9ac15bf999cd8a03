package roster

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/course-compass/internal/llm"
	"github.com/jonathan/course-compass/internal/types"
)

const csPayload = `{"status":"success","data":{"classes":[
 {"catalogNbr":"1110","titleLong":"Introduction to Computing","description":"<p>Programming &amp; design.</p>"},
 {"catalogNbr":"2110","titleLong":"Object-Oriented Programming","description":"OOP","catalogPrereqCoreq":"Prerequisite: CS 1110 or CS 1112."},
 {"catalogNbr":"3110","titleLong":"Functional Programming","description":"FP","catalogPrerequisites":"CS 2110 and MATH 1920."},
 {"catalogNbr":"","titleLong":"Broken"}
]}}`

const mathPayload = `{"status":"success","data":{"classes":[
 {"catalogNbr":"1920","titleLong":"Multivariable Calculus","description":"Calc"}
]}}`

func rosterServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search/classes.json", r.URL.Path)
		assert.Equal(t, "FA25", r.URL.Query().Get("roster"))
		switch r.URL.Query().Get("subject") {
		case "CS":
			_, _ = w.Write([]byte(csPayload))
		case "MATH":
			_, _ = w.Write([]byte(mathPayload))
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
}

func TestFetchSubject(t *testing.T) {
	srv := rosterServer(t)
	defer srv.Close()

	c := NewClient(WithBaseURL(srv.URL))
	courses, err := c.FetchSubject(t.Context(), DefaultSemester, types.SubjectCS)
	require.NoError(t, err)
	require.Len(t, courses, 3)

	assert.Equal(t, "CS 1110", courses[0].ID)
	assert.Equal(t, "Programming & design.", courses[0].Description)
	assert.Equal(t, "Prerequisite: CS 1110 or CS 1112.", courses[1].Prerequisites)
	assert.Equal(t, "CS 2110 and MATH 1920.", courses[2].Prerequisites, "falls back to catalogPrerequisites")
}

func TestFetchAll_SkipsFailedSubject(t *testing.T) {
	srv := rosterServer(t)
	defer srv.Close()

	c := NewClient(WithBaseURL(srv.URL), WithDelay(0))
	courses, err := c.FetchAll(t.Context(), DefaultSemester, []types.Subject{types.SubjectCS, "PHYS", types.SubjectMath})
	require.NoError(t, err)
	assert.Len(t, courses, 4)
}

func TestFetchAll_AllFailed(t *testing.T) {
	srv := rosterServer(t)
	defer srv.Close()

	c := NewClient(WithBaseURL(srv.URL), WithDelay(0))
	_, err := c.FetchAll(t.Context(), DefaultSemester, []types.Subject{"PHYS"})
	require.Error(t, err)
}

func TestFetchAll_CancelledDuringDelay(t *testing.T) {
	srv := rosterServer(t)
	defer srv.Close()

	ctx, cancel := context.WithCancel(t.Context())
	c := NewClient(WithBaseURL(srv.URL), WithDelay(time.Hour))
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()
	courses, err := c.FetchAll(ctx, DefaultSemester, DefaultSubjects)
	require.ErrorIs(t, err, context.Canceled)
	assert.Len(t, courses, 3)
}

func sampleRaw() []RawCourse {
	return []RawCourse{
		{ID: "CS 1110", Subject: types.SubjectCS, CatalogNumber: "1110"},
		{ID: "CS 2110", Subject: types.SubjectCS, CatalogNumber: "2110", Prerequisites: "CS 1110 or CS 1112"},
		{ID: "CS 3110", Subject: types.SubjectCS, CatalogNumber: "3110", Prerequisites: "CS 2110, CS 2110 and MATH 1920"},
		{ID: "MATH 1920", Subject: types.SubjectMath, CatalogNumber: "1920", Prerequisites: "MATH 1920"},
		{ID: "CS 1110", Subject: types.SubjectCS, Title: "duplicate"},
	}
}

func TestBuild(t *testing.T) {
	data, err := Build(t.Context(), sampleRaw(), nil)
	require.NoError(t, err)

	require.Len(t, data.Nodes, 4)
	assert.True(t, data.Directed)
	assert.Empty(t, data.Nodes[0].Title, "duplicate ids keep the first class")

	assert.Equal(t, []types.Edge{
		{Source: "CS 1110", Target: "CS 2110"},
		{Source: "CS 2110", Target: "CS 3110"},
		{Source: "MATH 1920", Target: "CS 3110"},
	}, data.Links)

	byID := map[string]types.Course{}
	for _, n := range data.Nodes {
		byID[n.ID] = n
		assert.Equal(t, types.NeutralScore, n.DifficultyScore)
		assert.Equal(t, types.NeutralScore, n.EnjoymentScore)
		assert.Equal(t, NeutralConfidence, n.Confidence)
		assert.Zero(t, n.CommentCount)
	}
	assert.Equal(t, 2, byID["CS 3110"].InDegree)
	assert.Equal(t, 1, byID["CS 2110"].OutDegree)
	assert.Zero(t, byID["MATH 1920"].InDegree, "self references are ignored")
	assert.Greater(t, byID["CS 3110"].Centrality, byID["CS 1110"].Centrality)
}

func TestPageRank(t *testing.T) {
	index := map[string]int{"a": 0, "b": 1, "c": 2}

	t.Run("no edges is uniform", func(t *testing.T) {
		ranks := PageRank(3, nil, index)
		for _, r := range ranks {
			assert.InDelta(t, 1.0/3, r, 1e-9)
		}
	})

	t.Run("sums to one", func(t *testing.T) {
		ranks := PageRank(3, []types.Edge{{Source: "a", Target: "b"}, {Source: "b", Target: "c"}}, index)
		sum := 0.0
		for _, r := range ranks {
			sum += r
		}
		assert.InDelta(t, 1.0, sum, 1e-6)
		assert.Greater(t, ranks[2], ranks[1])
		assert.Greater(t, ranks[1], ranks[0])
	})

	t.Run("empty", func(t *testing.T) {
		assert.Nil(t, PageRank(0, nil, nil))
	})
}

type stubLLM struct {
	reply string
	err   error
}

func (s stubLLM) GenerateContent(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	return s.GenerateJSON(ctx, prompt, tier)
}
func (s stubLLM) GenerateJSON(context.Context, string, llm.ModelTier) (string, error) {
	return s.reply, s.err
}
func (stubLLM) GetModel(llm.ModelTier) string { return "stub" }
func (stubLLM) Close() error                  { return nil }

func TestLLMParser(t *testing.T) {
	t.Run("uses model output", func(t *testing.T) {
		p := LLMParser{Client: stubLLM{reply: `{"courses": ["cs2110", "MATH 1920", "cs2110", "PHYS 1112"]}`}}
		assert.Equal(t, []string{"CS 2110", "MATH 1920"}, p.Parse(t.Context(), "anything"))
	})

	t.Run("falls back to regex", func(t *testing.T) {
		p := LLMParser{Client: stubLLM{err: errors.New("quota")}}
		assert.Equal(t, []string{"CS 1110", "CS 1112"}, p.Parse(t.Context(), "CS 1110 or CS 1112"))
	})

	t.Run("empty text", func(t *testing.T) {
		p := LLMParser{Client: stubLLM{err: errors.New("unused")}}
		assert.Empty(t, p.Parse(t.Context(), ""))
	})
}
