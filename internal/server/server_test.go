package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/course-compass/internal/catalog"
	"github.com/jonathan/course-compass/internal/materials"
	"github.com/jonathan/course-compass/internal/observability"
	"github.com/jonathan/course-compass/internal/server/ratelimit"
	"github.com/jonathan/course-compass/internal/timeline"
	"github.com/jonathan/course-compass/internal/types"
)

type fakeProviders struct {
	graph    types.GraphData
	graphErr error

	gotMessage string
	gotHistory []types.HistoryEntry
	reply      string
	chatErr    error

	gotRequest types.TimelineRequest
	plan       *types.TimelinePlan
	planErr    error

	gotCode string
}

func (f *fakeProviders) FetchGraph(context.Context) (types.GraphData, error) {
	return f.graph, f.graphErr
}

func (f *fakeProviders) SendMessage(_ context.Context, msg string, history []types.HistoryEntry) (string, error) {
	f.gotMessage, f.gotHistory = msg, history
	return f.reply, f.chatErr
}

func (f *fakeProviders) GenerateTimeline(_ context.Context, req types.TimelineRequest) (*types.TimelinePlan, error) {
	f.gotRequest = req
	return f.plan, f.planErr
}

func (f *fakeProviders) StudyMaterials(_ context.Context, code string) (*types.CourseStudyMaterials, error) {
	f.gotCode = code
	if code == "CS 9999" {
		return nil, &materials.NotFoundError{Code: code}
	}
	return &types.CourseStudyMaterials{CourseCode: code, CourseTitle: "Data Structures"}, nil
}

func newTestServer(t *testing.T, f *fakeProviders, rl *ratelimit.Config) (*Server, *observability.Collector) {
	t.Helper()
	metrics := observability.NewCollector()
	s := New(Config{Port: 0, CORSOrigins: []string{"http://localhost:3000"}, RateLimit: rl},
		Deps{Graph: f, Chat: f, Timeline: f, Materials: f}, nil, metrics)
	t.Cleanup(s.Close)
	return s, metrics
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestHealth(t *testing.T) {
	s, _ := newTestServer(t, &fakeProviders{}, nil)

	for _, path := range []string{"/", "/health"} {
		w := do(t, s.Handler(), http.MethodGet, path, "")
		assert.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, "healthy", body["status"])
		assert.Equal(t, Version, body["version"])
	}
}

func TestReady(t *testing.T) {
	s := New(Config{}, Deps{Ready: func(context.Context) error { return errors.New("db down") }}, nil, nil)
	defer s.Close()

	w := do(t, s.Handler(), http.MethodGet, "/ready", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "db down", decodeBody(t, w)["error"])
}

func TestGraph(t *testing.T) {
	t.Run("returns graph", func(t *testing.T) {
		f := &fakeProviders{graph: types.GraphData{
			Directed: true,
			Nodes:    []types.Course{{ID: "CS 2110", Subject: types.SubjectCS}},
			Links:    []types.Edge{},
		}}
		s, _ := newTestServer(t, f, nil)

		w := do(t, s.Handler(), http.MethodGet, "/api/graph", "")
		require.Equal(t, http.StatusOK, w.Code)
		var got types.GraphData
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		require.Len(t, got.Nodes, 1)
		assert.Equal(t, "CS 2110", got.Nodes[0].ID)
	})

	t.Run("not loaded is 404", func(t *testing.T) {
		s, _ := newTestServer(t, &fakeProviders{graphErr: catalog.ErrNotLoaded}, nil)
		w := do(t, s.Handler(), http.MethodGet, "/api/graph", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestChat(t *testing.T) {
	t.Run("forwards message and history", func(t *testing.T) {
		f := &fakeProviders{reply: "Take CS 2110 next."}
		s, _ := newTestServer(t, f, nil)

		body := `{"message":"what next?","history":[{"role":"user","content":"hi"}]}`
		w := do(t, s.Handler(), http.MethodPost, "/api/chat", body)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Take CS 2110 next.", decodeBody(t, w)["response"])
		assert.Equal(t, "what next?", f.gotMessage)
		require.Len(t, f.gotHistory, 1)
		assert.Equal(t, "hi", f.gotHistory[0].Content)
	})

	t.Run("missing message is 400", func(t *testing.T) {
		s, _ := newTestServer(t, &fakeProviders{}, nil)
		w := do(t, s.Handler(), http.MethodPost, "/api/chat", `{"history":[]}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, decodeBody(t, w)["error"], "Message")
	})

	t.Run("malformed body is 400", func(t *testing.T) {
		s, _ := newTestServer(t, &fakeProviders{}, nil)
		w := do(t, s.Handler(), http.MethodPost, "/api/chat", `{not json`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("wrong method", func(t *testing.T) {
		s, _ := newTestServer(t, &fakeProviders{}, nil)
		w := do(t, s.Handler(), http.MethodGet, "/api/chat", "")
		assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	})
}

func TestPlanTimeline(t *testing.T) {
	t.Run("returns plan", func(t *testing.T) {
		f := &fakeProviders{plan: &types.TimelinePlan{}}
		s, _ := newTestServer(t, f, nil)

		body := `{"career_goal":"ML engineer","completed_courses":["CS 1110"]}`
		w := do(t, s.Handler(), http.MethodPost, "/api/plan-timeline", body)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "ML engineer", f.gotRequest.CareerGoal)
		assert.Equal(t, []string{"CS 1110"}, f.gotRequest.CompletedCourses)
	})

	t.Run("bad model output is 502", func(t *testing.T) {
		f := &fakeProviders{planErr: &timeline.ParseError{Message: "response does not match the timeline plan schema"}}
		s, _ := newTestServer(t, f, nil)

		w := do(t, s.Handler(), http.MethodPost, "/api/plan-timeline", `{"career_goal":"x"}`)
		assert.Equal(t, http.StatusBadGateway, w.Code)
	})

	t.Run("goal too long is 400", func(t *testing.T) {
		s, _ := newTestServer(t, &fakeProviders{}, nil)
		body := `{"career_goal":"` + strings.Repeat("a", 501) + `"}`
		w := do(t, s.Handler(), http.MethodPost, "/api/plan-timeline", body)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestStudyMaterials(t *testing.T) {
	f := &fakeProviders{}
	s, _ := newTestServer(t, f, nil)

	w := do(t, s.Handler(), http.MethodGet, "/api/study-materials/CS%202110", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "CS 2110", f.gotCode)
	assert.Equal(t, "Data Structures", decodeBody(t, w)["course_title"])

	w = do(t, s.Handler(), http.MethodGet, "/api/study-materials/CS%209999", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUnconfiguredProvider(t *testing.T) {
	s := New(Config{}, Deps{}, nil, nil)
	defer s.Close()

	w := do(t, s.Handler(), http.MethodGet, "/api/graph", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestCORS(t *testing.T) {
	s, _ := newTestServer(t, &fakeProviders{}, nil)

	req := httptest.NewRequest(http.MethodOptions, "/api/chat", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "POST")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://evil.example")
	w = httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRateLimit(t *testing.T) {
	rl := ratelimit.NewConfig(1, 1)
	rl.EndpointConfigs = nil
	s, _ := newTestServer(t, &fakeProviders{graph: types.GraphData{}}, rl)

	w := do(t, s.Handler(), http.MethodGet, "/api/graph", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "1", w.Header().Get("X-RateLimit-Limit"))

	w = do(t, s.Handler(), http.MethodGet, "/api/graph", "")
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
	assert.Equal(t, "rate_limit_exceeded", decodeBody(t, w)["error"])

	// health checks are never limited
	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, do(t, s.Handler(), http.MethodGet, "/health", "").Code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	s, _ := newTestServer(t, &fakeProviders{}, nil)

	do(t, s.Handler(), http.MethodGet, "/health", "")
	w := do(t, s.Handler(), http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `course_compass_http_requests_total{method="GET",route="/health",status="200"}`)
}
