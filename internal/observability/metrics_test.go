package observability

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector(t *testing.T) {
	c := NewCollector()

	c.ObserveHTTP("GET", "/api/graph", 200, 10*time.Millisecond)
	c.ObserveHTTP("GET", "/api/graph", 200, 20*time.Millisecond)
	c.ObserveLLMCall("gemini-2.0-flash", "json", nil, time.Second)
	c.ObserveLLMCall("gemini-2.0-flash", "json", errors.New("quota"), time.Second)
	c.ObserveMaterials("fallback")
	c.ObserveGraphReload(42)

	assert.InDelta(t, 2, testutil.ToFloat64(c.HTTPRequests.WithLabelValues("GET", "/api/graph", "200")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(c.LLMCalls.WithLabelValues("gemini-2.0-flash", "json", "error")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(c.Materials.WithLabelValues("fallback")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(c.GraphReloads), 0)
	assert.InDelta(t, 42, testutil.ToFloat64(c.GraphCourses), 0)
}

func TestCollector_Handler(t *testing.T) {
	c := NewCollector()
	c.ObserveMaterials("cache")

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `course_compass_study_materials_total{source="cache"} 1`)
}

func TestCollectorsAreIndependent(t *testing.T) {
	a, b := NewCollector(), NewCollector()
	a.ObserveGraphReload(1)
	assert.InDelta(t, 0, testutil.ToFloat64(b.GraphReloads), 0)
}

func TestNewLogger(t *testing.T) {
	for _, verbose := range []bool{true, false} {
		logger, err := NewLogger(verbose)
		require.NoError(t, err)
		assert.Equal(t, verbose, logger.Core().Enabled(-1))
	}
}
