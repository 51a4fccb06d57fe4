package metrics

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveFetch(t *testing.T) {
	m := New()

	m.ObserveFetch("rest", 10*time.Millisecond, nil)
	m.ObserveFetch("rest", 20*time.Millisecond, nil)
	m.ObserveFetch("rest", 5*time.Millisecond, errors.New("boom"))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.PageFetches.WithLabelValues("rest", ResultSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.PageFetches.WithLabelValues("rest", ResultError)))
}

func TestSetListSize(t *testing.T) {
	m := New()
	m.SetListSize(4, 5)

	assert.Equal(t, 4.0, testutil.ToFloat64(m.LoadedIncidents))
	assert.Equal(t, 5.0, testutil.ToFloat64(m.TotalIncidents))
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveFetch("rest", time.Second, nil)
		m.SetListSize(1, 2)
	})
}

func TestHandler(t *testing.T) {
	m := New()
	m.SetListSize(3, 9)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "hero_loaded_incidents 3")
	assert.Contains(t, string(body), "hero_total_incidents 9")
}

func TestRouter(t *testing.T) {
	m := New()
	m.SetListSize(1, 2)
	r := m.Router()

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "hero_total_incidents 2")

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/incidents", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/metrics", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
