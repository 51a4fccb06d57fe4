package server

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/clcollins/hero/pkg/incidents"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListIncidents(t *testing.T) {
	s := New(DemoIncidents(12, 1), WithPageSize(5))

	tests := []struct {
		name     string
		target   string
		status   int
		expected int
	}{
		{name: "default page", target: "/incidents", status: http.StatusOK, expected: 5},
		{name: "middle page", target: "/incidents?page=2", status: http.StatusOK, expected: 5},
		{name: "last page", target: "/incidents?page=3", status: http.StatusOK, expected: 2},
		{name: "past the end", target: "/incidents?page=9", status: http.StatusOK, expected: 0},
		{name: "bad page", target: "/incidents?page=zero", status: http.StatusBadRequest},
		{name: "page zero", target: "/incidents?page=0", status: http.StatusBadRequest},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, test.target, nil))

			require.Equal(t, test.status, rec.Code)
			if test.status != http.StatusOK {
				return
			}
			assert.Equal(t, "12", rec.Header().Get("X-Total-Count"))

			var l []incidents.Incident
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&l))
			assert.Len(t, l, test.expected)
		})
	}
}

func TestGetIncident(t *testing.T) {
	s := New(DemoIncidents(3, 1))

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/incidents/2", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var i incidents.Incident
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&i))
	assert.Equal(t, incidents.ID("2"), i.ID)

	rec = httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/incidents/99", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDemoIncidents(t *testing.T) {
	a := DemoIncidents(20, 42)
	assert.Equal(t, a, DemoIncidents(20, 42), "same seed, same data")

	for _, i := range a {
		assert.NoError(t, i.Validate())
	}

	assert.Empty(t, DemoIncidents(0, 1))
	assert.Empty(t, DemoIncidents(-1, 1))
}

// The REST client and the demo server must agree on the wire contract
func TestRESTClientAgainstServer(t *testing.T) {
	srv := httptest.NewServer(New(DemoIncidents(7, 1), WithPageSize(3)))
	defer srv.Close()

	c, err := incidents.NewRESTClient(srv.URL, srv.Client())
	require.NoError(t, err)

	var all []incidents.Incident
	for page := 1; page <= 3; page++ {
		p, err := c.ListIncidents(context.Background(), page)
		require.NoError(t, err)
		assert.Equal(t, 7, p.Total)
		all = append(all, p.Incidents...)
	}
	assert.Equal(t, DemoIncidents(7, 1), all)
}

func TestServeShutsDownOnCancel(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- New(nil).serve(ctx, ln) }()

	res, err := http.Get("http://" + ln.Addr().String() + "/incidents")
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, "0", res.Header.Get("X-Total-Count"))

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
