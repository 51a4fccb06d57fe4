package incidents

import (
	"context"
	"fmt"
	"sync"

	"github.com/PagerDuty/go-pagerduty"
)

var ErrMockError = fmt.Errorf("incidents.Mock(): mock error") // Used to mock errors in unit tests

// MockSource serves a fixed list of incidents in pages of PageSize. Pages
// listed in FailPages return ErrMockError.
type MockSource struct {
	Incidents []Incident
	PageSize  int
	FailPages map[int]bool

	mu       sync.Mutex
	requests []int
}

var _ Source = (*MockSource)(nil)

func (m *MockSource) ListIncidents(ctx context.Context, page int) (Page, error) {
	m.mu.Lock()
	m.requests = append(m.requests, page)
	m.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return Page{}, err
	}
	if m.FailPages[page] {
		return Page{}, ErrMockError
	}

	size := m.PageSize
	if size <= 0 {
		size = 5
	}
	start := (page - 1) * size
	if start < 0 || start > len(m.Incidents) {
		start = len(m.Incidents)
	}
	end := min(start+size, len(m.Incidents))

	return Page{
		Number:    page,
		Incidents: append([]Incident(nil), m.Incidents[start:end]...),
		Total:     len(m.Incidents),
	}, nil
}

// Requests returns the page numbers requested so far, in order
func (m *MockSource) Requests() []int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]int(nil), m.requests...)
}

// NewMockIncidents builds n valid incidents with sequential IDs starting at 1
func NewMockIncidents(n int) []Incident {
	l := make([]Incident, 0, n)
	for i := 1; i <= n; i++ {
		l = append(l, Incident{
			ID:    ID(fmt.Sprint(i)),
			Name:  fmt.Sprintf("ONG %d", i),
			Title: fmt.Sprintf("Caso %d", i),
			Value: float64(i) * 10,
		})
	}
	return l
}

// MockPagerDutyAPI is a PagerDutyAPI that records the options it was called with
type MockPagerDutyAPI struct {
	Response *pagerduty.ListIncidentsResponse
	Err      error
	Opts     []pagerduty.ListIncidentsOptions
}

func (m *MockPagerDutyAPI) ListIncidentsWithContext(ctx context.Context, opts pagerduty.ListIncidentsOptions) (*pagerduty.ListIncidentsResponse, error) {
	m.Opts = append(m.Opts, opts)
	if m.Err != nil {
		return &pagerduty.ListIncidentsResponse{}, m.Err
	}
	return m.Response, nil
}
