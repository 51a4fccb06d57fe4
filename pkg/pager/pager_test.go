package pager

import (
	"context"
	"testing"

	"github.com/clcollins/hero/pkg/incidents"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fetch runs a request against src and applies the outcome
func fetch(t *testing.T, p *Pager, src incidents.Source, r Request) {
	t.Helper()
	page, err := src.ListIncidents(context.Background(), r.Page)
	if err != nil {
		require.True(t, p.Fail(r, err))
		return
	}
	require.True(t, p.Complete(r, page))
}

func TestNewPager(t *testing.T) {
	p := New()
	assert.Equal(t, 1, p.Page())
	assert.Equal(t, 0, p.Total())
	assert.Equal(t, Idle, p.Status())
	assert.False(t, p.Exhausted())
	assert.Empty(t, p.Incidents())
}

func TestPagingToExhaustion(t *testing.T) {
	src := &incidents.MockSource{Incidents: incidents.NewMockIncidents(5), PageSize: 2}
	p := New()

	expectedLens := []int{2, 4, 5}
	for i, want := range expectedLens {
		r, ok := p.Begin(false)
		require.True(t, ok, "load %d should be issued", i+1)
		assert.Equal(t, i+1, r.Page)
		fetch(t, p, src, r)

		assert.Equal(t, want, p.Len())
		assert.Equal(t, 5, p.Total())
		assert.LessOrEqual(t, p.Len(), p.Total())
		assert.Equal(t, i+2, p.Page())
	}

	assert.True(t, p.Exhausted())

	// further end-reached triggers are no-ops
	for range 3 {
		_, ok := p.Begin(false)
		assert.False(t, ok)
	}
	assert.Equal(t, []int{1, 2, 3}, src.Requests())
}

func TestAccumulatedLengthIsSumOfPages(t *testing.T) {
	src := &incidents.MockSource{Incidents: incidents.NewMockIncidents(23), PageSize: 5}
	p := New()

	sum := 0
	for {
		r, ok := p.Begin(false)
		if !ok {
			break
		}
		page, err := src.ListIncidents(context.Background(), r.Page)
		require.NoError(t, err)
		sum += len(page.Incidents)
		require.True(t, p.Complete(r, page))
		assert.Equal(t, sum, p.Len())
		assert.LessOrEqual(t, p.Len(), p.Total())
	}

	assert.Equal(t, 23, p.Len())
	assert.Equal(t, incidents.NewMockIncidents(23), p.Incidents())
}

func TestSecondTriggerWhileLoading(t *testing.T) {
	p := New()

	r, ok := p.Begin(false)
	require.True(t, ok)
	assert.True(t, p.Loading())

	_, ok = p.Begin(false)
	assert.False(t, ok, "a concurrent load must not be issued")
	_, ok = p.Begin(true)
	assert.False(t, ok, "a refresh must wait for the outstanding fetch")

	require.True(t, p.Complete(r, incidents.Page{Incidents: incidents.NewMockIncidents(2), Total: 10}))
	assert.Equal(t, Idle, p.Status())
}

func TestRefreshReplaces(t *testing.T) {
	src := &incidents.MockSource{Incidents: incidents.NewMockIncidents(20), PageSize: 5}
	p := New()

	for range 2 {
		r, ok := p.Begin(false)
		require.True(t, ok)
		fetch(t, p, src, r)
	}
	require.Equal(t, 10, p.Len())

	newPage := incidents.Page{Incidents: incidents.NewMockIncidents(3), Total: 3}
	r, ok := p.Begin(true)
	require.True(t, ok)
	assert.Equal(t, 1, r.Page)
	assert.True(t, p.Refreshing())
	// the list is untouched until the replacing response arrives
	assert.Equal(t, 10, p.Len())

	require.True(t, p.Complete(r, newPage))
	assert.Equal(t, newPage.Incidents, p.Incidents())
	assert.Equal(t, 2, p.Page())
	assert.False(t, p.Refreshing())
}

func TestRefreshWhenExhausted(t *testing.T) {
	src := &incidents.MockSource{Incidents: incidents.NewMockIncidents(3), PageSize: 5}
	p := New()

	r, _ := p.Begin(false)
	fetch(t, p, src, r)
	require.True(t, p.Exhausted())

	r, ok := p.Begin(true)
	require.True(t, ok, "refresh ignores the exhaustion guard")
	fetch(t, p, src, r)
	assert.Equal(t, 3, p.Len())
}

func TestTotalGrowsAfterRefresh(t *testing.T) {
	p := New()

	r, _ := p.Begin(false)
	p.Complete(r, incidents.Page{Incidents: incidents.NewMockIncidents(2), Total: 2})
	require.True(t, p.Exhausted())

	r, _ = p.Begin(true)
	p.Complete(r, incidents.Page{Incidents: incidents.NewMockIncidents(2), Total: 4})
	assert.False(t, p.Exhausted())

	r, ok := p.Begin(false)
	require.True(t, ok)
	assert.Equal(t, 2, r.Page)
}

func TestTotalShrinksAfterRefresh(t *testing.T) {
	p := New()

	r, _ := p.Begin(false)
	p.Complete(r, incidents.Page{Incidents: incidents.NewMockIncidents(5), Total: 20})

	r, _ = p.Begin(true)
	p.Complete(r, incidents.Page{Incidents: incidents.NewMockIncidents(2), Total: 2})
	assert.True(t, p.Exhausted())
	assert.Equal(t, 2, p.Len())
}

func TestMoreItemsThanTotal(t *testing.T) {
	p := New()

	r, _ := p.Begin(false)
	p.Complete(r, incidents.Page{Incidents: incidents.NewMockIncidents(4), Total: 3})
	assert.Equal(t, 3, p.Len())
	assert.True(t, p.Exhausted())
}

func TestEmptyPageBeforeTotal(t *testing.T) {
	p := New()

	r, _ := p.Begin(false)
	p.Complete(r, incidents.Page{Incidents: incidents.NewMockIncidents(2), Total: 10})

	r, _ = p.Begin(false)
	p.Complete(r, incidents.Page{Total: 10})

	assert.True(t, p.Exhausted())
	assert.Equal(t, 2, p.Total())
	_, ok := p.Begin(false)
	assert.False(t, ok)
}

func TestEmptyFirstPage(t *testing.T) {
	p := New()

	r, _ := p.Begin(false)
	p.Complete(r, incidents.Page{Total: 0})

	assert.True(t, p.Exhausted())
	_, ok := p.Begin(false)
	assert.False(t, ok)
}

func TestFailureReleasesGuard(t *testing.T) {
	src := &incidents.MockSource{
		Incidents: incidents.NewMockIncidents(6),
		PageSize:  2,
		FailPages: map[int]bool{2: true},
	}
	p := New()

	r, _ := p.Begin(false)
	fetch(t, p, src, r)

	r, _ = p.Begin(false)
	fetch(t, p, src, r)

	assert.Equal(t, Failed, p.Status())
	assert.ErrorIs(t, p.Err(), incidents.ErrMockError)
	assert.False(t, p.Loading())
	assert.Equal(t, 2, p.Len(), "accumulated list survives a failure")
	assert.Equal(t, 2, p.Page(), "cursor does not advance on failure")

	delete(src.FailPages, 2)
	r, err := p.Retry()
	require.NoError(t, err)
	assert.Equal(t, 2, r.Page)
	assert.Nil(t, p.Err())
	fetch(t, p, src, r)

	assert.Equal(t, Idle, p.Status())
	assert.Equal(t, 4, p.Len())
}

func TestFailedRefreshCanLoadAgain(t *testing.T) {
	p := New()

	r, _ := p.Begin(true)
	p.Fail(r, incidents.ErrMockError)

	r, ok := p.Begin(true)
	require.True(t, ok)
	assert.True(t, r.Refresh)
}

func TestRetryRequiresFailure(t *testing.T) {
	p := New()
	_, err := p.Retry()
	assert.ErrorIs(t, err, ErrNotFailed)

	p.Begin(false)
	_, err = p.Retry()
	assert.ErrorIs(t, err, ErrNotFailed)
}

func TestStaleResponsesDropped(t *testing.T) {
	p := New()

	stale, _ := p.Begin(false)
	p.Fail(stale, incidents.ErrMockError)

	fresh, err := p.Retry()
	require.NoError(t, err)

	assert.False(t, p.Complete(stale, incidents.Page{Incidents: incidents.NewMockIncidents(5), Total: 5}))
	assert.False(t, p.Fail(stale, incidents.ErrMockError))
	assert.Equal(t, Loading, p.Status())
	assert.Equal(t, 0, p.Len())

	assert.True(t, p.Complete(fresh, incidents.Page{Incidents: incidents.NewMockIncidents(1), Total: 5}))
	assert.False(t, p.Complete(fresh, incidents.Page{Incidents: incidents.NewMockIncidents(1), Total: 5}), "a response applies once")
	assert.Equal(t, 1, p.Len())
}

func TestIncidentsReturnsCopy(t *testing.T) {
	p := New()
	r, _ := p.Begin(false)
	p.Complete(r, incidents.Page{Incidents: incidents.NewMockIncidents(2), Total: 2})

	l := p.Incidents()
	l[0].Title = "changed"
	assert.Equal(t, "Caso 1", p.Incidents()[0].Title)
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "idle", Idle.String())
	assert.Equal(t, "loading", Loading.String())
	assert.Equal(t, "failed", Failed.String())
	assert.Equal(t, "unknown", Status(42).String())
}
