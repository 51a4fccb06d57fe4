// Package pager holds the incremental pagination state for the incident
// list: the accumulated incidents, the next page to request, the last total
// reported by the server and whether a fetch is outstanding.
//
// The Pager does no I/O. Callers ask it for a Request with Begin, perform the
// fetch however they like, and feed the outcome back with Complete or Fail.
// Only one Request is outstanding at a time, so responses are applied in
// request order.
package pager

import (
	"errors"

	"github.com/charmbracelet/log"
	"github.com/clcollins/hero/pkg/incidents"
)

// Status is the state of the loading guard
type Status int

const (
	Idle Status = iota
	Loading
	Failed
)

func (s Status) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Failed:
		return "failed"
	}
	return "unknown"
}

const firstPage = 1

var ErrNotFailed = errors.New("pager: no failed request to retry")

// Request describes a fetch the caller should perform
type Request struct {
	Page    int
	Refresh bool

	seq uint64
}

// Pager is not safe for concurrent use; it is owned by a single event loop.
type Pager struct {
	incidents []incidents.Incident
	page      int
	total     int
	status    Status
	err       error

	pending *Request
	failed  *Request
	seq     uint64
}

func New() *Pager {
	return &Pager{page: firstPage}
}

// Begin starts a load. A normal load requests the page under the cursor; a
// refresh requests the first page and will replace the accumulated list.
// It returns false, and issues nothing, while another fetch is outstanding or
// when a normal load finds the list exhausted.
func (p *Pager) Begin(refresh bool) (Request, bool) {
	if p.status == Loading {
		log.Debug("pager.Begin", "skipped", "fetch in flight", "refresh", refresh)
		return Request{}, false
	}

	if !refresh && p.Exhausted() {
		log.Debug("pager.Begin", "skipped", "exhausted", "len", len(p.incidents), "total", p.total)
		return Request{}, false
	}

	page := p.page
	if refresh {
		page = firstPage
	}

	return p.start(Request{Page: page, Refresh: refresh}), true
}

// Retry re-issues the request that last failed
func (p *Pager) Retry() (Request, error) {
	if p.status != Failed || p.failed == nil {
		return Request{}, ErrNotFailed
	}
	r := *p.failed
	return p.start(Request{Page: r.Page, Refresh: r.Refresh}), nil
}

func (p *Pager) start(r Request) Request {
	p.seq++
	r.seq = p.seq
	p.pending = &r
	p.failed = nil
	p.err = nil
	p.status = Loading
	log.Debug("pager.start", "page", r.Page, "refresh", r.Refresh, "seq", r.seq)
	return r
}

// current reports whether r is the outstanding request
func (p *Pager) current(r Request) bool {
	return p.status == Loading && p.pending != nil && p.pending.seq == r.seq
}

// Complete applies the response to r. It returns false when r is not the
// outstanding request, in which case nothing changes.
func (p *Pager) Complete(r Request, page incidents.Page) bool {
	if !p.current(r) {
		log.Debug("pager.Complete", "dropped", "stale response", "page", r.Page, "seq", r.seq)
		return false
	}

	received := page.Incidents
	if r.Refresh {
		p.incidents = append([]incidents.Incident(nil), received...)
	} else {
		p.incidents = append(p.incidents, received...)
	}

	p.total = page.Total
	p.page = r.Page + 1

	switch {
	case len(p.incidents) > p.total:
		log.Warn("pager.Complete", "msg", "server sent more incidents than its total", "len", len(p.incidents), "total", p.total)
		p.incidents = p.incidents[:p.total]
	case !r.Refresh && len(received) == 0 && len(p.incidents) < p.total:
		log.Warn("pager.Complete", "msg", "empty page before total reached", "page", r.Page, "len", len(p.incidents), "total", p.total)
		p.total = len(p.incidents)
	}

	p.pending = nil
	p.status = Idle
	log.Debug("pager.Complete", "page", r.Page, "refresh", r.Refresh, "len", len(p.incidents), "total", p.total)
	return true
}

// Fail records that r failed. The accumulated list is kept and the loading
// guard is released so the request can be retried.
func (p *Pager) Fail(r Request, err error) bool {
	if !p.current(r) {
		log.Debug("pager.Fail", "dropped", "stale response", "page", r.Page, "seq", r.seq)
		return false
	}

	p.failed = p.pending
	p.pending = nil
	p.err = err
	p.status = Failed
	log.Error("pager.Fail", "page", r.Page, "refresh", r.Refresh, "error", err)
	return true
}

// Incidents returns a copy of the accumulated list
func (p *Pager) Incidents() []incidents.Incident {
	return append([]incidents.Incident(nil), p.incidents...)
}

func (p *Pager) Len() int       { return len(p.incidents) }
func (p *Pager) Total() int     { return p.total }
func (p *Pager) Page() int      { return p.page }
func (p *Pager) Status() Status { return p.status }
func (p *Pager) Err() error     { return p.err }
func (p *Pager) Loading() bool  { return p.status == Loading }

// Refreshing reports whether the outstanding request is a refresh
func (p *Pager) Refreshing() bool {
	return p.status == Loading && p.pending != nil && p.pending.Refresh
}

// Exhausted reports whether every incident the server announced is loaded.
// Before the first response nothing is known, so the list is never exhausted.
func (p *Pager) Exhausted() bool {
	return p.page > firstPage && len(p.incidents) >= p.total
}
