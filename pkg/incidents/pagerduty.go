package incidents

import (
	"context"
	"fmt"

	"github.com/PagerDuty/go-pagerduty"
	"github.com/charmbracelet/log"
)

const (
	defaultPageLimit = 25
)

var defaultIncidentStatuses = []string{"triggered", "acknowledged"}

// PagerDutyAPI is the subset of *pagerduty.Client used here. It makes it
// easier to mock calls to PagerDuty in tests.
type PagerDutyAPI interface {
	ListIncidentsWithContext(ctx context.Context, opts pagerduty.ListIncidentsOptions) (*pagerduty.ListIncidentsResponse, error)
}

// PagerDutyClient is a Source backed by the PagerDuty incidents API. Pages
// are translated to PagerDuty's limit/offset pagination.
type PagerDutyClient struct {
	Client PagerDutyAPI
	Teams  []string
	Limit  uint
}

var _ Source = (*PagerDutyClient)(nil)

func NewPagerDutyClient(token string, teams []string, limit int) *PagerDutyClient {
	c := &PagerDutyClient{
		Client: pagerduty.NewClient(token),
		Teams:  teams,
		Limit:  defaultPageLimit,
	}
	if limit > 0 {
		c.Limit = uint(limit)
	}
	return c
}

// listOpts builds the options for a 1-indexed page
func (c *PagerDutyClient) listOpts(page int) pagerduty.ListIncidentsOptions {
	if page < 1 {
		page = 1
	}
	limit := c.Limit
	if limit == 0 {
		limit = defaultPageLimit
	}
	return pagerduty.ListIncidentsOptions{
		Limit:    limit,
		Offset:   uint(page-1) * limit,
		Total:    true,
		Statuses: defaultIncidentStatuses,
		TeamIDs:  c.Teams,
	}
}

func (c *PagerDutyClient) ListIncidents(ctx context.Context, page int) (Page, error) {
	opts := c.listOpts(page)

	response, err := c.Client.ListIncidentsWithContext(ctx, opts)
	if err != nil {
		return Page{}, fmt.Errorf("incidents.PagerDutyClient.ListIncidents(): failed to get incidents: %w", err)
	}

	p := Page{Number: page, Total: int(response.Total)}
	for _, i := range response.Incidents {
		p.Incidents = append(p.Incidents, fromPagerDuty(i))
	}

	// Total is only set when requested; fall back to what More implies
	if response.Total == 0 && len(p.Incidents) > 0 {
		p.Total = int(opts.Offset) + len(p.Incidents)
		if response.More {
			p.Total++
		}
	}

	log.Debug("incidents.PagerDutyClient.ListIncidents", "offset", opts.Offset, "count", len(p.Incidents), "total", p.Total)
	return p, nil
}

func fromPagerDuty(i pagerduty.Incident) Incident {
	return Incident{
		ID:          ID(i.ID),
		Name:        i.Service.Summary,
		Title:       i.Title,
		Description: i.Summary,
	}
}
