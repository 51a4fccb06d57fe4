package incidents

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

const (
	incidentsPath    = "/incidents"
	totalCountHeader = "X-Total-Count"

	defaultRequestTimeout = 10 * time.Second
)

// Doer is the part of *http.Client used by RESTClient
type Doer interface {
	Do(*http.Request) (*http.Response, error)
}

// RESTClient reads incidents from an API that serves GET /incidents?page=N
// with a JSON array body and the total count in the X-Total-Count header.
type RESTClient struct {
	baseURL *url.URL
	client  Doer
}

var _ Source = (*RESTClient)(nil)

// NewRESTClient returns a client for the API rooted at baseURL. A nil doer
// gets an *http.Client with a default timeout.
func NewRESTClient(baseURL string, doer Doer) (*RESTClient, error) {
	u, err := url.Parse(strings.TrimSuffix(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("incidents.NewRESTClient(): invalid base url `%v`: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("incidents.NewRESTClient(): unsupported scheme in `%v`", baseURL)
	}

	if doer == nil {
		doer = &http.Client{Timeout: defaultRequestTimeout}
	}

	return &RESTClient{baseURL: u, client: doer}, nil
}

func (c *RESTClient) pageURL(page int) string {
	u := *c.baseURL
	u.Path += incidentsPath
	q := u.Query()
	q.Set("page", strconv.Itoa(page))
	u.RawQuery = q.Encode()
	return u.String()
}

// ListIncidents fetches a single page
func (c *RESTClient) ListIncidents(ctx context.Context, page int) (Page, error) {
	target := c.pageURL(page)
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return Page{}, fmt.Errorf("incidents.ListIncidents(): build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	res, err := c.client.Do(req)
	if err != nil {
		return Page{}, fmt.Errorf("incidents.ListIncidents(): page %d: %w", page, err)
	}
	defer func() {
		// drain so the connection can go back to the pool
		_, _ = io.Copy(io.Discard, res.Body)
		_ = res.Body.Close()
	}()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return Page{}, fmt.Errorf("%w: page %d: unexpected status %s", ErrBadResponse, page, res.Status)
	}

	total, err := parseTotal(res.Header.Get(totalCountHeader))
	if err != nil {
		return Page{}, fmt.Errorf("%w: page %d: %w", ErrBadResponse, page, err)
	}

	var list []Incident
	if err := json.NewDecoder(res.Body).Decode(&list); err != nil {
		return Page{}, fmt.Errorf("%w: page %d: decode body: %w", ErrBadResponse, page, err)
	}

	for n, i := range list {
		if err := i.Validate(); err != nil {
			return Page{}, fmt.Errorf("%w: page %d: incident %d: %w", ErrBadResponse, page, n, err)
		}
	}

	log.Debug("incidents.ListIncidents", "url", target, "count", len(list), "total", total, "dur", time.Since(start))

	return Page{Number: page, Incidents: list, Total: total}, nil
}
