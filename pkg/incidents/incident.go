package incidents

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/go-playground/validator/v10"
)

// brlFormat renders thousands with '.' and cents with ','
const brlFormat = "#.###,##"

var (
	ErrBadResponse  = errors.New("incidents: bad response")
	ErrMissingTotal = errors.New("incidents: missing total count")
)

var validate = validator.New()

// ID is an opaque incident identifier. Some backends send integers, others
// strings; both decode to the same textual form.
type ID string

func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("incident id %s: %w", b, err)
	}
	*id = ID(n.String())
	return nil
}

func (id ID) String() string { return string(id) }

// Incident is a case published by an NGO. Name is the NGO's name, Title the
// case title and Value the amount of money the NGO needs.
type Incident struct {
	ID          ID      `json:"id" validate:"required"`
	Name        string  `json:"name" validate:"required"`
	Title       string  `json:"title" validate:"required"`
	Value       float64 `json:"value" validate:"gte=0"`
	Description string  `json:"description,omitempty"`
	Email       string  `json:"email,omitempty" validate:"omitempty,email"`
	WhatsApp    string  `json:"whatsapp,omitempty"`
	City        string  `json:"city,omitempty"`
	UF          string  `json:"uf,omitempty"`
}

// Validate checks the fields every source must provide
func (i Incident) Validate() error {
	return validate.Struct(i)
}

// Page is one response from a Source. Total is the server's count of all
// incidents, not just the ones on this page.
type Page struct {
	Number    int
	Incidents []Incident
	Total     int
}

// Source fetches one page of incidents. Pages are numbered from 1.
type Source interface {
	ListIncidents(ctx context.Context, page int) (Page, error)
}

// FormatValue renders an amount as Brazilian Real, e.g. "R$ 1.234,50"
func FormatValue(v float64) string {
	if v < 0 {
		return "-R$ " + humanize.FormatFloat(brlFormat, -v)
	}
	return "R$ " + humanize.FormatFloat(brlFormat, v)
}

// parseTotal reads the total-count header value
func parseTotal(s string) (int, error) {
	if s == "" {
		return 0, ErrMissingTotal
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", ErrMissingTotal, s, err)
	}
	if n < 0 {
		return 0, fmt.Errorf("%w: negative total %d", ErrMissingTotal, n)
	}
	return n, nil
}
