package launcher

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

const incidentIDVar = "%%INCIDENT_ID%%"

var ErrNotConfigured = errors.New("browser launcher is not configured")

// BrowserLauncher builds the command that opens an incident's page in a
// browser. The detail URL is a template containing %%INCIDENT_ID%%.
type BrowserLauncher struct {
	Enabled   bool
	browser   []string
	detailURL string
}

func NewBrowserLauncher(browser string, detailURL string) (BrowserLauncher, error) {
	launcher := BrowserLauncher{
		browser:   strings.Fields(browser),
		detailURL: detailURL,
	}

	err := launcher.validate()
	if err != nil {
		return BrowserLauncher{}, err
	}

	return launcher, nil
}

func (l *BrowserLauncher) validate() error {
	errs := []error{}

	if len(l.browser) == 0 {
		errs = append(errs, fmt.Errorf("browser is not set"))
	}

	if l.detailURL == "" {
		errs = append(errs, fmt.Errorf("detail_url is not set"))
	}

	if len(l.browser) > 0 && strings.Contains(l.browser[0], "%%") {
		errs = append(errs, fmt.Errorf("first browser argument cannot have a replaceable"))
	}

	if l.detailURL != "" && !strings.Contains(l.detailURL, incidentIDVar) {
		errs = append(errs, fmt.Errorf("detail_url must contain %s", incidentIDVar))
	}

	if len(errs) > 0 {
		return fmt.Errorf("launcher error: %w", errors.Join(errs...))
	}

	l.Enabled = true
	return nil
}

// BuildOpenCommand returns the browser command followed by the incident URL
func (l *BrowserLauncher) BuildOpenCommand(id string) ([]string, error) {
	if !l.Enabled {
		return nil, ErrNotConfigured
	}

	command := []string{}

	// The first arg should not be something replaceable, as checked in the
	// validate function
	command = append(command, l.browser[0])
	command = append(command, replaceVars(l.browser[1:], id)...)
	command = append(command, l.URL(id))

	return command, nil
}

// URL fills the incident ID into the detail URL template
func (l *BrowserLauncher) URL(id string) string {
	return strings.ReplaceAll(l.detailURL, incidentIDVar, url.PathEscape(id))
}

func replaceVars(args []string, id string) []string {
	transformedArgs := []string{}
	for _, str := range args {
		transformedArgs = append(transformedArgs, strings.ReplaceAll(str, incidentIDVar, id))
	}
	return transformedArgs
}
