package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/clcollins/hero/pkg/incidents"
	"github.com/clcollins/hero/pkg/launcher"
	"github.com/clcollins/hero/pkg/pager"
)

const (
	loadingIncidentsStatus    = "carregando casos..."
	refreshingIncidentsStatus = "atualizando casos..."
	nilIncidentErr            = "no incident highlighted"
)

var errNoSource = errors.New("tui: no incident source configured")

// Type and function for capturing error messages with tea.Msg
type errMsg struct{ error }

// loadPageMsg asks for the next page, or for the first page again when
// refresh is set
type loadPageMsg struct {
	refresh bool
}

type retryLoadMsg struct{}

type gotPageMsg struct {
	req  pager.Request
	page incidents.Page
	err  error
}

// fetchPage performs r against the source. The fetch runs outside the
// event loop; its outcome is handed back to the pager by Update.
func fetchPage(ctx context.Context, src incidents.Source, r pager.Request) tea.Cmd {
	return func() tea.Msg {
		log.Debug("tui.fetchPage", "page", r.Page, "refresh", r.Refresh)
		page, err := src.ListIncidents(ctx, r.Page)
		if err != nil {
			return gotPageMsg{req: r, err: fmt.Errorf("tui.fetchPage(): page %d: %w", r.Page, err)}
		}
		return gotPageMsg{req: r, page: page}
	}
}

// timedFetch wraps fetchPage to record the fetch in the metrics
func (m model) timedFetch(r pager.Request) tea.Cmd {
	fetch := fetchPage(m.ctx, m.source, r)
	return func() tea.Msg {
		start := time.Now()
		msg := fetch()
		if got, ok := msg.(gotPageMsg); ok {
			m.metrics.ObserveFetch(m.sourceName, time.Since(start), got.err)
		}
		return msg
	}
}

type renderedIncidentMsg struct {
	content string
	err     error
}

func renderIncident(m *model) tea.Cmd {
	if m.selectedIncident == nil {
		return func() tea.Msg { return errMsg{errors.New(nilIncidentErr)} }
	}
	incident := *m.selectedIncident
	renderer := m.markdownRenderer

	return func() tea.Msg {
		t, err := incidentMarkdown(incident)
		if err != nil {
			return errMsg{err}
		}

		content, err := renderIncidentMarkdown(renderer, t)
		return renderedIncidentMsg{content, err}
	}
}

type browserFinishedMsg struct {
	err error
}

type openBrowserMsg string

func openBrowserCmd(l launcher.BrowserLauncher, id incidents.ID) tea.Cmd {
	command, err := l.BuildOpenCommand(id.String())
	if err != nil {
		log.Debug("tui.openBrowserCmd", "error", err)
		return func() tea.Msg {
			return browserFinishedMsg{err}
		}
	}

	c := exec.Command(command[0], command[1:]...)
	log.Debug("tui.openBrowserCmd", "command", c.String())

	stderr, pipeErr := c.StderrPipe()
	if pipeErr != nil {
		log.Debug("tui.openBrowserCmd", "error", pipeErr)
		return func() tea.Msg {
			return browserFinishedMsg{err: pipeErr}
		}
	}

	return func() tea.Msg {
		if err := c.Start(); err != nil {
			log.Debug("tui.openBrowserCmd", "error", err)
			return browserFinishedMsg{err}
		}

		out, err := io.ReadAll(stderr)
		if err != nil {
			log.Debug("tui.openBrowserCmd", "error", err)
			return browserFinishedMsg{err}
		}

		if err := c.Wait(); err != nil {
			return browserFinishedMsg{fmt.Errorf("tui.openBrowserCmd(): %w: %s", err, out)}
		}

		if len(out) > 0 {
			log.Debug("tui.openBrowserCmd", "stderr", string(out))
		}
		return browserFinishedMsg{}
	}
}

// doIfIncidentHighlighted runs cmd with the highlighted incident, or reports
// an error when the table has no rows
func doIfIncidentHighlighted(m *model, cmd func(incidents.Incident) tea.Cmd) tea.Cmd {
	i := m.getHighlightedIncident()
	if i == nil {
		log.Debug("doIfIncidentHighlighted", "highlighted", "nil")
		m.setStatus(nilIncidentErr)
		return func() tea.Msg { return errMsg{errors.New(nilIncidentErr)} }
	}
	return cmd(*i)
}
