package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/clcollins/hero/pkg/incidents"
	"github.com/clcollins/hero/pkg/launcher"
	"github.com/clcollins/hero/pkg/metrics"
	"github.com/clcollins/hero/pkg/pager"
)

// Options carries the collaborators of the incident list screen
type Options struct {
	Source     incidents.Source
	SourceName string
	Metrics    *metrics.Metrics
	Launcher   launcher.BrowserLauncher
	// Router defaults to switching screens inside this program
	Router Router
	// Err is shown in the error view instead of loading anything
	Err   error
	Debug bool
}

type model struct {
	err error

	ctx    context.Context
	cancel context.CancelFunc

	source     incidents.Source
	sourceName string
	metrics    *metrics.Metrics
	launcher   launcher.BrowserLauncher
	router     Router

	// pager is shared between copies of the model; only Update touches it
	pager *pager.Pager

	table            table.Model
	incidentViewer   viewport.Model
	help             help.Model
	spinner          spinner.Model
	markdownRenderer *glamour.TermRenderer

	screen           Screen
	selectedIncident *incidents.Incident

	entrance entrance

	status string
	debug  bool
}

func InitialModel(opts Options) model {
	s := spinner.New()
	s.Spinner = spinner.MiniDot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	// Create markdown renderer once - reusing it is much faster than creating new ones
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(initialTableWidth),
	)
	if err != nil {
		log.Error("InitialModel", "failed to create markdown renderer", err)
		// Continue without renderer - rendering will fall back to plain text
		renderer = nil
	}

	router := opts.Router
	if router == nil {
		router = msgRouter{}
	}

	ctx, cancel := context.WithCancel(context.Background())

	m := model{
		err:              opts.Err,
		ctx:              ctx,
		cancel:           cancel,
		source:           opts.Source,
		sourceName:       opts.SourceName,
		metrics:          opts.Metrics,
		launcher:         opts.Launcher,
		router:           router,
		pager:            pager.New(),
		table:            newTableWithStyles(),
		incidentViewer:   newIncidentViewer(),
		help:             newHelp(),
		spinner:          s,
		markdownRenderer: renderer,
		screen:           ListScreen,
		entrance:         newEntrance(),
		debug:            opts.Debug,
	}

	if m.source == nil && m.err == nil {
		m.err = errNoSource
	}

	log.Debug("InitialModel", "source", m.sourceName, "err", m.err)
	return m
}

func (m model) Init() tea.Cmd {
	if m.err != nil {
		return nil
	}
	return func() tea.Msg { return loadPageMsg{} }
}

func (m *model) setStatus(msg string) {
	log.Info("setStatus", "status", msg)
	m.status = msg
}

func (m *model) toggleHelp() {
	m.help.ShowAll = !m.help.ShowAll
}

func (m *model) clearSelectedIncident(reason interface{}) {
	if m.selectedIncident != nil {
		log.Debug("clearSelectedIncident", "selectedIncident", m.selectedIncident.ID, "reason", reason)
	}
	m.selectedIncident = nil
	m.screen = ListScreen
	m.incidentViewer.SetContent("")
}

// getHighlightedIncident returns the incident for the highlighted table row
// by looking it up in the pager's list. Returns nil if no row is highlighted
// or the incident is not found.
func (m *model) getHighlightedIncident() *incidents.Incident {
	row := m.table.SelectedRow()
	if row == nil {
		return nil
	}

	id := incidents.ID(row[0]) // Column [0] is the incident ID

	l := m.pager.Incidents()
	for i := range l {
		if l[i].ID == id {
			return &l[i]
		}
	}

	log.Debug("getHighlightedIncident", "incident not found in list", id)
	return nil
}

// scrollOffset is the list's scroll position in the units the header
// animation ranges are expressed in
func (m model) scrollOffset() float64 {
	return float64(m.table.Cursor()) * scrollStep
}

// endReached mirrors an end-reached threshold of 0.2: it fires when the
// cursor is within a fifth of the visible rows from the last loaded row, or
// when the loaded rows do not fill the view yet.
func (m model) endReached() bool {
	rows := len(m.table.Rows())
	if rows == 0 {
		return false
	}
	height := max(m.table.Height(), 1)
	threshold := max(1, (height+endReachedDivisor-1)/endReachedDivisor)
	remaining := rows - 1 - m.table.Cursor()
	return remaining < threshold || rows < height
}

const (
	scrollStep        = 10.0
	endReachedDivisor = 5
)

func (m *model) startEntrance(now time.Time) tea.Cmd {
	if !m.entrance.start(now) {
		return nil
	}
	return nextFrame(m.entrance.id)
}

func newHelp() help.Model {
	h := help.New()
	h.ShowAll = false
	return h
}

func newIncidentViewer() viewport.Model {
	vp := viewport.New(initialTableWidth, initialTableHeight)
	return vp
}
