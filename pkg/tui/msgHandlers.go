package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/clcollins/hero/pkg/incidents"
	"github.com/clcollins/hero/pkg/tui/style"
)

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.windowSizeMsgHandler(msg)

	case tea.KeyMsg:
		return m.keyMsgHandler(msg)

	case errMsg:
		return m.errMsgHandler(msg)

	case loadPageMsg:
		return m.loadPageMsgHandler(msg)

	case retryLoadMsg:
		return m.retryLoadMsgHandler()

	case gotPageMsg:
		return m.gotPageMsgHandler(msg)

	case animationFrameMsg:
		return m.animationFrameMsgHandler(msg)

	case spinner.TickMsg:
		if !m.pager.Loading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case navigateMsg:
		return m.navigateMsgHandler(msg)

	case renderedIncidentMsg:
		if msg.err != nil {
			return m, func() tea.Msg { return errMsg{msg.err} }
		}
		m.incidentViewer.SetContent(msg.content)
		m.incidentViewer.GotoTop()
		return m, nil

	case openBrowserMsg:
		if m.selectedIncident == nil {
			return m, doIfIncidentHighlighted(&m, func(i incidents.Incident) tea.Cmd {
				return openBrowserCmd(m.launcher, i.ID)
			})
		}
		return m, openBrowserCmd(m.launcher, m.selectedIncident.ID)

	case browserFinishedMsg:
		if msg.err != nil {
			return m, func() tea.Msg { return errMsg{msg.err} }
		}
		m.setStatus("opened incident in browser")
		return m, nil
	}

	return m, nil
}

// errMsgHandler is the message handler for the errMsg message
func (m model) errMsgHandler(msg errMsg) (tea.Model, tea.Cmd) {
	log.Debug("errMsgHandler", "error", msg.error)
	m.setStatus(msg.Error())
	m.err = msg
	return m, nil
}

// windowSizeMsgHandler is the message handler for the windowSizeMsg message
// and resizes the tui according to the new terminal window size
func (m model) windowSizeMsgHandler(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	log.Debug("windowSizeMsgHandler", "width", msg.Width, "height", msg.Height)
	top, _, bottom, _ := style.Main.GetMargin()
	borderEdges := 2 + 2*style.HorizontalPadding

	// header, footer and help take a fixed number of lines
	chrome := 3 + 2 + 2 + 3
	height := max(msg.Height-top-bottom-chrome, 3)
	width := max(msg.Width-borderEdges, 20)

	m.help.Width = width
	m.table.SetColumns(incidentColumns(width))
	m.table.SetHeight(height)
	m.incidentViewer.Width = width
	m.incidentViewer.Height = height

	// a taller view may have room for more rows
	return m, m.maybeLoadMore()
}

func (m model) loadPageMsgHandler(msg loadPageMsg) (tea.Model, tea.Cmd) {
	if m.source == nil {
		return m, nil
	}

	r, ok := m.pager.Begin(msg.refresh)
	if !ok {
		return m, nil
	}

	if r.Refresh {
		m.setStatus(refreshingIncidentsStatus)
	} else {
		m.setStatus(fmt.Sprintf("%s (página %d)", loadingIncidentsStatus, r.Page))
	}

	return m, tea.Batch(m.timedFetch(r), m.spinner.Tick)
}

func (m model) retryLoadMsgHandler() (tea.Model, tea.Cmd) {
	r, err := m.pager.Retry()
	if err != nil {
		log.Debug("retryLoadMsgHandler", "error", err)
		return m, nil
	}

	m.setStatus(fmt.Sprintf("tentando novamente (página %d)", r.Page))
	return m, tea.Batch(m.timedFetch(r), m.spinner.Tick)
}

func (m model) gotPageMsgHandler(msg gotPageMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		if m.pager.Fail(msg.req, msg.err) {
			m.setStatus(msg.err.Error())
		}
		return m, nil
	}

	if !m.pager.Complete(msg.req, msg.page) {
		return m, nil
	}

	if msg.req.Refresh {
		m.entrance.reset()
	}

	m.table.SetRows(incidentRows(m.pager.Incidents()))
	if msg.req.Refresh {
		m.table.GotoTop()
	}

	m.metrics.SetListSize(m.pager.Len(), m.pager.Total())
	m.setStatus(m.listStatus())

	return m, tea.Batch(m.startEntrance(time.Now()), m.maybeLoadMore())
}

func (m model) animationFrameMsgHandler(msg animationFrameMsg) (tea.Model, tea.Cmd) {
	if msg.id != m.entrance.id {
		return m, nil
	}
	if m.entrance.step(msg.time) {
		return m, nextFrame(m.entrance.id)
	}
	return m, nil
}

func (m model) navigateMsgHandler(msg navigateMsg) (tea.Model, tea.Cmd) {
	switch msg.screen {
	case DetailScreen:
		i := msg.incident
		m.selectedIncident = &i
		m.screen = DetailScreen
		m.setStatus(fmt.Sprintf("caso %s", i.ID))
		return m, renderIncident(&m)

	case ListScreen:
		m.clearSelectedIncident("navigate")
	}
	return m, nil
}

// maybeLoadMore issues the next page load when the end of the list is near
func (m model) maybeLoadMore() tea.Cmd {
	if m.screen != ListScreen || !m.endReached() {
		return nil
	}
	if m.pager.Loading() || m.pager.Exhausted() {
		return nil
	}
	return func() tea.Msg { return loadPageMsg{} }
}

func (m model) keyMsgHandler(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	log.Debug("keyMsgHandler", "tea.KeyMsg", msg.String())
	if key.Matches(msg, defaultKeyMap.Quit) {
		m.cancel()
		return m, tea.Quit
	}

	switch {
	case m.err != nil:
		return switchErrorFocusMode(m, msg)

	case m.screen == DetailScreen:
		return switchIncidentFocusMode(m, msg)

	case m.table.Focused():
		return switchTableFocusMode(m, msg)
	}

	return m, nil
}

// switchTableFocusMode is the main mode for the application
func switchTableFocusMode(m model, msg tea.Msg) (tea.Model, tea.Cmd) {
	log.Debug("switchTableFocusMode")
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, defaultKeyMap.Help):
			m.toggleHelp()

		case key.Matches(msg, defaultKeyMap.Up):
			m.table.MoveUp(1)

		case key.Matches(msg, defaultKeyMap.Down):
			m.table.MoveDown(1)
			cmds = append(cmds, m.maybeLoadMore())

		case key.Matches(msg, defaultKeyMap.Top):
			m.table.GotoTop()

		case key.Matches(msg, defaultKeyMap.Bottom):
			m.table.GotoBottom()
			cmds = append(cmds, m.maybeLoadMore())

		case key.Matches(msg, defaultKeyMap.Enter):
			return m, doIfIncidentHighlighted(&m, func(i incidents.Incident) tea.Cmd {
				return m.router.Navigate(DetailScreen, i)
			})

		case key.Matches(msg, defaultKeyMap.Open):
			return m, func() tea.Msg { return openBrowserMsg("incident") }

		case key.Matches(msg, defaultKeyMap.Refresh):
			cmds = append(cmds, func() tea.Msg { return loadPageMsg{refresh: true} })

		case key.Matches(msg, defaultKeyMap.Retry):
			cmds = append(cmds, func() tea.Msg { return retryLoadMsg{} })
		}
	}
	return m, tea.Batch(cmds...)
}

func switchIncidentFocusMode(m model, msg tea.Msg) (tea.Model, tea.Cmd) {
	log.Debug("switchIncidentFocusMode")
	var cmd tea.Cmd
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, defaultKeyMap.Help):
			m.toggleHelp()

		// This un-sets the selected incident and returns to the table view
		case key.Matches(msg, defaultKeyMap.Back):
			m.clearSelectedIncident("back")
			return m, nil

		case key.Matches(msg, defaultKeyMap.Open):
			return m, func() tea.Msg { return openBrowserMsg("incident") }
		}
	}

	m.incidentViewer, cmd = m.incidentViewer.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func switchErrorFocusMode(m model, msg tea.Msg) (tea.Model, tea.Cmd) {
	log.Debug("switchErrorFocusMode")
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, defaultKeyMap.Back):
			m.err = nil
		}
	}
	return m, nil
}
