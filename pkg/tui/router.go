package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/clcollins/hero/pkg/incidents"
)

// Screen names a destination the Router can show
type Screen string

const (
	ListScreen   Screen = "Incidents"
	DetailScreen Screen = "Detail"
)

// Router hands an incident to the named screen. The record is passed
// through untouched.
type Router interface {
	Navigate(screen Screen, incident incidents.Incident) tea.Cmd
}

type navigateMsg struct {
	screen   Screen
	incident incidents.Incident
}

// msgRouter navigates by sending a navigateMsg back into the program
type msgRouter struct{}

func (msgRouter) Navigate(screen Screen, incident incidents.Incident) tea.Cmd {
	return func() tea.Msg {
		return navigateMsg{screen: screen, incident: incident}
	}
}
