package style

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

var (
	white         = lipgloss.AdaptiveColor{Dark: "#ffffff", Light: "#13131a"}
	red           = lipgloss.AdaptiveColor{Dark: "#e02041", Light: "#e02041"}
	gray          = lipgloss.AdaptiveColor{Dark: "#737380", Light: "#737380"}
	lightGray     = lipgloss.AdaptiveColor{Dark: "#a8a8b3", Light: "#41414d"}
	selectedBg    = lipgloss.AdaptiveColor{Dark: "#41414d", Light: "#dcdce6"}
	backgroundRed = lipgloss.AdaptiveColor{Dark: "#a4133c", Light: "#a4133c"}
)

// Fade is the ramp used to fade the list in, from invisible to full text
var Fade = []lipgloss.AdaptiveColor{
	{Dark: "#13131a", Light: "#f0f0f5"},
	{Dark: "#41414d", Light: "#dcdce6"},
	gray,
	lightGray,
	white,
}

const HorizontalPadding = 1

var (
	Main = lipgloss.NewStyle().Padding(0, HorizontalPadding)

	Logo = lipgloss.NewStyle().Bold(true).Foreground(red)

	HeaderText = lipgloss.NewStyle().Foreground(gray)

	HeaderBold = lipgloss.NewStyle().Bold(true).Foreground(lightGray)

	Title = lipgloss.NewStyle().Foreground(white)

	Description = lipgloss.NewStyle().Foreground(gray)

	TableContainer = lipgloss.NewStyle().Border(lipgloss.RoundedBorder(), true).BorderForeground(gray)

	Table = table.Styles{
		Selected: lipgloss.NewStyle().Bold(true).Foreground(white).Background(selectedBg),
		Header:   lipgloss.NewStyle().Bold(true).Padding(0, 1).BorderStyle(lipgloss.NormalBorder()).BorderForeground(gray).BorderBottom(true).Foreground(lightGray),
		Cell:     lipgloss.NewStyle().Padding(0, 1),
	}

	Status = lipgloss.NewStyle().Foreground(lightGray).Padding(0, HorizontalPadding)

	Warning = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Background(backgroundRed).Padding(0, HorizontalPadding)

	Help = lipgloss.NewStyle().Foreground(gray).Padding(0, HorizontalPadding)

	IncidentViewer = lipgloss.NewStyle().Border(lipgloss.RoundedBorder(), true).BorderForeground(gray)

	Error = lipgloss.NewStyle().
		Bold(true).
		Width(64).
		Foreground(white).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(red).
		Padding(1, 3, 1, 3)
)
