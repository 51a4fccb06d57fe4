package tui

import "github.com/charmbracelet/bubbles/key"

type KeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Top     key.Binding
	Bottom  key.Binding
	Quit    key.Binding
	Help    key.Binding
	Back    key.Binding
	Refresh key.Binding
	Retry   key.Binding
	Enter   key.Binding
	Open    key.Binding
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit, k.Enter, k.Refresh}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Top, k.Bottom},
		{k.Enter, k.Open, k.Back},
		{k.Refresh, k.Retry, k.Help, k.Quit},
	}
}

var defaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp(upArrow+"/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp(downArrow+"/j", "down"),
	),
	Top: key.NewBinding(
		key.WithKeys("g", "home"),
		key.WithHelp("g/home", "top"),
	),
	Bottom: key.NewBinding(
		key.WithKeys("G", "end"),
		key.WithHelp("G/end", "bottom"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q/ctrl+c", "quit"),
	),
	Help: key.NewBinding(
		key.WithKeys("h", "?"),
		key.WithHelp("h", "help"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "refresh"),
	),
	Retry: key.NewBinding(
		key.WithKeys("R"),
		key.WithHelp("R", "retry"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "view details"),
	),
	Open: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "open in browser"),
	),
}

type detailKeys struct{}

func (detailKeys) ShortHelp() []key.Binding {
	return []key.Binding{defaultKeyMap.Back, defaultKeyMap.Open, defaultKeyMap.Quit}
}

func (detailKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{defaultKeyMap.Up, defaultKeyMap.Down},
		{defaultKeyMap.Back, defaultKeyMap.Open, defaultKeyMap.Help, defaultKeyMap.Quit},
	}
}

var detailKeyMap = detailKeys{}

type errorKeys struct{}

func (errorKeys) ShortHelp() []key.Binding {
	return []key.Binding{defaultKeyMap.Back, defaultKeyMap.Quit}
}

func (errorKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{{defaultKeyMap.Back, defaultKeyMap.Quit}}
}

var errorViewKeyMap = errorKeys{}
