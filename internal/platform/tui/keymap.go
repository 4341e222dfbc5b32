package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines the viewer key bindings.
type KeyMap struct {
	Reset  key.Binding
	Zones  key.Binding
	Detail key.Binding
	Help   key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Reset, k.Zones, k.Detail, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Reset, k.Zones, k.Detail},
		{k.Help, k.Quit},
	}
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset run"),
		),
		Zones: key.NewBinding(
			key.WithKeys("z"),
			key.WithHelp("z", "free bands"),
		),
		Detail: key.NewBinding(
			key.WithKeys("tab", "d"),
			key.WithHelp("tab", "band table"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c", "esc"),
			key.WithHelp("q", "quit"),
		),
	}
}

// SpectatorKeyMap returns bindings for viewers that may not reset the run.
func SpectatorKeyMap() KeyMap {
	k := DefaultKeyMap()
	k.Reset.SetEnabled(false)
	return k
}
