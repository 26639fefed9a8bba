package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap contains the key bindings of the watch dashboard
type KeyMap struct {
	Destroy       key.Binding
	Detach        key.Binding
	Down          key.Binding
	Help          key.Binding
	Quit          key.Binding
	Refresh       key.Binding
	ToggleOrphans key.Binding
	Up            key.Binding
}

// NewKeyMap creates the default key bindings
func NewKeyMap() KeyMap {
	return KeyMap{
		Destroy: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "destroy"),
		),
		Detach: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "detach"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		ToggleOrphans: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "toggle untracked"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
	}
}

// ShortHelp returns the bindings shown in the bottom bar
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Refresh, k.ToggleOrphans, k.Help, k.Quit}
}

// FullHelp returns every binding grouped by purpose
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Detach, k.Destroy},
		{k.Refresh, k.ToggleOrphans},
		{k.Help, k.Quit},
	}
}
