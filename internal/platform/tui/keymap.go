package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

// PlayKeyMap defines the key bindings for the play session.
type PlayKeyMap struct {
	Fish     key.Binding
	Prestige key.Binding
	Haven    key.Binding
	Save     key.Binding
	Dismiss  key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k PlayKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Fish, k.Prestige, k.Haven, k.Save, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k PlayKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Fish, k.Prestige, k.Haven},
		{k.Save, k.Dismiss, k.Quit},
	}
}

// DefaultPlayKeyMap returns default key bindings.
func DefaultPlayKeyMap() PlayKeyMap {
	return PlayKeyMap{
		Fish: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "fish"),
		),
		Prestige: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "prestige"),
		),
		Haven: key.NewBinding(
			key.WithKeys("h"),
			key.WithHelp("h", "build haven"),
		),
		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("^s", "save"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("enter", "esc"),
			key.WithHelp("enter", "dismiss"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}
