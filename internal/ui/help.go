package ui

import (
	"github.com/charmbracelet/bubbles/key"
)

// keyMap lists the bindings shown in the help line. Key handling itself
// lives in the input modes.
type keyMap struct {
	Open    key.Binding
	Move    key.Binding
	Page    key.Binding
	Confirm key.Binding
	Dismiss key.Binding
	Inspect key.Binding
	Copy    key.Binding
	Help    key.Binding
	Quit    key.Binding

	open bool
}

func newKeyMap() *keyMap {
	return &keyMap{
		Open:    key.NewBinding(key.WithKeys("enter", " ", "down"), key.WithHelp("enter", "open")),
		Move:    key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑/↓", "move")),
		Page:    key.NewBinding(key.WithKeys("pgup", "pgdown"), key.WithHelp("pgup/pgdn", "page")),
		Confirm: key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter/space", "select")),
		Dismiss: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		Inspect: key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "inspect")),
		Copy:    key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap
func (k *keyMap) ShortHelp() []key.Binding {
	if k.open {
		return []key.Binding{k.Move, k.Confirm, k.Dismiss}
	}
	return []key.Binding{k.Open, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k *keyMap) FullHelp() [][]key.Binding {
	if k.open {
		return [][]key.Binding{{k.Move, k.Page}, {k.Confirm, k.Dismiss}}
	}
	return [][]key.Binding{{k.Open, k.Inspect, k.Copy}, {k.Help, k.Quit}}
}
