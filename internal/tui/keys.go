package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Duration key.Binding
	Reset    key.Binding
	Restart  key.Binding
	Theme    key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Duration: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "duration")),
		Reset:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "new test")),
		Restart:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "restart")),
		Theme:    key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "theme")),
		Quit:     key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Duration, k.Reset, k.Restart, k.Theme, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
