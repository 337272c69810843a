package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
)

// keyMap holds the TUI key bindings. It implements help.KeyMap.
type keyMap struct {
	Up          key.Binding
	Down        key.Binding
	Select      key.Binding
	CycleInput  key.Binding
	CycleOutput key.Binding
	Refresh     key.Binding
	Copy        key.Binding
	Theme       key.Binding
	About       key.Binding
	Close       key.Binding
	Help        key.Binding
	Quit        key.Binding
}

var keys = keyMap{
	Up:          key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:        key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Select:      key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "select")),
	CycleInput:  key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "next input")),
	CycleOutput: key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "next output")),
	Refresh:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	Copy:        key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy name")),
	Theme:       key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
	About:       key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "about")),
	Close:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
	Help:        key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
	Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Select, k.CycleInput, k.CycleOutput, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select},
		{k.CycleInput, k.CycleOutput, k.Refresh},
		{k.Copy, k.Theme, k.About},
		{k.Help, k.Quit},
	}
}

func newHelp() help.Model {
	h := help.New()
	h.Width = panelContentWidth
	h.Styles = helpStyles()
	return h
}

func helpStyles() help.Styles {
	return help.Styles{
		Ellipsis:       quitStyle,
		ShortKey:       hotkeyStyle,
		ShortDesc:      quitStyle,
		ShortSeparator: debugSepStyle,
		FullKey:        hotkeyStyle,
		FullDesc:       quitStyle,
		FullSeparator:  debugSepStyle,
	}
}
