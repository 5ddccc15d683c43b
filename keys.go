package main

import "github.com/charmbracelet/bubbles/key"

// keyMap lists every binding; it also feeds the help line.
type keyMap struct {
	Open   key.Binding
	Save   key.Binding
	Remove key.Binding
	Play   key.Binding
	Theme  key.Binding
	Focus  key.Binding
	Back   key.Binding
	Help   key.Binding
	Quit   key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "look up"),
		),
		Save: key.NewBinding(
			key.WithKeys("ctrl+s", "s"),
			key.WithHelp("ctrl+s", "save word"),
		),
		Remove: key.NewBinding(
			key.WithKeys("d", "delete"),
			key.WithHelp("d", "remove favorite"),
		),
		Play: key.NewBinding(
			key.WithKeys("ctrl+p", "p"),
			key.WithHelp("ctrl+p", "pronounce"),
		),
		Theme: key.NewBinding(
			key.WithKeys("ctrl+t", "t"),
			key.WithHelp("ctrl+t", "theme"),
		),
		Focus: key.NewBinding(
			key.WithKeys("tab", "shift+tab"),
			key.WithHelp("tab", "switch pane"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more keys"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Open, k.Save, k.Focus, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Open, k.Save, k.Remove},
		{k.Play, k.Theme, k.Focus},
		{k.Back, k.Help, k.Quit},
	}
}
