package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Left, Right, Up, Down             key.Binding
	SelLeft, SelRight, SelUp, SelDown key.Binding
	Backspace, Enter                  key.Binding
	Toggle, Menu, Close, Save, Quit   key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Left:      key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "left")),
		Right:     key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "right")),
		Up:        key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "up")),
		Down:      key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "down")),
		SelLeft:   key.NewBinding(key.WithKeys("shift+left")),
		SelRight:  key.NewBinding(key.WithKeys("shift+right")),
		SelUp:     key.NewBinding(key.WithKeys("shift+up")),
		SelDown:   key.NewBinding(key.WithKeys("shift+down")),
		Backspace: key.NewBinding(key.WithKeys("backspace")),
		Enter:     key.NewBinding(key.WithKeys("enter")),
		Toggle:    key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "spelling")),
		Menu:      key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("ctrl+o", "suggest")),
		Close:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		Save:      key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		Quit:      key.NewBinding(key.WithKeys("ctrl+q"), key.WithHelp("ctrl+q", "quit")),
	}
}

func (k keyMap) help() []key.Binding {
	return []key.Binding{k.Toggle, k.Menu, k.Save, k.Quit}
}
