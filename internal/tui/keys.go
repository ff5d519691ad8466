package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Clock      key.Binding
	ResetClock key.Binding
	Edit       key.Binding
	Add        key.Binding
	Remove     key.Binding
	NewGroup   key.Binding
	Move       key.Binding
	Ungroup    key.Binding
	MoveUp     key.Binding
	MoveDown   key.Binding
	Viewer     key.Binding
	Export     key.Binding
	EndSession key.Binding
	Tab1       key.Binding
	Tab2       key.Binding
	Tab3       key.Binding
	Tab        key.Binding
	Help       key.Binding
	Enter      key.Binding
	Back       key.Binding
	Up         key.Binding
	Down       key.Binding
	Quit       key.Binding
}

var keys = keyMap{
	Clock: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "clock in/out"),
	),
	ResetClock: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "reset clock"),
	),
	Edit: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "edit"),
	),
	Add: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "add stream"),
	),
	Remove: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "remove"),
	),
	NewGroup: key.NewBinding(
		key.WithKeys("g"),
		key.WithHelp("g", "new group"),
	),
	Move: key.NewBinding(
		key.WithKeys("m"),
		key.WithHelp("m", "move to group"),
	),
	Ungroup: key.NewBinding(
		key.WithKeys("u"),
		key.WithHelp("u", "ungroup"),
	),
	MoveUp: key.NewBinding(
		key.WithKeys("K", "shift+up"),
		key.WithHelp("K", "move up"),
	),
	MoveDown: key.NewBinding(
		key.WithKeys("J", "shift+down"),
		key.WithHelp("J", "move down"),
	),
	Viewer: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "viewer url"),
	),
	Export: key.NewBinding(
		key.WithKeys("E"),
		key.WithHelp("E", "export"),
	),
	EndSession: key.NewBinding(
		key.WithKeys("Q"),
		key.WithHelp("Q", "end session"),
	),
	Tab1: key.NewBinding(
		key.WithKeys("1"),
		key.WithHelp("1", "wall"),
	),
	Tab2: key.NewBinding(
		key.WithKeys("2"),
		key.WithHelp("2", "reports"),
	),
	Tab3: key.NewBinding(
		key.WithKeys("3"),
		key.WithHelp("3", "settings"),
	),
	Tab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next view"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "open"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back"),
	),
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Clock, k.Edit, k.Add, k.NewGroup, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Clock, k.ResetClock, k.Edit, k.Viewer},
		{k.Add, k.Remove, k.MoveUp, k.MoveDown},
		{k.NewGroup, k.Move, k.Ungroup, k.Export},
		{k.Tab1, k.Tab2, k.Tab3, k.EndSession},
		{k.Up, k.Down, k.Enter, k.Back, k.Quit},
	}
}
