package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the dashboard key bindings. Every binding except Quit is
// ignored while a comparison is running.
type KeyMap struct {
	Run            key.Binding
	CycleTask      key.Binding
	MoreWorkers    key.Binding
	FewerWorkers   key.Binding
	MoreIterations key.Binding
	LessIterations key.Binding
	Quit           key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Run: key.NewBinding(
			key.WithKeys("r", "enter"),
			key.WithHelp("r", "run"),
		),
		CycleTask: key.NewBinding(
			key.WithKeys("t", "tab"),
			key.WithHelp("t", "task"),
		),
		MoreWorkers: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+/-", "workers"),
		),
		FewerWorkers: key.NewBinding(
			key.WithKeys("-", "_"),
		),
		MoreIterations: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("[/]", "iterations"),
		),
		LessIterations: key.NewBinding(
			key.WithKeys("["),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// helpBindings lists the bindings shown in the footer, in display order.
func (k KeyMap) helpBindings() []key.Binding {
	return []key.Binding{k.Run, k.CycleTask, k.MoreWorkers, k.MoreIterations, k.Quit}
}
