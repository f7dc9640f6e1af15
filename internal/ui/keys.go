package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds all resolve-screen key bindings.
type keyMap struct {
	Next            key.Binding
	Prev            key.Binding
	NextUnresolved  key.Binding
	AcceptLeft      key.Binding
	AcceptRight     key.Binding
	AcceptBoth      key.Binding
	AcceptBothDedup key.Binding
	Clear           key.Binding
	Suggest         key.Binding
	Explain         key.Binding
	Undo            key.Binding
	Redo            key.Binding
	Apply           key.Binding
	Quit            key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Next: key.NewBinding(
			key.WithKeys("n", "tab", "right"),
			key.WithHelp("n", "next hunk"),
		),
		Prev: key.NewBinding(
			key.WithKeys("p", "shift+tab", "left"),
			key.WithHelp("p", "previous hunk"),
		),
		NextUnresolved: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "next unresolved hunk"),
		),
		AcceptLeft: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "accept left"),
		),
		AcceptRight: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "accept right"),
		),
		AcceptBoth: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "accept both"),
		),
		AcceptBothDedup: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "accept both, deduplicated"),
		),
		Clear: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "clear resolution"),
		),
		Suggest: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "ai suggest"),
		),
		Explain: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "ai explain"),
		),
		Undo: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "undo"),
		),
		Redo: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "redo"),
		),
		Apply: key.NewBinding(
			key.WithKeys("enter", "w"),
			key.WithHelp("enter", "apply and finish"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}
