package model

import "charm.land/bubbles/v2/key"

type KeyMap struct {
	Filters struct {
		Open  key.Binding
		Next  key.Binding
		Prev  key.Binding
		Apply key.Binding
		Clear key.Binding
	}

	Transactions struct {
		Copy   key.Binding
		Detail key.Binding
	}

	Compliance struct {
		Open key.Binding
	}

	Wizard struct {
		Next key.Binding
		Back key.Binding
	}

	// Global key maps
	Quit     key.Binding
	Help     key.Binding
	Commands key.Binding
	Refresh  key.Binding
	Tab      key.Binding
	PrevTab  key.Binding
}

func DefaultKeyMap() KeyMap {
	km := KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more"),
		),
		Commands: key.NewBinding(
			key.WithKeys("ctrl+p"),
			key.WithHelp("ctrl+p", "commands"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "refresh"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next page"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous page"),
		),
	}

	km.Filters.Open = key.NewBinding(
		key.WithKeys("/", "f"),
		key.WithHelp("/", "filter"),
	)
	km.Filters.Next = key.NewBinding(
		key.WithKeys("down"),
		key.WithHelp("↓", "next field"),
	)
	km.Filters.Prev = key.NewBinding(
		key.WithKeys("up"),
		key.WithHelp("↑", "previous field"),
	)
	km.Filters.Apply = key.NewBinding(
		key.WithKeys("enter", "esc", "alt+esc"),
		key.WithHelp("enter/esc", "done"),
	)
	km.Filters.Clear = key.NewBinding(
		key.WithKeys("ctrl+x"),
		key.WithHelp("ctrl+x", "clear filters"),
	)

	km.Transactions.Copy = key.NewBinding(
		key.WithKeys("y", "c"),
		key.WithHelp("y", "copy id"),
	)
	km.Transactions.Detail = key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "load details"),
	)

	km.Compliance.Open = key.NewBinding(
		key.WithKeys("enter", "space"),
		key.WithHelp("enter", "open alert"),
	)

	km.Wizard.Next = key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "continue"),
	)
	km.Wizard.Back = key.NewBinding(
		key.WithKeys("esc", "alt+esc"),
		key.WithHelp("esc", "back"),
	)

	return km
}
