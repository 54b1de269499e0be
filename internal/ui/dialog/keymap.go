package dialog

import "charm.land/bubbles/v2/key"

// ConfirmKeyMap represents key bindings for yes/no dialogs.
type ConfirmKeyMap struct {
	LeftRight,
	EnterSpace,
	Yes,
	No,
	Tab,
	Close key.Binding
}

// DefaultConfirmKeyMap returns the default key bindings for yes/no dialogs.
func DefaultConfirmKeyMap() ConfirmKeyMap {
	return ConfirmKeyMap{
		LeftRight: key.NewBinding(
			key.WithKeys("left", "right"),
			key.WithHelp("←/→", "switch options"),
		),
		EnterSpace: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter/space", "confirm"),
		),
		Yes: key.NewBinding(
			key.WithKeys("y", "Y"),
			key.WithHelp("y/Y", "yes"),
		),
		No: key.NewBinding(
			key.WithKeys("n", "N"),
			key.WithHelp("n/N", "no"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "switch options"),
		),
		Close: CloseKey,
	}
}

// DetailKeyMap represents key bindings for read-only detail dialogs.
type DetailKeyMap struct {
	Up,
	Down,
	Copy,
	Close key.Binding
}

// DefaultDetailKeyMap returns the default key bindings for detail dialogs.
func DefaultDetailKeyMap() DetailKeyMap {
	return DetailKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "scroll down"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy id"),
		),
		Close: CloseKey,
	}
}
