package dialog

import (
	tea "charm.land/bubbletea/v2"
)

// Action is the outcome of a dialog handling a message. A nil action means
// the message was consumed without effect.
type Action any

// ActionClose is a message to close the current dialog.
type ActionClose struct{}

// ActionQuit is a message to quit the application.
type ActionQuit = tea.QuitMsg

// ActionCmd represents an action that carries a [tea.Cmd] to be passed to the
// Bubble Tea program loop.
type ActionCmd struct {
	Cmd tea.Cmd
}

// ActionConfirm reports that the dialog with ID was confirmed.
type ActionConfirm struct {
	ID string
}

// ActionCopy asks the owner to copy Text to the clipboard.
type ActionCopy struct {
	Text string
}
