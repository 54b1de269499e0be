package dialog

import (
	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/ledgerlens/ledgerlens/internal/ui/styles"
)

// QuitID is the identifier of the quit confirmation dialog.
const QuitID = "quit"

// Confirm represents a yes/no confirmation dialog.
type Confirm struct {
	sty        *styles.Styles
	id         string
	question   string
	details    string
	yes, no    string
	keyMap     ConfirmKeyMap
	selectedNo bool // true if "No" button is selected
}

// NewConfirm creates a confirmation dialog. Confirming it yields
// [ActionConfirm] with the dialog id.
func NewConfirm(sty *styles.Styles, id, question, details string) *Confirm {
	return &Confirm{
		sty:      sty,
		id:       id,
		question: question,
		details:  details,
		yes:      "Yes",
		no:       "No",
		keyMap:   DefaultConfirmKeyMap(),
	}
}

// NewQuit creates a new quit confirmation dialog.
func NewQuit(sty *styles.Styles) *Confirm {
	q := NewConfirm(sty, QuitID, "Are you sure you want to quit?", "")
	q.yes, q.no = "Yep!", "Nope"
	q.keyMap.Yes.SetKeys("y", "Y", "ctrl+c")
	q.keyMap.Yes.SetHelp("y/Y/ctrl+c", "yes")
	return q
}

// WithLabels sets the button labels.
func (c *Confirm) WithLabels(yes, no string) *Confirm {
	c.yes, c.no = yes, no
	return c
}

// ID implements [Dialog].
func (c *Confirm) ID() string {
	return c.id
}

func (c *Confirm) confirm() Action {
	if c.id == QuitID {
		return ActionQuit{}
	}
	return ActionConfirm{ID: c.id}
}

// HandleMsg implements [Dialog].
func (c *Confirm) HandleMsg(msg tea.Msg) Action {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		switch {
		case key.Matches(msg, c.keyMap.LeftRight, c.keyMap.Tab):
			c.selectedNo = !c.selectedNo
			return nil
		case key.Matches(msg, c.keyMap.EnterSpace):
			if !c.selectedNo {
				return c.confirm()
			}
			return ActionClose{}
		case key.Matches(msg, c.keyMap.Yes):
			return c.confirm()
		case key.Matches(msg, c.keyMap.No, c.keyMap.Close):
			return ActionClose{}
		}
	}

	return nil
}

// View implements [Dialog].
func (c *Confirm) View() string {
	yesStyle, noStyle := c.sty.ButtonFocus, c.sty.ButtonBlur
	if c.selectedNo {
		yesStyle, noStyle = noStyle, yesStyle
	}

	yesButton := yesStyle.Render(c.yes)
	noButton := noStyle.Render(c.no)

	width := lipgloss.Width(c.question)
	if c.details != "" {
		width = max(width, lipgloss.Width(c.details))
	}
	buttons := lipgloss.NewStyle().Width(width).Align(lipgloss.Right).Render(
		lipgloss.JoinHorizontal(lipgloss.Center, yesButton, "  ", noButton),
	)

	parts := []string{c.sty.Base.Bold(true).Render(c.question)}
	if c.details != "" {
		parts = append(parts, "", c.details)
	}
	parts = append(parts, "", buttons)

	return c.sty.BorderFocus.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

// ShortHelp implements [help.KeyMap].
func (c *Confirm) ShortHelp() []key.Binding {
	return []key.Binding{
		c.keyMap.LeftRight,
		c.keyMap.EnterSpace,
	}
}

// FullHelp implements [help.KeyMap].
func (c *Confirm) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{c.keyMap.LeftRight, c.keyMap.EnterSpace, c.keyMap.Yes, c.keyMap.No},
		{c.keyMap.Tab, c.keyMap.Close},
	}
}
