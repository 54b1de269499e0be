package form

import (
	tea "charm.land/bubbletea/v2"
	"github.com/ledgerlens/ledgerlens/internal/ui/styles"
)

// Button is a focusable push button. Pressing it is handled by the owner.
type Button struct {
	sty     *styles.Styles
	label   string
	focused bool
}

func NewButton(sty *styles.Styles, label string) *Button {
	return &Button{sty: sty, label: label}
}

func (b *Button) Focus() tea.Cmd {
	b.focused = true
	return nil
}

func (b *Button) Blur()                  { b.focused = false }
func (b *Button) Focused() bool          { return b.focused }
func (b *Button) Update(tea.Msg) tea.Cmd { return nil }
func (b *Button) SetLabel(label string)  { b.label = label }

func (b *Button) View() string {
	if b.focused {
		return b.sty.ButtonFocus.Render(b.label)
	}
	return b.sty.ButtonBlur.Render(b.label)
}
