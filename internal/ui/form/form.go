// Package form holds the presentational input primitives used by the
// filter bars and the new transaction wizard.
package form

import (
	"time"

	tea "charm.land/bubbletea/v2"
)

// DefaultDebounce is the delay between the last keystroke and validation.
const DefaultDebounce = 300 * time.Millisecond

// Field is a focusable form element.
type Field interface {
	Focus() tea.Cmd
	Blur()
	Focused() bool
	Update(msg tea.Msg) tea.Cmd
	View() string
}

// Group cycles focus through a fixed set of fields.
type Group struct {
	fields []Field
	focus  int
}

// NewGroup returns a group with the first field focused.
func NewGroup(fields ...Field) *Group {
	g := &Group{fields: fields, focus: -1}
	if len(fields) > 0 {
		g.focus = 0
		fields[0].Focus()
	}
	return g
}

// Fields returns the fields of the group.
func (g *Group) Fields() []Field {
	return g.fields
}

// Focused returns the index of the focused field, or -1.
func (g *Group) Focused() int {
	return g.focus
}

// FocusIndex moves the focus to field i.
func (g *Group) FocusIndex(i int) tea.Cmd {
	if i < 0 || i >= len(g.fields) {
		return nil
	}
	if g.focus >= 0 {
		g.fields[g.focus].Blur()
	}
	g.focus = i
	return g.fields[i].Focus()
}

// Next focuses the following field, wrapping around.
func (g *Group) Next() tea.Cmd {
	if len(g.fields) == 0 {
		return nil
	}
	return g.FocusIndex((g.focus + 1) % len(g.fields))
}

// Prev focuses the preceding field, wrapping around.
func (g *Group) Prev() tea.Cmd {
	if len(g.fields) == 0 {
		return nil
	}
	return g.FocusIndex((g.focus - 1 + len(g.fields)) % len(g.fields))
}

// Blur removes the focus from every field.
func (g *Group) Blur() {
	if g.focus >= 0 {
		g.fields[g.focus].Blur()
	}
	g.focus = -1
}

// Update forwards key presses to the focused field and every other
// message to all fields, so debounce ticks reach their owner.
func (g *Group) Update(msg tea.Msg) tea.Cmd {
	if _, ok := msg.(tea.KeyPressMsg); ok {
		if g.focus < 0 {
			return nil
		}
		return g.fields[g.focus].Update(msg)
	}
	cmds := make([]tea.Cmd, 0, len(g.fields))
	for _, f := range g.fields {
		cmds = append(cmds, f.Update(msg))
	}
	return tea.Batch(cmds...)
}
