package list

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/ledgerlens/ledgerlens/internal/ui/styles"
)

// CardFunc renders the body of one card.
type CardFunc[T any] func(item T) string

// Cards renders items as a paginated stack of bordered cards.
type Cards[T any] struct {
	paged[T]
	render CardFunc[T]
}

// NewCards returns an empty card list using render for card bodies.
func NewCards[T any](sty *styles.Styles, render CardFunc[T]) *Cards[T] {
	return &Cards[T]{
		paged:  newPaged[T](sty),
		render: render,
	}
}

// WithPerPage sets the page size and returns the card list.
func (c *Cards[T]) WithPerPage(n int) *Cards[T] {
	c.SetPerPage(n)
	return c
}

// WithEmpty sets the empty copy and returns the card list.
func (c *Cards[T]) WithEmpty(message, description string) *Cards[T] {
	c.SetEmpty(message, description)
	return c
}

// WithRowKey sets the row key function and returns the card list.
func (c *Cards[T]) WithRowKey(fn RowKeyFunc[T]) *Cards[T] {
	c.SetRowKey(fn)
	return c
}

// Update handles key presses and clicks relative to the list origin.
func (c *Cards[T]) Update(msg tea.Msg) bool {
	return c.update(msg)
}

// View renders the card list in its current state.
func (c *Cards[T]) View() string {
	return c.frame(c.body, c.skeleton)
}

func (c *Cards[T]) cardStyle(selected bool) lipgloss.Style {
	st := c.sty.List.Card
	if selected {
		st = c.sty.List.CardSelected
	}
	if c.width > 0 {
		st = st.Width(c.width)
	}
	return st
}

func (c *Cards[T]) body() string {
	visible := c.Visible()
	cards := make([]string, len(visible))
	for i, item := range visible {
		var content string
		if c.render != nil {
			content = c.render(item)
		}
		cards[i] = c.cardStyle(i == c.selected).Render(content)
	}
	return lipgloss.JoinVertical(lipgloss.Left, cards...)
}

func (c *Cards[T]) skeleton() string {
	w := 24
	if c.width > 4 {
		w = c.width - 4
	}
	line := c.sty.List.Skeleton.Render(strings.Repeat(styles.SkeletonBlock, w))
	cards := make([]string, c.PerPage())
	for i := range cards {
		cards[i] = c.cardStyle(false).Render(line)
	}
	return lipgloss.JoinVertical(lipgloss.Left, cards...)
}
