package form

import (
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/ledgerlens/ledgerlens/internal/ui/styles"
)

var (
	nextOptionKey = key.NewBinding(key.WithKeys("right", "l", " "), key.WithHelp("→", "next option"))
	prevOptionKey = key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←", "previous option"))
)

// Option is a selectable value with its display label.
type Option struct {
	Value string
	Label string
}

// Options builds options whose label is the value.
func Options[S ~string](values ...S) []Option {
	out := make([]Option, len(values))
	for i, v := range values {
		out[i] = Option{Value: string(v), Label: string(v)}
	}
	return out
}

// Select cycles through a fixed list of options.
type Select struct {
	sty     *styles.Styles
	label   string
	options []Option
	index   int
	focused bool
	compact bool
}

// NewSelect returns a select showing every option.
func NewSelect(sty *styles.Styles, label string, options ...Option) *Select {
	return &Select{sty: sty, label: label, options: options}
}

// Compact renders only the current option between arrows.
func (s *Select) Compact() *Select {
	s.compact = true
	return s
}

// Label returns the field label.
func (s *Select) Label() string {
	return s.label
}

// Value returns the value of the current option.
func (s *Select) Value() string {
	if len(s.options) == 0 {
		return ""
	}
	return s.options[s.index].Value
}

// SetValue selects the option with value v. It reports whether one exists.
func (s *Select) SetValue(v string) bool {
	for i, o := range s.options {
		if o.Value == v {
			s.index = i
			return true
		}
	}
	return false
}

// Next selects the following option, wrapping around.
func (s *Select) Next() {
	if len(s.options) > 0 {
		s.index = (s.index + 1) % len(s.options)
	}
}

// Prev selects the preceding option, wrapping around.
func (s *Select) Prev() {
	if len(s.options) > 0 {
		s.index = (s.index - 1 + len(s.options)) % len(s.options)
	}
}

// Focus implements [Field].
func (s *Select) Focus() tea.Cmd {
	s.focused = true
	return nil
}

// Blur implements [Field].
func (s *Select) Blur() {
	s.focused = false
}

// Focused implements [Field].
func (s *Select) Focused() bool {
	return s.focused
}

// Update implements [Field].
func (s *Select) Update(msg tea.Msg) tea.Cmd {
	kp, ok := msg.(tea.KeyPressMsg)
	if !ok || !s.focused {
		return nil
	}
	switch {
	case key.Matches(kp, nextOptionKey):
		s.Next()
	case key.Matches(kp, prevOptionKey):
		s.Prev()
	}
	return nil
}

// View implements [Field].
func (s *Select) View() string {
	label := s.sty.Form.Label
	if s.focused {
		label = s.sty.Form.LabelFocused
	}
	if len(s.options) == 0 {
		return label.Render(s.label)
	}

	if s.compact {
		opt := s.sty.Form.Option
		if s.focused {
			opt = s.sty.Form.OptionActive
		}
		return label.Render(s.label) + " " + opt.Render("‹ "+s.options[s.index].Label+" ›")
	}

	var sb strings.Builder
	for i, o := range s.options {
		style := s.sty.Form.Option
		if i == s.index {
			style = s.sty.Form.OptionActive
		}
		sb.WriteString(style.Render(o.Label))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, label.Render(s.label), " ", sb.String())
}
