package model

import (
	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/ledgerlens/ledgerlens/internal/api"
	"github.com/ledgerlens/ledgerlens/internal/bank"
	"github.com/ledgerlens/ledgerlens/internal/ui/common"
	"github.com/ledgerlens/ledgerlens/internal/ui/form"
	"github.com/ledgerlens/ledgerlens/internal/ui/styles"
	"github.com/ledgerlens/ledgerlens/internal/uiutil"
)

// allOption is the empty filter value.
var allOption = form.Option{Value: "", Label: "All"}

func filterOptions[S ~string](values ...S) []form.Option {
	opts := []form.Option{allOption}
	for _, v := range values {
		opts = append(opts, form.Option{Value: string(v), Label: common.Label(v)})
	}
	return opts
}

func codeOptions(codes []string) []form.Option {
	return append([]form.Option{allOption}, form.Options(codes...)...)
}

// filterBar is a row of filter fields ending with a date range. Selects
// apply as soon as they change; dates apply once their debounced
// validation has passed.
type filterBar struct {
	sty    *styles.Styles
	keyMap *KeyMap

	selects  []*form.Select
	from, to *form.DatePicker
	group    *form.Group

	active bool
	err    error
}

func newFilterBar(sty *styles.Styles, km *KeyMap, idPrefix string, selects ...*form.Select) *filterBar {
	f := &filterBar{
		sty:     sty,
		keyMap:  km,
		selects: selects,
		from:    form.NewDatePicker(sty, idPrefix+".from", "From"),
		to:      form.NewDatePicker(sty, idPrefix+".to", "To"),
	}
	fields := make([]form.Field, 0, len(selects)+2)
	for _, s := range selects {
		fields = append(fields, s.Compact())
	}
	fields = append(fields, f.from, f.to)
	f.group = form.NewGroup(fields...)
	f.group.Blur()
	return f
}

// Active reports whether the bar has the keyboard.
func (f *filterBar) Active() bool {
	return f.active
}

// Focus gives the keyboard to the bar.
func (f *filterBar) Focus() tea.Cmd {
	f.active = true
	return f.group.FocusIndex(0)
}

// Blur hands the keyboard back to the list.
func (f *filterBar) Blur() {
	f.active = false
	f.group.Blur()
}

// Clear resets every field.
func (f *filterBar) Clear() tea.Cmd {
	for _, s := range f.selects {
		s.SetValue("")
	}
	return tea.Batch(f.from.SetValue(""), f.to.SetValue(""))
}

// Range returns the date range and whether it can be sent: both bounds
// are empty or validated, and in order.
func (f *filterBar) Range() (api.DateRange, bool) {
	f.err = nil
	for _, d := range []*form.DatePicker{f.from, f.to} {
		if d.Value() == "" {
			continue
		}
		if !d.Checked() || d.Err() != nil {
			return api.DateRange{}, false
		}
	}
	r := api.DateRange{From: f.from.Value(), To: f.to.Value()}
	if err := r.Validate(); err != nil {
		f.err = err
		return api.DateRange{}, false
	}
	return r, true
}

// Update handles field navigation while active and forwards everything
// else to the fields. It reports whether the filter values may have
// changed: an edit, or a date validation tick.
func (f *filterBar) Update(msg tea.Msg) (tea.Cmd, bool) {
	kp, ok := msg.(tea.KeyPressMsg)
	if !ok {
		_, tick := msg.(uiutil.DebounceMsg)
		return f.group.Update(msg), tick
	}
	if !f.active {
		return nil, false
	}
	switch {
	case key.Matches(kp, f.keyMap.Filters.Apply):
		f.Blur()
		return nil, true
	case key.Matches(kp, f.keyMap.Filters.Clear):
		return f.Clear(), true
	case key.Matches(kp, f.keyMap.Filters.Next):
		return f.group.Next(), false
	case key.Matches(kp, f.keyMap.Filters.Prev):
		return f.group.Prev(), false
	}
	return f.group.Update(msg), true
}

func (f *filterBar) View(width int) string {
	parts := make([]string, 0, len(f.group.Fields()))
	for _, field := range f.group.Fields() {
		parts = append(parts, field.View())
	}
	rows := []string{wrapFields(parts, width)}
	if f.err != nil {
		rows = append(rows, f.sty.Form.Error.Render(styles.ErrorIcon+" "+f.err.Error()))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// ShortHelp returns the bindings of the active bar.
func (f *filterBar) ShortHelp() []key.Binding {
	binds := []key.Binding{f.keyMap.Filters.Next, f.keyMap.Filters.Apply, f.keyMap.Filters.Clear}
	if f.from.Focused() || f.to.Focused() {
		binds = append(binds, f.from.KeyBindings()...)
	}
	return binds
}

// wrapFields lays out rendered fields left to right, starting a new line
// when the next one does not fit in width.
func wrapFields(parts []string, width int) string {
	var (
		lines []string
		line  string
	)
	for _, p := range parts {
		switch {
		case line == "":
			line = p
		case width > 0 && lipgloss.Width(line)+2+lipgloss.Width(p) > width:
			lines = append(lines, line)
			line = p
		default:
			line = lipgloss.JoinHorizontal(lipgloss.Top, line, "  ", p)
		}
	}
	if line != "" {
		lines = append(lines, line)
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// severityFilter and friends build the selects shared by the pages.
func severityFilter(sty *styles.Styles) *form.Select {
	return form.NewSelect(sty, "Severity", filterOptions(bank.Severities...)...)
}

func alertStatusFilter(sty *styles.Styles) *form.Select {
	return form.NewSelect(sty, "Status", filterOptions(bank.AlertStatuses...)...)
}

func txTypeFilter(sty *styles.Styles) *form.Select {
	return form.NewSelect(sty, "Type", filterOptions(bank.TransactionTypes...)...)
}

func txStatusFilter(sty *styles.Styles) *form.Select {
	return form.NewSelect(sty, "Status", filterOptions(bank.TransactionStatuses...)...)
}
