package form

import (
	"fmt"
	"time"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"github.com/ledgerlens/ledgerlens/internal/api"
	"github.com/ledgerlens/ledgerlens/internal/ui/styles"
)

var (
	nextDayKey = key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "next day"))
	prevDayKey = key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "previous day"))
)

// DatePicker is an input for a YYYY-MM-DD date. An empty value means an open
// bound. When the value is empty or a complete date, + and - shift it by a
// day; otherwise they are typed as usual.
type DatePicker struct {
	*Input
	now func() time.Time
}

// NewDatePicker returns a date picker identified by id.
func NewDatePicker(sty *styles.Styles, id, label string) *DatePicker {
	in := NewInput(sty, id, label, ValidateDate).
		WithPlaceholder(api.DateLayout).
		WithCharLimit(len(api.DateLayout))
	in.SetWidth(len(api.DateLayout))
	return &DatePicker{Input: in, now: time.Now}
}

// ValidateDate accepts an empty value or a date in [api.DateLayout].
func ValidateDate(v string) error {
	if v == "" {
		return nil
	}
	if _, err := time.Parse(api.DateLayout, v); err != nil {
		return fmt.Errorf("use %s", api.DateLayout)
	}
	return nil
}

// Date returns the parsed value and whether it is set and valid.
func (d *DatePicker) Date() (time.Time, bool) {
	t, err := time.Parse(api.DateLayout, d.Value())
	return t, err == nil
}

// Shift moves the date by days. An empty value starts from today.
func (d *DatePicker) Shift(days int) tea.Cmd {
	t, ok := d.Date()
	if !ok {
		if d.Value() != "" {
			return nil
		}
		t = d.now()
	}
	return d.SetValue(t.AddDate(0, 0, days).Format(api.DateLayout))
}

// Update implements [Field].
func (d *DatePicker) Update(msg tea.Msg) tea.Cmd {
	if kp, ok := msg.(tea.KeyPressMsg); ok && d.Focused() {
		_, complete := d.Date()
		if complete || d.Value() == "" {
			switch {
			case key.Matches(kp, nextDayKey):
				return d.Shift(1)
			case key.Matches(kp, prevDayKey):
				return d.Shift(-1)
			}
		}
	}
	return d.Input.Update(msg)
}

// KeyBindings returns the shift bindings for help views.
func (d *DatePicker) KeyBindings() []key.Binding {
	return []key.Binding{nextDayKey, prevDayKey}
}
