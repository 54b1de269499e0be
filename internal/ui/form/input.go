package form

import (
	"strings"
	"time"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/ledgerlens/ledgerlens/internal/ui/styles"
	"github.com/ledgerlens/ledgerlens/internal/uiutil"
)

// Validator checks a field value. A nil error means valid.
type Validator func(value string) error

// Input is a labelled text input validated after the user stops typing.
type Input struct {
	sty      *styles.Styles
	id       string
	label    string
	input    textinput.Model
	validate Validator
	debounce *uiutil.Debouncer

	err     error
	checked bool
	width   int
}

// NewInput returns an input identified by id. validate may be nil.
func NewInput(sty *styles.Styles, id, label string, validate Validator) *Input {
	ti := textinput.New()
	ti.SetStyles(sty.TextInput)
	ti.Prompt = ""
	i := &Input{
		sty:      sty,
		id:       id,
		label:    label,
		input:    ti,
		validate: validate,
	}
	i.debounce = uiutil.NewDebouncer(i.debounceID(), DefaultDebounce)
	return i
}

// WithDebounce sets the validation delay.
func (i *Input) WithDebounce(d time.Duration) *Input {
	i.debounce = uiutil.NewDebouncer(i.debounceID(), d)
	return i
}

// WithPlaceholder sets the placeholder text.
func (i *Input) WithPlaceholder(p string) *Input {
	i.input.Placeholder = p
	return i
}

// WithCharLimit limits the value length.
func (i *Input) WithCharLimit(n int) *Input {
	i.input.CharLimit = n
	return i
}

func (i *Input) debounceID() string {
	return "input:" + i.id
}

// Label returns the field label.
func (i *Input) Label() string {
	return i.label
}

// Value returns the trimmed value.
func (i *Input) Value() string {
	return strings.TrimSpace(i.input.Value())
}

// SetValue replaces the value and schedules validation.
func (i *Input) SetValue(v string) tea.Cmd {
	i.input.SetValue(v)
	i.checked = false
	return i.debounce.Trigger()
}

// SetWidth sets the width of the text area.
func (i *Input) SetWidth(w int) {
	i.width = w
	i.input.SetWidth(max(1, w))
}

// Err returns the error of the last validation.
func (i *Input) Err() error {
	return i.err
}

// Checked reports whether the current value has been validated.
func (i *Input) Checked() bool {
	return i.checked
}

// Valid validates the current value immediately and reports the outcome.
func (i *Input) Valid() bool {
	i.check()
	return i.err == nil
}

func (i *Input) check() {
	i.checked = true
	i.err = nil
	if i.validate != nil {
		i.err = i.validate(i.Value())
	}
}

// Focus implements [Field].
func (i *Input) Focus() tea.Cmd {
	return i.input.Focus()
}

// Blur implements [Field]. Leaving a field validates it.
func (i *Input) Blur() {
	i.input.Blur()
	if !i.checked {
		i.check()
	}
}

// Focused implements [Field].
func (i *Input) Focused() bool {
	return i.input.Focused()
}

// Update implements [Field]. Edits schedule a debounced validation; only the
// tick of the latest edit runs it.
func (i *Input) Update(msg tea.Msg) tea.Cmd {
	if i.debounce.Fire(msg) {
		i.check()
		return nil
	}
	if _, ok := msg.(tea.KeyPressMsg); !ok || !i.Focused() {
		return nil
	}
	before := i.input.Value()
	var cmd tea.Cmd
	i.input, cmd = i.input.Update(msg)
	if i.input.Value() == before {
		return cmd
	}
	i.checked = false
	return tea.Batch(cmd, i.debounce.Trigger())
}

// View implements [Field].
func (i *Input) View() string {
	label := i.sty.Form.Label
	if i.Focused() {
		label = i.sty.Form.LabelFocused
	}
	parts := []string{label.Render(i.label), i.input.View()}
	switch {
	case !i.checked:
	case i.err != nil:
		parts = append(parts, i.sty.Form.Error.Render(styles.ErrorIcon+" "+uiutil.ErrorMessage(i.err)))
	case i.Value() != "":
		parts = append(parts, i.sty.Form.Valid.Render(styles.CheckIcon))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, joinSpaced(parts)...)
}

func joinSpaced(parts []string) []string {
	out := make([]string, 0, len(parts)*2)
	for n, p := range parts {
		if n > 0 {
			out = append(out, " ")
		}
		out = append(out, p)
	}
	return out
}
