package dialog

import (
	"strings"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"github.com/dustin/go-humanize"
	"github.com/ledgerlens/ledgerlens/internal/bank"
	"github.com/ledgerlens/ledgerlens/internal/ui/common"
	"github.com/ledgerlens/ledgerlens/internal/ui/styles"
)

// AlertID is the identifier of the alert detail dialog.
const AlertID = "alert"

const (
	alertDialogMaxWidth  = 80
	alertDialogMaxHeight = 18
)

// AlertDetail shows an alert with its markdown details. The body scrolls
// when it does not fit.
type AlertDetail struct {
	sty    *styles.Styles
	alert  bank.Alert
	help   help.Model
	keyMap DetailKeyMap

	width, height int
	lines         []string
	offset        int
}

var _ Dialog = (*AlertDetail)(nil)

// NewAlertDetail creates the dialog for a sized to fit within width and
// height.
func NewAlertDetail(sty *styles.Styles, a bank.Alert, width, height int) *AlertDetail {
	h := help.New()
	h.Styles = sty.Help
	d := &AlertDetail{
		sty:    sty,
		alert:  a,
		help:   h,
		keyMap: DefaultDetailKeyMap(),
	}
	d.SetSize(width, height)
	return d
}

// Alert returns the alert shown.
func (d *AlertDetail) Alert() bank.Alert {
	return d.alert
}

// SetSize fits the dialog to the given area and renders the body again.
func (d *AlertDetail) SetSize(width, height int) {
	d.width = min(alertDialogMaxWidth, max(30, width-4))
	d.height = min(alertDialogMaxHeight, max(3, height-12))
	inner := max(10, d.width-d.sty.Dialog.View.GetHorizontalFrameSize())
	body := strings.TrimSpace(d.alert.Details)
	if body == "" {
		body = d.alert.Summary
	}
	d.lines = strings.Split(common.RenderMarkdown(d.sty, body, inner), "\n")
	d.offset = min(d.offset, d.maxOffset())
}

func (d *AlertDetail) maxOffset() int {
	return max(0, len(d.lines)-d.height)
}

// ID implements [Dialog].
func (d *AlertDetail) ID() string {
	return AlertID
}

// HandleMsg implements [Dialog].
func (d *AlertDetail) HandleMsg(msg tea.Msg) Action {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		switch {
		case key.Matches(msg, d.keyMap.Close):
			return ActionClose{}
		case key.Matches(msg, d.keyMap.Copy):
			return ActionCopy{Text: d.alert.ID}
		case key.Matches(msg, d.keyMap.Down):
			d.offset = min(d.offset+1, d.maxOffset())
		case key.Matches(msg, d.keyMap.Up):
			d.offset = max(d.offset-1, 0)
		}
	case tea.MouseWheelMsg:
		switch msg.Button {
		case tea.MouseWheelDown:
			d.offset = min(d.offset+1, d.maxOffset())
		case tea.MouseWheelUp:
			d.offset = max(d.offset-1, 0)
		}
	}
	return nil
}

// View implements [Dialog].
func (d *AlertDetail) View() string {
	a := d.alert
	rc := NewRenderContext(d.sty, d.width)
	rc.Title = a.ID + "  " + a.Summary

	const keyWidth = 13
	meta := []string{
		common.Badge(d.sty, a.Severity) + " " + common.Badge(d.sty, a.Status),
		common.KeyValue(d.sty, "Client", a.ClientName+" ("+a.ClientID+")", keyWidth),
		common.KeyValue(d.sty, "Rule", common.Label(a.Rule), keyWidth),
	}
	if a.TransactionID != "" {
		meta = append(meta, common.KeyValue(d.sty, "Transaction", a.TransactionID, keyWidth))
	}
	if !a.CreatedAt.IsZero() {
		meta = append(meta, common.KeyValue(d.sty, "Raised", humanize.Time(a.CreatedAt), keyWidth))
	}
	rc.AddPart(strings.Join(meta, "\n"))

	end := min(len(d.lines), d.offset+d.height)
	rc.AddPart(strings.Join(d.lines[d.offset:end], "\n"))
	if d.maxOffset() > 0 {
		rc.AddPart(d.sty.Subtle.Render(humanize.Ordinal(d.offset+1) + " of " + humanize.Comma(int64(len(d.lines))) + " lines"))
	}

	rc.Help = d.help.ShortHelpView([]key.Binding{d.keyMap.Down, d.keyMap.Up, d.keyMap.Copy, d.keyMap.Close})
	return rc.Render()
}
