package model

import (
	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/dustin/go-humanize"
	"github.com/ledgerlens/ledgerlens/internal/api"
	"github.com/ledgerlens/ledgerlens/internal/bank"
	"github.com/ledgerlens/ledgerlens/internal/store"
	"github.com/ledgerlens/ledgerlens/internal/ui/common"
	"github.com/ledgerlens/ledgerlens/internal/ui/dialog"
	"github.com/ledgerlens/ledgerlens/internal/ui/form"
	"github.com/ledgerlens/ledgerlens/internal/ui/list"
	"github.com/ledgerlens/ledgerlens/internal/ui/styles"
)

// compliance lists alerts as cards and opens their details.
type compliance struct {
	com    *common.Common
	store  *store.Store
	keyMap *KeyMap

	severity, status *form.Select
	filters          *filterBar
	cards            *list.Cards[bank.Alert]

	width, height int
	listTop       int
}

var _ page = (*compliance)(nil)

func newCompliance(com *common.Common, st *store.Store, km *KeyMap) *compliance {
	t := &com.Styles
	p := &compliance{
		com:      com,
		store:    st,
		keyMap:   km,
		severity: severityFilter(t),
		status:   alertStatusFilter(t),
	}
	p.filters = newFilterBar(t, km, "compliance", p.severity, p.status)
	p.cards = list.NewCards(t, func(a bank.Alert) string { return alertCard(t, a, p.width) }).
		WithPerPage(com.PerPage()).
		WithEmpty("No alerts", "Nothing matches these filters. Quiet day.").
		WithRowKey(func(a bank.Alert, _ int) string { return a.ID })
	return p
}

func alertCard(t *styles.Styles, a bank.Alert, width int) string {
	head := lipgloss.JoinHorizontal(lipgloss.Top,
		common.Badge(t, a.Severity), " ",
		common.Badge(t, a.Status), " ",
		t.Title.Render(a.ID), " ",
		t.Subtle.Render(humanize.Time(a.CreatedAt)),
	)
	meta := t.Muted.Render(a.ClientName + " · " + common.Label(a.Rule))
	summary := t.Base.Render(a.Summary)
	if width > 6 {
		summary = ansi.Truncate(summary, width-6, styles.Ellipsis)
	}
	return lipgloss.JoinVertical(lipgloss.Left, head, meta, summary)
}

func (p *compliance) ID() pageID {
	return compliancePage
}

func (p *compliance) Title() string {
	return "Compliance"
}

func (p *compliance) Editing() bool {
	return p.filters.Active()
}

func (p *compliance) Activate() tea.Cmd {
	return p.fetch(false)
}

func (p *compliance) Refresh() tea.Cmd {
	return p.fetch(true)
}

// Query builds the alert query from the filter bar.
func (p *compliance) Query() (api.AlertQuery, bool) {
	r, ok := p.filters.Range()
	if !ok {
		return api.AlertQuery{}, false
	}
	return api.AlertQuery{
		Severity:  bank.Severity(p.severity.Value()),
		Status:    bank.AlertStatus(p.status.Value()),
		DateRange: r,
	}, true
}

func (p *compliance) fetch(force bool) tea.Cmd {
	q, ok := p.Query()
	if !ok {
		return nil
	}
	cmd := p.store.FetchAlerts(q, force)
	p.Sync()
	return cmd
}

func (p *compliance) Sync() {
	s := p.store.Alerts
	p.cards.SetItems(s.Items)
	p.cards.SetLoading(s.Loading(store.OpList))
}

func (p *compliance) Update(msg tea.Msg) tea.Cmd {
	cmd, changed := p.filters.Update(msg)
	if changed {
		cmd = tea.Batch(cmd, p.fetch(false))
	}
	kp, ok := msg.(tea.KeyPressMsg)
	if !ok || p.filters.Active() {
		return cmd
	}

	switch {
	case key.Matches(kp, p.keyMap.Filters.Open):
		return p.filters.Focus()
	case key.Matches(kp, p.keyMap.Compliance.Open):
		return p.openSelected()
	}
	p.cards.Update(msg)
	return cmd
}

func (p *compliance) openSelected() tea.Cmd {
	a, ok := p.cards.Selected()
	if !ok {
		return nil
	}
	return openDialog(dialog.NewAlertDetail(&p.com.Styles, a, p.width, p.height))
}

func (p *compliance) HandleClick(x, y int) tea.Cmd {
	p.cards.HandleMouseDown(x, y-p.listTop)
	return nil
}

func (p *compliance) View(width, height int) string {
	t := &p.com.Styles
	p.width, p.height = width, height
	p.cards.SetWidth(width)

	rows := []string{p.filters.View(width), ""}
	if msg := p.store.Alerts.Err; msg != "" {
		rows = append(rows, errorLine(t, msg, width), "")
	}
	p.listTop = lipgloss.Height(lipgloss.JoinVertical(lipgloss.Left, rows...))
	rows = append(rows, p.cards.View())
	return lipgloss.NewStyle().MaxHeight(height).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (p *compliance) ShortHelp() []key.Binding {
	if p.filters.Active() {
		return p.filters.ShortHelp()
	}
	km := p.cards.KeyMap()
	return []key.Binding{
		km.Up, km.Down, km.PrevPage, km.NextPage,
		p.keyMap.Filters.Open,
		p.keyMap.Compliance.Open,
		p.keyMap.Refresh,
	}
}
