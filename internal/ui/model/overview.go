package model

import (
	"fmt"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/dustin/go-humanize"
	"github.com/ledgerlens/ledgerlens/internal/api"
	"github.com/ledgerlens/ledgerlens/internal/bank"
	"github.com/ledgerlens/ledgerlens/internal/store"
	"github.com/ledgerlens/ledgerlens/internal/ui/common"
	"github.com/ledgerlens/ledgerlens/internal/ui/styles"
)

// recentAlerts is the number of open alerts listed on the overview.
const recentAlerts = 5

// overview is the landing page: the summary report for a date range and
// the newest open alerts.
type overview struct {
	com    *common.Common
	store  *store.Store
	keyMap *KeyMap

	filters *filterBar
	// loaded is the range of the last overview request.
	loaded  api.DateRange
	started bool
}

var _ page = (*overview)(nil)

func newOverview(com *common.Common, st *store.Store, km *KeyMap) *overview {
	return &overview{
		com:     com,
		store:   st,
		keyMap:  km,
		filters: newFilterBar(&com.Styles, km, "overview"),
	}
}

func (p *overview) ID() pageID {
	return overviewPage
}

func (p *overview) Title() string {
	return "Overview"
}

func (p *overview) Editing() bool {
	return p.filters.Active()
}

func (p *overview) Activate() tea.Cmd {
	return p.fetch(false)
}

func (p *overview) Refresh() tea.Cmd {
	return p.fetch(true)
}

func (p *overview) fetch(force bool) tea.Cmd {
	r, ok := p.filters.Range()
	if !ok {
		return nil
	}
	if !force && p.started && r == p.loaded && p.store.Summary.Err == "" {
		return nil
	}
	p.started, p.loaded = true, r
	return p.store.FetchOverview(r)
}

func (p *overview) Sync() {}

func (p *overview) Update(msg tea.Msg) tea.Cmd {
	cmd, changed := p.filters.Update(msg)
	if changed {
		cmd = tea.Batch(cmd, p.fetch(false))
	}
	kp, ok := msg.(tea.KeyPressMsg)
	if !ok || p.filters.Active() {
		return cmd
	}
	if key.Matches(kp, p.keyMap.Filters.Open) {
		return p.filters.Focus()
	}
	return cmd
}

func (p *overview) HandleClick(int, int) tea.Cmd {
	return nil
}

func (p *overview) View(width, height int) string {
	t := &p.com.Styles
	rows := []string{p.filters.View(width), ""}

	summary := p.store.Summary
	switch {
	case summary.Err != "":
		rows = append(rows, errorLine(t, summary.Err, width))
	case summary.Current == nil:
		rows = append(rows, t.Muted.Render(styles.LoadingIcon+" Loading summary…"))
	default:
		rows = append(rows, p.summaryView(*summary.Current, width)...)
	}

	rows = append(rows, "", common.Section(t, "Open alerts", width), "")
	rows = append(rows, p.recentView(width)...)

	return lipgloss.NewStyle().
		Width(width).
		MaxHeight(height).
		Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (p *overview) summaryView(s bank.SummaryReport, width int) []string {
	t := &p.com.Styles
	const keyWidth = 20

	period := "All time"
	if s.From != "" || s.To != "" {
		period = fmt.Sprintf("%s → %s", orOpen(s.From), orOpen(s.To))
	}
	flaggedRatio := 0.0
	if s.TransactionCount > 0 {
		flaggedRatio = float64(s.FlaggedCount) / float64(s.TransactionCount)
	}
	barWidth := max(10, min(40, width-keyWidth-10))

	rows := []string{
		common.Section(t, "Summary", width),
		"",
		common.KeyValue(t, "Period", period, keyWidth),
		common.KeyValue(t, "Transactions", humanize.Comma(int64(s.TransactionCount)), keyWidth),
		common.KeyValue(t, "Volume", common.Money(s.Volume, ""), keyWidth),
		common.KeyValue(t, "Flagged", common.Bar(t, flaggedRatio, flaggedRatio, barWidth)+fmt.Sprintf(" %d (%.1f%%)", s.FlaggedCount, flaggedRatio*100), keyWidth),
		common.KeyValue(t, "Open alerts", humanize.Comma(int64(s.OpenAlerts)), keyWidth),
		common.KeyValue(t, "High risk clients", humanize.Comma(int64(s.HighRiskClients)), keyWidth),
		"",
		common.Section(t, "Alerts by severity", width),
		"",
	}

	peak := 0
	for _, sev := range bank.Severities {
		peak = max(peak, s.AlertsBySeverity[sev])
	}
	for i, sev := range bank.Severities {
		n := s.AlertsBySeverity[sev]
		ratio := 0.0
		if peak > 0 {
			ratio = float64(n) / float64(peak)
		}
		score := float64(i) / float64(len(bank.Severities)-1)
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top,
			lipgloss.NewStyle().Width(keyWidth).Render(common.Badge(t, sev)),
			common.Bar(t, ratio, score, barWidth),
			t.Base.Render(fmt.Sprintf(" %d", n)),
		))
	}
	return rows
}

func (p *overview) recentView(width int) []string {
	t := &p.com.Styles
	recent := p.store.Recent
	switch {
	case recent.Err != "":
		return nil
	case recent.Loading(store.OpList) && len(recent.Items) == 0:
		return []string{t.Muted.Render(styles.LoadingIcon + " Loading alerts…")}
	case len(recent.Items) == 0:
		return []string{t.Subtle.Render("No open alerts.")}
	}

	items := recent.Items[:min(recentAlerts, len(recent.Items))]
	rows := make([]string, 0, len(items)+1)
	for _, a := range items {
		line := lipgloss.JoinHorizontal(lipgloss.Top,
			common.Badge(t, a.Severity), " ",
			t.Title.Render(a.ID), " ",
			t.Base.Render(a.Summary), " ",
			t.Subtle.Render(humanize.Time(a.CreatedAt)),
		)
		rows = append(rows, ansi.Truncate(line, width, styles.Ellipsis))
	}
	if more := len(recent.Items) - len(items); more > 0 {
		rows = append(rows, t.Subtle.Render(fmt.Sprintf("and %s on the compliance page", common.Count(more, "more alert", "more alerts"))))
	}
	return rows
}

func orOpen(date string) string {
	if date == "" {
		return "…"
	}
	return date
}

func (p *overview) ShortHelp() []key.Binding {
	if p.filters.Active() {
		return p.filters.ShortHelp()
	}
	return []key.Binding{p.keyMap.Filters.Open, p.keyMap.Refresh}
}
