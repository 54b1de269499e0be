package model

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/dustin/go-humanize"
	"github.com/ledgerlens/ledgerlens/internal/bank"
	"github.com/ledgerlens/ledgerlens/internal/store"
	"github.com/ledgerlens/ledgerlens/internal/ui/common"
	"github.com/ledgerlens/ledgerlens/internal/ui/form"
	"github.com/ledgerlens/ledgerlens/internal/ui/list"
	"github.com/ledgerlens/ledgerlens/internal/ui/styles"
	"github.com/sahilm/fuzzy"
)

// clientMatch is a client with the byte offsets of its name matched by the
// search.
type clientMatch struct {
	bank.Client
	matched []int
}

type clientSource []bank.Client

func (s clientSource) String(i int) string { return s[i].Name }
func (s clientSource) Len() int            { return len(s) }

// matchClients filters clients by a fuzzy query, best match first. An
// empty query keeps every client in order.
func matchClients(clients []bank.Client, query string) []clientMatch {
	query = strings.TrimSpace(query)
	if query == "" {
		out := make([]clientMatch, len(clients))
		for i, c := range clients {
			out[i] = clientMatch{Client: c}
		}
		return out
	}
	matches := fuzzy.FindFrom(query, clientSource(clients))
	out := make([]clientMatch, len(matches))
	for i, m := range matches {
		out[i] = clientMatch{Client: clients[m.Index], matched: m.MatchedIndexes}
	}
	return out
}

// clientsKeyMap leaves letters to the search field.
func clientsKeyMap() list.KeyMap {
	km := list.DefaultKeyMap()
	km.NextPage.SetKeys("pgdown", "right")
	km.PrevPage.SetKeys("pgup", "left")
	km.FirstPage.SetKeys("home")
	km.LastPage.SetKeys("end")
	km.Up.SetKeys("up")
	km.Down.SetKeys("down")
	km.Up.SetHelp("↑", "up")
	km.Down.SetHelp("↓", "down")
	km.NextPage.SetHelp("→", "next page")
	km.PrevPage.SetHelp("←", "prev page")
	return km
}

// reports shows the client list and the report of the chosen client.
type reports struct {
	com    *common.Common
	store  *store.Store
	keyMap *KeyMap

	search *form.Input
	table  *list.Table[clientMatch]
	open   key.Binding

	listTop int
}

var _ page = (*reports)(nil)

func newReports(com *common.Common, st *store.Store, km *KeyMap) *reports {
	t := &com.Styles
	p := &reports{
		com:    com,
		store:  st,
		keyMap: km,
		search: form.NewInput(t, "reports.search", "Search", nil).
			WithPlaceholder("client name").
			WithDebounce(0),
		open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "show report"),
		),
	}
	p.search.Focus()
	p.table = list.NewTable(t,
		list.Column[clientMatch]{Key: "name", Label: "Client", Width: 28, Render: func(c clientMatch, _ int) string {
			return common.Highlight(c.Name, c.matched)
		}},
		list.Column[clientMatch]{Key: "country", Label: "Country", Accessor: func(c clientMatch) any { return c.Country }},
		list.Column[clientMatch]{Key: "risk", Label: "Risk", Render: func(c clientMatch, _ int) string {
			return common.Badge(t, c.RiskLevel)
		}},
	).
		WithPerPage(com.PerPage()).
		WithEmpty("No clients", "No client name matches the search.").
		WithRowKey(func(c clientMatch, _ int) string { return c.ID })
	p.table.SetKeyMap(clientsKeyMap())
	return p
}

func (p *reports) ID() pageID {
	return reportsPage
}

func (p *reports) Title() string {
	return "Reports"
}

// Editing is always true: the search field keeps the letter keys.
func (p *reports) Editing() bool {
	return true
}

func (p *reports) Activate() tea.Cmd {
	cmd := p.store.FetchClients(false)
	p.Sync()
	return tea.Batch(cmd, p.search.Focus())
}

func (p *reports) Refresh() tea.Cmd {
	cmds := []tea.Cmd{p.store.FetchClients(true)}
	if cur := p.store.Report.Current; cur != nil {
		cmds = append(cmds, p.store.FetchClientReport(cur.Client.ID))
	}
	p.Sync()
	return tea.Batch(cmds...)
}

func (p *reports) Sync() {
	p.table.SetItems(matchClients(p.store.Clients.Items, p.search.Value()))
	p.table.SetLoading(p.store.Clients.Loading(store.OpList))
}

func (p *reports) Update(msg tea.Msg) tea.Cmd {
	kp, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return p.search.Update(msg)
	}
	switch {
	case key.Matches(kp, p.open):
		if c, ok := p.table.Selected(); ok {
			return p.store.FetchClientReport(c.ID)
		}
		return nil
	case p.table.Update(msg):
		return nil
	}
	before := p.search.Value()
	cmd := p.search.Update(msg)
	if p.search.Value() != before {
		p.Sync()
	}
	return cmd
}

func (p *reports) HandleClick(x, y int) tea.Cmd {
	p.table.HandleMouseDown(x, y-p.listTop)
	return nil
}

func (p *reports) View(width, height int) string {
	t := &p.com.Styles

	listWidth, reportWidth := width, width
	sideBySide := width >= 90
	if sideBySide {
		listWidth = width * 45 / 100
		reportWidth = width - listWidth - 2
	}
	p.search.SetWidth(max(10, listWidth-lipgloss.Width(p.search.Label())-4))
	p.table.SetWidth(listWidth)

	left := []string{p.search.View(), ""}
	if msg := p.store.Clients.Err; msg != "" {
		left = append(left, errorLine(t, msg, listWidth), "")
	}
	p.listTop = lipgloss.Height(lipgloss.JoinVertical(lipgloss.Left, left...))
	left = append(left, p.table.View())
	clients := lipgloss.NewStyle().Width(listWidth).Render(lipgloss.JoinVertical(lipgloss.Left, left...))

	report := p.reportView(reportWidth)
	var content string
	if sideBySide {
		content = lipgloss.JoinHorizontal(lipgloss.Top, clients, "  ", report)
	} else {
		content = lipgloss.JoinVertical(lipgloss.Left, clients, "", report)
	}
	return lipgloss.NewStyle().MaxHeight(height).Render(content)
}

func (p *reports) reportView(width int) string {
	t := &p.com.Styles
	s := p.store.Report
	rows := []string{common.Section(t, "Client report", width), ""}

	switch {
	case s.Loading(store.OpGet):
		rows = append(rows, t.Muted.Render(styles.LoadingIcon+" Loading report…"))
		return lipgloss.JoinVertical(lipgloss.Left, rows...)
	case s.Err != "":
		rows = append(rows, errorLine(t, s.Err, width))
		return lipgloss.JoinVertical(lipgloss.Left, rows...)
	case s.Current == nil:
		rows = append(rows, t.Subtle.Render("Select a client and press enter."))
		return lipgloss.JoinVertical(lipgloss.Left, rows...)
	}

	r := *s.Current
	const keyWidth = 16
	barWidth := max(10, min(30, width-keyWidth-8))
	rows = append(rows,
		common.KeyValue(t, "Client", r.Client.Name+" ("+r.Client.ID+")", keyWidth),
		common.KeyValue(t, "Country", r.Client.Country, keyWidth),
		common.KeyValue(t, "Risk level", common.Badge(t, r.Client.RiskLevel), keyWidth),
		common.KeyValue(t, "Transactions", humanize.Comma(int64(r.TransactionCount)), keyWidth),
		common.KeyValue(t, "Volume", common.Money(r.Volume, ""), keyWidth),
		common.KeyValue(t, "Flagged", humanize.Comma(int64(r.FlaggedCount)), keyWidth),
		common.KeyValue(t, "Open alerts", humanize.Comma(int64(r.OpenAlerts)), keyWidth),
		common.KeyValue(t, "Risk score", common.Bar(t, r.RiskScore, r.RiskScore, barWidth)+fmt.Sprintf(" %.0f%%", r.RiskScore*100), keyWidth),
		"",
		common.Section(t, "Monthly volume", width),
		"",
	)
	rows = append(rows, monthlyBars(t, r, width)...)
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// monthlyBars renders one bar per month, scaled to the busiest month and
// colored by the client risk score.
func monthlyBars(t *styles.Styles, r bank.ClientReport, width int) []string {
	if len(r.Monthly) == 0 {
		return []string{t.Subtle.Render("No activity.")}
	}
	peak := r.Monthly[0].Volume
	for _, m := range r.Monthly[1:] {
		if m.Volume.GreaterThan(peak) {
			peak = m.Volume
		}
	}
	const labelWidth = 9
	barWidth := max(10, min(40, width-labelWidth-24))
	rows := make([]string, 0, len(r.Monthly))
	for _, m := range r.Monthly {
		ratio := 0.0
		if peak.IsPositive() {
			ratio = m.Volume.Div(peak).InexactFloat64()
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top,
			t.Muted.Width(labelWidth).Render(m.Month),
			common.Bar(t, ratio, r.RiskScore, barWidth),
			" ",
			t.Base.Render(common.Money(m.Volume, "")),
			t.Subtle.Render(" · "+common.Count(m.Count, "tx", "txs")),
		))
	}
	return rows
}

func (p *reports) ShortHelp() []key.Binding {
	km := p.table.KeyMap()
	return []key.Binding{km.Up, km.Down, km.PrevPage, km.NextPage, p.open, p.keyMap.Refresh}
}
