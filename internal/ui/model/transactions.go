package model

import (
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/ledgerlens/ledgerlens/internal/api"
	"github.com/ledgerlens/ledgerlens/internal/bank"
	"github.com/ledgerlens/ledgerlens/internal/store"
	"github.com/ledgerlens/ledgerlens/internal/ui/common"
	"github.com/ledgerlens/ledgerlens/internal/ui/form"
	"github.com/ledgerlens/ledgerlens/internal/ui/list"
	"github.com/ledgerlens/ledgerlens/internal/ui/styles"
)

const timestampLayout = "2006-01-02 15:04"

// transactions browses the transaction list.
type transactions struct {
	com    *common.Common
	store  *store.Store
	keyMap *KeyMap

	typ, status, currency, country *form.Select
	filters                        *filterBar
	table                          *list.Table[bank.Transaction]

	// listTop is the line of the table within the last rendered view.
	listTop int
}

var _ page = (*transactions)(nil)

func newTransactions(com *common.Common, st *store.Store, km *KeyMap, catalog bank.Catalog) *transactions {
	t := &com.Styles
	p := &transactions{
		com:      com,
		store:    st,
		keyMap:   km,
		typ:      txTypeFilter(t),
		status:   txStatusFilter(t),
		currency: form.NewSelect(t, "Currency", codeOptions(catalog.Currencies)...),
		country:  form.NewSelect(t, "Country", codeOptions(catalog.Countries)...),
	}
	p.filters = newFilterBar(t, km, "transactions", p.typ, p.status, p.currency, p.country)
	p.table = list.NewTable(t, transactionColumns(t)...).
		WithPerPage(com.PerPage()).
		WithEmpty("No transactions found", "Try widening the date range or clearing the filters.").
		WithRowKey(func(tx bank.Transaction, _ int) string { return tx.ID })
	return p
}

func transactionColumns(t *styles.Styles) []list.Column[bank.Transaction] {
	return []list.Column[bank.Transaction]{
		{Key: "id", Label: "ID", Accessor: func(tx bank.Transaction) any { return tx.ID }},
		{Key: "date", Label: "Date", Render: func(tx bank.Transaction, _ int) string {
			return tx.CreatedAt.Local().Format(timestampLayout)
		}},
		{Key: "type", Label: "Type", Render: func(tx bank.Transaction, _ int) string {
			return common.Badge(t, tx.Type)
		}},
		{Key: "status", Label: "Status", Render: func(tx bank.Transaction, _ int) string {
			return common.Badge(t, tx.Status)
		}},
		{Key: "client", Label: "Client", Width: 24, Accessor: func(tx bank.Transaction) any { return tx.ClientName }},
		{Key: "amount", Label: "Amount", Render: func(tx bank.Transaction, _ int) string {
			return signedAmount(t, tx)
		}},
		{Key: "country", Label: "Country", Accessor: func(tx bank.Transaction) any { return tx.Country }},
		{Key: "risk", Label: "Risk", Render: func(tx bank.Transaction, _ int) string {
			return common.Bar(t, tx.RiskScore, tx.RiskScore, 8)
		}},
	}
}

func signedAmount(t *styles.Styles, tx bank.Transaction) string {
	switch tx.Type {
	case bank.Deposit:
		return t.Amount.Credit.Render("+" + common.Money(tx.Amount, tx.Currency))
	case bank.Withdrawal:
		return t.Amount.Debit.Render("-" + common.Money(tx.Amount, tx.Currency))
	}
	return t.Base.Render(common.Money(tx.Amount, tx.Currency))
}

func (p *transactions) ID() pageID {
	return transactionsPage
}

func (p *transactions) Title() string {
	return "Transactions"
}

func (p *transactions) Editing() bool {
	return p.filters.Active()
}

func (p *transactions) Activate() tea.Cmd {
	return p.fetch(false)
}

func (p *transactions) Refresh() tea.Cmd {
	return p.fetch(true)
}

// Query builds the transaction query from the filter bar. It reports false
// while a date is being typed or the range is inverted.
func (p *transactions) Query() (api.TransactionQuery, bool) {
	r, ok := p.filters.Range()
	if !ok {
		return api.TransactionQuery{}, false
	}
	return api.TransactionQuery{
		Type:      bank.TransactionType(p.typ.Value()),
		Status:    bank.TransactionStatus(p.status.Value()),
		Currency:  p.currency.Value(),
		Country:   p.country.Value(),
		DateRange: r,
	}, true
}

func (p *transactions) fetch(force bool) tea.Cmd {
	q, ok := p.Query()
	if !ok {
		return nil
	}
	cmd := p.store.FetchTransactions(q, force)
	p.Sync()
	return cmd
}

func (p *transactions) Sync() {
	s := p.store.Transactions
	p.table.SetItems(s.Items)
	p.table.SetLoading(s.Loading(store.OpList))
}

func (p *transactions) Update(msg tea.Msg) tea.Cmd {
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
	case key.Matches(kp, p.keyMap.Transactions.Copy):
		return p.copySelected()
	case key.Matches(kp, p.keyMap.Transactions.Detail):
		if tx, ok := p.table.Selected(); ok {
			return p.store.GetTransaction(tx.ID)
		}
		return nil
	}
	p.table.Update(msg)
	return cmd
}

func (p *transactions) copySelected() tea.Cmd {
	tx, ok := p.table.Selected()
	if !ok {
		return nil
	}
	return copyToClipboard(tx.ID)
}

func (p *transactions) HandleClick(x, y int) tea.Cmd {
	p.table.HandleMouseDown(x, y-p.listTop)
	return nil
}

// detail returns the selected transaction, preferring the copy loaded by
// the detail request.
func (p *transactions) detail() (bank.Transaction, bool) {
	tx, ok := p.table.Selected()
	if !ok {
		return tx, false
	}
	if cur := p.store.Transactions.Current; cur != nil && cur.ID == tx.ID {
		return *cur, true
	}
	return tx, true
}

func (p *transactions) detailView(width int) string {
	t := &p.com.Styles
	tx, ok := p.detail()
	if !ok {
		return ""
	}
	parts := []string{
		t.Title.Render(tx.ID),
		common.Badge(t, tx.Status),
		t.Base.Render(tx.ClientName),
	}
	if route := nonEmpty(tx.SourceAccount, tx.DestinationAccount); len(route) > 0 {
		parts = append(parts, t.Muted.Render(strings.Join(route, " → ")))
	}
	if tx.Description != "" {
		parts = append(parts, t.Subtle.Render(tx.Description))
	}
	return lipgloss.NewStyle().MaxWidth(width).Render(strings.Join(parts, "  "))
}

func (p *transactions) View(width, height int) string {
	t := &p.com.Styles
	p.table.SetWidth(width)

	rows := []string{p.filters.View(width), ""}
	if msg := p.store.Transactions.Err; msg != "" {
		rows = append(rows, errorLine(t, msg, width), "")
	}
	p.listTop = lipgloss.Height(lipgloss.JoinVertical(lipgloss.Left, rows...))
	rows = append(rows, p.table.View())
	if detail := p.detailView(width); detail != "" {
		rows = append(rows, "", detail)
	}
	return lipgloss.NewStyle().MaxHeight(height).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (p *transactions) ShortHelp() []key.Binding {
	if p.filters.Active() {
		return p.filters.ShortHelp()
	}
	km := p.table.KeyMap()
	return []key.Binding{
		km.Up, km.Down, km.PrevPage, km.NextPage,
		p.keyMap.Filters.Open,
		p.keyMap.Transactions.Detail,
		p.keyMap.Transactions.Copy,
		p.keyMap.Refresh,
	}
}

func errorLine(t *styles.Styles, msg string, width int) string {
	return common.Status(t, common.StatusOpts{
		Icon:             styles.ErrorIcon,
		Title:            "Request failed",
		TitleColor:       t.Form.Error.GetForeground(),
		Description:      msg,
		DescriptionColor: t.Muted.GetForeground(),
	}, width)
}

func nonEmpty(values ...string) []string {
	out := values[:0:0]
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	}
	return out
}
