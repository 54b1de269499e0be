package model

import (
	"net/http/httptest"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/ledgerlens/ledgerlens/internal/api"
	"github.com/ledgerlens/ledgerlens/internal/bank"
	"github.com/ledgerlens/ledgerlens/internal/csync"
	"github.com/ledgerlens/ledgerlens/internal/mockapi"
	"github.com/ledgerlens/ledgerlens/internal/store"
	"github.com/ledgerlens/ledgerlens/internal/ui/common"
	"github.com/ledgerlens/ledgerlens/internal/ui/dialog"
	"github.com/ledgerlens/ledgerlens/internal/ui/styles"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var testCatalog = bank.Catalog{
	Currencies: []string{"EUR", "USD"},
	Countries:  []string{"NO", "DE"},
}

var (
	enterKey = tea.KeyPressMsg{Code: tea.KeyEnter}
	escKey   = tea.KeyPressMsg{Code: tea.KeyEscape}
	tabKey   = tea.KeyPressMsg{Code: tea.KeyTab}
	ctrlC    = tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl}
)

func newTestUI(t *testing.T) *UI {
	t.Helper()
	srv := httptest.NewServer(mockapi.New(mockapi.WithToken("tok")))
	t.Cleanup(srv.Close)
	st := store.New(api.New(srv.URL, csync.NewValue("tok")))
	m := New(common.DefaultCommon(nil), st, testCatalog)
	m.Update(tea.WindowSizeMsg{Width: 140, Height: 40})
	return m
}

func TestUITabsWrapAround(t *testing.T) {
	t.Parallel()

	m := newTestUI(t)
	require.Equal(t, overviewPage, m.activePage().ID())

	m.Update(tabKey)
	require.Equal(t, transactionsPage, m.activePage().ID())

	m.Update(tea.KeyPressMsg{Code: tea.KeyTab, Mod: tea.ModShift})
	m.Update(tea.KeyPressMsg{Code: tea.KeyTab, Mod: tea.ModShift})
	require.Equal(t, wizardPage, m.activePage().ID())

	m.Update(tabKey)
	require.Equal(t, overviewPage, m.activePage().ID())
}

func TestUIQuitDialog(t *testing.T) {
	t.Parallel()

	m := newTestUI(t)
	require.Nil(t, m.handleKeyPressMsg(ctrlC))
	require.True(t, m.dialog.ContainsDialog(dialog.QuitID))

	// Opening twice keeps a single dialog.
	m.Update(openQuitMsg{})
	require.Equal(t, 1, m.dialog.Len())

	cmd := m.handleKeyPressMsg(ctrlC)
	require.NotNil(t, cmd)
	require.IsType(t, tea.QuitMsg{}, cmd())
}

func TestUICommandPaletteSwitchesPage(t *testing.T) {
	t.Parallel()

	m := newTestUI(t)
	m.handleKeyPressMsg(tea.KeyPressMsg{Code: 'p', Mod: tea.ModCtrl})
	require.True(t, m.dialog.ContainsDialog(dialog.CommandsID))

	cmd := m.handleDialogAction(dialog.ActionRun{Command: dialog.Command{Msg: switchPageMsg{Page: reportsPage}}})
	require.NotNil(t, cmd)
	m.Update(cmd())
	require.Equal(t, reportsPage, m.activePage().ID())
}

func TestUIAppliesStoreResults(t *testing.T) {
	t.Parallel()

	m := newTestUI(t)
	m.Update(m.store.FetchClients(true)())

	require.Len(t, m.store.Clients.Items, 8)
	rep := m.pages[reportsPage].(*reports)
	require.Equal(t, 8, rep.table.Len())
	require.Equal(t, 8, m.wizard.clientCount)

	m.Update(m.store.FetchTransactions(m.store.TransactionQuery(), true)())
	tx := m.pages[transactionsPage].(*transactions)
	require.Equal(t, len(m.store.Transactions.Items), tx.table.Len())
	require.NotZero(t, tx.table.Len())
}

func TestUIReportsRejectedFetch(t *testing.T) {
	t.Parallel()

	m := newTestUI(t)
	_, cmd := m.Update(m.store.GetTransaction("tx-missing")())
	require.NotEmpty(t, m.store.Transactions.Err)
	require.NotNil(t, cmd)
}

func TestUIViewRendersTabs(t *testing.T) {
	t.Parallel()

	m := newTestUI(t)
	content := ansi.Strip(m.View().Content)
	for _, p := range m.pages {
		require.Contains(t, content, p.Title())
	}

	m.Update(tea.WindowSizeMsg{Width: 30, Height: 10})
	require.Contains(t, ansi.Strip(m.View().Content), "Window too small")
}

func TestMatchClients(t *testing.T) {
	t.Parallel()

	clients := []bank.Client{
		{ID: "cl-1", Name: "Aurora Logistics GmbH"},
		{ID: "cl-2", Name: "Castellan Holdings Ltd"},
	}

	all := matchClients(clients, "  ")
	require.Len(t, all, 2)
	require.Equal(t, "cl-1", all[0].ID)
	require.Empty(t, all[0].matched)

	got := matchClients(clients, "cstl")
	require.Len(t, got, 1)
	require.Equal(t, "cl-2", got[0].ID)
	require.NotEmpty(t, got[0].matched)

	require.Empty(t, matchClients(clients, "zzz"))
}

func TestMonthlyBars(t *testing.T) {
	t.Parallel()

	sty := styles.DefaultStyles()
	require.Contains(t, ansi.Strip(strings.Join(monthlyBars(&sty, bank.ClientReport{}, 80), "\n")), "No activity.")

	r := bank.ClientReport{
		RiskScore: 0.5,
		Monthly: []bank.MonthlyVolume{
			{Month: "2025-01", Volume: decimal.NewFromInt(500), Count: 1},
			{Month: "2025-02", Volume: decimal.Zero, Count: 0},
		},
	}
	rows := monthlyBars(&sty, r, 80)
	require.Len(t, rows, 2)
	require.Contains(t, ansi.Strip(rows[0]), "2025-01")
	require.Contains(t, ansi.Strip(rows[0]), "1 tx")
}

func TestFilterBarRejectsInvertedRange(t *testing.T) {
	t.Parallel()

	sty := styles.DefaultStyles()
	km := DefaultKeyMap()
	f := newFilterBar(&sty, &km, "test")

	r, ok := f.Range()
	require.True(t, ok)
	require.Equal(t, api.DateRange{}, r)

	f.from.SetValue("2025-03-10")
	f.to.SetValue("2025-03-01")
	_, ok = f.Range()
	require.False(t, ok, "unvalidated dates are not sent")

	require.True(t, f.from.Valid())
	require.True(t, f.to.Valid())
	_, ok = f.Range()
	require.False(t, ok)
	require.ErrorIs(t, f.err, api.ErrInvertedRange)

	f.Clear()
	r, ok = f.Range()
	require.True(t, ok)
	require.Equal(t, api.DateRange{}, r)
}

func newTestWizard(t *testing.T) *wizard {
	t.Helper()
	st := store.New(api.New("http://127.0.0.1:1", csync.NewValue("")))
	st.Clients.Items = []bank.Client{{ID: "cl-100", Name: "Aurora Logistics GmbH"}}
	km := DefaultKeyMap()
	return newWizard(common.DefaultCommon(nil), st, &km, testCatalog)
}

func TestWizardValidatesDetails(t *testing.T) {
	t.Parallel()

	w := newTestWizard(t)
	require.Equal(t, bank.Deposit, w.Type())
	require.False(t, w.Editing())

	w.Update(enterKey)
	require.Equal(t, stepDetails, w.step)
	require.True(t, w.Editing())

	// Nothing filled in yet.
	w.Update(enterKey)
	require.Equal(t, stepDetails, w.step)
	require.Error(t, w.amount.Err())

	w.amount.SetValue("250.005")
	w.destination.SetValue("NO9386011117947")
	w.Update(enterKey)
	require.Equal(t, stepDetails, w.step)

	w.amount.SetValue("250.50")
	w.Update(enterKey)
	require.Equal(t, stepReview, w.step)
	require.True(t, w.request.Amount.Equal(decimal.RequireFromString("250.5")))
	require.Equal(t, "cl-100", w.request.ClientID)
	require.Equal(t, "EUR", w.request.Currency)
	require.Equal(t, "NO", w.request.Country)
	require.Empty(t, w.request.SourceAccount)

	w.Update(escKey)
	require.Equal(t, stepDetails, w.step)
	require.Equal(t, "250.50", w.amount.Value(), "going back keeps the values")
}

func TestWizardSubmit(t *testing.T) {
	t.Parallel()

	w := newTestWizard(t)
	require.Nil(t, w.Submit(), "nothing to submit before review")

	w.Update(enterKey)
	w.amount.SetValue("99")
	w.destination.SetValue("DE89370400440532013000")
	w.Update(enterKey)
	require.Equal(t, stepReview, w.step)

	cmd := w.Update(enterKey)
	require.NotNil(t, cmd)
	open, ok := cmd().(openDialogMsg)
	require.True(t, ok)
	require.Equal(t, SubmitTransactionID, open.Dialog.ID())

	require.NotNil(t, w.Submit())
	require.True(t, w.submitting)
	require.Nil(t, w.Submit(), "a request is already in flight")

	w.Update(store.Result[bank.Transaction]{Op: store.OpCreate, Err: api.ErrNotFound})
	require.Equal(t, stepReview, w.step)
	require.ErrorIs(t, w.err, api.ErrNotFound)

	require.NotNil(t, w.Submit())
	cmd = w.Update(store.Result[bank.Transaction]{Op: store.OpCreate, Item: bank.Transaction{ID: "tx-2001", Status: bank.StatusCompleted}})
	require.NotNil(t, cmd)
	require.Equal(t, stepType, w.step)
	require.Empty(t, w.amount.Value())
}
