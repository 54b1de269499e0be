package store

import (
	"net/http/httptest"
	"testing"

	"github.com/ledgerlens/ledgerlens/internal/api"
	"github.com/ledgerlens/ledgerlens/internal/bank"
	"github.com/ledgerlens/ledgerlens/internal/csync"
	"github.com/ledgerlens/ledgerlens/internal/mockapi"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	srv := httptest.NewServer(mockapi.New(mockapi.WithToken("tok")))
	t.Cleanup(srv.Close)
	return New(api.New(srv.URL, csync.NewValue("tok")))
}

func TestSliceDropsStaleResults(t *testing.T) {
	t.Parallel()

	s := NewSlice[int]("n")
	first := s.Begin(OpList)
	second := s.Begin(OpList)

	require.False(t, s.Apply(Result[int]{Slice: "n", Op: OpList, Seq: first, Items: []int{1}}))
	require.True(t, s.Loading(OpList))
	require.Empty(t, s.Items)

	require.True(t, s.Apply(Result[int]{Slice: "n", Op: OpList, Seq: second, Items: []int{2}}))
	require.False(t, s.Loading(OpList))
	require.Equal(t, []int{2}, s.Items)
	require.False(t, s.FetchedAt.IsZero())

	require.False(t, s.Apply(Result[int]{Slice: "other", Op: OpList, Seq: second}))
}

func TestSliceLoadingPerOperation(t *testing.T) {
	t.Parallel()

	s := NewSlice[string]("s")
	list := s.Begin(OpList)
	get := s.Begin(OpGet)
	require.True(t, s.Loading(OpList))
	require.True(t, s.Loading(OpGet))

	require.True(t, s.Apply(Result[string]{Slice: "s", Op: OpGet, Seq: get, Item: "x"}))
	require.True(t, s.Any())
	require.Equal(t, "x", *s.Current)

	require.True(t, s.Apply(Result[string]{Slice: "s", Op: OpList, Seq: list, Items: []string{"a"}}))
	require.False(t, s.Any())
}

func TestSliceErrorKeepsData(t *testing.T) {
	t.Parallel()

	s := NewSlice[int]("n")
	seq := s.Begin(OpList)
	s.Apply(Result[int]{Slice: "n", Op: OpList, Seq: seq, Items: []int{7}})

	seq = s.Begin(OpList)
	s.Apply(Result[int]{Slice: "n", Op: OpList, Seq: seq, Err: api.ErrServer})
	require.Equal(t, []int{7}, s.Items)
	require.NotEmpty(t, s.Err)
	require.ErrorIs(t, s.LastErr, api.ErrServer)

	s.Begin(OpGet)
	require.Empty(t, s.Err, "a new request clears the error")
}

func TestFetchTransactions(t *testing.T) {
	t.Parallel()

	s := newStore(t)
	q := api.TransactionQuery{Status: bank.StatusFlagged}
	cmd := s.FetchTransactions(q, false)
	require.NotNil(t, cmd)
	require.True(t, s.Transactions.Loading(OpList))
	require.Nil(t, s.FetchTransactions(q, false), "identical query in flight")

	require.True(t, s.Apply(cmd()))
	require.Len(t, s.Transactions.Items, 13)
	require.Equal(t, q, s.TransactionQuery())

	require.Nil(t, s.FetchTransactions(q, false), "identical query loaded")
	require.NotNil(t, s.FetchTransactions(q, true))
}

func TestFetchTransactionsNewerQueryWins(t *testing.T) {
	t.Parallel()

	s := newStore(t)
	old := s.FetchTransactions(api.TransactionQuery{Type: bank.Transfer}, false)
	latest := s.FetchTransactions(api.TransactionQuery{ClientID: "cl-102"}, false)

	require.True(t, s.Apply(latest()))
	require.False(t, s.Apply(old()))
	require.Len(t, s.Transactions.Items, 12)
}

func TestCreateTransaction(t *testing.T) {
	t.Parallel()

	s := newStore(t)
	cmd := s.CreateTransaction(bank.CreateTransactionRequest{
		Type: bank.Deposit, Amount: decimal.RequireFromString("250.00"), Currency: "EUR",
		ClientID: "cl-100", DestinationAccount: "DE89370400440532013000", Country: "DE",
	})
	require.True(t, s.Transactions.Loading(OpCreate))
	require.True(t, s.Apply(cmd()))
	require.False(t, s.Transactions.Loading(OpCreate))
	require.NotNil(t, s.Transactions.Current)
	require.Equal(t, bank.StatusCompleted, s.Transactions.Current.Status)
}

func TestCreateTransactionValidationError(t *testing.T) {
	t.Parallel()

	s := newStore(t)
	cmd := s.CreateTransaction(bank.CreateTransactionRequest{Type: bank.Withdrawal})
	require.True(t, s.Apply(cmd()))
	require.ErrorIs(t, s.Transactions.LastErr, api.ErrValidation)
	require.Nil(t, s.Transactions.Current)
}

func TestFetchAlertsAndGet(t *testing.T) {
	t.Parallel()

	s := newStore(t)
	require.True(t, s.Apply(s.FetchAlerts(api.AlertQuery{Severity: bank.SeverityCritical}, false)()))
	require.Len(t, s.Alerts.Items, 7)

	id := s.Alerts.Items[0].ID
	require.True(t, s.Apply(s.GetAlert(id)()))
	require.Equal(t, id, s.Alerts.Current.ID)

	require.True(t, s.Apply(s.GetAlert("al-missing")()))
	require.ErrorIs(t, s.Alerts.LastErr, api.ErrNotFound)
	require.Len(t, s.Alerts.Items, 7)
}

func TestReports(t *testing.T) {
	t.Parallel()

	s := newStore(t)
	require.True(t, s.Apply(s.FetchClients(false)()))
	require.Len(t, s.Clients.Items, 8)
	require.Nil(t, s.FetchClients(false))

	require.True(t, s.Apply(s.FetchClientReport("cl-102")()))
	require.Equal(t, "cl-102", s.Report.Current.Client.ID)
}

func TestFetchOverview(t *testing.T) {
	t.Parallel()

	s := newStore(t)
	cmd := s.FetchOverview(api.DateRange{})
	require.True(t, s.Summary.Loading(OpGet))
	require.True(t, s.Recent.Loading(OpList))

	msg := cmd()
	require.IsType(t, OverviewMsg{}, msg)
	require.True(t, s.Apply(msg))
	require.False(t, s.Summary.Any())
	require.False(t, s.Recent.Any())
	require.Equal(t, 64, s.Summary.Current.TransactionCount)
	for _, a := range s.Recent.Items {
		require.Equal(t, bank.AlertOpen, a.Status)
	}
}

func TestFetchOverviewError(t *testing.T) {
	t.Parallel()

	s := newStore(t)
	cmd := s.FetchOverview(api.DateRange{From: "2026-09-01", To: "2026-01-01"})
	require.True(t, s.Apply(cmd()))
	require.NotEmpty(t, s.Summary.Err)
	require.NotEmpty(t, s.Recent.Err)
}
