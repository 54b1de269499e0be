package store

import (
	"context"
	"net/url"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/ledgerlens/ledgerlens/internal/api"
	"github.com/ledgerlens/ledgerlens/internal/bank"
	"github.com/zeebo/xxh3"
	"golang.org/x/sync/errgroup"
)

const (
	TransactionsSlice = "transactions"
	AlertsSlice       = "alerts"
	ClientsSlice      = "clients"
	ReportSlice       = "client_report"
	SummarySlice      = "summary"
	RecentSlice       = "recent_alerts"
)

// queryKey hashes an encoded query so identical filters can be detected.
func queryKey(v url.Values) uint64 {
	return xxh3.HashString(v.Encode())
}

// Store groups the slices of every resource the dashboard shows.
type Store struct {
	client  *api.Client
	timeout time.Duration

	Transactions *Slice[bank.Transaction]
	Alerts       *Slice[bank.Alert]
	Clients      *Slice[bank.Client]
	Report       *Slice[bank.ClientReport]
	Summary      *Slice[bank.SummaryReport]
	Recent       *Slice[bank.Alert]

	txQuery    api.TransactionQuery
	alertQuery api.AlertQuery
}

// New returns an empty store fetching through client.
func New(client *api.Client) *Store {
	return &Store{
		client:       client,
		timeout:      api.DefaultTimeout,
		Transactions: NewSlice[bank.Transaction](TransactionsSlice),
		Alerts:       NewSlice[bank.Alert](AlertsSlice),
		Clients:      NewSlice[bank.Client](ClientsSlice),
		Report:       NewSlice[bank.ClientReport](ReportSlice),
		Summary:      NewSlice[bank.SummaryReport](SummarySlice),
		Recent:       NewSlice[bank.Alert](RecentSlice),
	}
}

// Client returns the API client the store fetches through.
func (s *Store) Client() *api.Client {
	return s.client
}

// Loading reports whether any slice has a request in flight.
func (s *Store) Loading() bool {
	for _, sl := range []interface{ Any() bool }{s.Transactions, s.Alerts, s.Clients, s.Report, s.Summary, s.Recent} {
		if sl.Any() {
			return true
		}
	}
	return false
}

// SetTimeout bounds every command started by the store.
func (s *Store) SetTimeout(d time.Duration) {
	if d > 0 {
		s.timeout = d
	}
}

func (s *Store) context() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), s.timeout)
}

// TransactionQuery returns the filter of the last transaction fetch.
func (s *Store) TransactionQuery() api.TransactionQuery {
	return s.txQuery
}

// AlertQuery returns the filter of the last alert fetch.
func (s *Store) AlertQuery() api.AlertQuery {
	return s.alertQuery
}

// FetchTransactions lists transactions matching q. Unless force is set, it
// returns nil when the same query is already loaded or in flight.
func (s *Store) FetchTransactions(q api.TransactionQuery, force bool) tea.Cmd {
	key := queryKey(q.Values())
	if !force && s.Transactions.fresh(key) {
		return nil
	}
	s.txQuery = q
	seq := s.Transactions.beginList(key)
	return func() tea.Msg {
		ctx, cancel := s.context()
		defer cancel()
		items, err := s.client.Transactions(ctx, q)
		return Result[bank.Transaction]{Slice: TransactionsSlice, Op: OpList, Seq: seq, Key: key, Items: items, Err: err}
	}
}

// GetTransaction loads one transaction into Transactions.Current.
func (s *Store) GetTransaction(id string) tea.Cmd {
	seq := s.Transactions.Begin(OpGet)
	return func() tea.Msg {
		ctx, cancel := s.context()
		defer cancel()
		tx, err := s.client.Transaction(ctx, id)
		return Result[bank.Transaction]{Slice: TransactionsSlice, Op: OpGet, Seq: seq, Item: tx, Err: err}
	}
}

// CreateTransaction submits req. The created transaction becomes
// Transactions.Current.
func (s *Store) CreateTransaction(req bank.CreateTransactionRequest) tea.Cmd {
	seq := s.Transactions.Begin(OpCreate)
	return func() tea.Msg {
		ctx, cancel := s.context()
		defer cancel()
		tx, err := s.client.CreateTransaction(ctx, req)
		return Result[bank.Transaction]{Slice: TransactionsSlice, Op: OpCreate, Seq: seq, Item: tx, Err: err}
	}
}

// FetchAlerts lists alerts matching q. Unless force is set, it returns nil
// when the same query is already loaded or in flight.
func (s *Store) FetchAlerts(q api.AlertQuery, force bool) tea.Cmd {
	key := queryKey(q.Values())
	if !force && s.Alerts.fresh(key) {
		return nil
	}
	s.alertQuery = q
	seq := s.Alerts.beginList(key)
	return func() tea.Msg {
		ctx, cancel := s.context()
		defer cancel()
		items, err := s.client.Alerts(ctx, q)
		return Result[bank.Alert]{Slice: AlertsSlice, Op: OpList, Seq: seq, Key: key, Items: items, Err: err}
	}
}

// GetAlert loads one alert into Alerts.Current.
func (s *Store) GetAlert(id string) tea.Cmd {
	seq := s.Alerts.Begin(OpGet)
	return func() tea.Msg {
		ctx, cancel := s.context()
		defer cancel()
		a, err := s.client.Alert(ctx, id)
		return Result[bank.Alert]{Slice: AlertsSlice, Op: OpGet, Seq: seq, Item: a, Err: err}
	}
}

// FetchClients lists every client.
func (s *Store) FetchClients(force bool) tea.Cmd {
	key := queryKey(nil)
	if !force && s.Clients.fresh(key) {
		return nil
	}
	seq := s.Clients.beginList(key)
	return func() tea.Msg {
		ctx, cancel := s.context()
		defer cancel()
		items, err := s.client.Clients(ctx)
		return Result[bank.Client]{Slice: ClientsSlice, Op: OpList, Seq: seq, Key: key, Items: items, Err: err}
	}
}

// FetchClientReport loads the report of one client into Report.Current.
func (s *Store) FetchClientReport(id string) tea.Cmd {
	seq := s.Report.Begin(OpGet)
	return func() tea.Msg {
		ctx, cancel := s.context()
		defer cancel()
		report, err := s.client.ClientReport(ctx, id)
		return Result[bank.ClientReport]{Slice: ReportSlice, Op: OpGet, Seq: seq, Item: report, Err: err}
	}
}

// OverviewMsg carries the results of [Store.FetchOverview].
type OverviewMsg struct {
	Summary Result[bank.SummaryReport]
	Recent  Result[bank.Alert]
}

// FetchOverview loads the summary report and the open alerts concurrently.
// When one request fails the other is cancelled and both report the error.
func (s *Store) FetchOverview(r api.DateRange) tea.Cmd {
	summarySeq := s.Summary.Begin(OpGet)
	recentSeq := s.Recent.beginList(queryKey(r.Values()))
	return func() tea.Msg {
		ctx, cancel := s.context()
		defer cancel()

		var (
			summary bank.SummaryReport
			recent  []bank.Alert
		)
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() (err error) {
			summary, err = s.client.Summary(gctx, r)
			return err
		})
		g.Go(func() (err error) {
			recent, err = s.client.Alerts(gctx, api.AlertQuery{Status: bank.AlertOpen, DateRange: r})
			return err
		})
		err := g.Wait()

		return OverviewMsg{
			Summary: Result[bank.SummaryReport]{Slice: SummarySlice, Op: OpGet, Seq: summarySeq, Item: summary, Err: err},
			Recent:  Result[bank.Alert]{Slice: RecentSlice, Op: OpList, Seq: recentSeq, Items: recent, Err: err},
		}
	}
}

// Apply routes a result message to its slice. It reports whether msg was a
// current result of this store.
func (s *Store) Apply(msg tea.Msg) bool {
	switch msg := msg.(type) {
	case Result[bank.Transaction]:
		return s.Transactions.Apply(msg)
	case Result[bank.Alert]:
		if msg.Slice == RecentSlice {
			return s.Recent.Apply(msg)
		}
		return s.Alerts.Apply(msg)
	case Result[bank.Client]:
		return s.Clients.Apply(msg)
	case Result[bank.ClientReport]:
		return s.Report.Apply(msg)
	case Result[bank.SummaryReport]:
		return s.Summary.Apply(msg)
	case OverviewMsg:
		a := s.Summary.Apply(msg.Summary)
		b := s.Recent.Apply(msg.Recent)
		return a || b
	}
	return false
}

// Err returns the error carried by a result message, or nil.
func Err(msg tea.Msg) error {
	switch msg := msg.(type) {
	case Result[bank.Transaction]:
		return msg.Err
	case Result[bank.Alert]:
		return msg.Err
	case Result[bank.Client]:
		return msg.Err
	case Result[bank.ClientReport]:
		return msg.Err
	case Result[bank.SummaryReport]:
		return msg.Err
	case OverviewMsg:
		return msg.Summary.Err
	}
	return nil
}
