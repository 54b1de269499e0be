package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/x/etag"
	"github.com/ledgerlens/ledgerlens/internal/api"
	"github.com/ledgerlens/ledgerlens/internal/bank"
	"github.com/ledgerlens/ledgerlens/internal/csync"
	"github.com/ledgerlens/ledgerlens/internal/mockapi"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func newBackend(t *testing.T, opts ...mockapi.Option) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(mockapi.New(opts...))
	t.Cleanup(srv.Close)
	return srv
}

func TestClientAgainstMockBackend(t *testing.T) {
	t.Parallel()

	srv := newBackend(t, mockapi.WithToken("tok"))
	c := api.New(srv.URL, csync.NewValue("tok"), api.WithWorkstationID("ws-test"))
	ctx := t.Context()

	me, err := c.Me(ctx)
	require.NoError(t, err)
	require.Equal(t, "op-1", me.ID)

	txs, err := c.Transactions(ctx, api.TransactionQuery{Type: bank.Transfer, Currency: "EUR"})
	require.NoError(t, err)
	require.Len(t, txs, 19)

	tx, err := c.Transaction(ctx, txs[0].ID)
	require.NoError(t, err)
	require.Equal(t, txs[0].ID, tx.ID)
	require.True(t, tx.Amount.Equal(txs[0].Amount))

	alerts, err := c.Alerts(ctx, api.AlertQuery{Severity: bank.SeverityCritical})
	require.NoError(t, err)
	require.Len(t, alerts, 7)

	alert, err := c.Alert(ctx, alerts[0].ID)
	require.NoError(t, err)
	require.Equal(t, alerts[0].Summary, alert.Summary)

	clients, err := c.Clients(ctx)
	require.NoError(t, err)
	require.Len(t, clients, 8)

	client, err := c.Client(ctx, "cl-106")
	require.NoError(t, err)
	require.Equal(t, bank.RiskHigh, client.RiskLevel)

	report, err := c.ClientReport(ctx, "cl-102")
	require.NoError(t, err)
	require.Equal(t, 12, report.TransactionCount)

	summary, err := c.Summary(ctx, api.DateRange{From: "2026-07-01", To: "2026-07-31"})
	require.NoError(t, err)
	require.Equal(t, 22, summary.TransactionCount)
}

func TestClientErrorKinds(t *testing.T) {
	t.Parallel()

	srv := newBackend(t, mockapi.WithToken("tok"))
	token := csync.NewValue("wrong")
	c := api.New(srv.URL, token)

	_, err := c.Me(t.Context())
	require.ErrorIs(t, err, api.ErrUnauthorized)
	require.Equal(t, api.KindUnauthorized, api.KindOf(err))
	require.Contains(t, err.Error(), "missing or invalid bearer token")

	token.Set("tok")
	_, err = c.Transaction(t.Context(), "tx-missing")
	require.ErrorIs(t, err, api.ErrNotFound)
	var apiErr *api.Error
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusNotFound, apiErr.Status)
	require.Equal(t, `transaction "tx-missing" not found`, apiErr.Message)

	_, err = c.Transactions(t.Context(), api.TransactionQuery{DateRange: api.DateRange{From: "2026-09-01", To: "2026-01-01"}})
	require.ErrorIs(t, err, api.ErrValidation)
	require.NotErrorIs(t, err, api.ErrServer)
}

func TestClientNetworkError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := api.New(url, nil).Clients(t.Context())
	require.ErrorIs(t, err, api.ErrNetwork)
}

func TestClientTimeout(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	t.Cleanup(srv.Close)

	ctx, cancel := context.WithTimeout(t.Context(), 50*time.Millisecond)
	defer cancel()
	_, err := api.New(srv.URL, nil).Clients(ctx)
	require.ErrorIs(t, err, api.ErrTimeout)
}

func TestClientDecodeAndServerErrors(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/clients":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"not":"a list"}`))
		case "/v1/alerts":
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(strings.Repeat("€", 300)))
		default:
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte(`{"error":{"message":"upstream core banking unavailable"}}`))
		}
	}))
	t.Cleanup(srv.Close)
	c := api.New(srv.URL, nil)

	_, err := c.Clients(t.Context())
	require.ErrorIs(t, err, api.ErrDecode)
	require.ErrorContains(t, err, "invalid response (200): json: cannot unmarshal")

	_, err = c.Alerts(t.Context(), api.AlertQuery{})
	require.ErrorIs(t, err, api.ErrServer)
	require.True(t, utf8.ValidString(err.Error()))
	require.True(t, strings.HasSuffix(err.Error(), "€… (500)"), err.Error())

	_, err = c.Me(t.Context())
	require.ErrorIs(t, err, api.ErrServer)
	require.Equal(t, "upstream core banking unavailable (502)", err.Error())
}

func TestCreateTransactionHeaders(t *testing.T) {
	t.Parallel()

	var (
		mu                sync.Mutex
		keys              []string
		workstation, auth string
	)
	backend := mockapi.New()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		keys = append(keys, r.Header.Get(api.HeaderIdempotencyKey))
		workstation = r.Header.Get(api.HeaderWorkstationID)
		auth = r.Header.Get("Authorization")
		mu.Unlock()
		backend.ServeHTTP(w, r)
	}))
	t.Cleanup(srv.Close)

	c := api.New(srv.URL, csync.NewValue("abc"), api.WithWorkstationID("ws-42"))
	req := bank.CreateTransactionRequest{
		Type: bank.Deposit, Amount: decimal.RequireFromString("99.90"), Currency: "EUR",
		ClientID: "cl-100", DestinationAccount: "DE89370400440532013000", Country: "DE",
	}
	for range 2 {
		tx, err := c.CreateTransaction(t.Context(), req)
		require.NoError(t, err)
		require.Equal(t, bank.StatusCompleted, tx.Status)
	}
	mu.Lock()
	defer mu.Unlock()
	require.Len(t, keys, 2)
	require.NotEmpty(t, keys[0])
	require.NotEqual(t, keys[0], keys[1], "each submission gets its own key")
	require.Equal(t, "ws-42", workstation)
	require.Equal(t, "Bearer abc", auth)
}

func TestCreateTransactionValidatesLocally(t *testing.T) {
	t.Parallel()

	var called atomic.Bool
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { called.Store(true) }))
	t.Cleanup(srv.Close)

	_, err := api.New(srv.URL, nil).CreateTransaction(t.Context(), bank.CreateTransactionRequest{Type: bank.Transfer})
	require.ErrorIs(t, err, api.ErrValidation)
	require.ErrorIs(t, err, bank.ErrInvalidAmount)
	require.False(t, called.Load())
}

func TestReferenceNotModified(t *testing.T) {
	t.Parallel()

	srv := newBackend(t)
	c := api.New(srv.URL, nil)

	catalog, tag, err := c.Reference(t.Context(), "")
	require.NoError(t, err)
	require.NotEmpty(t, catalog.Currencies)
	data, err := json.Marshal(catalog)
	require.NoError(t, err)
	require.Equal(t, etag.Of(data), tag, "tags are returned unquoted")

	_, tag2, err := c.Reference(t.Context(), tag)
	require.True(t, errors.Is(err, api.ErrNotModified))
	require.Equal(t, tag, tag2)
}

func TestReferenceSendsQuotedTag(t *testing.T) {
	t.Parallel()

	var got atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got.Store(r.Header.Get("If-None-Match"))
		w.WriteHeader(http.StatusNotModified)
	}))
	t.Cleanup(srv.Close)

	_, _, err := api.New(srv.URL, nil).Reference(t.Context(), "abc")
	require.ErrorIs(t, err, api.ErrNotModified)
	require.Equal(t, `"abc"`, got.Load())
}

func TestClientOwnsHTTPClient(t *testing.T) {
	t.Parallel()

	srv := newBackend(t)
	shared := &http.Client{}
	c := api.New(srv.URL, nil, api.WithHTTPClient(shared), api.WithTimeout(time.Second))

	_, err := c.Clients(t.Context())
	require.NoError(t, err)
	require.Zero(t, shared.Timeout, "the caller's client is left untouched")
	require.Zero(t, http.DefaultClient.Timeout)
}
