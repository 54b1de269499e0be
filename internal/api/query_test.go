package api

import (
	"net/url"
	"testing"
	"time"

	"github.com/ledgerlens/ledgerlens/internal/bank"
	"github.com/stretchr/testify/require"
)

func TestTransactionQueryValues(t *testing.T) {
	t.Parallel()

	q := TransactionQuery{
		Type:      bank.Transfer,
		Currency:  "EUR",
		DateRange: DateRange{From: "2026-01-01"},
	}
	v := q.Values()
	require.Equal(t, "currency=EUR&from=2026-01-01&type=transfer", v.Encode())
	require.Equal(t, q, ParseTransactionQuery(v))
	require.Empty(t, TransactionQuery{}.Values())
}

func TestAlertQueryValues(t *testing.T) {
	t.Parallel()

	q := AlertQuery{Severity: bank.SeverityHigh, Status: bank.AlertOpen, DateRange: DateRange{To: "2026-02-01"}}
	parsed := ParseAlertQuery(q.Values())
	require.Equal(t, q, parsed)
}

func TestDateRange(t *testing.T) {
	t.Parallel()

	require.NoError(t, DateRange{}.Validate())
	require.NoError(t, DateRange{From: "2026-03-01", To: "2026-03-01"}.Validate())
	require.ErrorIs(t, DateRange{From: "2026-03-02", To: "2026-03-01"}.Validate(), ErrInvertedRange)
	require.Error(t, DateRange{From: "03/01/2026"}.Validate())

	r := DateRange{From: "2026-03-01", To: "2026-03-31"}
	require.True(t, r.Contains(time.Date(2026, 3, 31, 23, 59, 0, 0, time.UTC)), "end day is inclusive")
	require.True(t, r.Contains(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)))
	require.False(t, r.Contains(time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)))
	require.False(t, r.Contains(time.Date(2026, 2, 28, 12, 0, 0, 0, time.UTC)))
	require.True(t, DateRange{}.Contains(time.Now()))
}

func TestMatch(t *testing.T) {
	t.Parallel()

	tx := bank.Transaction{
		Type: bank.Deposit, Status: bank.StatusCompleted, Currency: "GBP", Country: "GB",
		ClientID: "cl-1", CreatedAt: time.Date(2026, 5, 5, 0, 0, 0, 0, time.UTC),
	}
	require.True(t, TransactionQuery{}.Match(tx))
	require.True(t, TransactionQuery{Type: bank.Deposit, Country: "GB"}.Match(tx))
	require.False(t, TransactionQuery{Status: bank.StatusFlagged}.Match(tx))
	require.False(t, TransactionQuery{DateRange: DateRange{From: "2026-06-01"}}.Match(tx))

	a := bank.Alert{Severity: bank.SeverityLow, Status: bank.AlertOpen, ClientID: "cl-1", CreatedAt: tx.CreatedAt}
	require.True(t, AlertQuery{ClientID: "cl-1"}.Match(a))
	require.False(t, AlertQuery{Severity: bank.SeverityHigh}.Match(a))
}

func TestStatusError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		status int
		body   string
		kind   Kind
		msg    string
	}{
		{401, `{"error":"token expired"}`, KindUnauthorized, "token expired"},
		{403, ``, KindUnauthorized, "Forbidden"},
		{404, `{"message":"no such alert"}`, KindNotFound, "no such alert"},
		{422, `{"errors":[{"message":"amount too large"}]}`, KindValidation, "amount too large"},
		{500, `<html>oops</html>`, KindServer, "<html>oops</html>"},
		{504, `{}`, KindTimeout, "Gateway Timeout"},
	}
	for _, tt := range tests {
		err := statusError(tt.status, []byte(tt.body))
		require.Equal(t, tt.kind, err.Kind, tt.body)
		require.Equal(t, tt.msg, err.Message, tt.body)
	}
}

func TestSummaryQueryEncoding(t *testing.T) {
	t.Parallel()

	v := url.Values{}
	DateRange{From: "2026-01-01", To: "2026-01-31"}.encode(v)
	require.Equal(t, "from=2026-01-01&to=2026-01-31", v.Encode())
}
