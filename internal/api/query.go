package api

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/ledgerlens/ledgerlens/internal/bank"
)

// DateLayout is the wire format of dates in queries.
const DateLayout = time.DateOnly

// DateRange is an inclusive range of days. Empty bounds are open.
type DateRange struct {
	From string `json:"from,omitempty"`
	To   string `json:"to,omitempty"`
}

var ErrInvertedRange = errors.New("start date is after end date")

// Validate checks both bounds parse and are in order.
func (r DateRange) Validate() error {
	from, to, err := r.Bounds()
	if err != nil {
		return err
	}
	if !from.IsZero() && !to.IsZero() && from.After(to) {
		return ErrInvertedRange
	}
	return nil
}

// Bounds parses the range. Open bounds are returned as zero times.
func (r DateRange) Bounds() (from, to time.Time, err error) {
	if r.From != "" {
		if from, err = time.Parse(DateLayout, r.From); err != nil {
			return from, to, fmt.Errorf("invalid start date %q: %w", r.From, err)
		}
	}
	if r.To != "" {
		if to, err = time.Parse(DateLayout, r.To); err != nil {
			return from, to, fmt.Errorf("invalid end date %q: %w", r.To, err)
		}
	}
	return from, to, nil
}

// Contains reports whether t falls on a day within the range.
func (r DateRange) Contains(t time.Time) bool {
	from, to, err := r.Bounds()
	if err != nil {
		return false
	}
	day := t.UTC().Format(DateLayout)
	if !from.IsZero() && day < from.Format(DateLayout) {
		return false
	}
	if !to.IsZero() && day > to.Format(DateLayout) {
		return false
	}
	return true
}

// Values encodes the range as a query string.
func (r DateRange) Values() url.Values {
	v := url.Values{}
	r.encode(v)
	return v
}

func (r DateRange) encode(v url.Values) {
	set(v, "from", r.From)
	set(v, "to", r.To)
}

func decodeRange(v url.Values) DateRange {
	return DateRange{From: v.Get("from"), To: v.Get("to")}
}

// TransactionQuery filters the transaction list.
type TransactionQuery struct {
	Type     bank.TransactionType   `json:"type,omitempty"`
	Status   bank.TransactionStatus `json:"status,omitempty"`
	Currency string                 `json:"currency,omitempty"`
	Country  string                 `json:"country,omitempty"`
	ClientID string                 `json:"client_id,omitempty"`
	DateRange
}

// Values encodes the query string.
func (q TransactionQuery) Values() url.Values {
	v := url.Values{}
	set(v, "type", string(q.Type))
	set(v, "status", string(q.Status))
	set(v, "currency", q.Currency)
	set(v, "country", q.Country)
	set(v, "client_id", q.ClientID)
	q.encode(v)
	return v
}

// ParseTransactionQuery decodes a query string built by [TransactionQuery.Values].
func ParseTransactionQuery(v url.Values) TransactionQuery {
	return TransactionQuery{
		Type:      bank.TransactionType(v.Get("type")),
		Status:    bank.TransactionStatus(v.Get("status")),
		Currency:  v.Get("currency"),
		Country:   v.Get("country"),
		ClientID:  v.Get("client_id"),
		DateRange: decodeRange(v),
	}
}

// Match reports whether tx satisfies every set filter.
func (q TransactionQuery) Match(tx bank.Transaction) bool {
	switch {
	case q.Type != "" && tx.Type != q.Type,
		q.Status != "" && tx.Status != q.Status,
		q.Currency != "" && tx.Currency != q.Currency,
		q.Country != "" && tx.Country != q.Country,
		q.ClientID != "" && tx.ClientID != q.ClientID:
		return false
	}
	return q.Contains(tx.CreatedAt)
}

// AlertQuery filters the alert list.
type AlertQuery struct {
	Severity bank.Severity    `json:"severity,omitempty"`
	Status   bank.AlertStatus `json:"status,omitempty"`
	ClientID string           `json:"client_id,omitempty"`
	DateRange
}

// Values encodes the query string.
func (q AlertQuery) Values() url.Values {
	v := url.Values{}
	set(v, "severity", string(q.Severity))
	set(v, "status", string(q.Status))
	set(v, "client_id", q.ClientID)
	q.encode(v)
	return v
}

// ParseAlertQuery decodes a query string built by [AlertQuery.Values].
func ParseAlertQuery(v url.Values) AlertQuery {
	return AlertQuery{
		Severity:  bank.Severity(v.Get("severity")),
		Status:    bank.AlertStatus(v.Get("status")),
		ClientID:  v.Get("client_id"),
		DateRange: decodeRange(v),
	}
}

// Match reports whether a satisfies every set filter.
func (q AlertQuery) Match(a bank.Alert) bool {
	switch {
	case q.Severity != "" && a.Severity != q.Severity,
		q.Status != "" && a.Status != q.Status,
		q.ClientID != "" && a.ClientID != q.ClientID:
		return false
	}
	return q.Contains(a.CreatedAt)
}

func set(v url.Values, key, value string) {
	if value != "" {
		v.Set(key, value)
	}
}
