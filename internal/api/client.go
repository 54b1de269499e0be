// Package api is the HTTP client of the compliance backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/x/etag"
	"github.com/denisbrodbeck/machineid"
	"github.com/google/uuid"
	"github.com/ledgerlens/ledgerlens/internal/bank"
	"github.com/ledgerlens/ledgerlens/internal/csync"
	"github.com/ledgerlens/ledgerlens/internal/version"
)

const (
	DefaultTimeout = 15 * time.Second

	HeaderIdempotencyKey = "Idempotency-Key"
	HeaderWorkstationID  = "X-Workstation-ID"

	maxBodySize = 8 << 20
)

// Client calls the REST backend. It is safe for concurrent use; the bearer
// token is read on every request.
type Client struct {
	baseURL     string
	token       *csync.Value[string]
	http        *http.Client
	timeout     time.Duration
	userAgent   string
	workstation string
}

type Option func(*Client)

// WithHTTPClient sends requests through a copy of hc. Its timeout is
// replaced by the one of the client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		own := *hc
		c.http = &own
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithWorkstationID overrides the audit workstation identifier.
func WithWorkstationID(id string) Option {
	return func(c *Client) {
		c.workstation = id
	}
}

// New returns a client for the backend at baseURL. A nil token sends
// unauthenticated requests.
func New(baseURL string, token *csync.Value[string], opts ...Option) *Client {
	if token == nil {
		token = csync.NewValue("")
	}
	c := &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		token:       token,
		http:        &http.Client{},
		timeout:     DefaultTimeout,
		userAgent:   "ledgerlens/" + version.Version,
		workstation: WorkstationID(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.http.Timeout = c.timeout
	return c
}

// WorkstationID returns an app-specific hash of the machine id.
func WorkstationID() string {
	id, err := machineid.ProtectedID("ledgerlens")
	if err != nil {
		slog.Debug("Could not read machine id", "error", err)
		return "unknown"
	}
	return id
}

// BaseURL returns the backend base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Token returns the shared token holder.
func (c *Client) Token() *csync.Value[string] {
	return c.token
}

type request struct {
	method  string
	path    string
	query   url.Values
	body    any
	headers http.Header
	etag    string
}

// do performs req and decodes a 2xx JSON body into out. It returns the
// response headers.
func (c *Client) do(ctx context.Context, req request, out any) (http.Header, error) {
	u := c.baseURL + req.path
	if len(req.query) > 0 {
		u += "?" + req.query.Encode()
	}

	var body io.Reader
	if req.body != nil {
		data, err := json.Marshal(req.body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, u, body)
	if err != nil {
		return nil, &Error{Kind: KindNetwork, Err: err}
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)
	if c.workstation != "" {
		httpReq.Header.Set(HeaderWorkstationID, c.workstation)
	}
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if token := c.token.Get(); token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}
	for k, vs := range req.headers {
		for _, v := range vs {
			httpReq.Header.Add(k, v)
		}
	}
	etag.Request(httpReq, req.etag)

	start := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		slog.Debug("Request failed", "method", req.method, "path", req.path, "error", err)
		return nil, transportError(err)
	}
	defer resp.Body.Close()

	slog.Debug("Request done",
		"method", req.method,
		"path", req.path,
		"status", resp.StatusCode,
		"took", time.Since(start),
	)

	if resp.StatusCode == http.StatusNotModified {
		return resp.Header, ErrNotModified
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return resp.Header, transportError(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp.Header, statusError(resp.StatusCode, data)
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return resp.Header, &Error{Kind: KindDecode, Status: resp.StatusCode, Err: err}
		}
	}
	return resp.Header, nil
}

func get[T any](ctx context.Context, c *Client, path string, query url.Values) (T, error) {
	var out T
	_, err := c.do(ctx, request{method: http.MethodGet, path: path, query: query}, &out)
	return out, err
}

// Transactions lists transactions matching q, newest first.
func (c *Client) Transactions(ctx context.Context, q TransactionQuery) ([]bank.Transaction, error) {
	return get[[]bank.Transaction](ctx, c, "/v1/transactions", q.Values())
}

// Transaction fetches a single transaction.
func (c *Client) Transaction(ctx context.Context, id string) (bank.Transaction, error) {
	return get[bank.Transaction](ctx, c, "/v1/transactions/"+url.PathEscape(id), nil)
}

// CreateTransaction submits a new transaction. Each call carries a fresh
// idempotency key.
func (c *Client) CreateTransaction(ctx context.Context, req bank.CreateTransactionRequest) (bank.Transaction, error) {
	var tx bank.Transaction
	if err := req.Validate(); err != nil {
		return tx, &Error{Kind: KindValidation, Message: err.Error(), Err: err}
	}
	headers := http.Header{}
	headers.Set(HeaderIdempotencyKey, uuid.NewString())
	_, err := c.do(ctx, request{
		method:  http.MethodPost,
		path:    "/v1/transactions",
		body:    req,
		headers: headers,
	}, &tx)
	return tx, err
}

// Alerts lists compliance alerts matching q, newest first.
func (c *Client) Alerts(ctx context.Context, q AlertQuery) ([]bank.Alert, error) {
	return get[[]bank.Alert](ctx, c, "/v1/alerts", q.Values())
}

// Alert fetches a single alert.
func (c *Client) Alert(ctx context.Context, id string) (bank.Alert, error) {
	return get[bank.Alert](ctx, c, "/v1/alerts/"+url.PathEscape(id), nil)
}

// Clients lists every monitored client.
func (c *Client) Clients(ctx context.Context) ([]bank.Client, error) {
	return get[[]bank.Client](ctx, c, "/v1/clients", nil)
}

// Client fetches a single client.
func (c *Client) Client(ctx context.Context, id string) (bank.Client, error) {
	return get[bank.Client](ctx, c, "/v1/clients/"+url.PathEscape(id), nil)
}

// ClientReport fetches the activity report of a client.
func (c *Client) ClientReport(ctx context.Context, id string) (bank.ClientReport, error) {
	return get[bank.ClientReport](ctx, c, "/v1/reports/clients/"+url.PathEscape(id), nil)
}

// Summary fetches the report across all clients for the date range.
func (c *Client) Summary(ctx context.Context, r DateRange) (bank.SummaryReport, error) {
	v := url.Values{}
	r.encode(v)
	return get[bank.SummaryReport](ctx, c, "/v1/reports/summary", v)
}

// Reference fetches the reference catalog. When tag matches the current
// catalog it returns [ErrNotModified]. Tags are unquoted; the returned string
// is the new one.
func (c *Client) Reference(ctx context.Context, tag string) (bank.Catalog, string, error) {
	var catalog bank.Catalog
	h, err := c.do(ctx, request{
		method: http.MethodGet,
		path:   "/v1/reference",
		etag:   tag,
	}, &catalog)
	var newTag string
	if h != nil {
		newTag = strings.Trim(h.Get("ETag"), `"`)
	}
	return catalog, newTag, err
}

// Me returns the operator the token belongs to.
func (c *Client) Me(ctx context.Context) (bank.Operator, error) {
	return get[bank.Operator](ctx, c, "/v1/auth/me", nil)
}
