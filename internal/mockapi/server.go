// Package mockapi is an in-memory development backend serving the REST API
// the dashboard consumes.
package mockapi

import (
	"cmp"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"slices"
	"strings"
	"sync"
	"time"

	"charm.land/log/v2"
	"github.com/charmbracelet/x/etag"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/ledgerlens/ledgerlens/internal/api"
	"github.com/ledgerlens/ledgerlens/internal/bank"
)

// Server serves a [Dataset] over HTTP.
type Server struct {
	mu      sync.RWMutex
	data    Dataset
	etag    string
	idem    map[string]bank.Transaction
	token   string
	logger  *log.Logger
	now     func() time.Time
	handler http.Handler
}

type Option func(*Server)

// WithToken requires every API request to carry this bearer token.
func WithToken(token string) Option {
	return func(s *Server) {
		s.token = token
	}
}

// WithLogger logs every request to logger.
func WithLogger(logger *log.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithDataset serves ds instead of the embedded dataset.
func WithDataset(ds Dataset) Option {
	return func(s *Server) {
		s.data = ds
	}
}

// WithClock sets the clock used to timestamp created records.
func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		s.now = now
	}
}

// New returns a server over the embedded dataset unless [WithDataset] is
// given.
func New(opts ...Option) *Server {
	s := &Server{
		idem: map[string]bank.Transaction{},
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.data.Clients == nil && s.data.Transactions == nil {
		s.data = DefaultDataset()
	}
	s.etag = catalogETag(s.data.Catalog)
	s.handler = s.routes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

func (s *Server) routes() http.Handler {
	notFound := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "route not found")
	})
	notAllowed := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	r := mux.NewRouter()
	r.NotFoundHandler = notFound
	r.MethodNotAllowedHandler = notAllowed

	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	// Subrouters do not inherit the fallback handlers of their parent.
	v1 := r.PathPrefix("/v1").Subrouter()
	v1.NotFoundHandler = notFound
	v1.MethodNotAllowedHandler = notAllowed
	v1.Use(s.authenticate)
	v1.HandleFunc("/auth/me", s.me).Methods(http.MethodGet)
	v1.HandleFunc("/transactions", s.listTransactions).Methods(http.MethodGet)
	v1.HandleFunc("/transactions", s.createTransaction).Methods(http.MethodPost)
	v1.HandleFunc("/transactions/{id}", s.getTransaction).Methods(http.MethodGet)
	v1.HandleFunc("/alerts", s.listAlerts).Methods(http.MethodGet)
	v1.HandleFunc("/alerts/{id}", s.getAlert).Methods(http.MethodGet)
	v1.HandleFunc("/clients", s.listClients).Methods(http.MethodGet)
	v1.HandleFunc("/clients/{id}", s.getClient).Methods(http.MethodGet)
	v1.HandleFunc("/reports/clients/{id}", s.clientReport).Methods(http.MethodGet)
	v1.HandleFunc("/reports/summary", s.summary).Methods(http.MethodGet)
	v1.HandleFunc("/reference", s.reference).Methods(http.MethodGet)

	return s.logRequests(r)
}

func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.token != "" && r.Header.Get("Authorization") != "Bearer "+s.token {
			writeError(w, http.StatusUnauthorized, "missing or invalid bearer token")
			return
		}
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	if s.logger == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logFn := s.logger.Info
		if rec.status >= 400 {
			logFn = s.logger.Warn
		}
		logFn(r.Method+" "+r.URL.Path,
			"status", rec.status,
			"query", r.URL.RawQuery,
			"took", time.Since(start).Round(time.Microsecond),
		)
	})
}

func (s *Server) me(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	writeJSON(w, http.StatusOK, s.data.Operator)
}

func newestFirst[T any](items []T, at func(T) time.Time) {
	slices.SortStableFunc(items, func(a, b T) int {
		return at(b).Compare(at(a))
	})
}

func (s *Server) listTransactions(w http.ResponseWriter, r *http.Request) {
	q := api.ParseTransactionQuery(r.URL.Query())
	if err := q.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.mu.RLock()
	out := []bank.Transaction{}
	for _, tx := range s.data.Transactions {
		if q.Match(tx) {
			out = append(out, tx)
		}
	}
	s.mu.RUnlock()
	newestFirst(out, func(tx bank.Transaction) time.Time { return tx.CreatedAt })
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) getTransaction(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := slices.IndexFunc(s.data.Transactions, func(tx bank.Transaction) bool { return tx.ID == id })
	if i < 0 {
		writeError(w, http.StatusNotFound, fmt.Sprintf("transaction %q not found", id))
		return
	}
	writeJSON(w, http.StatusOK, s.data.Transactions[i])
}

func (s *Server) createTransaction(w http.ResponseWriter, r *http.Request) {
	var req bank.CreateTransactionRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, 1<<20)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := r.Header.Get(api.HeaderIdempotencyKey)
	if tx, ok := s.idem[key]; ok && key != "" {
		writeJSON(w, http.StatusOK, tx)
		return
	}

	client, ok := s.data.client(req.ClientID)
	if !ok {
		writeError(w, http.StatusUnprocessableEntity, fmt.Sprintf("unknown client %q", req.ClientID))
		return
	}

	tx := bank.Transaction{
		ID:                 "tx-" + strings.SplitN(uuid.NewString(), "-", 2)[0],
		Type:               req.Type,
		Status:             bank.StatusCompleted,
		Amount:             req.Amount,
		Currency:           req.Currency,
		ClientID:           client.ID,
		ClientName:         client.Name,
		SourceAccount:      req.SourceAccount,
		DestinationAccount: req.DestinationAccount,
		Country:            req.Country,
		Description:        req.Description,
		CreatedAt:          s.now().UTC().Truncate(time.Second),
	}
	alerts := s.screen(&tx, client)

	s.data.Transactions = append(s.data.Transactions, tx)
	s.data.Alerts = append(s.data.Alerts, alerts...)
	if key != "" {
		s.idem[key] = tx
	}
	writeJSON(w, http.StatusCreated, tx)
}

func (s *Server) listAlerts(w http.ResponseWriter, r *http.Request) {
	q := api.ParseAlertQuery(r.URL.Query())
	if err := q.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.mu.RLock()
	out := []bank.Alert{}
	for _, a := range s.data.Alerts {
		if q.Match(a) {
			out = append(out, a)
		}
	}
	s.mu.RUnlock()
	newestFirst(out, func(a bank.Alert) time.Time { return a.CreatedAt })
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) getAlert(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := slices.IndexFunc(s.data.Alerts, func(a bank.Alert) bool { return a.ID == id })
	if i < 0 {
		writeError(w, http.StatusNotFound, fmt.Sprintf("alert %q not found", id))
		return
	}
	writeJSON(w, http.StatusOK, s.data.Alerts[i])
}

func (s *Server) listClients(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	out := slices.Clone(s.data.Clients)
	s.mu.RUnlock()
	slices.SortFunc(out, func(a, b bank.Client) int { return cmp.Compare(a.Name, b.Name) })
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) getClient(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.data.client(id)
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("client %q not found", id))
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) clientReport(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.data.client(id)
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("client %q not found", id))
		return
	}
	writeJSON(w, http.StatusOK, clientReport(&s.data, c))
}

func (s *Server) summary(w http.ResponseWriter, r *http.Request) {
	dr := api.DateRange{From: r.URL.Query().Get("from"), To: r.URL.Query().Get("to")}
	if err := dr.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	writeJSON(w, http.StatusOK, summaryReport(&s.data, dr))
}

func (s *Server) reference(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	etag.Response(w, s.etag)
	if etag.Matches(r, s.etag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	writeJSON(w, http.StatusOK, s.data.Catalog)
}

func catalogETag(c bank.Catalog) string {
	data, _ := json.Marshal(c)
	return etag.Of(data)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
