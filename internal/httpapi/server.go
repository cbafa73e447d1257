// Package httpapi exposes the household services as a JSON REST API.
package httpapi

import (
	"net/http"

	"github.com/cleared-dev/household/internal/categories"
	"github.com/cleared-dev/household/internal/ledger"
	"github.com/cleared-dev/household/internal/metrics"
	"github.com/cleared-dev/household/internal/people"
	"github.com/cleared-dev/household/internal/report"
)

// Services are the use cases served by the API.
type Services struct {
	People     *people.Service
	Categories *categories.Service
	Ledger     *ledger.Service
	Reports    *report.Service
}

// Options tune the transport. A nil Metrics gets a fresh registry.
type Options struct {
	AllowedOrigins []string
	Metrics        *metrics.Metrics
}

// Server routes requests to the services.
type Server struct {
	svc     Services
	metrics *metrics.Metrics
	handler http.Handler
}

// New builds the router and middleware chain.
func New(svc Services, opts Options) *Server {
	m := opts.Metrics
	if m == nil {
		m = metrics.New()
	}
	s := &Server{svc: svc, metrics: m}

	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/people", s.createPerson)
	mux.HandleFunc("GET /api/people", s.listPeople)
	mux.HandleFunc("GET /api/people/{id}", s.getPerson)
	mux.HandleFunc("PUT /api/people/{id}", s.updatePerson)
	mux.HandleFunc("DELETE /api/people/{id}", s.deletePerson)

	mux.HandleFunc("POST /api/categories", s.createCategory)
	mux.HandleFunc("GET /api/categories", s.listCategories)
	mux.HandleFunc("GET /api/categories/{id}", s.getCategory)
	mux.HandleFunc("PUT /api/categories/{id}", s.updateCategory)
	mux.HandleFunc("DELETE /api/categories/{id}", s.deleteCategory)

	mux.HandleFunc("POST /api/transactions", s.createTransaction)
	mux.HandleFunc("GET /api/transactions", s.listTransactions)
	mux.HandleFunc("GET /api/transactions/{id}", s.getTransaction)
	mux.HandleFunc("GET /api/transactions.csv", s.exportTransactions)

	mux.HandleFunc("GET /api/reports/totals-by-person", s.totalsByPerson)

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.Handle("GET /metrics", m.Handler())

	s.handler = requestID(accessLog(cors(opts.AllowedOrigins, instrument(m, mux))))
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}
