// Package http exposes the budget API over JSON.
package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"bilancio/internal/auth"
	"bilancio/internal/cache"
	"bilancio/internal/core"
	"bilancio/internal/metrics"
	"bilancio/internal/services"
	"bilancio/internal/store"
)

// Deps bundles everything the server needs.
type Deps struct {
	Store         store.Store
	JWT           *auth.JWTManager
	Authenticator *auth.PasswordAuthenticator
	Salaries      *services.SalaryService
	Bills         *services.BillService
	Transactions  *services.TransactionService
	Budgets       *services.BudgetService
	Dashboard     *services.DashboardService
	Agenda        *services.AgendaService
	StatsCacheTTL time.Duration
}

type Server struct {
	http.Server

	store         store.Store
	jwt           *auth.JWTManager
	authenticator *auth.PasswordAuthenticator
	salaries      *services.SalaryService
	bills         *services.BillService
	transactions  *services.TransactionService
	budgets       *services.BudgetService
	dashboard     *services.DashboardService
	agenda        *services.AgendaService

	rateLimiter *rateLimiter
	statsCache  *cache.LRUCache[*core.DashboardStats]
	cacheMgr    *cache.Manager

	shutdownOnce sync.Once
}

// NewServer configures routes and middleware, returning a ready-to-run
// http.Server.
func NewServer(addr string, deps Deps) *Server {
	mux := http.NewServeMux()

	ttl := deps.StatsCacheTTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}

	s := &Server{
		Server: http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
		},
		store:         deps.Store,
		jwt:           deps.JWT,
		authenticator: deps.Authenticator,
		salaries:      deps.Salaries,
		bills:         deps.Bills,
		transactions:  deps.Transactions,
		budgets:       deps.Budgets,
		dashboard:     deps.Dashboard,
		agenda:        deps.Agenda,
		rateLimiter:   newRateLimiter(),
		statsCache:    cache.NewLRUCache[*core.DashboardStats](64, ttl),
		cacheMgr:      cache.NewManager(),
	}
	s.cacheMgr.Register(s.statsCache)
	s.cacheMgr.StartCleanup(10 * time.Minute)

	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)
	mux.Handle("GET /metrics", metrics.Handler())

	mux.HandleFunc("POST /api/auth/login", s.withSecurity(s.handleLogin))
	mux.HandleFunc("GET /api/auth/me", s.withSecurity(s.withAuth(s.handleMe)))
	mux.HandleFunc("GET /api/users", s.withSecurity(s.withAuth(s.handleListUsers)))

	mux.HandleFunc("PATCH /api/salary/update", s.protectedWrite(s.handleUpdateSalary))

	mux.HandleFunc("GET /api/bills", s.protected(s.handleListBills))
	mux.HandleFunc("POST /api/bills", s.protectedWrite(s.handleCreateBill))
	mux.HandleFunc("GET /api/bills/{id}", s.protected(s.handleGetBill))
	mux.HandleFunc("PATCH /api/bills/{id}", s.protectedWrite(s.handleUpdateBill))
	mux.HandleFunc("DELETE /api/bills/{id}", s.protectedWrite(s.handleDeleteBill))

	mux.HandleFunc("GET /api/transactions", s.protected(s.handleListTransactions))
	mux.HandleFunc("POST /api/transactions", s.protectedWrite(s.handleCreateTransaction))
	mux.HandleFunc("DELETE /api/transactions/{id}", s.protectedWrite(s.handleDeleteTransaction))

	mux.HandleFunc("GET /api/budgets", s.protected(s.handleListBudgets))
	mux.HandleFunc("POST /api/budgets", s.protectedWrite(s.handleCreateBudget))

	mux.HandleFunc("GET /api/categories", s.protected(s.handleListCategories))
	mux.HandleFunc("POST /api/categories", s.protectedWrite(s.handleCreateCategory))
	mux.HandleFunc("DELETE /api/categories/{id}", s.protectedWrite(s.handleDeleteCategory))

	mux.HandleFunc("GET /api/accounts", s.protected(s.handleListAccounts))
	mux.HandleFunc("POST /api/accounts", s.protectedWrite(s.handleCreateAccount))

	mux.HandleFunc("GET /api/events", s.protected(s.handleListEvents))
	mux.HandleFunc("POST /api/events", s.protectedWrite(s.handleCreateEvent))
	mux.HandleFunc("PATCH /api/events/{id}", s.protectedWrite(s.handleUpdateEvent))
	mux.HandleFunc("DELETE /api/events/{id}", s.protectedWrite(s.handleDeleteEvent))

	mux.HandleFunc("GET /api/calendars", s.protected(s.handleListCalendars))
	mux.HandleFunc("POST /api/calendars", s.protectedWrite(s.handleCreateCalendar))

	mux.HandleFunc("GET /api/dashboard/stats", s.protected(s.handleDashboardStats))
	mux.HandleFunc("GET /api/agenda", s.protected(s.handleAgenda))

	mux.HandleFunc("GET /api/audit-logs", s.protected(s.handleListAuditLogs))

	return s
}

func (s *Server) protected(h http.HandlerFunc) http.HandlerFunc {
	return s.withSecurity(s.withAuth(h))
}

func (s *Server) protectedWrite(h http.HandlerFunc) http.HandlerFunc {
	return s.withSecurity(s.withAuth(s.requireWrite(h)))
}

// invalidateStats drops cached dashboards after any write.
func (s *Server) invalidateStats() {
	s.statsCache.Purge()
}

// Shutdown stops the HTTP server and background cleanup routines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.cacheMgr.Stop()
		s.rateLimiter.stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Ping(r.Context()); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
