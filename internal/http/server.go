// Package http exposes the household engine as a JSON API.
package http

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"hogar/internal/budget"
	"hogar/internal/ledger"
	"hogar/internal/log"
	"hogar/internal/rank"
	"hogar/internal/services"
)

type Server struct {
	http.Server
	users    *services.UserService
	tasks    *services.TaskService
	shopping *services.ShoppingService
	expenses *services.ExpenseService
	rewards  *services.RewardService
	ledger   *ledger.Ledger
	budget   *budget.Aggregator
	ranker   *rank.Ranker

	rateLimiter *rateLimiter
	metrics     *metrics

	// readiness flips once the store is reachable
	ready func(ctx context.Context) error

	shutdownOnce sync.Once
}

type Deps struct {
	Users    *services.UserService
	Tasks    *services.TaskService
	Shopping *services.ShoppingService
	Expenses *services.ExpenseService
	Rewards  *services.RewardService
	Ledger   *ledger.Ledger
	Budget   *budget.Aggregator
	Ranker   *rank.Ranker

	// Ready reports whether the backing store answers. nil means always
	// ready.
	Ready func(ctx context.Context) error
}

// NewServer configures routes and returns a ready-to-run http.Server.
func NewServer(addr string, deps Deps) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
		},
		users:       deps.Users,
		tasks:       deps.Tasks,
		shopping:    deps.Shopping,
		expenses:    deps.Expenses,
		rewards:     deps.Rewards,
		ledger:      deps.Ledger,
		budget:      deps.Budget,
		ranker:      deps.Ranker,
		rateLimiter: newRateLimiter(),
		metrics:     newMetrics(),
		ready:       deps.Ready,
	}

	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/readyz", s.handleReady)
	mux.HandleFunc("/metrics", s.handleMetrics)

	mux.HandleFunc("GET /api/users", s.wrap(s.handleListUsers))
	mux.HandleFunc("POST /api/users", s.wrap(s.handleRegisterUser))
	mux.HandleFunc("PUT /api/users/{id}", s.wrap(s.handleUpdateUser))
	mux.HandleFunc("DELETE /api/users/{id}", s.wrap(s.handleDeleteUser))

	mux.HandleFunc("GET /api/tasks", s.wrap(s.handleListTasks))
	mux.HandleFunc("POST /api/tasks", s.wrap(s.handleAddTask))
	mux.HandleFunc("PUT /api/tasks/{id}", s.wrap(s.handleEditTask))
	mux.HandleFunc("DELETE /api/tasks/{id}", s.wrap(s.handleDeleteTask))
	mux.HandleFunc("POST /api/tasks/{id}/toggle", s.wrap(s.handleToggleTask))
	mux.HandleFunc("POST /api/tasks/{id}/reassign", s.wrap(s.handleReassignTask))

	mux.HandleFunc("GET /api/shopping", s.wrap(s.handleListShopping))
	mux.HandleFunc("POST /api/shopping", s.wrap(s.handleAddShopping))
	mux.HandleFunc("PUT /api/shopping/{id}", s.wrap(s.handleEditShopping))
	mux.HandleFunc("DELETE /api/shopping/{id}", s.wrap(s.handleDeleteShopping))
	mux.HandleFunc("POST /api/shopping/{id}/toggle", s.wrap(s.handleToggleShopping))
	mux.HandleFunc("POST /api/shopping/{id}/reassign", s.wrap(s.handleReassignShopping))

	mux.HandleFunc("GET /api/expenses", s.wrap(s.handleListExpenses))
	mux.HandleFunc("POST /api/expenses", s.wrap(s.handleAddExpense))
	mux.HandleFunc("DELETE /api/expenses/{id}", s.wrap(s.handleDeleteExpense))
	mux.HandleFunc("POST /api/expenses/{id}/reassign", s.wrap(s.handleReassignExpense))

	mux.HandleFunc("GET /api/rewards", s.wrap(s.handleListRewards))
	mux.HandleFunc("POST /api/rewards", s.wrap(s.handleAddReward))
	mux.HandleFunc("DELETE /api/rewards/{id}", s.wrap(s.handleDeleteReward))
	mux.HandleFunc("POST /api/rewards/{id}/redeem", s.wrap(s.handleRedeemReward))

	mux.HandleFunc("GET /api/history", s.wrap(s.handleListHistory))
	mux.HandleFunc("DELETE /api/history", s.wrap(s.handleClearHistory))

	mux.HandleFunc("GET /api/points", s.wrap(s.handlePoints))
	mux.HandleFunc("GET /api/budget", s.wrap(s.handleBudget))
	mux.HandleFunc("GET /api/rankings", s.wrap(s.handleRankings))

	return s
}

// wrap adds security headers, rate limiting and request logging.
func (s *Server) wrap(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		clientIP := extractClientIP(r)
		requestID := generateRequestID()

		ctx := context.WithValue(r.Context(), requestIDKey{}, requestID)
		r = r.WithContext(ctx)

		slog.InfoContext(ctx, "Request started",
			log.FieldRequestID, requestID,
			log.FieldMethod, r.Method,
			log.FieldPath, r.URL.Path,
			log.FieldClientIP, clientIP,
			log.FieldUserAgent, r.Header.Get("User-Agent"))

		if isMutating(r.Method) && !s.rateLimiter.allow(clientIP, s.metrics) {
			slog.WarnContext(ctx, "Rate limit exceeded", log.FieldClientIP, clientIP, log.FieldMethod, r.Method, log.FieldPath, r.URL.Path)
			w.Header().Set("Retry-After", "60")
			http.Error(w, "Rate limit exceeded. Please try again later.", http.StatusTooManyRequests)
			return
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		duration := time.Since(start)
		s.metrics.observe(r.Method, rw.statusCode)
		slog.InfoContext(ctx, "Request completed",
			log.FieldRequestID, requestID,
			log.FieldMethod, r.Method,
			log.FieldPath, r.URL.Path,
			log.FieldStatusCode, rw.statusCode,
			log.FieldDuration, duration.Milliseconds(),
			log.FieldClientIP, clientIP)
	}
}

func isMutating(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.ready != nil {
		if err := s.ready(r.Context()); err != nil {
			slog.WarnContext(r.Context(), "Readiness check failed", log.FieldError, err)
			http.Error(w, "not ready", http.StatusServiceUnavailable)
			return
		}
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

// Shutdown gracefully shuts down the server and cleanup routines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		if s.rateLimiter != nil {
			s.rateLimiter.stop()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}
