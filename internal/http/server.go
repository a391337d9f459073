package http

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	applog "github.com/cerskine001/family-finance-tracker-sub000/internal/log"
	"github.com/cerskine001/family-finance-tracker-sub000/internal/services"
	"github.com/cerskine001/family-finance-tracker-sub000/internal/storage"
)

type Server struct {
	http.Server
	repo      *storage.Repository
	ledger    *services.LedgerService
	recurring *services.RecurringService

	rolloverDefault  int32
	defaultHousehold string

	rateLimiter *rateLimiter

	// Expansion state is per household and lives for the process lifetime.
	// Derived figures are always recomputed; only the open/closed flags of
	// budget lines persist between requests.
	expansionMu sync.Mutex
	expansion   map[string]*services.ExpansionState

	shutdownOnce sync.Once
}

// Options carries the server's behavior toggles from configuration.
type Options struct {
	RolloverEnabled  bool
	DefaultHousehold string
}

// Simple in-memory rate limiter
type rateLimiter struct {
	mu           sync.Mutex
	clients      map[string]*clientInfo
	stopCleanup  chan struct{}
	shutdownOnce sync.Once
}

type clientInfo struct {
	lastRequest time.Time
	requests    int
}

func newRateLimiter() *rateLimiter {
	rl := &rateLimiter{
		clients:     make(map[string]*clientInfo),
		stopCleanup: make(chan struct{}),
	}
	go rl.startCleanup()
	return rl
}

// startCleanup runs periodic cleanup to remove stale client entries
func (rl *rateLimiter) startCleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanupStaleEntries()
		case <-rl.stopCleanup:
			return
		}
	}
}

// cleanupStaleEntries removes client entries older than 10 minutes
func (rl *rateLimiter) cleanupStaleEntries() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := time.Now().Add(-10 * time.Minute)
	for ip, client := range rl.clients {
		if client.lastRequest.Before(cutoff) {
			delete(rl.clients, ip)
		}
	}
}

func (rl *rateLimiter) stop() {
	rl.shutdownOnce.Do(func() {
		if rl.stopCleanup != nil {
			close(rl.stopCleanup)
		}
	})
}

func (rl *rateLimiter) allow(clientIP string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	client, exists := rl.clients[clientIP]

	if !exists {
		rl.clients[clientIP] = &clientInfo{
			lastRequest: now,
			requests:    1,
		}
		return true
	}

	// Reset counter if more than 1 minute has passed
	if now.Sub(client.lastRequest) > time.Minute {
		client.requests = 1
		client.lastRequest = now
		return true
	}

	// Allow up to 60 requests per minute
	client.requests++
	client.lastRequest = now

	return client.requests <= 60
}

// NewServer configures routes and returns a ready-to-run http.Server.
func NewServer(addr string, repo *storage.Repository, ledger *services.LedgerService, recurring *services.RecurringService, opts Options) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: mux,
		},
		repo:             repo,
		ledger:           ledger,
		recurring:        recurring,
		defaultHousehold: opts.DefaultHousehold,
		rateLimiter:      newRateLimiter(),
		expansion:        make(map[string]*services.ExpansionState),
	}
	if opts.RolloverEnabled {
		s.rolloverDefault = 1
	}

	mux.HandleFunc("/healthz", handleHealth)
	mux.HandleFunc("/readyz", handleReady)

	mux.HandleFunc("GET /api/dashboard", s.secured(s.handleDashboard))

	mux.HandleFunc("GET /api/transactions", s.secured(s.handleListTransactions))
	mux.HandleFunc("POST /api/transactions", s.secured(s.handleCreateTransaction))
	mux.HandleFunc("PUT /api/transactions/{id}", s.secured(s.handleUpdateTransaction))
	mux.HandleFunc("DELETE /api/transactions/{id}", s.secured(s.handleDeleteTransaction))
	mux.HandleFunc("POST /api/transactions/import", s.secured(s.handleImportCSV))
	mux.HandleFunc("GET /api/transactions/export", s.secured(s.handleExportCSV))

	mux.HandleFunc("GET /api/budgets", s.secured(s.handleListBudgets))
	mux.HandleFunc("POST /api/budgets", s.secured(s.handleCreateBudget))
	mux.HandleFunc("PUT /api/budgets/{id}", s.secured(s.handleUpdateBudget))
	mux.HandleFunc("DELETE /api/budgets/{id}", s.secured(s.handleDeleteBudget))
	mux.HandleFunc("POST /api/budgets/toggle/{category}", s.secured(s.handleToggleBudgetLine))

	mux.HandleFunc("GET /api/assets", s.secured(s.handleListAssets))
	mux.HandleFunc("POST /api/assets", s.secured(s.handleCreateAsset))
	mux.HandleFunc("PUT /api/assets/{id}", s.secured(s.handleUpdateAsset))
	mux.HandleFunc("DELETE /api/assets/{id}", s.secured(s.handleDeleteAsset))

	mux.HandleFunc("GET /api/liabilities", s.secured(s.handleListLiabilities))
	mux.HandleFunc("POST /api/liabilities", s.secured(s.handleCreateLiability))
	mux.HandleFunc("PUT /api/liabilities/{id}", s.secured(s.handleUpdateLiability))
	mux.HandleFunc("DELETE /api/liabilities/{id}", s.secured(s.handleDeleteLiability))

	mux.HandleFunc("GET /api/networth", s.secured(s.handleNetWorth))

	mux.HandleFunc("GET /api/recurring-rules", s.secured(s.handleListRecurringRules))
	mux.HandleFunc("POST /api/recurring-rules", s.secured(s.handleCreateRecurringRule))
	mux.HandleFunc("PUT /api/recurring-rules/{id}", s.secured(s.handleUpdateRecurringRule))
	mux.HandleFunc("DELETE /api/recurring-rules/{id}", s.secured(s.handleDeleteRecurringRule))
	mux.HandleFunc("POST /api/recurring-rules/apply", s.secured(s.handleApplyRecurring))

	return s
}

// Shutdown gracefully shuts down the server and cleanup routines
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

// secured adds security headers, rate limiting, and request logging.
func (s *Server) secured(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Extract client IP (considering proxies)
		clientIP := r.Header.Get("X-Forwarded-For")
		if clientIP == "" {
			clientIP = r.Header.Get("X-Real-IP")
		}
		if clientIP == "" {
			clientIP = r.RemoteAddr
		}

		requestID := generateRequestID()
		ctx := context.WithValue(r.Context(), requestIDKey, requestID)
		r = r.WithContext(ctx)

		slog.InfoContext(ctx, "Request started",
			applog.FieldRequestID, requestID,
			applog.FieldMethod, r.Method,
			applog.FieldPath, r.URL.Path,
			applog.FieldClientIP, clientIP)

		// Rate limit mutating requests
		if r.Method != http.MethodGet && !s.rateLimiter.allow(clientIP) {
			slog.WarnContext(ctx, "Rate limit exceeded",
				applog.FieldClientIP, clientIP,
				applog.FieldMethod, r.Method,
				applog.FieldPath, r.URL.Path)
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
		slog.InfoContext(ctx, "Request completed",
			applog.FieldRequestID, requestID,
			applog.FieldMethod, r.Method,
			applog.FieldPath, r.URL.Path,
			applog.FieldStatusCode, rw.statusCode,
			applog.FieldDuration, duration.Milliseconds(),
			applog.FieldClientIP, clientIP)
	}
}

type contextKey string

const requestIDKey contextKey = "request_id"

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// generateRequestID creates a unique request ID for tracing
func generateRequestID() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		// Fallback to timestamp if random fails
		return fmt.Sprintf("req_%d", time.Now().UnixNano())
	}
	return "req_" + hex.EncodeToString(bytes)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

// expansionFor returns the expansion state for a household, creating it on
// first use.
func (s *Server) expansionFor(householdID string) *services.ExpansionState {
	s.expansionMu.Lock()
	defer s.expansionMu.Unlock()
	state, ok := s.expansion[householdID]
	if !ok {
		state = services.NewExpansionState()
		s.expansion[householdID] = state
	}
	return state
}
