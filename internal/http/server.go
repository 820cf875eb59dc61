// Package http exposes the weekly ledger and the chat proxy over a JSON
// API.
package http

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"ventaclara/internal/chat"
	"ventaclara/internal/services"
)

// Options carries the presentation and feature toggles the handlers
// need.
type Options struct {
	CurrencyCode        string
	WeekdayNavigation   bool
	QuantityStepButtons bool
}

type Server struct {
	http.Server
	ledger      *services.LedgerService
	completer   chat.Completer
	opts        Options
	rateLimiter *rateLimiter

	shutdownOnce sync.Once
}

// NewServer configures routes and returns a ready-to-run http.Server.
// completer may be nil; the chat endpoint then always answers with the
// generic error body.
func NewServer(addr string, ledger *services.LedgerService, completer chat.Completer, opts Options) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: mux,
		},
		ledger:      ledger,
		completer:   completer,
		opts:        opts,
		rateLimiter: newRateLimiter(),
	}

	mux.HandleFunc("/healthz", handleHealth)
	mux.HandleFunc("/readyz", handleReady)

	mux.HandleFunc("/api/week", s.withSecurityHeaders(s.handleWeek))
	mux.HandleFunc("/api/week/totals", s.withSecurityHeaders(s.handleWeekTotals))
	mux.HandleFunc("/api/week/items", s.withSecurityHeaders(s.handleAddItem))
	mux.HandleFunc("/api/week/items/delete", s.withSecurityHeaders(s.handleRemoveItem))
	mux.HandleFunc("/api/week/items/edit", s.withSecurityHeaders(s.handleEditItem))
	if opts.QuantityStepButtons {
		mux.HandleFunc("/api/week/items/quantity", s.withSecurityHeaders(s.handleAdjustQuantity))
	}
	if opts.WeekdayNavigation {
		mux.HandleFunc("/api/week/today", s.withSecurityHeaders(s.handleToday))
	}

	mux.HandleFunc("/api/gpt", s.withSecurityHeaders(s.handleChat))

	return s
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

// withSecurityHeaders adds security headers, rate limiting, and request
// logging to responses.
func (s *Server) withSecurityHeaders(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		clientIP := extractClientIP(r)

		requestID := generateRequestID()
		ctx := context.WithValue(r.Context(), requestIDKey{}, requestID)
		r = r.WithContext(ctx)

		slog.InfoContext(ctx, "Request started",
			"request_id", requestID,
			"method", r.Method,
			"url", r.URL.Path,
			"client_ip", clientIP,
			"user_agent", r.Header.Get("User-Agent"))

		// Rate limiting applies to mutating requests only.
		if r.Method != http.MethodGet && !s.rateLimiter.allow(clientIP) {
			slog.WarnContext(ctx, "Rate limit exceeded", "client_ip", clientIP, "method", r.Method, "url", r.URL.Path)
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
			"request_id", requestID,
			"method", r.Method,
			"url", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds(),
			"client_ip", clientIP)
	}
}

type requestIDKey struct{}

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
