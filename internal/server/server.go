package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jdewit/bettrack/internal/domain"
	"github.com/jdewit/bettrack/internal/server/handler"
	"github.com/jdewit/bettrack/internal/server/middleware"
)

// Sign-in attempts per client IP. Token verification is cheap but the
// endpoint is the only unauthenticated write, so it gets its own limit.
const (
	signInLimit  = 10
	signInWindow = time.Minute
)

// Config holds the HTTP server configuration.
type Config struct {
	Port        int
	CORSOrigins []string
}

// Handlers aggregates all HTTP handlers that the server needs to register.
type Handlers struct {
	Health    *handler.HealthHandler
	Auth      *handler.AuthHandler
	Bets      *handler.BetHandler
	Dashboard *handler.DashboardHandler
	Tips      *handler.TipHandler
	Strategy  *handler.StrategyHandler
	Export    *handler.ExportHandler
}

// Server is the HTTP API server for the bet tracker.
type Server struct {
	httpServer *http.Server
	mux        *http.ServeMux
	logger     *slog.Logger
}

// NewServer creates a new Server with all routes registered on the ServeMux.
// Every route except health, strategy and the auth endpoints requires a
// session; the strategy page resolves a session opportunistically to
// personalize its output. The sign-in route is additionally rate limited per
// client IP when a limiter is provided.
func NewServer(cfg Config, handlers Handlers, sessions middleware.SessionResolver, limiter domain.RateLimiter, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	authed := middleware.Auth(sessions)
	optional := middleware.OptionalAuth(sessions)

	// --- Register routes ---

	// Health check (no auth required).
	mux.HandleFunc("GET /api/health", handlers.Health.HealthCheck)

	// Auth endpoints.
	signIn := http.Handler(http.HandlerFunc(handlers.Auth.SignIn))
	if limiter != nil {
		signIn = middleware.RateLimit(limiter, signInLimit, signInWindow)(signIn)
	}
	mux.Handle("POST /api/auth/google", signIn)
	mux.HandleFunc("POST /api/auth/signout", handlers.Auth.SignOut)
	mux.Handle("GET /api/me", authed(http.HandlerFunc(handlers.Auth.Me)))

	// Bet endpoints.
	mux.Handle("GET /api/bets", authed(http.HandlerFunc(handlers.Bets.List)))
	mux.Handle("POST /api/bets", authed(http.HandlerFunc(handlers.Bets.Create)))
	mux.Handle("PUT /api/bets/{id}", authed(http.HandlerFunc(handlers.Bets.Update)))
	mux.Handle("DELETE /api/bets/{id}", authed(http.HandlerFunc(handlers.Bets.Delete)))

	// Dashboard endpoint.
	mux.Handle("GET /api/dashboard", authed(http.HandlerFunc(handlers.Dashboard.Get)))

	// Tips endpoints.
	mux.Handle("GET /api/tips", authed(http.HandlerFunc(handlers.Tips.List)))
	mux.Handle("POST /api/tips", authed(http.HandlerFunc(handlers.Tips.Share)))
	mux.Handle("DELETE /api/tips/{id}", authed(http.HandlerFunc(handlers.Tips.Delete)))

	// Strategy page (public, personalized when signed in).
	mux.Handle("GET /api/strategy", optional(http.HandlerFunc(handlers.Strategy.Get)))

	// Export endpoints.
	mux.Handle("POST /api/export", authed(http.HandlerFunc(handlers.Export.Create)))
	mux.Handle("GET /api/exports", authed(http.HandlerFunc(handlers.Export.List)))
	mux.Handle("DELETE /api/exports/{path...}", authed(http.HandlerFunc(handlers.Export.Delete)))

	// Build the middleware chain.
	var h http.Handler = mux

	// Apply request logging middleware.
	h = middleware.Logging(logger)(h)

	// Apply CORS middleware.
	h = middleware.CORS(cfg.CORSOrigins)(h)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      h,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Server{
		httpServer: srv,
		mux:        mux,
		logger:     logger,
	}
}

// Handler exposes the full middleware-wrapped handler, for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start begins listening for HTTP requests. It blocks until the server
// encounters an error or is shut down.
func (s *Server) Start() error {
	s.logger.Info("server: starting",
		slog.String("addr", s.httpServer.Addr),
	)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server: listen: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the server, waiting for in-flight requests
// to complete within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("server: shutting down")
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	return nil
}
