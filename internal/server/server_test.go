package server

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jdewit/bettrack/internal/domain"
	"github.com/jdewit/bettrack/internal/server/handler"
	"github.com/jdewit/bettrack/internal/service"
	"github.com/jdewit/bettrack/internal/stats"
)

// stubServices implements every handler service interface with inert
// responses, so routing and gating can be tested in isolation.
type stubServices struct{}

func (stubServices) SignInWithGoogleToken(ctx context.Context, idToken string) (domain.Session, error) {
	return domain.Session{Token: "tok.sig", User: domain.User{ID: "user-1"}}, nil
}
func (stubServices) SignOut(ctx context.Context, token string) error { return nil }
func (stubServices) Create(ctx context.Context, ownerID string, bet domain.Bet) (domain.Bet, error) {
	return bet, nil
}
func (stubServices) Update(ctx context.Context, ownerID string, bet domain.Bet) (domain.Bet, error) {
	return bet, nil
}
func (stubServices) Delete(ctx context.Context, ownerID, id string) error { return nil }
func (stubServices) History(ctx context.Context, ownerID string, f stats.Filter, field stats.SortField, dir stats.SortDirection, page int) (service.HistoryPage, error) {
	return service.HistoryPage{Page: 1, TotalPages: 1}, nil
}
func (stubServices) Dashboard(ctx context.Context, ownerID string, f stats.Filter) (service.Dashboard, error) {
	return service.Dashboard{}, nil
}
func (stubServices) StrategyView(ctx context.Context, ownerID string) (service.Strategy, error) {
	return service.Strategy{}, nil
}
func (stubServices) Export(ctx context.Context, ownerID string) (service.ExportResult, error) {
	return service.ExportResult{Path: "exports/user-1/bets.csv"}, nil
}
func (stubServices) ListExports(ctx context.Context, ownerID string) ([]domain.BlobInfo, error) {
	return nil, nil
}
func (stubServices) DeleteExport(ctx context.Context, ownerID, path string) error { return nil }

type tipStub struct{}

func (tipStub) Share(ctx context.Context, userID, betID string, isPublic bool) (domain.TipView, error) {
	return domain.TipView{}, nil
}
func (tipStub) ListVisible(ctx context.Context, userID string) ([]domain.TipView, error) {
	return nil, nil
}
func (tipStub) Delete(ctx context.Context, userID, tipID string) error { return nil }

// fakeSessions accepts the token "good" and rejects everything else.
type fakeSessions struct{}

func (fakeSessions) CurrentUser(ctx context.Context, token string) (domain.User, error) {
	if token == "good" {
		return domain.User{ID: "user-1"}, nil
	}
	return domain.User{}, domain.ErrUnauthorized
}

// fakeLimiter allows the first `limit` calls per key.
type fakeLimiter struct {
	mu     sync.Mutex
	counts map[string]int
}

func (f *fakeLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.counts == nil {
		f.counts = make(map[string]int)
	}
	f.counts[key]++
	return f.counts[key] <= limit, nil
}

func newTestServer(t *testing.T, limiter domain.RateLimiter) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := stubServices{}
	handlers := Handlers{
		Health:    handler.NewHealthHandler(logger),
		Auth:      handler.NewAuthHandler(svc, logger),
		Bets:      handler.NewBetHandler(svc, svc, logger),
		Dashboard: handler.NewDashboardHandler(svc, logger),
		Tips:      handler.NewTipHandler(tipStub{}, logger),
		Strategy:  handler.NewStrategyHandler(svc, logger),
		Export:    handler.NewExportHandler(svc, logger),
	}
	srv := NewServer(Config{Port: 0, CORSOrigins: []string{"https://app.example.com"}}, handlers, fakeSessions{}, limiter, logger)
	return srv.Handler()
}

func TestRouteGating(t *testing.T) {
	h := newTestServer(t, nil)

	public := []struct{ method, path string }{
		{http.MethodGet, "/api/health"},
		{http.MethodGet, "/api/strategy"},
		{http.MethodPost, "/api/auth/signout"},
	}
	for _, tc := range public {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(tc.method, tc.path, nil))
		assert.NotEqual(t, http.StatusUnauthorized, w.Code, "%s %s should not require a session", tc.method, tc.path)
	}

	gated := []struct{ method, path string }{
		{http.MethodGet, "/api/me"},
		{http.MethodGet, "/api/bets"},
		{http.MethodPost, "/api/bets"},
		{http.MethodPut, "/api/bets/b1"},
		{http.MethodDelete, "/api/bets/b1"},
		{http.MethodGet, "/api/dashboard"},
		{http.MethodGet, "/api/tips"},
		{http.MethodPost, "/api/tips"},
		{http.MethodDelete, "/api/tips/t1"},
		{http.MethodPost, "/api/export"},
		{http.MethodGet, "/api/exports"},
		{http.MethodDelete, "/api/exports/exports/user-1/bets.csv"},
	}
	for _, tc := range gated {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(tc.method, tc.path, nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s should require a session", tc.method, tc.path)
	}
}

func TestAuthorizedRequestPasses(t *testing.T) {
	h := newTestServer(t, nil)

	r := httptest.NewRequest(http.MethodGet, "/api/bets", nil)
	r.Header.Set("Authorization", "Bearer good")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRejectsBadToken(t *testing.T) {
	h := newTestServer(t, nil)

	r := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	r.Header.Set("Authorization", "Bearer expired")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUnknownRoute(t *testing.T) {
	h := newTestServer(t, nil)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/unknown", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCORSPreflight(t *testing.T) {
	h := newTestServer(t, nil)

	r := httptest.NewRequest(http.MethodOptions, "/api/bets", nil)
	r.Header.Set("Origin", "https://app.example.com")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://app.example.com", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSDisallowedOrigin(t *testing.T) {
	h := newTestServer(t, nil)

	r := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	r.Header.Set("Origin", "https://evil.example.com")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestSignInRateLimited(t *testing.T) {
	limiter := &fakeLimiter{}
	h := newTestServer(t, limiter)

	var last int
	for i := 0; i < signInLimit+1; i++ {
		r := httptest.NewRequest(http.MethodPost, "/api/auth/google", nil)
		r.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)
		last = w.Code
	}
	require.Equal(t, http.StatusTooManyRequests, last)
}
