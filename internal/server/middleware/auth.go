package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/jdewit/bettrack/internal/domain"
)

// SessionResolver resolves a session token to the signed-in user. It is the
// slice of the auth service the middleware needs.
type SessionResolver interface {
	CurrentUser(ctx context.Context, token string) (domain.User, error)
}

type contextKey struct{ name string }

var userKey = contextKey{"user"}

// Auth returns middleware that requires a valid session token on every
// request it wraps. The resolved user is placed on the request context for
// handlers to read via UserFrom.
func Auth(sessions SessionResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractToken(r)
			if token == "" {
				writeUnauthorized(w, "missing session token")
				return
			}

			user, err := sessions.CurrentUser(r.Context(), token)
			if err != nil {
				msg := "invalid session token"
				if errors.Is(err, domain.ErrSessionExpired) {
					msg = "session expired"
				}
				writeUnauthorized(w, msg)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

// OptionalAuth resolves a session token when one is present but never
// rejects the request. Handlers that serve both anonymous and signed-in
// views (the strategy page) use it to personalize their output.
func OptionalAuth(sessions SessionResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token := extractToken(r); token != "" {
				if user, err := sessions.CurrentUser(r.Context(), token); err == nil {
					r = r.WithContext(WithUser(r.Context(), user))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// UserFrom returns the authenticated user stored on the context by Auth or
// OptionalAuth.
func UserFrom(ctx context.Context) (domain.User, bool) {
	user, ok := ctx.Value(userKey).(domain.User)
	return user, ok
}

// WithUser returns a context carrying the given user, as Auth would set it.
func WithUser(ctx context.Context, user domain.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// extractToken looks for the session token in the Authorization header
// (Bearer scheme).
func extractToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if auth == "" {
		return ""
	}
	parts := strings.SplitN(auth, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}

// writeUnauthorized sends a 401 response with a JSON error body.
func writeUnauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"error":"` + msg + `"}`))
}
