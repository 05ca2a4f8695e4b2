package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/jdewit/bettrack/internal/domain"
	"github.com/jdewit/bettrack/internal/server/middleware"
)

// AuthService defines the methods the auth handler requires from the
// service layer. It is declared locally so the handler package does not
// depend on the concrete service implementation.
type AuthService interface {
	SignInWithGoogleToken(ctx context.Context, idToken string) (domain.Session, error)
	SignOut(ctx context.Context, token string) error
}

// AuthHandler serves the sign-in, sign-out and current-user endpoints.
type AuthHandler struct {
	auth   AuthService
	logger *slog.Logger
}

// NewAuthHandler creates an AuthHandler with the given service and logger.
func NewAuthHandler(auth AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		auth:   auth,
		logger: logger,
	}
}

type signInRequest struct {
	IDToken string `json:"id_token"`
}

// SignIn exchanges a Google ID token for a server session.
// POST /api/auth/google
func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req signInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.IDToken == "" {
		writeError(w, http.StatusBadRequest, "id_token is required")
		return
	}

	session, err := h.auth.SignInWithGoogleToken(r.Context(), req.IDToken)
	if err != nil {
		writeServiceError(w, r, h.logger, err, "sign-in failed")
		return
	}

	writeJSON(w, http.StatusCreated, session)
}

// SignOut deletes the caller's session. It always answers 204; signing out
// with a stale token is not an error.
// POST /api/auth/signout
func (h *AuthHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	token := bearerToken(r)
	if token != "" {
		if err := h.auth.SignOut(r.Context(), token); err != nil {
			writeServiceError(w, r, h.logger, err, "sign-out failed")
			return
		}
	}
	w.WriteHeader(http.StatusNoContent)
}

// Me returns the authenticated user resolved by the auth middleware.
// GET /api/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// bearerToken extracts the raw token from the Authorization header.
func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	parts := strings.SplitN(auth, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}
