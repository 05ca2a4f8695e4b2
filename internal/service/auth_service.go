// Package service implements the application use cases on top of the domain
// stores and caches.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jdewit/bettrack/internal/auth"
	"github.com/jdewit/bettrack/internal/domain"
)

// AuthService turns Google sign-ins into server-side sessions.
type AuthService struct {
	verifier *auth.Verifier
	minter   *auth.Minter
	sessions domain.SessionStore
	profiles domain.ProfileStore
	ttl      time.Duration
	logger   *slog.Logger
	now      func() time.Time
}

// NewAuthService creates an AuthService with all required dependencies.
func NewAuthService(
	verifier *auth.Verifier,
	minter *auth.Minter,
	sessions domain.SessionStore,
	profiles domain.ProfileStore,
	ttl time.Duration,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		verifier: verifier,
		minter:   minter,
		sessions: sessions,
		profiles: profiles,
		ttl:      ttl,
		logger:   logger,
		now:      time.Now,
	}
}

// SignInWithGoogleToken validates the ID token, upserts the user's masked
// profile (the tips page needs a row for every potential sharer), and mints
// a fresh session.
func (s *AuthService) SignInWithGoogleToken(ctx context.Context, idToken string) (domain.Session, error) {
	claims, err := s.verifier.Verify(idToken)
	if err != nil {
		s.logger.WarnContext(ctx, "auth_service: id token rejected",
			slog.String("error", err.Error()),
		)
		return domain.Session{}, domain.ErrUnauthorized
	}

	user := domain.User{
		ID:      claims.Subject,
		Name:    claims.Name,
		Email:   claims.Email,
		Picture: claims.Picture,
	}

	profile := domain.Profile{
		ID:    user.ID,
		Email: domain.MaskEmail(user.Email),
	}
	if err := s.profiles.Upsert(ctx, profile); err != nil {
		return domain.Session{}, fmt.Errorf("auth_service: upsert profile: %w", err)
	}

	token, err := s.minter.Mint()
	if err != nil {
		return domain.Session{}, fmt.Errorf("auth_service: mint token: %w", err)
	}

	now := s.now()
	session := domain.Session{
		Token:     token,
		User:      user,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	if err := s.sessions.Put(ctx, session, s.ttl); err != nil {
		return domain.Session{}, fmt.Errorf("auth_service: store session: %w", err)
	}

	s.logger.InfoContext(ctx, "auth_service: user signed in",
		slog.String("user_id", user.ID),
	)
	return session, nil
}

// SignOut deletes the session behind the token. Unknown or malformed tokens
// sign out silently.
func (s *AuthService) SignOut(ctx context.Context, token string) error {
	if _, err := s.minter.Verify(token); err != nil {
		return nil
	}
	if err := s.sessions.Delete(ctx, token); err != nil {
		return fmt.Errorf("auth_service: delete session: %w", err)
	}
	return nil
}

// CurrentUser resolves a session token to its user. It returns
// ErrUnauthorized for forged or unknown tokens and ErrSessionExpired for
// sessions past their expiry.
func (s *AuthService) CurrentUser(ctx context.Context, token string) (domain.User, error) {
	if _, err := s.minter.Verify(token); err != nil {
		return domain.User{}, domain.ErrUnauthorized
	}

	session, err := s.sessions.Get(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.User{}, domain.ErrUnauthorized
		}
		return domain.User{}, fmt.Errorf("auth_service: load session: %w", err)
	}

	if session.Expired(s.now()) {
		// Redis TTLs normally remove expired sessions; this covers stores
		// without server-side expiry.
		_ = s.sessions.Delete(ctx, token)
		return domain.User{}, domain.ErrSessionExpired
	}
	return session.User, nil
}
