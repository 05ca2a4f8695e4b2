package domain

import (
	"strings"
	"time"
)

// User is the signed-in identity as decoded from the external ID token.
type User struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Picture string `json:"picture,omitempty"`
}

// Session is a server-side authenticated session. It is stored in the
// session cache under its token and expires after the configured TTL.
type Session struct {
	Token     string    `json:"token"`
	User      User      `json:"user"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the session is past its expiry at the given time.
func (s Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

// Profile is the public face of a user on the tips page. Email is stored
// masked so other users never see the full address.
type Profile struct {
	ID    string
	Email string
}

// MaskEmail hides all but the first two characters of the local part of an
// email address ("jdoe@example.com" -> "jd**@example.com"). Addresses with a
// local part of two characters or fewer are returned unchanged, and input
// without an @ is replaced with "Anonymous".
func MaskEmail(email string) string {
	if email == "" {
		return "Anonymous"
	}
	at := strings.IndexByte(email, '@')
	if at < 0 {
		return "Anonymous"
	}
	local, dom := email[:at], email[at+1:]
	if len(local) <= 2 {
		return local + "@" + dom
	}
	return local[:2] + strings.Repeat("*", len(local)-2) + "@" + dom
}
