package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jdewit/bettrack/internal/domain"
)

func TestSignInReturnsSession(t *testing.T) {
	auth := &fakeAuthService{session: domain.Session{
		Token:     "tok-1.sig",
		User:      domain.User{ID: "google-1", Email: "jdoe@example.com"},
		ExpiresAt: time.Date(2024, 3, 8, 0, 0, 0, 0, time.UTC),
	}}
	h := NewAuthHandler(auth, testLogger())

	r := httptest.NewRequest(http.MethodPost, "/api/auth/google", strings.NewReader(`{"id_token":"abc"}`))
	w := httptest.NewRecorder()
	h.SignIn(w, r)

	require.Equal(t, http.StatusCreated, w.Code)
	var session domain.Session
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &session))
	assert.Equal(t, "tok-1.sig", session.Token)
	assert.Equal(t, "google-1", session.User.ID)
}

func TestSignInRejectsBadToken(t *testing.T) {
	auth := &fakeAuthService{signInErr: domain.ErrUnauthorized}
	h := NewAuthHandler(auth, testLogger())

	r := httptest.NewRequest(http.MethodPost, "/api/auth/google", strings.NewReader(`{"id_token":"bad"}`))
	w := httptest.NewRecorder()
	h.SignIn(w, r)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSignInRequiresToken(t *testing.T) {
	h := NewAuthHandler(&fakeAuthService{}, testLogger())

	r := httptest.NewRequest(http.MethodPost, "/api/auth/google", strings.NewReader(`{}`))
	w := httptest.NewRecorder()
	h.SignIn(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSignOutDeletesSession(t *testing.T) {
	auth := &fakeAuthService{}
	h := NewAuthHandler(auth, testLogger())

	r := httptest.NewRequest(http.MethodPost, "/api/auth/signout", nil)
	r.Header.Set("Authorization", "Bearer tok-1.sig")
	w := httptest.NewRecorder()
	h.SignOut(w, r)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, []string{"tok-1.sig"}, auth.signedOut)
}

func TestSignOutWithoutTokenStillNoContent(t *testing.T) {
	auth := &fakeAuthService{}
	h := NewAuthHandler(auth, testLogger())

	w := httptest.NewRecorder()
	h.SignOut(w, httptest.NewRequest(http.MethodPost, "/api/auth/signout", nil))

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, auth.signedOut)
}

func TestMeReturnsContextUser(t *testing.T) {
	h := NewAuthHandler(&fakeAuthService{}, testLogger())

	w := httptest.NewRecorder()
	h.Me(w, authedRequest(http.MethodGet, "/api/me", ""))

	require.Equal(t, http.StatusOK, w.Code)
	var user domain.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &user))
	assert.Equal(t, "user-1", user.ID)
	assert.Equal(t, "jdoe@example.com", user.Email)
}

func TestMeWithoutUser(t *testing.T) {
	h := NewAuthHandler(&fakeAuthService{}, testLogger())

	w := httptest.NewRecorder()
	h.Me(w, httptest.NewRequest(http.MethodGet, "/api/me", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
