package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMaskEmail(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"jdoe@example.com", "jd**@example.com"},
		{"alexander@example.com", "al*******@example.com"},
		{"ab@example.com", "ab@example.com"},
		{"a@example.com", "a@example.com"},
		{"not-an-email", "Anonymous"},
		{"", "Anonymous"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, MaskEmail(tc.in), "input %q", tc.in)
	}
}

func TestSessionExpired(t *testing.T) {
	expiry := time.Date(2024, 3, 8, 12, 0, 0, 0, time.UTC)
	s := Session{ExpiresAt: expiry}

	assert.False(t, s.Expired(expiry.Add(-time.Minute)))
	assert.False(t, s.Expired(expiry))
	assert.True(t, s.Expired(expiry.Add(time.Second)))
}

func TestTipVisibleTo(t *testing.T) {
	public := Tip{TipperID: "user-1", IsPublic: true}
	private := Tip{TipperID: "user-1", IsPublic: false}

	assert.True(t, public.VisibleTo("user-2"))
	assert.True(t, private.VisibleTo("user-1"))
	assert.False(t, private.VisibleTo("user-2"))
}
