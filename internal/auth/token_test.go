package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(now time.Time) *TokenService {
	s := NewTokenService("test-secret", 30*time.Minute, 7*24*time.Hour)
	s.now = func() time.Time { return now }
	return s
}

func TestIssueAndDecodeAccess(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	s := newTestService(now)

	raw, exp, err := s.IssueAccess(42)
	require.NoError(t, err)
	assert.Equal(t, now.Add(30*time.Minute), exp)

	claims, err := s.Decode(raw)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), claims.Subject)
	assert.Equal(t, TokenTypeAccess, claims.Type)
	assert.Equal(t, now.Unix(), claims.IssuedAt.Unix())
	assert.Equal(t, exp.Unix(), claims.ExpiresAt.Unix())
}

func TestIssueRefreshType(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	s := newTestService(now)

	raw, exp, err := s.IssueRefresh(7)
	require.NoError(t, err)
	assert.Equal(t, now.Add(7*24*time.Hour), exp)

	claims, err := s.Decode(raw)
	require.NoError(t, err)
	assert.Equal(t, TokenTypeRefresh, claims.Type)
}

func TestDecodeExpiryBoundary(t *testing.T) {
	issued := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	s := newTestService(issued)

	raw, exp, err := s.IssueAccess(1)
	require.NoError(t, err)

	// One second before expiry the token still decodes.
	s.now = func() time.Time { return exp.Add(-time.Second) }
	_, err = s.Decode(raw)
	assert.NoError(t, err)

	// At exactly the expiry instant the token is rejected.
	s.now = func() time.Time { return exp }
	_, err = s.Decode(raw)
	assert.ErrorIs(t, err, ErrExpiredToken)

	// And of course after it.
	s.now = func() time.Time { return exp.Add(time.Hour) }
	_, err = s.Decode(raw)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestDecodeWrongSecret(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	s := newTestService(now)
	other := NewTokenService("other-secret", 30*time.Minute, 24*time.Hour)
	other.now = s.now

	raw, _, err := other.IssueAccess(1)
	require.NoError(t, err)

	_, err = s.Decode(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestDecodeGarbage(t *testing.T) {
	s := newTestService(time.Now().UTC())

	_, err := s.Decode("not.a.token")
	assert.ErrorIs(t, err, ErrMalformedToken)

	_, err = s.Decode("")
	assert.ErrorIs(t, err, ErrMalformedToken)
}

func TestDecodeRejectsForeignClaims(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	s := newTestService(now)

	sign := func(claims jwt.MapClaims) string {
		tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
		raw, err := tok.SignedString([]byte("test-secret"))
		require.NoError(t, err)
		return raw
	}
	exp := now.Add(time.Hour).Unix()

	// Unknown token type.
	_, err := s.Decode(sign(jwt.MapClaims{"sub": 1.0, "type": "session", "exp": exp}))
	assert.ErrorIs(t, err, ErrMalformedToken)

	// Missing subject.
	_, err = s.Decode(sign(jwt.MapClaims{"type": "access", "exp": exp}))
	assert.ErrorIs(t, err, ErrMalformedToken)

	// Missing expiry.
	_, err = s.Decode(sign(jwt.MapClaims{"sub": 1.0, "type": "access"}))
	assert.ErrorIs(t, err, ErrMalformedToken)
}
