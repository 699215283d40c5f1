package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token type discriminators.  Access and refresh tokens are structurally
// identical except for this claim and their TTL; every consumer of a token
// must check the type explicitly, the service itself does not care which
// endpoint accepts which.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// Decode failure classification.  The authorization middleware collapses all
// three into a 401, but the classes stay distinct so logs and tests can tell
// a clock problem from a forged token.
var (
	ErrInvalidToken   = errors.New("invalid token signature")
	ErrExpiredToken   = errors.New("token expired")
	ErrMalformedToken = errors.New("malformed token")
)

// Claims is the decoded payload of a signed token.
type Claims struct {
	Subject   uint64    // principal id (sub)
	Type      string    // access or refresh (type)
	IssuedAt  time.Time // iat
	ExpiresAt time.Time // exp
}

// TokenService issues and decodes HS256-signed tokens with a process-wide
// secret.  The now field exists so tests can pin the clock; production code
// uses UTC wall time.
type TokenService struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

// NewTokenService builds a TokenService from the signing secret and the two
// token lifetimes.
func NewTokenService(secret string, accessTTL, refreshTTL time.Duration) *TokenService {
	return &TokenService{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// IssueAccess signs a short-lived access token for the principal id and
// returns the token string with its expiry.
func (s *TokenService) IssueAccess(subject uint64) (string, time.Time, error) {
	return s.issue(subject, TokenTypeAccess, s.accessTTL)
}

// IssueRefresh signs a long-lived refresh token for the principal id.
func (s *TokenService) IssueRefresh(subject uint64) (string, time.Time, error) {
	return s.issue(subject, TokenTypeRefresh, s.refreshTTL)
}

func (s *TokenService) issue(subject uint64, typ string, ttl time.Duration) (string, time.Time, error) {
	now := s.now()
	exp := now.Add(ttl)
	claims := jwt.MapClaims{
		"sub":  subject,
		"type": typ,
		"iat":  now.Unix(),
		"exp":  exp.Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

// Decode verifies the signature and expiry of a token and returns its
// claims.  Failures are classified: ErrInvalidToken when the signature does
// not verify, ErrExpiredToken when past expiry, ErrMalformedToken when the
// token or its claims cannot be parsed.  The expiry check is the service's
// own so the boundary is fixed: a token is rejected at exactly its
// expires-at instant (valid while now < exp).
func (s *TokenService) Decode(raw string) (Claims, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	}, jwt.WithoutClaimsValidation())
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, ErrInvalidToken):
			return Claims{}, ErrInvalidToken
		default:
			return Claims{}, ErrMalformedToken
		}
	}

	mc, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, ErrMalformedToken
	}
	sub, ok := mc["sub"].(float64)
	if !ok || sub < 0 {
		return Claims{}, ErrMalformedToken
	}
	typ, ok := mc["type"].(string)
	if !ok || (typ != TokenTypeAccess && typ != TokenTypeRefresh) {
		return Claims{}, ErrMalformedToken
	}
	exp, ok := mc["exp"].(float64)
	if !ok {
		return Claims{}, ErrMalformedToken
	}
	iat, _ := mc["iat"].(float64) // issued-at is informational

	claims := Claims{
		Subject:   uint64(sub),
		Type:      typ,
		IssuedAt:  time.Unix(int64(iat), 0).UTC(),
		ExpiresAt: time.Unix(int64(exp), 0).UTC(),
	}
	if !s.now().Before(claims.ExpiresAt) {
		return Claims{}, ErrExpiredToken
	}
	return claims, nil
}
