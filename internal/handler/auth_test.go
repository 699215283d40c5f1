package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tmsiti/institute-api/internal/auth"
	"github.com/tmsiti/institute-api/internal/config"
	"github.com/tmsiti/institute-api/internal/repository"
)

// stubAccounts serves fixed users keyed by id.
type stubAccounts map[uint64]repository.User

func (s stubAccounts) Create(_ context.Context, u *repository.User, _ string, _ int) (uint64, error) {
	id := uint64(len(s) + 1)
	u.ID = id
	s[id] = *u
	return id, nil
}

func (s stubAccounts) GetByID(_ context.Context, id uint64) (repository.User, error) {
	u, ok := s[id]
	if !ok {
		return repository.User{}, repository.ErrNotFound
	}
	return u, nil
}

func (s stubAccounts) GetByLogin(_ context.Context, login string) (repository.User, error) {
	for _, u := range s {
		if u.Username == login || u.Email == login {
			return u, nil
		}
	}
	return repository.User{}, repository.ErrNotFound
}

func (s stubAccounts) TouchLastLogin(context.Context, uint64) error { return nil }

func authHandlerSetup() (*AuthHandler, stubAccounts) {
	tokens := auth.NewTokenService("test-secret", 30*time.Minute, 24*time.Hour)
	users := stubAccounts{
		1: {ID: 1, Username: "reader", Email: "reader@example.com", IsActive: true},
		2: {ID: 2, Username: "banned", Email: "banned@example.com", IsActive: false},
	}
	return NewAuthHandler(config.Config{BcryptCost: 4}, users, tokens), users
}

func postJSON(h echo.HandlerFunc, path string, body any) *httptest.ResponseRecorder {
	raw, _ := json.Marshal(body)
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(string(raw)))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	_ = h(e.NewContext(req, rec))
	return rec
}

func TestRefreshIssuesNewPair(t *testing.T) {
	h, _ := authHandlerSetup()

	refresh, _, err := h.Tokens.IssueRefresh(1)
	require.NoError(t, err)

	rec := postJSON(h.Refresh, "/api/v1/auth/refresh", echo.Map{"refresh_token": refresh})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp authResp
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, uint64(1), resp.User.ID)

	access, err := h.Tokens.Decode(resp.Access.Token)
	require.NoError(t, err)
	assert.Equal(t, auth.TokenTypeAccess, access.Type)
	assert.Equal(t, uint64(1), access.Subject)

	rotated, err := h.Tokens.Decode(resp.Refresh.Token)
	require.NoError(t, err)
	assert.Equal(t, auth.TokenTypeRefresh, rotated.Type)
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	h, _ := authHandlerSetup()

	access, _, err := h.Tokens.IssueAccess(1)
	require.NoError(t, err)

	rec := postJSON(h.Refresh, "/api/v1/auth/refresh", echo.Map{"refresh_token": access})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "refresh token required")
}

func TestRefreshRejectsGarbage(t *testing.T) {
	h, _ := authHandlerSetup()

	rec := postJSON(h.Refresh, "/api/v1/auth/refresh", echo.Map{"refresh_token": "garbage"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = postJSON(h.Refresh, "/api/v1/auth/refresh", echo.Map{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRefreshInactiveAccount(t *testing.T) {
	h, _ := authHandlerSetup()

	refresh, _, err := h.Tokens.IssueRefresh(2)
	require.NoError(t, err)

	rec := postJSON(h.Refresh, "/api/v1/auth/refresh", echo.Map{"refresh_token": refresh})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "account disabled")
}

func TestRefreshUnknownSubject(t *testing.T) {
	h, _ := authHandlerSetup()

	refresh, _, err := h.Tokens.IssueRefresh(99)
	require.NoError(t, err)

	rec := postJSON(h.Refresh, "/api/v1/auth/refresh", echo.Map{"refresh_token": refresh})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLoginInactiveAccount(t *testing.T) {
	h, users := authHandlerSetup()

	hash, err := auth.HashPassword("secret-pass", 4)
	require.NoError(t, err)
	u := users[2]
	u.PasswordHash = hash
	users[2] = u

	rec := postJSON(h.Login, "/api/v1/auth/login", echo.Map{"login": "banned", "password": "secret-pass"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "account disabled")
}
