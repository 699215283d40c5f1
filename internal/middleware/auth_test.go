package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tmsiti/institute-api/internal/auth"
	"github.com/tmsiti/institute-api/internal/repository"
)

// stubSource serves fixed accounts keyed by id.
type stubSource map[uint64]repository.User

func (s stubSource) GetByID(_ echo.Context, id uint64) (repository.User, error) {
	u, ok := s[id]
	if !ok {
		return repository.User{}, repository.ErrNotFound
	}
	return u, nil
}

func authSetup() (*auth.TokenService, stubSource) {
	tokens := auth.NewTokenService("test-secret", 30*time.Minute, 24*time.Hour)
	users := stubSource{
		1: {ID: 1, Username: "reader", IsActive: true},
		2: {ID: 2, Username: "editor", IsActive: true, IsModerator: true},
		3: {ID: 3, Username: "boss", IsActive: true, IsAdmin: true},
		4: {ID: 4, Username: "banned", IsActive: false},
	}
	return tokens, users
}

func doRequest(mw echo.MiddlewareFunc, authorization string, inner echo.HandlerFunc) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	_ = mw(inner)(c)
	return rec
}

func okHandler(c echo.Context) error { return c.NoContent(http.StatusOK) }

func TestAuthenticateMissingHeader(t *testing.T) {
	tokens, users := authSetup()
	mw := Authenticate(tokens, users)

	rec := doRequest(mw, "", okHandler)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doRequest(mw, "Basic abc", okHandler)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticateValidAccess(t *testing.T) {
	tokens, users := authSetup()
	mw := Authenticate(tokens, users)

	raw, _, err := tokens.IssueAccess(2)
	require.NoError(t, err)

	var gotUser *repository.User
	var gotRole auth.Role
	rec := doRequest(mw, "Bearer "+raw, func(c echo.Context) error {
		gotUser, _ = CurrentUser(c)
		gotRole = CurrentRole(c)
		return c.NoContent(http.StatusOK)
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, gotUser)
	assert.Equal(t, uint64(2), gotUser.ID)
	assert.Equal(t, auth.RoleModerator, gotRole)
}

func TestAuthenticateRejectsRefreshToken(t *testing.T) {
	tokens, users := authSetup()
	mw := Authenticate(tokens, users)

	raw, _, err := tokens.IssueRefresh(1)
	require.NoError(t, err)

	rec := doRequest(mw, "Bearer "+raw, okHandler)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "access token required")
}

func TestAuthenticateUnknownSubject(t *testing.T) {
	tokens, users := authSetup()
	mw := Authenticate(tokens, users)

	raw, _, err := tokens.IssueAccess(99)
	require.NoError(t, err)

	rec := doRequest(mw, "Bearer "+raw, okHandler)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticateInactiveAccount(t *testing.T) {
	tokens, users := authSetup()
	mw := Authenticate(tokens, users)

	raw, _, err := tokens.IssueAccess(4)
	require.NoError(t, err)

	rec := doRequest(mw, "Bearer "+raw, okHandler)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "account disabled")
}

func TestAuthenticateBadToken(t *testing.T) {
	tokens, users := authSetup()
	mw := Authenticate(tokens, users)

	rec := doRequest(mw, "Bearer garbage", okHandler)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireRoleMatrix(t *testing.T) {
	tokens, users := authSetup()

	run := func(userID uint64, gate echo.MiddlewareFunc) int {
		raw, _, err := tokens.IssueAccess(userID)
		if err != nil {
			t.Fatal(err)
		}
		authn := Authenticate(tokens, users)
		rec := doRequest(func(next echo.HandlerFunc) echo.HandlerFunc {
			return authn(gate(next))
		}, "Bearer "+raw, okHandler)
		return rec.Code
	}

	// Moderator gate: reader blocked, editor and admin pass.
	assert.Equal(t, http.StatusForbidden, run(1, RequireModerator()))
	assert.Equal(t, http.StatusOK, run(2, RequireModerator()))
	assert.Equal(t, http.StatusOK, run(3, RequireModerator()))

	// Admin gate: only the admin passes.
	assert.Equal(t, http.StatusForbidden, run(1, RequireAdmin()))
	assert.Equal(t, http.StatusForbidden, run(2, RequireAdmin()))
	assert.Equal(t, http.StatusOK, run(3, RequireAdmin()))
}

func TestRequireRoleWithoutAuthenticate(t *testing.T) {
	// Without a prior Authenticate the gate fails closed.
	rec := doRequest(RequireModerator(), "", okHandler)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestCurrentRoleDefault(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	assert.Equal(t, auth.RoleUser, CurrentRole(c))
}
