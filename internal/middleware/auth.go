package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/tmsiti/institute-api/internal/auth"
	"github.com/tmsiti/institute-api/internal/repository"
)

// Context keys set by Authenticate and read by handlers and downstream
// middleware.
const (
	ctxUserKey = "current_user"
	ctxRoleKey = "current_role"
)

// PrincipalSource loads the account behind a token subject.  The user
// repository satisfies it; tests substitute a stub.
type PrincipalSource interface {
	GetByID(ctx echo.Context, id uint64) (repository.User, error)
}

// RepoPrincipalSource adapts the user repository to PrincipalSource.
type RepoPrincipalSource struct {
	Users *repository.UserRepo
}

func (s RepoPrincipalSource) GetByID(c echo.Context, id uint64) (repository.User, error) {
	return s.Users.GetByID(c.Request().Context(), id)
}

// Authenticate returns an Echo middleware that validates a Bearer access
// token and loads the account it names.  Refresh tokens are rejected here;
// they are only accepted by the token refresh endpoint.  Disabled accounts
// get 401 even with a valid token.  Handlers read the result via
// CurrentUser and CurrentRole.
func Authenticate(tokens *auth.TokenService, users PrincipalSource) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			raw := strings.TrimPrefix(header, "Bearer ")

			claims, err := tokens.Decode(raw)
			if err != nil {
				switch err {
				case auth.ErrExpiredToken:
					return c.JSON(http.StatusUnauthorized, echo.Map{"error": "token expired"})
				default:
					return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
				}
			}
			if claims.Type != auth.TokenTypeAccess {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "access token required"})
			}

			user, err := users.GetByID(c, claims.Subject)
			if err != nil {
				if err == repository.ErrNotFound {
					return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
				}
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not load account"})
			}
			if !user.IsActive {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "account disabled"})
			}

			c.Set(ctxUserKey, &user)
			c.Set(ctxRoleKey, user.Role())
			return next(c)
		}
	}
}

// CurrentUser returns the authenticated account stored by Authenticate.
func CurrentUser(c echo.Context) (*repository.User, bool) {
	u, ok := c.Get(ctxUserKey).(*repository.User)
	return u, ok
}

// CurrentRole returns the authenticated account's role, or RoleUser when
// the request is unauthenticated.
func CurrentRole(c echo.Context) auth.Role {
	if r, ok := c.Get(ctxRoleKey).(auth.Role); ok {
		return r
	}
	return auth.RoleUser
}
