package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tmsiti/institute-api/internal/auth"
)

// RequireRole returns a middleware that rejects requests whose authenticated
// account ranks below min.  It assumes Authenticate already ran; without it
// the role defaults to the lowest tier and staff-only routes stay closed.
func RequireRole(min auth.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if u, ok := CurrentUser(c); !ok || !u.Role().AtLeast(min) {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "insufficient permissions"})
			}
			return next(c)
		}
	}
}

// RequireModerator gates content-management routes.
func RequireModerator() echo.MiddlewareFunc { return RequireRole(auth.RoleModerator) }

// RequireAdmin gates user administration and destructive routes.
func RequireAdmin() echo.MiddlewareFunc { return RequireRole(auth.RoleAdmin) }
