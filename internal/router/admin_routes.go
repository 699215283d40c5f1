package router

import (
	"github.com/labstack/echo/v4"

	"github.com/tmsiti/institute-api/internal/middleware"
)

// registerAdmin mounts account administration under /api/v1/admin/users.
// Moderators may read the account list; creating, changing and deleting
// accounts requires the admin role.
func registerAdmin(e *echo.Echo, d Deps) {
	reads := e.Group("/api/v1/admin/users", d.Authenticate, middleware.RequireModerator())
	reads.GET("", d.Admin.ListUsers)
	reads.GET("/:id", d.Admin.GetUser)

	writes := e.Group("/api/v1/admin/users", d.Authenticate, middleware.RequireAdmin())
	writes.POST("", d.Admin.CreateUser)
	writes.PUT("/:id", d.Admin.UpdateUser)
	writes.DELETE("/:id", d.Admin.DeleteUser)

	stats := e.Group("/api/v1/admin/stats", d.Authenticate, middleware.RequireAdmin())
	stats.GET("", d.Admin.Stats)
}
