package router

import (
	"github.com/labstack/echo/v4"
)

// registerAuth mounts registration, login and token exchange under
// /api/v1/auth, plus the authenticated profile endpoints.
func registerAuth(e *echo.Echo, d Deps) {
	g := e.Group("/api/v1/auth")
	g.POST("/register", d.Auth.Register)
	g.POST("/login", d.Auth.Login)
	g.POST("/refresh", d.Auth.Refresh)

	me := e.Group("/api/v1/users", d.Authenticate)
	me.GET("/me", d.Auth.Me)
	me.PUT("/me", d.Users.UpdateMe)
	me.POST("/me/change-password", d.Users.ChangePassword)
	me.POST("/me/avatar", d.Users.UploadAvatar)
}
