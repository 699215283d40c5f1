// Package router defines how HTTP routes are registered for the API.
package router

import (
	"database/sql"

	"github.com/labstack/echo/v4"

	"github.com/tmsiti/institute-api/internal/config"
	"github.com/tmsiti/institute-api/internal/handler"
)

// Deps carries everything route registration needs: configuration, the
// handlers and the request middleware built in main.
type Deps struct {
	Cfg config.Config
	DB  *sql.DB

	Auth        *handler.AuthHandler
	Users       *handler.UserHandler
	Admin       *handler.AdminHandler
	News        *handler.NewsHandler
	Regulations *handler.RegulationHandler
	Institute   *handler.InstituteHandler
	Activity    *handler.ActivityHandler
	Contact     *handler.ContactHandler

	Language     echo.MiddlewareFunc
	Authenticate echo.MiddlewareFunc
	RateLimit    echo.MiddlewareFunc
}

// Register wires every route group onto e.  Language negotiation and rate
// limiting run on all requests; authentication and role gates attach per
// group.
func Register(e *echo.Echo, d Deps) {
	e.Use(d.Language)
	e.Use(d.RateLimit)

	e.GET("/", handler.Banner())
	e.GET("/healthz", handler.Health(d.DB))

	// Uploaded media is served straight off disk under the same relative
	// paths the database stores.
	e.Static("/"+d.Cfg.UploadDir, d.Cfg.UploadDir)

	registerAuth(e, d)
	registerPublic(e, d)
	registerStaff(e, d)
	registerAdmin(e, d)
}
