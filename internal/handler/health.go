package handler

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// Banner answers the root path with the service name, a quick signal that
// the right process is listening on the port.
func Banner() echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{
			"service": "institute-api",
			"status":  "running",
		})
	}
}

// Health reports liveness plus a database ping so load balancers and
// monitoring can tell a wedged instance from a healthy one.
func Health(db *sql.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, cancel := dbTimeout(c)
		defer cancel()

		status := "ok"
		dbStatus := "ok"
		code := http.StatusOK
		if err := db.PingContext(ctx); err != nil {
			status = "degraded"
			dbStatus = "unreachable"
			code = http.StatusServiceUnavailable
		}
		return c.JSON(code, echo.Map{
			"status":   status,
			"database": dbStatus,
			"time":     time.Now().UTC().Format(time.RFC3339),
		})
	}
}
