package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// HealthCheck responds to liveness probes.
func HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "ok",
		"service": "ripple-backend",
	})
}
