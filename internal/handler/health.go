package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Root greets API clients; the frontend uses it as a reachability probe.
func Root(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Bienvenido a la API de alquiler de películas",
	})
}

// Health is the health-check endpoint for load balancers and monitoring.
func Health(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}
