package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-table-reservation/internal/handler"
	"github.com/iliyamo/restaurant-table-reservation/internal/middleware"
)

// RegisterManager registers the inventory administration surface.  All
// routes require a valid JWT and the MANAGER role.  POST /v1/tables
// shares its path with the public listing; only the methods differ.
func RegisterManager(e *echo.Echo, t *handler.TableHandler, jwtSecret string) {
	auth := []echo.MiddlewareFunc{
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("MANAGER"),
	}
	e.POST("/v1/tables", t.Create, auth...)
	e.GET("/v1/tables/all", t.ListAll, auth...)
}
