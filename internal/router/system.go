package router

import (
	"github.com/labstack/echo/v4"
	"github.com/placesapi/placesapi/internal/handler"
	"github.com/placesapi/placesapi/internal/middleware"
)

// registerSystemRoutes registers everything outside /api: the landing
// page, health, metrics and the API docs with their static assets.
func registerSystemRoutes(r *echo.Echo, h *handler.Handlers, mw *middleware.Middlewares) {
	r.GET("/", h.Page.ServeIndex)

	r.GET("/status", h.Health.CheckHealth)

	r.GET("/metrics", echo.WrapHandler(mw.Metrics.Handler()))

	r.Static("/static", h.Page.StaticDir())

	r.GET("/docs", h.Page.ServeDocs)
}
