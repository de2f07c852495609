// Package router builds the echo instance: the middleware chain, the API
// routes and the system routes.
package router

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/placesapi/placesapi/internal/handler"
	"github.com/placesapi/placesapi/internal/middleware"
	"github.com/placesapi/placesapi/internal/server"
)

// NewRouter wires every route. Trailing slashes are stripped before
// routing, so /api/places/ and /api/places/1/ reach the same handlers as
// their slash-less forms.
func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true
	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	router.Pre(echoMiddleware.RemoveTrailingSlash())

	// Order matters: the request id feeds the context logger, and the New
	// Relic transaction must exist before EnhanceTracing and ContextEnhancer.
	router.Use(
		middlewares.Global.CORS(),
		middlewares.Global.Secure(),
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.Metrics.Middleware(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.Recover(),
	)

	registerSystemRoutes(router, h, middlewares)

	api := router.Group("/api")
	registerPlaceRoutes(api, h)

	return router
}

func registerPlaceRoutes(api *echo.Group, h *handler.Handlers) {
	places := api.Group("/places")

	// HEAD answers like GET; net/http drops the body.
	readMethods := []string{http.MethodGet, http.MethodHead}

	places.Match(readMethods, "", handler.Handle(h.Place.Handler, h.Place.ListPlaces, http.StatusOK))
	places.POST("", handler.Handle(h.Place.Handler, h.Place.CreatePlace, http.StatusCreated))

	places.Match(readMethods, "/:id", handler.Handle(h.Place.Handler, h.Place.GetPlace, http.StatusOK))
	places.PUT("/:id", handler.Handle(h.Place.Handler, h.Place.ReplacePlace, http.StatusOK))
	places.DELETE("/:id", handler.HandleNoContent(h.Place.Handler, h.Place.DeletePlace, http.StatusNoContent))
}
