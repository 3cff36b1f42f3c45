// Package router builds the echo instance: global middleware in a fixed order,
// the system routes and the versioned API.
package router

import (
	"github.com/deppfellow/catalog/internal/handler"
	"github.com/deppfellow/catalog/internal/middleware"
	"github.com/deppfellow/catalog/internal/server"
	"github.com/labstack/echo/v4"
)

func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true
	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	router.Use(
		middlewares.RateLimit.RateLimit(),
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.Recover(),
		middlewares.Global.Secure(),
		middlewares.Global.CORS(),
	)

	registerSystemRoutes(router, h)

	v1 := router.Group("/api/v1")
	registerGridRoutes(v1, h.Grid)
	registerPackageRoutes(v1, h.Package)
	registerPackageInGridRoutes(v1, h.PackageInGrid)

	return router
}
