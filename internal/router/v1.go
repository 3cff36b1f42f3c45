package router

import (
	"net/http"

	"github.com/deppfellow/catalog/internal/handler"
	"github.com/labstack/echo/v4"
)

func registerGridRoutes(g *echo.Group, h *handler.GridHandler) {
	grids := g.Group("/grids")

	grids.GET("", handler.Handle(h.Handler, h.Paginate, http.StatusOK))
	grids.GET("/all", handler.Handle(h.Handler, h.ListAll, http.StatusOK))
	grids.GET("/slug/:slug", handler.Handle(h.Handler, h.GetBySlug, http.StatusOK))
	grids.GET("/:id", handler.Handle(h.Handler, h.Get, http.StatusOK))
	grids.GET("/:id/packages", handler.Handle(h.Handler, h.ListPackages, http.StatusOK))
	grids.POST("", handler.Handle(h.Handler, h.Create, http.StatusCreated))
	grids.POST("/preview", handler.Handle(h.Handler, h.Preview, http.StatusOK))
	grids.PATCH("/:id", handler.Handle(h.Handler, h.Update, http.StatusOK))
	grids.DELETE("/:id", handler.Handle(h.Handler, h.Delete, http.StatusOK))
}

func registerPackageRoutes(g *echo.Group, h *handler.PackageHandler) {
	packages := g.Group("/packages")

	packages.GET("", handler.Handle(h.Handler, h.Paginate, http.StatusOK))
	packages.GET("/all", handler.Handle(h.Handler, h.ListAll, http.StatusOK))
	packages.GET("/name/:name", handler.Handle(h.Handler, h.GetByName, http.StatusOK))
	packages.GET("/:id", handler.Handle(h.Handler, h.Get, http.StatusOK))
	packages.GET("/:id/grids", handler.Handle(h.Handler, h.ListGrids, http.StatusOK))
	packages.POST("", handler.Handle(h.Handler, h.Create, http.StatusCreated))
	packages.POST("/preview", handler.Handle(h.Handler, h.Preview, http.StatusOK))
	packages.PATCH("/:id", handler.Handle(h.Handler, h.Update, http.StatusOK))
	packages.DELETE("/:id", handler.Handle(h.Handler, h.Delete, http.StatusOK))
}

func registerPackageInGridRoutes(g *echo.Group, h *handler.PackageInGridHandler) {
	memberships := g.Group("/package-in-grids")

	memberships.POST("", handler.Handle(h.Handler, h.Create, http.StatusCreated))
	memberships.POST("/preview", handler.Handle(h.Handler, h.Preview, http.StatusOK))
	memberships.DELETE("", handler.Handle(h.Handler, h.Delete, http.StatusOK))
}
