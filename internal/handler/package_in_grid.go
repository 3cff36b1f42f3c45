package handler

import (
	"github.com/deppfellow/catalog/internal/model"
	"github.com/deppfellow/catalog/internal/server"
	"github.com/deppfellow/catalog/internal/service"
	"github.com/labstack/echo/v4"
)

type PackageInGridHandler struct {
	Handler
	memberships *service.PackageInGridService
}

func NewPackageInGridHandler(s *server.Server, memberships *service.PackageInGridService) *PackageInGridHandler {
	return &PackageInGridHandler{
		Handler:     NewHandler(s),
		memberships: memberships,
	}
}

func (h *PackageInGridHandler) Create(c echo.Context, req *PackageInGridRequest) (model.PackageInGrid, error) {
	return h.memberships.CreatePackageInGrid(c.Request().Context(), req.PackageInGridAttrs)
}

func (h *PackageInGridHandler) Preview(c echo.Context, req *PackageInGridRequest) (*model.Changeset[model.PackageInGrid], error) {
	return h.memberships.ChangePackageInGrid(model.PackageInGrid{}, req.PackageInGridAttrs), nil
}

// Delete removes the membership named in the body and echoes the body back.
// A membership that does not exist is answered with a 400 validation error.
func (h *PackageInGridHandler) Delete(c echo.Context, req *PackageInGridRequest) (model.PackageInGridAttrs, error) {
	return h.memberships.DeletePackageInGrid(c.Request().Context(), req.PackageInGridAttrs)
}
