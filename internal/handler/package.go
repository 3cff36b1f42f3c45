package handler

import (
	"github.com/deppfellow/catalog/internal/filter"
	"github.com/deppfellow/catalog/internal/model"
	"github.com/deppfellow/catalog/internal/server"
	"github.com/deppfellow/catalog/internal/service"
	"github.com/labstack/echo/v4"
)

type PackageHandler struct {
	Handler
	packages *service.PackageService
}

func NewPackageHandler(s *server.Server, packages *service.PackageService) *PackageHandler {
	return &PackageHandler{
		Handler:  NewHandler(s),
		packages: packages,
	}
}

func (h *PackageHandler) Paginate(c echo.Context, _ *ListRequest) (model.Page[model.Package], error) {
	params, err := service.ParseListParams(c.QueryParams(), filter.PackageConfig)
	if err != nil {
		return model.Page[model.Package]{}, err
	}
	return h.packages.PaginatePackages(c.Request().Context(), params)
}

func (h *PackageHandler) ListAll(c echo.Context, req *ListAllRequest) ([]model.Package, error) {
	if req.Alphabetical() {
		return h.packages.ListPackagesAlphabetically(c.Request().Context())
	}
	return h.packages.ListPackages(c.Request().Context())
}

func (h *PackageHandler) Get(c echo.Context, req *IDRequest) (model.Package, error) {
	return h.packages.GetPackage(c.Request().Context(), req.ID)
}

func (h *PackageHandler) GetByName(c echo.Context, req *NameRequest) (model.Package, error) {
	return h.packages.GetPackageByName(c.Request().Context(), req.Name)
}

func (h *PackageHandler) ListGrids(c echo.Context, req *IDRequest) ([]model.Grid, error) {
	return h.packages.ListPackageGrids(c.Request().Context(), req.ID)
}

// Create stores the package and answers before its sync has run.
func (h *PackageHandler) Create(c echo.Context, req *CreatePackageRequest) (model.Package, error) {
	return h.packages.CreatePackage(c.Request().Context(), req.PackageAttrs)
}

func (h *PackageHandler) Preview(c echo.Context, req *PreviewPackageRequest) (*model.Changeset[model.Package], error) {
	var pkg model.Package
	if req.ID != nil {
		existing, err := h.packages.GetPackage(c.Request().Context(), *req.ID)
		if err != nil {
			return nil, err
		}
		pkg = existing
	}
	return h.packages.ChangePackage(pkg, req.PackageAttrs), nil
}

func (h *PackageHandler) Update(c echo.Context, req *UpdatePackageRequest) (model.Package, error) {
	ctx := c.Request().Context()

	pkg, err := h.packages.GetPackage(ctx, req.ID)
	if err != nil {
		return model.Package{}, err
	}
	return h.packages.UpdatePackage(ctx, pkg, req.PackageAttrs)
}

func (h *PackageHandler) Delete(c echo.Context, req *IDRequest) (model.Package, error) {
	ctx := c.Request().Context()

	pkg, err := h.packages.GetPackage(ctx, req.ID)
	if err != nil {
		return model.Package{}, err
	}
	return h.packages.DeletePackage(ctx, pkg)
}
