package handler

import (
	"github.com/deppfellow/catalog/internal/filter"
	"github.com/deppfellow/catalog/internal/model"
	"github.com/deppfellow/catalog/internal/server"
	"github.com/deppfellow/catalog/internal/service"
	"github.com/labstack/echo/v4"
)

type GridHandler struct {
	Handler
	grids *service.GridService
}

func NewGridHandler(s *server.Server, grids *service.GridService) *GridHandler {
	return &GridHandler{
		Handler: NewHandler(s),
		grids:   grids,
	}
}

// Paginate answers GET /grids with one page of the filtered listing.
func (h *GridHandler) Paginate(c echo.Context, _ *ListRequest) (model.Page[model.Grid], error) {
	params, err := service.ParseListParams(c.QueryParams(), filter.GridConfig)
	if err != nil {
		return model.Page[model.Grid]{}, err
	}
	return h.grids.PaginateGrids(c.Request().Context(), params)
}

func (h *GridHandler) ListAll(c echo.Context, req *ListAllRequest) ([]model.Grid, error) {
	if req.Alphabetical() {
		return h.grids.ListGridsAlphabetically(c.Request().Context())
	}
	return h.grids.ListGrids(c.Request().Context())
}

func (h *GridHandler) Get(c echo.Context, req *IDRequest) (model.Grid, error) {
	return h.grids.GetGrid(c.Request().Context(), req.ID)
}

func (h *GridHandler) GetBySlug(c echo.Context, req *SlugRequest) (model.Grid, error) {
	return h.grids.GetGridBySlug(c.Request().Context(), req.Slug)
}

func (h *GridHandler) ListPackages(c echo.Context, req *IDRequest) ([]model.Package, error) {
	return h.grids.ListGridPackages(c.Request().Context(), req.ID)
}

func (h *GridHandler) Create(c echo.Context, req *CreateGridRequest) (model.Grid, error) {
	return h.grids.CreateGrid(c.Request().Context(), req.GridAttrs)
}

// Preview returns the changeset for the request without saving it, valid or
// not.
func (h *GridHandler) Preview(c echo.Context, req *PreviewGridRequest) (*model.Changeset[model.Grid], error) {
	var grid model.Grid
	if req.ID != nil {
		existing, err := h.grids.GetGrid(c.Request().Context(), *req.ID)
		if err != nil {
			return nil, err
		}
		grid = existing
	}
	return h.grids.ChangeGrid(grid, req.GridAttrs), nil
}

func (h *GridHandler) Update(c echo.Context, req *UpdateGridRequest) (model.Grid, error) {
	ctx := c.Request().Context()

	grid, err := h.grids.GetGrid(ctx, req.ID)
	if err != nil {
		return model.Grid{}, err
	}
	return h.grids.UpdateGrid(ctx, grid, req.GridAttrs)
}

func (h *GridHandler) Delete(c echo.Context, req *IDRequest) (model.Grid, error) {
	ctx := c.Request().Context()

	grid, err := h.grids.GetGrid(ctx, req.ID)
	if err != nil {
		return model.Grid{}, err
	}
	return h.grids.DeleteGrid(ctx, grid)
}
