package service

import (
	"context"

	"github.com/deppfellow/catalog/internal/logger"
	"github.com/deppfellow/catalog/internal/model"
	"github.com/rs/zerolog"
)

type GridService struct {
	grids  GridStore
	logger *zerolog.Logger
}

func NewGridService(grids GridStore, logger *zerolog.Logger) *GridService {
	return &GridService{grids: grids, logger: logger}
}

func (s *GridService) PaginateGrids(ctx context.Context, params model.ListParams) (model.Page[model.Grid], error) {
	return s.grids.Paginate(ctx, params.Normalized())
}

func (s *GridService) ListGrids(ctx context.Context) ([]model.Grid, error) {
	return s.grids.List(ctx)
}

func (s *GridService) ListGridsAlphabetically(ctx context.Context) ([]model.Grid, error) {
	return s.grids.ListAlphabetically(ctx)
}

func (s *GridService) GetGrid(ctx context.Context, id int64) (model.Grid, error) {
	grid, err := s.grids.GetByID(ctx, id)
	return grid, mapNotFound(err, gridNotFound)
}

func (s *GridService) GetGridBySlug(ctx context.Context, slug string) (model.Grid, error) {
	grid, err := s.grids.GetBySlug(ctx, slug)
	return grid, mapNotFound(err, gridNotFound)
}

// ChangeGrid previews attrs applied to grid without saving anything.
func (s *GridService) ChangeGrid(grid model.Grid, attrs model.GridAttrs) *model.Changeset[model.Grid] {
	return model.ChangeGrid(grid, attrs)
}

func (s *GridService) CreateGrid(ctx context.Context, attrs model.GridAttrs) (model.Grid, error) {
	cs := model.ChangeGrid(model.Grid{}, attrs).WithAction(model.ActionInsert)
	if err := cs.Err(); err != nil {
		return model.Grid{}, err
	}

	grid, err := s.grids.Create(ctx, cs.Data)
	if err != nil {
		return model.Grid{}, persistError(cs, err)
	}

	logger.FromContext(ctx, s.logger).Info().
		Int64("grid_id", grid.ID).
		Str("slug", grid.Slug).
		Msg("grid created")

	return grid, nil
}

// UpdateGrid applies attrs to an existing grid. A grid deleted in the
// meantime is reported as not found.
func (s *GridService) UpdateGrid(ctx context.Context, grid model.Grid, attrs model.GridAttrs) (model.Grid, error) {
	cs := model.ChangeGrid(grid, attrs).WithAction(model.ActionUpdate)
	if err := cs.Err(); err != nil {
		return model.Grid{}, err
	}

	updated, err := s.grids.Update(ctx, cs.Data)
	if err != nil {
		return model.Grid{}, mapNotFound(persistError(cs, err), gridNotFound)
	}
	return updated, nil
}

// DeleteGrid issues one delete for grid. Deleting a grid that is already gone
// returns a not found error.
func (s *GridService) DeleteGrid(ctx context.Context, grid model.Grid) (model.Grid, error) {
	if err := s.grids.Delete(ctx, grid.ID); err != nil {
		return model.Grid{}, mapNotFound(err, gridNotFound)
	}

	logger.FromContext(ctx, s.logger).Info().
		Int64("grid_id", grid.ID).
		Msg("grid deleted")

	return grid, nil
}

// ListGridPackages returns the packages in the grid with id, by name.
func (s *GridService) ListGridPackages(ctx context.Context, id int64) ([]model.Package, error) {
	if _, err := s.GetGrid(ctx, id); err != nil {
		return nil, err
	}
	return s.grids.ListPackages(ctx, id)
}
