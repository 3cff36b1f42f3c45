// Package service implements the catalog operations on grids, packages and
// package memberships.
//
// Services validate input through model changesets, persist through the
// repository interfaces declared here and translate repository outcomes into
// the errors the HTTP layer reports:
//   - invalid input or a constraint violation: *model.ChangesetError
//   - missing grid or package: 404 *errs.HTTPError
//   - anything else from storage: returned unchanged
package service

import (
	"context"
	"errors"

	"github.com/deppfellow/catalog/internal/errs"
	"github.com/deppfellow/catalog/internal/model"
	"github.com/deppfellow/catalog/internal/repository"
	"github.com/deppfellow/catalog/internal/sqlerr"
)

type GridStore interface {
	List(ctx context.Context) ([]model.Grid, error)
	ListAlphabetically(ctx context.Context) ([]model.Grid, error)
	Paginate(ctx context.Context, params model.ListParams) (model.Page[model.Grid], error)
	GetByID(ctx context.Context, id int64) (model.Grid, error)
	GetBySlug(ctx context.Context, slug string) (model.Grid, error)
	Create(ctx context.Context, g model.Grid) (model.Grid, error)
	Update(ctx context.Context, g model.Grid) (model.Grid, error)
	Delete(ctx context.Context, id int64) error
	ListPackages(ctx context.Context, gridID int64) ([]model.Package, error)
}

type PackageStore interface {
	List(ctx context.Context) ([]model.Package, error)
	ListAlphabetically(ctx context.Context) ([]model.Package, error)
	Paginate(ctx context.Context, params model.ListParams) (model.Page[model.Package], error)
	GetByID(ctx context.Context, id int64) (model.Package, error)
	GetByName(ctx context.Context, name string) (model.Package, error)
	Create(ctx context.Context, p model.Package) (model.Package, error)
	Update(ctx context.Context, p model.Package) (model.Package, error)
	Delete(ctx context.Context, id int64) error
	ListGrids(ctx context.Context, packageID int64) ([]model.Grid, error)
}

type PackageInGridStore interface {
	Create(ctx context.Context, m model.PackageInGrid) (model.PackageInGrid, error)
	Delete(ctx context.Context, packageID, gridID int64) (int64, error)
}

// SyncTrigger starts a package sync without waiting for it.
type SyncTrigger interface {
	TriggerPackageSync(ctx context.Context, pkg model.Package)
}

const (
	GridNotFoundCode    = "GRID_NOT_FOUND"
	PackageNotFoundCode = "PACKAGE_NOT_FOUND"
)

func gridNotFound() *errs.HTTPError {
	code := GridNotFoundCode
	return errs.NewNotFoundError("Grid not found", true, &code)
}

func packageNotFound() *errs.HTTPError {
	code := PackageNotFoundCode
	return errs.NewNotFoundError("Package not found", true, &code)
}

// mapNotFound replaces repository.ErrNotFound with notFound and leaves every
// other error alone.
func mapNotFound(err error, notFound func() *errs.HTTPError) error {
	if errors.Is(err, repository.ErrNotFound) {
		return notFound()
	}
	return err
}

// persistError attaches constraint violations from a failed write to cs and
// returns the changeset error. Other failures are returned unchanged.
func persistError[T any](cs *model.Changeset[T], err error) error {
	if fieldErrors, ok := sqlerr.ConstraintFieldErrors(err); ok {
		cs.AddErrors(fieldErrors)
		return cs.Err()
	}
	return err
}
