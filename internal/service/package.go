package service

import (
	"context"

	"github.com/deppfellow/catalog/internal/logger"
	"github.com/deppfellow/catalog/internal/model"
	"github.com/rs/zerolog"
)

type PackageService struct {
	packages PackageStore
	sync     SyncTrigger
	logger   *zerolog.Logger
}

func NewPackageService(packages PackageStore, sync SyncTrigger, logger *zerolog.Logger) *PackageService {
	return &PackageService{packages: packages, sync: sync, logger: logger}
}

func (s *PackageService) PaginatePackages(ctx context.Context, params model.ListParams) (model.Page[model.Package], error) {
	return s.packages.Paginate(ctx, params.Normalized())
}

func (s *PackageService) ListPackages(ctx context.Context) ([]model.Package, error) {
	return s.packages.List(ctx)
}

func (s *PackageService) ListPackagesAlphabetically(ctx context.Context) ([]model.Package, error) {
	return s.packages.ListAlphabetically(ctx)
}

func (s *PackageService) GetPackage(ctx context.Context, id int64) (model.Package, error) {
	pkg, err := s.packages.GetByID(ctx, id)
	return pkg, mapNotFound(err, packageNotFound)
}

func (s *PackageService) GetPackageByName(ctx context.Context, name string) (model.Package, error) {
	pkg, err := s.packages.GetByName(ctx, name)
	return pkg, mapNotFound(err, packageNotFound)
}

// ChangePackage previews attrs applied to pkg without saving anything.
func (s *PackageService) ChangePackage(pkg model.Package, attrs model.PackageAttrs) *model.Changeset[model.Package] {
	return model.ChangePackage(pkg, attrs)
}

// CreatePackage saves a new package and triggers its sync. It returns as soon
// as the row is stored; the sync outcome is never reported here.
func (s *PackageService) CreatePackage(ctx context.Context, attrs model.PackageAttrs) (model.Package, error) {
	cs := model.ChangePackage(model.Package{}, attrs).WithAction(model.ActionInsert)
	if err := cs.Err(); err != nil {
		return model.Package{}, err
	}

	pkg, err := s.packages.Create(ctx, cs.Data)
	if err != nil {
		return model.Package{}, persistError(cs, err)
	}

	logger.FromContext(ctx, s.logger).Info().
		Int64("package_id", pkg.ID).
		Str("package", pkg.Name).
		Msg("package created")

	s.sync.TriggerPackageSync(ctx, pkg)

	return pkg, nil
}

func (s *PackageService) UpdatePackage(ctx context.Context, pkg model.Package, attrs model.PackageAttrs) (model.Package, error) {
	cs := model.ChangePackage(pkg, attrs).WithAction(model.ActionUpdate)
	if err := cs.Err(); err != nil {
		return model.Package{}, err
	}

	updated, err := s.packages.Update(ctx, cs.Data)
	if err != nil {
		return model.Package{}, mapNotFound(persistError(cs, err), packageNotFound)
	}
	return updated, nil
}

// DeletePackage issues one delete for pkg. Deleting a package that is already
// gone returns a not found error.
func (s *PackageService) DeletePackage(ctx context.Context, pkg model.Package) (model.Package, error) {
	if err := s.packages.Delete(ctx, pkg.ID); err != nil {
		return model.Package{}, mapNotFound(err, packageNotFound)
	}

	logger.FromContext(ctx, s.logger).Info().
		Int64("package_id", pkg.ID).
		Msg("package deleted")

	return pkg, nil
}

// ListPackageGrids returns the grids containing the package with id.
func (s *PackageService) ListPackageGrids(ctx context.Context, id int64) ([]model.Grid, error) {
	if _, err := s.GetPackage(ctx, id); err != nil {
		return nil, err
	}
	return s.packages.ListGrids(ctx, id)
}
