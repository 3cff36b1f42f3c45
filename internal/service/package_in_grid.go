package service

import (
	"context"

	"github.com/deppfellow/catalog/internal/logger"
	"github.com/deppfellow/catalog/internal/model"
	"github.com/rs/zerolog"
)

type PackageInGridService struct {
	memberships PackageInGridStore
	logger      *zerolog.Logger
}

func NewPackageInGridService(memberships PackageInGridStore, logger *zerolog.Logger) *PackageInGridService {
	return &PackageInGridService{memberships: memberships, logger: logger}
}

// ChangePackageInGrid previews a membership without saving it.
func (s *PackageInGridService) ChangePackageInGrid(m model.PackageInGrid, attrs model.PackageInGridAttrs) *model.Changeset[model.PackageInGrid] {
	return model.ChangePackageInGrid(m, attrs)
}

// CreatePackageInGrid adds a package to a grid. An existing membership or an
// unknown grid or package is a validation error.
func (s *PackageInGridService) CreatePackageInGrid(ctx context.Context, attrs model.PackageInGridAttrs) (model.PackageInGrid, error) {
	cs := model.ChangePackageInGrid(model.PackageInGrid{}, attrs).WithAction(model.ActionInsert)
	if err := cs.Err(); err != nil {
		return model.PackageInGrid{}, err
	}

	m, err := s.memberships.Create(ctx, cs.Data)
	if err != nil {
		return model.PackageInGrid{}, persistError(cs, err)
	}
	return m, nil
}

// DeletePackageInGrid removes the membership identified by the pair in attrs
// and echoes attrs back. When no row matched, it returns a
// *model.ChangesetError describing the delete that did not happen.
func (s *PackageInGridService) DeletePackageInGrid(ctx context.Context, attrs model.PackageInGridAttrs) (model.PackageInGridAttrs, error) {
	cs := model.ChangePackageInGrid(model.PackageInGrid{}, attrs).WithAction(model.ActionDelete)
	if err := cs.Err(); err != nil {
		return attrs, err
	}

	deleted, err := s.memberships.Delete(ctx, cs.Data.PackageID, cs.Data.GridID)
	if err != nil {
		return attrs, err
	}

	if deleted == 0 {
		logger.FromContext(ctx, s.logger).Warn().
			Int64("package_id", cs.Data.PackageID).
			Int64("grid_id", cs.Data.GridID).
			Msg("package in grid not deleted, no matching row")

		cs.AddError("package_id", "is not in this grid")
		return attrs, cs.Err()
	}

	return attrs, nil
}
