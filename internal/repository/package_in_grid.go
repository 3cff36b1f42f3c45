package repository

import (
	"context"

	"github.com/deppfellow/catalog/internal/model"
)

const packageInGridColumns = "id, package_id, grid_id, inserted_at, updated_at"

type PackageInGridRepository struct {
	db DBTX
}

func NewPackageInGridRepository(db DBTX) *PackageInGridRepository {
	return &PackageInGridRepository{db: db}
}

// Create inserts a membership. A duplicate pair or a missing grid or package
// fails with the driver's constraint error.
func (r *PackageInGridRepository) Create(ctx context.Context, m model.PackageInGrid) (model.PackageInGrid, error) {
	return collectOne[model.PackageInGrid](r.db.Query(ctx,
		`INSERT INTO package_in_grids (package_id, grid_id)
		VALUES ($1, $2)
		RETURNING `+packageInGridColumns,
		m.PackageID, m.GridID))
}

// Delete removes the membership for the pair and reports how many rows went.
func (r *PackageInGridRepository) Delete(ctx context.Context, packageID, gridID int64) (int64, error) {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM package_in_grids WHERE package_id = $1 AND grid_id = $2`,
		packageID, gridID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
