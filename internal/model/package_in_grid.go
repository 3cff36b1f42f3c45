package model

import "time"

// PackageInGrid records that a package belongs to a grid. The pair
// (PackageID, GridID) is unique; lookups and deletes use the pair, never ID.
type PackageInGrid struct {
	ID         int64     `json:"id" db:"id"`
	PackageID  int64     `json:"package_id" db:"package_id" validate:"required,gt=0"`
	GridID     int64     `json:"grid_id" db:"grid_id" validate:"required,gt=0"`
	InsertedAt time.Time `json:"inserted_at" db:"inserted_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}

// PackageInGridAttrs identifies a membership by its pair.
type PackageInGridAttrs struct {
	PackageID *int64 `json:"package_id"`
	GridID    *int64 `json:"grid_id"`
}

// ChangePackageInGrid applies attrs to m and validates the result.
func ChangePackageInGrid(m PackageInGrid, attrs PackageInGridAttrs) *Changeset[PackageInGrid] {
	cs := newChangeset(m)

	if attrs.PackageID != nil {
		cs.Data.PackageID = *attrs.PackageID
		cs.put("package_id", cs.Data.PackageID)
	}
	if attrs.GridID != nil {
		cs.Data.GridID = *attrs.GridID
		cs.put("grid_id", cs.Data.GridID)
	}

	cs.validate()
	return cs
}
