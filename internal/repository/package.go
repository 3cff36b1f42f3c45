package repository

import (
	"context"

	"github.com/deppfellow/catalog/internal/filter"
	"github.com/deppfellow/catalog/internal/model"
)

const (
	packageTable   = "packages"
	packageColumns = "id, name, description, latest_version, html_url, docs_url, source_url, downloads, synced_at, inserted_at, updated_at"

	qualifiedPackageColumns = "p.id, p.name, p.description, p.latest_version, p.html_url, p.docs_url, p.source_url, p.downloads, p.synced_at, p.inserted_at, p.updated_at"
	qualifiedGridColumns    = "g.id, g.name, g.description, g.slug, g.inserted_at, g.updated_at"
)

type PackageRepository struct {
	db DBTX
}

func NewPackageRepository(db DBTX) *PackageRepository {
	return &PackageRepository{db: db}
}

// List returns every package, oldest first.
func (r *PackageRepository) List(ctx context.Context) ([]model.Package, error) {
	return collectAll[model.Package](r.db.Query(ctx,
		`SELECT `+packageColumns+` FROM packages ORDER BY inserted_at ASC, id ASC`))
}

func (r *PackageRepository) ListAlphabetically(ctx context.Context) ([]model.Package, error) {
	return collectAll[model.Package](r.db.Query(ctx,
		`SELECT `+packageColumns+` FROM packages ORDER BY name ASC, id ASC`))
}

func (r *PackageRepository) Paginate(ctx context.Context, params model.ListParams) (model.Page[model.Package], error) {
	return paginate[model.Package](ctx, r.db, packageTable, packageColumns, filter.PackageConfig, params)
}

func (r *PackageRepository) GetByID(ctx context.Context, id int64) (model.Package, error) {
	return collectOne[model.Package](r.db.Query(ctx,
		`SELECT `+packageColumns+` FROM packages WHERE id = $1`, id))
}

func (r *PackageRepository) GetByName(ctx context.Context, name string) (model.Package, error) {
	return collectOne[model.Package](r.db.Query(ctx,
		`SELECT `+packageColumns+` FROM packages WHERE name = $1`, name))
}

func (r *PackageRepository) Create(ctx context.Context, p model.Package) (model.Package, error) {
	return collectOne[model.Package](r.db.Query(ctx,
		`INSERT INTO packages (name)
		VALUES ($1)
		RETURNING `+packageColumns,
		p.Name))
}

// Update writes the caller-settable fields. Synced metadata is untouched.
func (r *PackageRepository) Update(ctx context.Context, p model.Package) (model.Package, error) {
	return collectOne[model.Package](r.db.Query(ctx,
		`UPDATE packages
		SET name = $2, updated_at = now()
		WHERE id = $1
		RETURNING `+packageColumns,
		p.ID, p.Name))
}

// UpdateSyncedFields stores the metadata fetched by a sync run.
func (r *PackageRepository) UpdateSyncedFields(ctx context.Context, id int64, f model.PackageSyncFields) (model.Package, error) {
	return collectOne[model.Package](r.db.Query(ctx,
		`UPDATE packages
		SET description = $2,
			latest_version = $3,
			html_url = $4,
			docs_url = $5,
			source_url = $6,
			downloads = $7,
			synced_at = $8,
			updated_at = now()
		WHERE id = $1
		RETURNING `+packageColumns,
		id, f.Description, f.LatestVersion, f.HTMLURL, f.DocsURL, f.SourceURL, f.Downloads, f.SyncedAt))
}

func (r *PackageRepository) Delete(ctx context.Context, id int64) error {
	return execOne(ctx, r.db, `DELETE FROM packages WHERE id = $1`, id)
}

// ListGrids returns the grids containing the package, ordered by name.
func (r *PackageRepository) ListGrids(ctx context.Context, packageID int64) ([]model.Grid, error) {
	return collectAll[model.Grid](r.db.Query(ctx,
		`SELECT `+qualifiedGridColumns+`
		FROM grids g
		JOIN package_in_grids pig ON pig.grid_id = g.id
		WHERE pig.package_id = $1
		ORDER BY g.name ASC, g.id ASC`, packageID))
}
