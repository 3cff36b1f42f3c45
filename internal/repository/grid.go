package repository

import (
	"context"

	"github.com/deppfellow/catalog/internal/filter"
	"github.com/deppfellow/catalog/internal/model"
)

const (
	gridTable   = "grids"
	gridColumns = "id, name, description, slug, inserted_at, updated_at"
)

type GridRepository struct {
	db DBTX
}

func NewGridRepository(db DBTX) *GridRepository {
	return &GridRepository{db: db}
}

// List returns every grid, oldest first.
func (r *GridRepository) List(ctx context.Context) ([]model.Grid, error) {
	return collectAll[model.Grid](r.db.Query(ctx,
		`SELECT `+gridColumns+` FROM grids ORDER BY inserted_at ASC, id ASC`))
}

// ListAlphabetically returns every grid ordered by name.
func (r *GridRepository) ListAlphabetically(ctx context.Context) ([]model.Grid, error) {
	return collectAll[model.Grid](r.db.Query(ctx,
		`SELECT `+gridColumns+` FROM grids ORDER BY name ASC, id ASC`))
}

func (r *GridRepository) Paginate(ctx context.Context, params model.ListParams) (model.Page[model.Grid], error) {
	return paginate[model.Grid](ctx, r.db, gridTable, gridColumns, filter.GridConfig, params)
}

func (r *GridRepository) GetByID(ctx context.Context, id int64) (model.Grid, error) {
	return collectOne[model.Grid](r.db.Query(ctx,
		`SELECT `+gridColumns+` FROM grids WHERE id = $1`, id))
}

func (r *GridRepository) GetBySlug(ctx context.Context, slug string) (model.Grid, error) {
	return collectOne[model.Grid](r.db.Query(ctx,
		`SELECT `+gridColumns+` FROM grids WHERE slug = $1`, slug))
}

func (r *GridRepository) Create(ctx context.Context, g model.Grid) (model.Grid, error) {
	return collectOne[model.Grid](r.db.Query(ctx,
		`INSERT INTO grids (name, description, slug)
		VALUES ($1, $2, $3)
		RETURNING `+gridColumns,
		g.Name, g.Description, g.Slug))
}

func (r *GridRepository) Update(ctx context.Context, g model.Grid) (model.Grid, error) {
	return collectOne[model.Grid](r.db.Query(ctx,
		`UPDATE grids
		SET name = $2, description = $3, slug = $4, updated_at = now()
		WHERE id = $1
		RETURNING `+gridColumns,
		g.ID, g.Name, g.Description, g.Slug))
}

// Delete removes the grid with id. Memberships go with it through the
// foreign key cascade.
func (r *GridRepository) Delete(ctx context.Context, id int64) error {
	return execOne(ctx, r.db, `DELETE FROM grids WHERE id = $1`, id)
}

// ListPackages returns the packages in the grid, ordered by name.
func (r *GridRepository) ListPackages(ctx context.Context, gridID int64) ([]model.Package, error) {
	return collectAll[model.Package](r.db.Query(ctx,
		`SELECT `+qualifiedPackageColumns+`
		FROM packages p
		JOIN package_in_grids pig ON pig.package_id = p.id
		WHERE pig.grid_id = $1
		ORDER BY p.name ASC, p.id ASC`, gridID))
}
