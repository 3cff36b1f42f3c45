package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/deppfellow/catalog/internal/model"
	"github.com/deppfellow/catalog/internal/repository"
	"github.com/jackc/pgx/v5/pgconn"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

const sortableTime = "2006-01-02T15:04:05.000000000"

// memPaginate mirrors the repository paginator over an in-memory slice.
func memPaginate[T any](rows []T, params model.ListParams, value func(T, string) string) model.Page[T] {
	params = params.Normalized()

	var matched []T
	for _, row := range rows {
		if params.Filter.Match(func(field string) string { return value(row, field) }) {
			matched = append(matched, row)
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		a, b := value(matched[i], params.SortField), value(matched[j], params.SortField)
		if a == b {
			a, b = value(matched[i], "id"), value(matched[j], "id")
		}
		if params.SortDirection == model.SortAsc {
			return a < b
		}
		return a > b
	})

	var entries []T
	if off := params.Offset(); off < len(matched) {
		end := min(off+params.PageSize, len(matched))
		entries = matched[off:end]
	}

	return model.NewPage(entries, len(matched), params)
}

func uniqueViolation(table, constraint string) error {
	return &pgconn.PgError{Code: "23505", Severity: "ERROR", TableName: table, ConstraintName: constraint}
}

func foreignKeyViolation(table, constraint string) error {
	return &pgconn.PgError{Code: "23503", Severity: "ERROR", TableName: table, ConstraintName: constraint}
}

type memGrids struct {
	mu       sync.Mutex
	nextID   int64
	rows     []model.Grid
	packages map[int64][]model.Package
	err      error
}

func gridValue(g model.Grid, field string) string {
	switch field {
	case "id":
		return fmt.Sprintf("%020d", g.ID)
	case "name":
		return g.Name
	case "description":
		return g.Description
	case "slug":
		return g.Slug
	case "inserted_at":
		return g.InsertedAt.Format(sortableTime)
	case "updated_at":
		return g.UpdatedAt.Format(sortableTime)
	}
	return ""
}

func (m *memGrids) List(context.Context) ([]model.Grid, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]model.Grid{}, m.rows...), m.err
}

func (m *memGrids) ListAlphabetically(ctx context.Context) ([]model.Grid, error) {
	rows, err := m.List(ctx)
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Name < rows[j].Name })
	return rows, err
}

func (m *memGrids) Paginate(_ context.Context, params model.ListParams) (model.Page[model.Grid], error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return model.Page[model.Grid]{}, m.err
	}
	return memPaginate(m.rows, params, gridValue), nil
}

func (m *memGrids) find(match func(model.Grid) bool) (model.Grid, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return model.Grid{}, m.err
	}
	for _, g := range m.rows {
		if match(g) {
			return g, nil
		}
	}
	return model.Grid{}, repository.ErrNotFound
}

func (m *memGrids) GetByID(_ context.Context, id int64) (model.Grid, error) {
	return m.find(func(g model.Grid) bool { return g.ID == id })
}

func (m *memGrids) GetBySlug(_ context.Context, slug string) (model.Grid, error) {
	return m.find(func(g model.Grid) bool { return g.Slug == slug })
}

func (m *memGrids) Create(_ context.Context, g model.Grid) (model.Grid, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return model.Grid{}, m.err
	}
	for _, existing := range m.rows {
		if existing.Slug == g.Slug {
			return model.Grid{}, uniqueViolation("grids", "grids_slug_key")
		}
	}
	m.nextID++
	g.ID = m.nextID
	g.InsertedAt = epoch.Add(time.Duration(g.ID) * time.Second)
	g.UpdatedAt = g.InsertedAt
	m.rows = append(m.rows, g)
	return g, nil
}

func (m *memGrids) Update(_ context.Context, g model.Grid) (model.Grid, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.rows {
		if existing.Slug == g.Slug && existing.ID != g.ID {
			return model.Grid{}, uniqueViolation("grids", "grids_slug_key")
		}
	}
	for i, existing := range m.rows {
		if existing.ID == g.ID {
			m.rows[i] = g
			return g, nil
		}
	}
	return model.Grid{}, repository.ErrNotFound
}

func (m *memGrids) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	for i, g := range m.rows {
		if g.ID == id {
			m.rows = append(m.rows[:i], m.rows[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (m *memGrids) ListPackages(_ context.Context, gridID int64) ([]model.Package, error) {
	return append([]model.Package{}, m.packages[gridID]...), nil
}

type memPackages struct {
	mu     sync.Mutex
	nextID int64
	rows   []model.Package
	grids  map[int64][]model.Grid
}

func packageValue(p model.Package, field string) string {
	switch field {
	case "id":
		return fmt.Sprintf("%020d", p.ID)
	case "name":
		return p.Name
	case "downloads":
		return fmt.Sprintf("%020d", p.Downloads)
	case "inserted_at":
		return p.InsertedAt.Format(sortableTime)
	case "updated_at":
		return p.UpdatedAt.Format(sortableTime)
	}
	return ""
}

func (m *memPackages) List(context.Context) ([]model.Package, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]model.Package{}, m.rows...), nil
}

func (m *memPackages) ListAlphabetically(ctx context.Context) ([]model.Package, error) {
	rows, _ := m.List(ctx)
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Name < rows[j].Name })
	return rows, nil
}

func (m *memPackages) Paginate(_ context.Context, params model.ListParams) (model.Page[model.Package], error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return memPaginate(m.rows, params, packageValue), nil
}

func (m *memPackages) find(match func(model.Package) bool) (model.Package, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.rows {
		if match(p) {
			return p, nil
		}
	}
	return model.Package{}, repository.ErrNotFound
}

func (m *memPackages) GetByID(_ context.Context, id int64) (model.Package, error) {
	return m.find(func(p model.Package) bool { return p.ID == id })
}

func (m *memPackages) GetByName(_ context.Context, name string) (model.Package, error) {
	return m.find(func(p model.Package) bool { return p.Name == name })
}

func (m *memPackages) Create(_ context.Context, p model.Package) (model.Package, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.rows {
		if existing.Name == p.Name {
			return model.Package{}, uniqueViolation("packages", "packages_name_key")
		}
	}
	m.nextID++
	p.ID = m.nextID
	p.InsertedAt = epoch.Add(time.Duration(p.ID) * time.Second)
	p.UpdatedAt = p.InsertedAt
	m.rows = append(m.rows, p)
	return p, nil
}

func (m *memPackages) Update(_ context.Context, p model.Package) (model.Package, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.rows {
		if existing.Name == p.Name && existing.ID != p.ID {
			return model.Package{}, uniqueViolation("packages", "packages_name_key")
		}
	}
	for i, existing := range m.rows {
		if existing.ID == p.ID {
			m.rows[i] = p
			return p, nil
		}
	}
	return model.Package{}, repository.ErrNotFound
}

func (m *memPackages) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, p := range m.rows {
		if p.ID == id {
			m.rows = append(m.rows[:i], m.rows[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (m *memPackages) ListGrids(_ context.Context, packageID int64) ([]model.Grid, error) {
	return append([]model.Grid{}, m.grids[packageID]...), nil
}

type memMemberships struct {
	mu       sync.Mutex
	nextID   int64
	rows     []model.PackageInGrid
	grids    map[int64]bool
	packages map[int64]bool
}

func (m *memMemberships) Create(_ context.Context, pig model.PackageInGrid) (model.PackageInGrid, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.grids[pig.GridID] {
		return model.PackageInGrid{}, foreignKeyViolation("package_in_grids", "package_in_grids_grid_id_fkey")
	}
	if !m.packages[pig.PackageID] {
		return model.PackageInGrid{}, foreignKeyViolation("package_in_grids", "package_in_grids_package_id_fkey")
	}
	for _, existing := range m.rows {
		if existing.PackageID == pig.PackageID && existing.GridID == pig.GridID {
			return model.PackageInGrid{}, uniqueViolation("package_in_grids", "package_in_grids_package_id_grid_id_key")
		}
	}
	m.nextID++
	pig.ID = m.nextID
	m.rows = append(m.rows, pig)
	return pig, nil
}

func (m *memMemberships) Delete(_ context.Context, packageID, gridID int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, existing := range m.rows {
		if existing.PackageID == packageID && existing.GridID == gridID {
			m.rows = append(m.rows[:i], m.rows[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

type recordingTrigger struct {
	mu       sync.Mutex
	packages []model.Package
}

func (r *recordingTrigger) TriggerPackageSync(_ context.Context, pkg model.Package) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.packages = append(r.packages, pkg)
}
