package service

import (
	"context"
	"errors"
	"testing"

	"github.com/deppfellow/catalog/internal/filter"
	"github.com/deppfellow/catalog/internal/model"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPackageService() (*PackageService, *memPackages, *recordingTrigger) {
	store := &memPackages{}
	trigger := &recordingTrigger{}
	logger := zerolog.Nop()
	return NewPackageService(store, trigger, &logger), store, trigger
}

func TestCreatePackage_TriggersSync(t *testing.T) {
	s, _, trigger := newPackageService()
	ctx := context.Background()

	pkg, err := s.CreatePackage(ctx, model.PackageAttrs{Name: ptr("phoenix")})
	require.NoError(t, err)
	assert.Equal(t, "phoenix", pkg.Name)

	// The stored package has not been enriched yet.
	got, err := s.GetPackageByName(ctx, "phoenix")
	require.NoError(t, err)
	assert.False(t, got.Synced())
	assert.Nil(t, got.LatestVersion)

	require.Len(t, trigger.packages, 1)
	assert.Equal(t, pkg, trigger.packages[0])
}

func TestCreatePackage_InvalidDoesNotSync(t *testing.T) {
	s, store, trigger := newPackageService()

	_, err := s.CreatePackage(context.Background(), model.PackageAttrs{Name: ptr("Not A Hex Name")})

	var csErr *model.ChangesetError[model.Package]
	require.True(t, errors.As(err, &csErr))
	assert.True(t, csErr.Changeset.HasError("name"))
	assert.Empty(t, store.rows)
	assert.Empty(t, trigger.packages)
}

func TestCreatePackage_DuplicateName(t *testing.T) {
	s, store, trigger := newPackageService()
	ctx := context.Background()

	_, err := s.CreatePackage(ctx, model.PackageAttrs{Name: ptr("ecto")})
	require.NoError(t, err)

	_, err = s.CreatePackage(ctx, model.PackageAttrs{Name: ptr("ecto")})
	var csErr *model.ChangesetError[model.Package]
	require.True(t, errors.As(err, &csErr))
	assert.True(t, csErr.Changeset.HasError("name"))

	assert.Len(t, store.rows, 1)
	assert.Len(t, trigger.packages, 1)
}

func TestUpdatePackage(t *testing.T) {
	s, _, trigger := newPackageService()
	ctx := context.Background()

	pkg, err := s.CreatePackage(ctx, model.PackageAttrs{Name: ptr("plug")})
	require.NoError(t, err)

	updated, err := s.UpdatePackage(ctx, pkg, model.PackageAttrs{Name: ptr("plug_cowboy")})
	require.NoError(t, err)
	assert.Equal(t, "plug_cowboy", updated.Name)
	assert.Len(t, trigger.packages, 1)
}

func TestDeletePackage_Twice(t *testing.T) {
	s, _, _ := newPackageService()
	ctx := context.Background()

	pkg, err := s.CreatePackage(ctx, model.PackageAttrs{Name: ptr("jason")})
	require.NoError(t, err)

	_, err = s.DeletePackage(ctx, pkg)
	require.NoError(t, err)

	_, err = s.DeletePackage(ctx, pkg)
	httpErr := requireStatus(t, err, 404)
	assert.Equal(t, PackageNotFoundCode, httpErr.Code)

	_, err = s.GetPackage(ctx, pkg.ID)
	requireStatus(t, err, 404)
}

func TestPaginatePackages_Filter(t *testing.T) {
	s, _, _ := newPackageService()
	ctx := context.Background()

	for _, name := range []string{"ex_doc", "ecto", "ecto_sql", "phoenix", "phoenix_ecto", "plug"} {
		_, err := s.CreatePackage(ctx, model.PackageAttrs{Name: ptr(name)})
		require.NoError(t, err)
	}

	f, err := filter.Parse(map[string]string{"name_contains": "ecto", "name_does_not_equal": "ecto"}, filter.PackageConfig)
	require.NoError(t, err)

	page, err := s.PaginatePackages(ctx, model.ListParams{SortField: "name", SortDirection: model.SortAsc, Filter: f})
	require.NoError(t, err)

	names := make([]string, 0, len(page.Entries))
	for _, p := range page.Entries {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"ecto_sql", "phoenix_ecto"}, names)
	assert.Equal(t, 2, page.TotalEntries)
}

func TestListPackageGrids(t *testing.T) {
	s, store, _ := newPackageService()
	ctx := context.Background()

	pkg, err := s.CreatePackage(ctx, model.PackageAttrs{Name: ptr("phoenix")})
	require.NoError(t, err)
	store.grids = map[int64][]model.Grid{pkg.ID: {{ID: 3, Name: "Web", Slug: "web"}}}

	grids, err := s.ListPackageGrids(ctx, pkg.ID)
	require.NoError(t, err)
	assert.Len(t, grids, 1)

	_, err = s.ListPackageGrids(ctx, 999)
	requireStatus(t, err, 404)
}
