package service

import (
	"errors"
	"net/url"
	"testing"

	"github.com/deppfellow/catalog/internal/errs"
	"github.com/deppfellow/catalog/internal/filter"
	"github.com/deppfellow/catalog/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseListParams_Defaults(t *testing.T) {
	params, err := ParseListParams(url.Values{}, filter.GridConfig)
	require.NoError(t, err)

	assert.Equal(t, "inserted_at", params.SortField)
	assert.Equal(t, model.SortDesc, params.SortDirection)
	assert.Equal(t, 1, params.Page)
	assert.Equal(t, 15, params.PageSize)
	assert.True(t, params.Filter.IsEmpty())
}

func TestParseListParams(t *testing.T) {
	values := url.Values{
		"sort_field":           {"name"},
		"sort_direction":       {"ASC"},
		"page":                 {"3"},
		"grid[name_contains]":  {"web"},
		"package[name_equals]": {"ignored for grids"},
		"unrelated":            {"x"},
	}

	params, err := ParseListParams(values, filter.GridConfig)
	require.NoError(t, err)

	assert.Equal(t, "name", params.SortField)
	assert.Equal(t, model.SortAsc, params.SortDirection)
	assert.Equal(t, 3, params.Page)
	require.Len(t, params.Filter.Predicates, 1)
	assert.Equal(t, filter.Predicate{Field: "name", Column: "name", Comparator: filter.Contains, Value: "web"}, params.Filter.Predicates[0])
}

func TestParseListParams_PageClamp(t *testing.T) {
	for _, page := range []string{"0", "-4"} {
		params, err := ParseListParams(url.Values{"page": {page}}, filter.PackageConfig)
		require.NoError(t, err)
		assert.Equal(t, 1, params.Page, "page=%s", page)
	}

	params, err := ParseListParams(url.Values{"page": {"700000000000000000"}}, filter.GridConfig)
	require.NoError(t, err)
	assert.Equal(t, model.MaxPage, params.Page)
	assert.Positive(t, params.Offset())
}

func TestParseListParams_Errors(t *testing.T) {
	values := url.Values{
		"sort_field":          {"password"},
		"sort_direction":      {"up"},
		"page":                {"two"},
		"grid[slug_contains]": {"x"},
	}

	_, err := ParseListParams(values, filter.GridConfig)
	require.Error(t, err)

	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, 400, httpErr.Status)
	assert.Equal(t, errs.ValidationFailedCode, httpErr.Code)

	fields := make([]string, 0, len(httpErr.Errors))
	for _, fe := range httpErr.Errors {
		fields = append(fields, fe.Field)
	}
	assert.Equal(t, []string{"grid[slug_contains]", "page", "sort_direction", "sort_field"}, fields)
}
