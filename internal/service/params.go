package service

import (
	"errors"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/deppfellow/catalog/internal/errs"
	"github.com/deppfellow/catalog/internal/filter"
	"github.com/deppfellow/catalog/internal/model"
)

// Listing query parameter names. Filters are nested under the entity name,
// e.g. grid[name_contains]=web.
const (
	ParamSortField     = "sort_field"
	ParamSortDirection = "sort_direction"
	ParamPage          = "page"
)

// ParseListParams converts raw query parameters into ListParams for the
// entity described by cfg. Every problem is reported as a field error in a
// single 400 error. Page numbers below 1 are clamped to 1, and the page size
// is always model.DefaultPageSize.
func ParseListParams(values url.Values, cfg filter.Config) (model.ListParams, error) {
	params := model.DefaultListParams()

	var fieldErrors []errs.FieldError

	if v := strings.TrimSpace(values.Get(ParamSortField)); v != "" {
		if cfg.CanSort(v) {
			params.SortField = v
		} else {
			fieldErrors = append(fieldErrors, errs.FieldError{Field: ParamSortField, Error: "is not a sortable field"})
		}
	}

	if v := strings.TrimSpace(values.Get(ParamSortDirection)); v != "" {
		dir := model.SortDirection(strings.ToLower(v))
		if dir.Valid() {
			params.SortDirection = dir
		} else {
			fieldErrors = append(fieldErrors, errs.FieldError{Field: ParamSortDirection, Error: "must be asc or desc"})
		}
	}

	if v := strings.TrimSpace(values.Get(ParamPage)); v != "" {
		page, err := strconv.Atoi(v)
		if err != nil {
			fieldErrors = append(fieldErrors, errs.FieldError{Field: ParamPage, Error: "must be a number"})
		} else {
			params.Page = page
		}
	}

	f, err := filter.Parse(filterValues(values, cfg.Entity), cfg)
	if err != nil {
		var httpErr *errs.HTTPError
		if !errors.As(err, &httpErr) {
			return model.ListParams{}, err
		}
		fieldErrors = append(fieldErrors, httpErr.Errors...)
	}
	params.Filter = f

	if len(fieldErrors) > 0 {
		sort.SliceStable(fieldErrors, func(i, j int) bool { return fieldErrors[i].Field < fieldErrors[j].Field })
		return model.ListParams{}, errs.NewValidationError(fieldErrors)
	}

	return params.Normalized(), nil
}

// filterValues collects the "<entity>[<key>]" parameters into a map keyed by
// <key>. When a key repeats, the last value wins.
func filterValues(values url.Values, entity string) map[string]string {
	prefix := entity + "["

	raw := make(map[string]string)
	for key, vs := range values {
		if !strings.HasPrefix(key, prefix) || !strings.HasSuffix(key, "]") || len(vs) == 0 {
			continue
		}
		raw[key[len(prefix):len(key)-1]] = vs[len(vs)-1]
	}
	return raw
}
