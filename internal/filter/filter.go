// Package filter implements the allow-listed text filters used by the grid
// and package listings.
//
// A Config declares, per entity, which fields can be filtered and sorted on.
// Raw filter params arrive as "<field>_<comparator>" keys (e.g.
// "name_contains") and are parsed into a Filter, which can be rendered as a
// parameterized SQL condition or evaluated in memory. Keys outside the
// allow-list are rejected, never ignored.
package filter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/deppfellow/catalog/internal/errs"
)

// Kind is the comparison family a field supports.
type Kind int

const (
	// KindText fields support equals / does_not_equal / contains / does_not_contain.
	KindText Kind = iota
)

// Comparator is one text comparison.
type Comparator string

const (
	Equals         Comparator = "equals"
	DoesNotEqual   Comparator = "does_not_equal"
	Contains       Comparator = "contains"
	DoesNotContain Comparator = "does_not_contain"
)

var textComparators = []Comparator{Equals, DoesNotEqual, Contains, DoesNotContain}

// Field is one filterable field and the column it maps to.
type Field struct {
	Name   string
	Column string
	Kind   Kind
}

// Config is the filter and sort allow-list for one entity.
type Config struct {
	// Entity is the key the filter params are nested under ("grid", "package").
	Entity   string
	Fields   []Field
	Sortable []string
}

// GridConfig allows text filters on name and description.
var GridConfig = Config{
	Entity: "grid",
	Fields: []Field{
		{Name: "name", Column: "name", Kind: KindText},
		{Name: "description", Column: "description", Kind: KindText},
	},
	Sortable: []string{"id", "name", "description", "slug", "inserted_at", "updated_at"},
}

// PackageConfig allows text filters on name.
var PackageConfig = Config{
	Entity: "package",
	Fields: []Field{
		{Name: "name", Column: "name", Kind: KindText},
	},
	Sortable: []string{"id", "name", "downloads", "synced_at", "inserted_at", "updated_at"},
}

func (c Config) field(name string) (Field, bool) {
	for _, f := range c.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// CanSort reports whether field is in the sort allow-list.
func (c Config) CanSort(field string) bool {
	for _, s := range c.Sortable {
		if s == field {
			return true
		}
	}
	return false
}

// Predicate is a single field comparison.
type Predicate struct {
	Field      string
	Column     string
	Comparator Comparator
	Value      string
}

// Filter is a conjunction of predicates. The zero Filter matches everything.
type Filter struct {
	Predicates []Predicate
}

// IsEmpty reports whether the filter has no predicates.
func (f Filter) IsEmpty() bool {
	return len(f.Predicates) == 0
}

// Parse validates raw filter params against cfg.
//
// Keys are processed in sorted order so the result is deterministic. Keys with
// an empty value are dropped. Every unknown key is reported as a field error
// named "<entity>[<key>]" in the returned 400 *errs.HTTPError.
func Parse(raw map[string]string, cfg Config) (Filter, error) {
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var (
		result      Filter
		fieldErrors []errs.FieldError
	)

	for _, key := range keys {
		field, comparator, ok := splitKey(key, cfg)
		if !ok {
			fieldErrors = append(fieldErrors, errs.FieldError{
				Field: fmt.Sprintf("%s[%s]", cfg.Entity, key),
				Error: "is not a known filter",
			})
			continue
		}

		value := strings.TrimSpace(raw[key])
		if value == "" {
			continue
		}

		result.Predicates = append(result.Predicates, Predicate{
			Field:      field.Name,
			Column:     field.Column,
			Comparator: comparator,
			Value:      value,
		})
	}

	if len(fieldErrors) > 0 {
		return Filter{}, errs.NewValidationError(fieldErrors)
	}

	return result, nil
}

func splitKey(key string, cfg Config) (Field, Comparator, bool) {
	for _, comparator := range textComparators {
		suffix := "_" + string(comparator)
		if !strings.HasSuffix(key, suffix) {
			continue
		}
		field, ok := cfg.field(strings.TrimSuffix(key, suffix))
		if ok && field.Kind == KindText {
			return field, comparator, true
		}
	}
	return Field{}, "", false
}
