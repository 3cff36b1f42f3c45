package model

import (
	"strings"
	"time"
)

// Grid is a named collection packages are grouped into. Slug identifies it
// in URLs and is unique.
type Grid struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name" validate:"required,max=255"`
	Description string    `json:"description" db:"description" validate:"required,max=2000"`
	Slug        string    `json:"slug" db:"slug" validate:"required,max=255,slug"`
	InsertedAt  time.Time `json:"inserted_at" db:"inserted_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// GridAttrs are the caller-settable grid fields. A nil field is left unchanged.
type GridAttrs struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Slug        *string `json:"slug"`
}

// ChangeGrid applies attrs to grid and validates the result. When no slug is
// given and the grid has none yet, it is derived from the name.
func ChangeGrid(grid Grid, attrs GridAttrs) *Changeset[Grid] {
	cs := newChangeset(grid)

	if attrs.Name != nil {
		cs.Data.Name = strings.TrimSpace(*attrs.Name)
		cs.put("name", cs.Data.Name)
	}
	if attrs.Description != nil {
		cs.Data.Description = strings.TrimSpace(*attrs.Description)
		cs.put("description", cs.Data.Description)
	}

	switch {
	case attrs.Slug != nil && strings.TrimSpace(*attrs.Slug) != "":
		cs.Data.Slug = strings.ToLower(strings.TrimSpace(*attrs.Slug))
		cs.put("slug", cs.Data.Slug)
	case cs.Data.Slug == "" && cs.Data.Name != "":
		cs.Data.Slug = Slugify(cs.Data.Name)
		cs.put("slug", cs.Data.Slug)
	}

	cs.validate()
	return cs
}
