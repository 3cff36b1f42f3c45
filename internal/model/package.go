package model

import (
	"strings"
	"time"
)

// Package is a hex package tracked by the catalog. Only Name is set by
// callers; the remaining metadata is filled in by the package sync job and
// stays empty until it has run.
type Package struct {
	ID            int64      `json:"id" db:"id"`
	Name          string     `json:"name" db:"name" validate:"required,max=100,hexname"`
	Description   *string    `json:"description" db:"description"`
	LatestVersion *string    `json:"latest_version" db:"latest_version"`
	HTMLURL       *string    `json:"html_url" db:"html_url"`
	DocsURL       *string    `json:"docs_url" db:"docs_url"`
	SourceURL     *string    `json:"source_url" db:"source_url"`
	Downloads     int64      `json:"downloads" db:"downloads"`
	SyncedAt      *time.Time `json:"synced_at" db:"synced_at"`
	InsertedAt    time.Time  `json:"inserted_at" db:"inserted_at"`
	UpdatedAt     time.Time  `json:"updated_at" db:"updated_at"`
}

// Synced reports whether the sync job has populated the package yet.
func (p Package) Synced() bool {
	return p.SyncedAt != nil
}

// PackageAttrs are the caller-settable package fields.
type PackageAttrs struct {
	Name *string `json:"name"`
}

// PackageSyncFields is what a sync run writes back onto a package.
type PackageSyncFields struct {
	Description   *string
	LatestVersion *string
	HTMLURL       *string
	DocsURL       *string
	SourceURL     *string
	Downloads     int64
	SyncedAt      time.Time
}

// ChangePackage applies attrs to pkg and validates the result.
func ChangePackage(pkg Package, attrs PackageAttrs) *Changeset[Package] {
	cs := newChangeset(pkg)

	if attrs.Name != nil {
		cs.Data.Name = strings.TrimSpace(*attrs.Name)
		cs.put("name", cs.Data.Name)
	}

	cs.validate()
	return cs
}
