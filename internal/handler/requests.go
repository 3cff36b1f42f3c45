package handler

import (
	"github.com/deppfellow/catalog/internal/model"
	"github.com/deppfellow/catalog/internal/validation"
)

// Request bodies carry the model attrs as they are: the changesets own field
// validation, so Validate only checks what identifies the target record.

type ListRequest struct{}

func (r *ListRequest) Validate() error { return nil }

type ListAllRequest struct {
	Order string `query:"order" json:"order" validate:"omitempty,oneof=name inserted_at"`
}

func (r *ListAllRequest) Validate() error {
	return validation.Validator().Struct(r)
}

func (r *ListAllRequest) Alphabetical() bool {
	return r.Order == "name"
}

type IDRequest struct {
	ID int64 `param:"id" json:"-" validate:"required,gt=0"`
}

func (r *IDRequest) Validate() error {
	return validation.Validator().Struct(r)
}

type SlugRequest struct {
	Slug string `param:"slug" json:"-" validate:"required,max=255"`
}

func (r *SlugRequest) Validate() error {
	return validation.Validator().Struct(r)
}

type NameRequest struct {
	Name string `param:"name" json:"-" validate:"required,max=100"`
}

func (r *NameRequest) Validate() error {
	return validation.Validator().Struct(r)
}

type CreateGridRequest struct {
	model.GridAttrs
}

func (r *CreateGridRequest) Validate() error { return nil }

type UpdateGridRequest struct {
	ID int64 `param:"id" json:"-" validate:"required,gt=0"`
	model.GridAttrs
}

func (r *UpdateGridRequest) Validate() error {
	return validation.Validator().Struct(r)
}

// PreviewGridRequest previews a change to the grid with ID, or to a new grid
// when ID is absent.
type PreviewGridRequest struct {
	ID *int64 `json:"id" validate:"omitempty,gt=0"`
	model.GridAttrs
}

func (r *PreviewGridRequest) Validate() error {
	return validation.Validator().Struct(r)
}

type CreatePackageRequest struct {
	model.PackageAttrs
}

func (r *CreatePackageRequest) Validate() error { return nil }

type UpdatePackageRequest struct {
	ID int64 `param:"id" json:"-" validate:"required,gt=0"`
	model.PackageAttrs
}

func (r *UpdatePackageRequest) Validate() error {
	return validation.Validator().Struct(r)
}

type PreviewPackageRequest struct {
	ID *int64 `json:"id" validate:"omitempty,gt=0"`
	model.PackageAttrs
}

func (r *PreviewPackageRequest) Validate() error {
	return validation.Validator().Struct(r)
}

type PackageInGridRequest struct {
	model.PackageInGridAttrs
}

func (r *PackageInGridRequest) Validate() error { return nil }
