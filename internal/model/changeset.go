package model

import (
	"fmt"
	"strings"

	"github.com/deppfellow/catalog/internal/errs"
	"github.com/deppfellow/catalog/internal/validation"
)

// Action records what a changeset was used for.
type Action string

const (
	ActionNone   Action = ""
	ActionInsert Action = "insert"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Changeset describes a change to a record of type T: the record with the
// change applied, the fields that changed, and every constraint violation
// found. A changeset with no Action was built for preview only.
type Changeset[T any] struct {
	Data    T                 `json:"data"`
	Changes map[string]any    `json:"changes"`
	Errors  []errs.FieldError `json:"errors"`
	Action  Action            `json:"action,omitempty"`
}

func newChangeset[T any](data T) *Changeset[T] {
	return &Changeset[T]{
		Data:    data,
		Changes: make(map[string]any),
		Errors:  []errs.FieldError{},
	}
}

// Valid reports whether the changeset has no errors.
func (c *Changeset[T]) Valid() bool {
	return len(c.Errors) == 0
}

// AddError appends a field error.
func (c *Changeset[T]) AddError(field, message string) {
	c.Errors = append(c.Errors, errs.FieldError{Field: field, Error: message})
}

// AddErrors appends field errors.
func (c *Changeset[T]) AddErrors(fieldErrors []errs.FieldError) {
	c.Errors = append(c.Errors, fieldErrors...)
}

// HasError reports whether field has at least one error.
func (c *Changeset[T]) HasError(field string) bool {
	for _, fe := range c.Errors {
		if fe.Field == field {
			return true
		}
	}
	return false
}

// WithAction returns the changeset with Action set.
func (c *Changeset[T]) WithAction(action Action) *Changeset[T] {
	c.Action = action
	return c
}

// Err returns nil for a valid changeset, otherwise a *ChangesetError.
func (c *Changeset[T]) Err() error {
	if c.Valid() {
		return nil
	}
	return &ChangesetError[T]{Changeset: c}
}

func (c *Changeset[T]) put(field string, value any) {
	c.Changes[field] = value
}

func (c *Changeset[T]) validate() {
	c.AddErrors(validation.Struct(c.Data))
}

// ChangesetError is returned when a create, update or delete is rejected.
// It keeps the changeset so callers can re-render the form that produced it,
// and unwraps to the 400 errs.HTTPError the HTTP layer reports.
type ChangesetError[T any] struct {
	Changeset *Changeset[T]
}

func (e *ChangesetError[T]) Error() string {
	parts := make([]string, 0, len(e.Changeset.Errors))
	for _, fe := range e.Changeset.Errors {
		parts = append(parts, fmt.Sprintf("%s %s", fe.Field, fe.Error))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ChangesetError[T]) Unwrap() error {
	return errs.NewValidationError(e.Changeset.Errors)
}
