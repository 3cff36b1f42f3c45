// Package validation turns validator/v10 struct-tag failures into field-keyed
// errs.FieldError values.
//
// It is shared by request payloads (BindAndValidate) and by the model
// changesets, so an invalid grid looks the same whether the HTTP layer or the
// service layer caught it.
package validation

import (
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	once     sync.Once
	validate *validator.Validate

	slugPattern    = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
	hexNamePattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)
)

// Validator returns the process-wide validator. Field names in errors are
// taken from the json tag, so "PackageID" reports as "package_id".
//
// Custom tags:
//   - slug: lowercase alphanumeric words joined by single dashes
//   - hexname: hex.pm package name
func Validator() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})
		_ = validate.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
			return slugPattern.MatchString(fl.Field().String())
		})
		_ = validate.RegisterValidation("hexname", func(fl validator.FieldLevel) bool {
			return hexNamePattern.MatchString(fl.Field().String())
		})
	})
	return validate
}
