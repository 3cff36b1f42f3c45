package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/deppfellow/catalog/internal/errs"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// Validatable is implemented by request payloads that know how to validate themselves.
type Validatable interface {
	Validate() error
}

// CustomValidationError is a single validation issue that can't be expressed
// through validator tags.
type CustomValidationError struct {
	Field   string
	Message string
}

// CustomValidationErrors is a slice of custom validation errors that satisfies error.
type CustomValidationErrors []CustomValidationError

func (c CustomValidationErrors) Error() string {
	return "Validation failed"
}

// BindAndValidate binds request data into payload and validates it.
//
// Returns a 400 *errs.HTTPError with field errors when validation fails.
// payload must be a pointer.
func BindAndValidate(c echo.Context, payload Validatable) error {
	if err := c.Bind(payload); err != nil {
		message := "Invalid request payload"
		var echoErr *echo.HTTPError
		if errors.As(err, &echoErr) {
			if msg, ok := echoErr.Message.(string); ok {
				message = msg
			}
		}
		return errs.NewBadRequestError(message, false, nil, nil, nil)
	}

	if fieldErrors := validateStruct(payload); fieldErrors != nil {
		return errs.NewValidationError(fieldErrors)
	}

	return nil
}

func validateStruct(v Validatable) []errs.FieldError {
	if err := v.Validate(); err != nil {
		return FieldErrors(err)
	}
	return nil
}

// Struct validates s with the shared validator and returns its field errors,
// or nil when s is valid.
func Struct(s any) []errs.FieldError {
	if err := Validator().Struct(s); err != nil {
		return FieldErrors(err)
	}
	return nil
}

// FieldErrors converts validator.ValidationErrors or CustomValidationErrors
// into field errors. Any other error becomes a single "base" field error.
func FieldErrors(err error) []errs.FieldError {
	var fieldErrors []errs.FieldError

	var customValidationErrors CustomValidationErrors
	if errors.As(err, &customValidationErrors) {
		for _, err := range customValidationErrors {
			fieldErrors = append(fieldErrors, errs.FieldError{
				Field: err.Field,
				Error: err.Message,
			})
		}
		return fieldErrors
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []errs.FieldError{{Field: "base", Error: err.Error()}}
	}

	for _, err := range validationErrors {
		field := err.Field()
		var msg string

		switch err.Tag() {
		case "required":
			msg = "can't be blank"

		case "min":
			if err.Kind() == reflect.String {
				msg = fmt.Sprintf("must be at least %s characters", err.Param())
			} else {
				msg = fmt.Sprintf("must be at least %s", err.Param())
			}

		case "max":
			if err.Kind() == reflect.String {
				msg = fmt.Sprintf("must not exceed %s characters", err.Param())
			} else {
				msg = fmt.Sprintf("must not exceed %s", err.Param())
			}

		case "gt":
			msg = fmt.Sprintf("must be greater than %s", err.Param())

		case "oneof":
			msg = fmt.Sprintf("must be one of: %s", err.Param())

		case "slug":
			msg = "must contain only lowercase letters, digits and dashes"

		case "hexname":
			msg = "must start with a letter and contain only lowercase letters, digits and underscores"

		case "url", "http_url":
			msg = "must be a valid URL"

		default:
			if err.Param() != "" {
				msg = fmt.Sprintf("%s: %s:%s", field, err.Tag(), err.Param())
			} else {
				msg = fmt.Sprintf("%s: %s", field, err.Tag())
			}
		}

		fieldErrors = append(fieldErrors, errs.FieldError{
			Field: strings.ToLower(field),
			Error: msg,
		})
	}

	return fieldErrors
}
