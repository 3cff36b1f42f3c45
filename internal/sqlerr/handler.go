package sqlerr

import (
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/deppfellow/catalog/internal/errs"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// compositeConstraintFields names the field a multi-column constraint is
// reported on, since the column can't be recovered from the constraint name.
var compositeConstraintFields = map[string]string{
	"package_in_grids_package_id_grid_id_key": "package_id",
}

// keySuffixPattern matches the "<table>_<column>_key" convention when the
// table name isn't known.
var keySuffixPattern = regexp.MustCompile(`_([^_]+)_(?:key|ukey)$`)

// ErrCode reports the mapped Code for err, or Other when err is not a
// database constraint error.
func ErrCode(err error) Code {
	var sqlErr *Error
	if errors.As(err, &sqlErr) {
		return sqlErr.Code
	}
	var pgerr *pgconn.PgError
	if errors.As(err, &pgerr) {
		return MapCode(pgerr.Code)
	}
	return Other
}

// ConvertPgError converts a raw pgconn.PgError into an Error.
func ConvertPgError(src *pgconn.PgError) *Error {
	return &Error{
		Code:           MapCode(src.Code),
		Severity:       MapSeverity(src.Severity),
		DatabaseCode:   src.Code,
		Message:        src.Message,
		SchemaName:     src.SchemaName,
		TableName:      src.TableName,
		ColumnName:     src.ColumnName,
		DataTypeName:   src.DataTypeName,
		ConstraintName: src.ConstraintName,
		driverErr:      src,
	}
}

// generateErrorCode builds a "<DOMAIN>_<ACTION>" code from the table name.
//
//	grids + UniqueViolation            => GRID_ALREADY_EXISTS
//	package_in_grids + UniqueViolation => PACKAGE_IN_GRID_ALREADY_EXISTS
func generateErrorCode(tableName string, errType Code) string {
	if tableName == "" {
		tableName = "RECORD"
	}

	domain := strings.ToUpper(tableName)

	// Naive singularization, good enough for this schema.
	if strings.HasSuffix(domain, "S") && len(domain) > 1 {
		domain = domain[:len(domain)-1]
	}

	action := "ERROR"
	switch errType {
	case ForeignKeyViolation:
		action = "NOT_FOUND"
	case UniqueViolation:
		action = "ALREADY_EXISTS"
	case NotNullViolation:
		action = "REQUIRED"
	case CheckViolation, StringTooLong, InvalidText:
		action = "INVALID"
	}

	return fmt.Sprintf("%s_%s", domain, action)
}

// formatUserFriendlyMessage produces the end-user message for a constraint error.
func formatUserFriendlyMessage(sqlErr *Error) string {
	entityName := getEntityName(sqlErr.TableName, sqlErr.ColumnName)

	switch sqlErr.Code {
	case ForeignKeyViolation:
		column := extractConstraintColumn(sqlErr.TableName, sqlErr.ConstraintName)
		if column != "" {
			entityName = getEntityName("", column)
		}
		return fmt.Sprintf("The referenced %s does not exist", entityName)

	case UniqueViolation:
		// "identifier" is replaced by the column name when it can be inferred.
		return fmt.Sprintf("A %s with this identifier already exists", entityName)

	case NotNullViolation:
		fieldName := humanizeText(sqlErr.ColumnName)
		if fieldName == "" {
			fieldName = "field"
		}
		return fmt.Sprintf("The %s is required", fieldName)

	case CheckViolation, StringTooLong, InvalidText:
		fieldName := humanizeText(sqlErr.ColumnName)
		if fieldName != "" {
			return fmt.Sprintf("The %s value does not meet required conditions", fieldName)
		}
		return "One or more values do not meet required conditions"

	default:
		return "An error occurred while processing your request"
	}
}

// getEntityName infers an entity name from table/column data.
//
// Priority:
//  1. column ending in "_id": "grid_id" -> "Grid"
//  2. table name, singularized: "packages" -> "Package"
//  3. "record"
func getEntityName(tableName, columnName string) string {
	if columnName != "" && strings.HasSuffix(strings.ToLower(columnName), "_id") {
		entity := strings.TrimSuffix(strings.ToLower(columnName), "_id")
		return humanizeText(entity)
	}

	if tableName != "" {
		entity := tableName
		if strings.HasSuffix(entity, "s") && len(entity) > 1 {
			entity = entity[:len(entity)-1]
		}
		return humanizeText(entity)
	}

	return "record"
}

// humanizeText converts snake_case into Title Case ("package_in_grid" -> "Package In Grid").
func humanizeText(text string) string {
	if text == "" {
		return ""
	}
	return cases.Title(language.English).String(strings.ReplaceAll(text, "_", " "))
}

// extractConstraintColumn infers the column a constraint guards.
//
// Supported conventions, in order:
//  1. an explicit entry in compositeConstraintFields
//  2. "unique_<table>_<column>"
//  3. "<table>_<column>_(key|ukey|fkey|index)" when the table is known
//  4. "..._<column>_(key|ukey)" as a last resort
func extractConstraintColumn(tableName, constraintName string) string {
	if constraintName == "" {
		return ""
	}

	if field, ok := compositeConstraintFields[constraintName]; ok {
		return field
	}

	if strings.HasPrefix(constraintName, "unique_") {
		parts := strings.Split(constraintName, "_")
		if len(parts) >= 3 {
			return parts[len(parts)-1]
		}
	}

	if tableName != "" && strings.HasPrefix(constraintName, tableName+"_") {
		rest := strings.TrimPrefix(constraintName, tableName+"_")
		for _, suffix := range []string{"_key", "_ukey", "_fkey", "_index"} {
			if strings.HasSuffix(rest, suffix) {
				return strings.TrimSuffix(rest, suffix)
			}
		}
	}

	matches := keySuffixPattern.FindStringSubmatch(constraintName)
	if len(matches) > 1 {
		return matches[1]
	}

	return ""
}

// ConstraintFieldErrors converts a constraint violation into field errors so it
// can be attached to a changeset. ok is false when err is not a constraint
// violation this package knows how to attribute to a field.
func ConstraintFieldErrors(err error) (fieldErrors []errs.FieldError, ok bool) {
	var pgerr *pgconn.PgError
	if !errors.As(err, &pgerr) {
		return nil, false
	}

	sqlErr := ConvertPgError(pgerr)

	switch sqlErr.Code {
	case UniqueViolation:
		column := extractConstraintColumn(sqlErr.TableName, sqlErr.ConstraintName)
		if column == "" {
			return nil, false
		}
		return []errs.FieldError{{Field: column, Error: "has already been taken"}}, true

	case ForeignKeyViolation:
		column := extractConstraintColumn(sqlErr.TableName, sqlErr.ConstraintName)
		if column == "" {
			return nil, false
		}
		return []errs.FieldError{{Field: column, Error: "does not exist"}}, true

	case NotNullViolation:
		if sqlErr.ColumnName == "" {
			return nil, false
		}
		return []errs.FieldError{{Field: strings.ToLower(sqlErr.ColumnName), Error: "is required"}}, true
	}

	return nil, false
}

// HandleError converts a low-level database error into an application-level error.
//
//   - *errs.HTTPError: returned unchanged
//   - *pgconn.PgError: mapped to a 400 for constraint violations, 500 otherwise
//   - ErrNoRows: mapped to a 404
//   - anything else: 500
func HandleError(err error) error {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return err
	}

	var pgerr *pgconn.PgError
	if errors.As(err, &pgerr) {
		sqlErr := ConvertPgError(pgerr)

		errorCode := generateErrorCode(sqlErr.TableName, sqlErr.Code)
		userMessage := formatUserFriendlyMessage(sqlErr)
		fieldErrors, _ := ConstraintFieldErrors(err)

		switch sqlErr.Code {
		case ForeignKeyViolation:
			return errs.NewBadRequestError(userMessage, false, &errorCode, fieldErrors, nil)

		case UniqueViolation:
			columnName := extractConstraintColumn(sqlErr.TableName, sqlErr.ConstraintName)
			if columnName != "" {
				userMessage = strings.ReplaceAll(userMessage, "identifier", humanizeText(columnName))
			}
			return errs.NewBadRequestError(userMessage, true, &errorCode, fieldErrors, nil)

		case NotNullViolation:
			return errs.NewBadRequestError(userMessage, true, &errorCode, fieldErrors, nil)

		case CheckViolation, StringTooLong, InvalidText:
			return errs.NewBadRequestError(userMessage, true, &errorCode, nil, nil)

		default:
			return errs.NewInternalServerError()
		}
	}

	if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, sql.ErrNoRows) {
		return errs.NewNotFoundError("Resource not found", false, nil)
	}

	return errs.NewInternalServerError()
}
