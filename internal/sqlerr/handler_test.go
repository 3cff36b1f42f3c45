package sqlerr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/deppfellow/catalog/internal/errs"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractConstraintColumn(t *testing.T) {
	tests := []struct {
		table      string
		constraint string
		want       string
	}{
		{"grids", "grids_slug_key", "slug"},
		{"packages", "packages_name_key", "name"},
		{"package_in_grids", "package_in_grids_grid_id_fkey", "grid_id"},
		{"package_in_grids", "package_in_grids_package_id_grid_id_key", "package_id"},
		{"", "unique_users_email", "email"},
		{"", "users_email_key", "email"},
		{"grids", "", ""},
		{"grids", "some_check", ""},
	}

	for _, tt := range tests {
		t.Run(tt.constraint, func(t *testing.T) {
			assert.Equal(t, tt.want, extractConstraintColumn(tt.table, tt.constraint))
		})
	}
}

func TestGenerateErrorCode(t *testing.T) {
	assert.Equal(t, "GRID_ALREADY_EXISTS", generateErrorCode("grids", UniqueViolation))
	assert.Equal(t, "PACKAGE_IN_GRID_NOT_FOUND", generateErrorCode("package_in_grids", ForeignKeyViolation))
	assert.Equal(t, "RECORD_ERROR", generateErrorCode("", Other))
}

func TestConstraintFieldErrors(t *testing.T) {
	t.Run("unique violation on slug", func(t *testing.T) {
		err := fmt.Errorf("inserting grid: %w", &pgconn.PgError{
			Code:           "23505",
			Severity:       "ERROR",
			TableName:      "grids",
			ConstraintName: "grids_slug_key",
		})

		fieldErrors, ok := ConstraintFieldErrors(err)
		require.True(t, ok)
		assert.Equal(t, []errs.FieldError{{Field: "slug", Error: "has already been taken"}}, fieldErrors)
	})

	t.Run("duplicate membership", func(t *testing.T) {
		fieldErrors, ok := ConstraintFieldErrors(&pgconn.PgError{
			Code:           "23505",
			TableName:      "package_in_grids",
			ConstraintName: "package_in_grids_package_id_grid_id_key",
		})
		require.True(t, ok)
		assert.Equal(t, "package_id", fieldErrors[0].Field)
	})

	t.Run("missing foreign row", func(t *testing.T) {
		fieldErrors, ok := ConstraintFieldErrors(&pgconn.PgError{
			Code:           "23503",
			TableName:      "package_in_grids",
			ConstraintName: "package_in_grids_grid_id_fkey",
		})
		require.True(t, ok)
		assert.Equal(t, []errs.FieldError{{Field: "grid_id", Error: "does not exist"}}, fieldErrors)
	})

	t.Run("not a constraint error", func(t *testing.T) {
		_, ok := ConstraintFieldErrors(errors.New("connection reset"))
		assert.False(t, ok)

		_, ok = ConstraintFieldErrors(&pgconn.PgError{Code: "57014"})
		assert.False(t, ok)
	})
}

func TestHandleError(t *testing.T) {
	t.Run("passes HTTPError through", func(t *testing.T) {
		original := errs.NewNotFoundError("Grid not found", true, nil)
		assert.Same(t, original, HandleError(original))
	})

	t.Run("unique violation becomes bad request", func(t *testing.T) {
		err := HandleError(&pgconn.PgError{
			Code:           "23505",
			Severity:       "ERROR",
			TableName:      "grids",
			ConstraintName: "grids_slug_key",
		})

		var httpErr *errs.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusBadRequest, httpErr.Status)
		assert.Equal(t, "GRID_ALREADY_EXISTS", httpErr.Code)
		assert.Equal(t, "A Grid with this Slug already exists", httpErr.Message)
		assert.True(t, httpErr.HasField("slug"))
	})

	t.Run("no rows becomes not found", func(t *testing.T) {
		err := HandleError(fmt.Errorf("select: %w", pgx.ErrNoRows))

		var httpErr *errs.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusNotFound, httpErr.Status)
	})

	t.Run("unknown errors become internal", func(t *testing.T) {
		err := HandleError(errors.New("boom"))

		var httpErr *errs.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
		assert.Equal(t, "Internal Server Error", httpErr.Message)
	})
}

func TestErrCode(t *testing.T) {
	assert.Equal(t, UniqueViolation, ErrCode(&pgconn.PgError{Code: "23505"}))
	assert.Equal(t, ForeignKeyViolation, ErrCode(ConvertPgError(&pgconn.PgError{Code: "23503"})))
	assert.Equal(t, Other, ErrCode(errors.New("x")))
}
