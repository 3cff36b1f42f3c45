package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/deppfellow/catalog/internal/errs"
	"github.com/deppfellow/catalog/internal/filter"
	"github.com/deppfellow/catalog/internal/model"
	"github.com/jackc/pgx/v5"
)

// listQuery is the count and page statements for one paginated listing.
// Both share the WHERE clause and its parameters.
type listQuery struct {
	countSQL  string
	countArgs []any
	pageSQL   string
	pageArgs  []any
}

// buildListQuery renders params against table. The sort field must be in
// cfg's sort allow-list since it is interpolated into the statement; a bad
// sort field or direction is a 400 validation error. Rows
// with equal sort keys are ordered by id in the same direction so pages are
// stable.
func buildListQuery(table, columns string, cfg filter.Config, params model.ListParams) (listQuery, error) {
	params = params.Normalized()

	var fieldErrors []errs.FieldError
	if !cfg.CanSort(params.SortField) {
		fieldErrors = append(fieldErrors, errs.FieldError{Field: "sort_field", Error: "is not a sortable field"})
	}
	if !params.SortDirection.Valid() {
		fieldErrors = append(fieldErrors, errs.FieldError{Field: "sort_direction", Error: "must be asc or desc"})
	}
	if len(fieldErrors) > 0 {
		return listQuery{}, errs.NewValidationError(fieldErrors)
	}

	cond := params.Filter.SQL(1)

	var where string
	if cond.Clause != "" {
		where = " WHERE " + cond.Clause
	}

	dir := strings.ToUpper(string(params.SortDirection))
	orderBy := fmt.Sprintf(" ORDER BY %s %s", params.SortField, dir)
	if params.SortField != "id" {
		orderBy += fmt.Sprintf(", id %s", dir)
	}

	n := len(cond.Params)
	pageSQL := fmt.Sprintf("SELECT %s FROM %s%s%s LIMIT $%d OFFSET $%d",
		columns, table, where, orderBy, n+1, n+2)

	pageArgs := make([]any, 0, n+2)
	pageArgs = append(pageArgs, cond.Params...)
	pageArgs = append(pageArgs, params.PageSize, params.Offset())

	return listQuery{
		countSQL:  fmt.Sprintf("SELECT count(*) FROM %s%s", table, where),
		countArgs: cond.Params,
		pageSQL:   pageSQL,
		pageArgs:  pageArgs,
	}, nil
}

// paginate sends the count and the page query in one batch and assembles the
// page. A page past the end has no entries but keeps the totals.
func paginate[T any](ctx context.Context, db DBTX, table, columns string, cfg filter.Config, params model.ListParams) (model.Page[T], error) {
	params = params.Normalized()

	q, err := buildListQuery(table, columns, cfg, params)
	if err != nil {
		return model.Page[T]{}, err
	}

	batch := &pgx.Batch{}
	batch.Queue(q.countSQL, q.countArgs...)
	batch.Queue(q.pageSQL, q.pageArgs...)

	br := db.SendBatch(ctx, batch)

	var total int
	if err := br.QueryRow().Scan(&total); err != nil {
		_ = br.Close()
		return model.Page[T]{}, err
	}

	entries, err := collectAll[T](br.Query())
	if err != nil {
		_ = br.Close()
		return model.Page[T]{}, err
	}

	if err := br.Close(); err != nil {
		return model.Page[T]{}, err
	}

	return model.NewPage(entries, total, params), nil
}
