package model

import (
	"math"

	"github.com/deppfellow/catalog/internal/filter"
)

// Listing defaults. PaginationDistance is a presentation hint for callers
// rendering page links and is never used to compute a page.
const (
	DefaultPageSize      = 15
	PaginationDistance   = 5
	DefaultSortField     = "inserted_at"
	DefaultSortDirection = SortDesc

	// MaxPage is the highest page number a listing will address. Anything
	// past it is already past the end of any table this service holds.
	MaxPage = math.MaxInt32
)

// SortDirection is "asc" or "desc".
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// Valid reports whether d is a known direction.
func (d SortDirection) Valid() bool {
	return d == SortAsc || d == SortDesc
}

// ListParams selects one page of a filtered, sorted listing.
type ListParams struct {
	SortField     string
	SortDirection SortDirection
	Page          int
	PageSize      int
	Filter        filter.Filter
}

// DefaultListParams returns the params used when the caller supplies none.
func DefaultListParams() ListParams {
	return ListParams{
		SortField:     DefaultSortField,
		SortDirection: DefaultSortDirection,
		Page:          1,
		PageSize:      DefaultPageSize,
	}
}

// Normalized fills zero values with defaults and clamps Page into
// [1, MaxPage], lower still when PageSize is so large that the offset of
// Page would overflow an int.
func (p ListParams) Normalized() ListParams {
	if p.SortField == "" {
		p.SortField = DefaultSortField
	}
	if p.SortDirection == "" {
		p.SortDirection = DefaultSortDirection
	}
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = DefaultPageSize
	}
	if maxPage := min(MaxPage, math.MaxInt/p.PageSize); p.Page > maxPage {
		p.Page = maxPage
	}
	return p
}

// Offset is the number of rows skipped before this page. Call it on
// normalized params; it is never negative for those.
func (p ListParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// Page is one page of a listing plus the metadata needed to render its
// pagination controls.
type Page[T any] struct {
	Entries       []T           `json:"entries"`
	PageNumber    int           `json:"page_number"`
	PageSize      int           `json:"page_size"`
	TotalPages    int           `json:"total_pages"`
	TotalEntries  int           `json:"total_entries"`
	SortField     string        `json:"sort_field"`
	SortDirection SortDirection `json:"sort_direction"`
	Distance      int           `json:"distance"`
}

// NewPage assembles a Page from the fetched entries and the total number of
// matching rows.
func NewPage[T any](entries []T, totalEntries int, params ListParams) Page[T] {
	if entries == nil {
		entries = []T{}
	}
	return Page[T]{
		Entries:       entries,
		PageNumber:    params.Page,
		PageSize:      params.PageSize,
		TotalPages:    TotalPages(totalEntries, params.PageSize),
		TotalEntries:  totalEntries,
		SortField:     params.SortField,
		SortDirection: params.SortDirection,
		Distance:      PaginationDistance,
	}
}

// TotalPages is ceil(totalEntries / pageSize), and 0 for an empty listing.
func TotalPages(totalEntries, pageSize int) int {
	if totalEntries <= 0 || pageSize <= 0 {
		return 0
	}
	return (totalEntries + pageSize - 1) / pageSize
}
