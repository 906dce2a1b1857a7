package shared

import "strings"

// Page size bounds shared by every list endpoint.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Filter is the repository-facing form of a list query. Filters holds
// typed equality and range conditions keyed by column; repositories ignore
// keys they do not know.
type Filter struct {
	Page           int
	PageSize       int
	OrderBy        string
	OrderDir       string
	Search         string
	IncludeDeleted bool
	Filters        map[string]interface{}
}

func DefaultFilter() Filter {
	return Filter{
		Page:     1,
		PageSize: DefaultPageSize,
		OrderBy:  "created_at",
		OrderDir: "desc",
		Filters:  map[string]interface{}{},
	}
}

// Normalize returns a copy with paging clamped and the direction forced to asc or desc.
func (f Filter) Normalize() Filter {
	dir := f.OrderDir
	f.Page = max(f.Page, 1)
	switch {
	case f.PageSize < 1:
		f.PageSize = DefaultPageSize
	case f.PageSize > MaxPageSize:
		f.PageSize = MaxPageSize
	}
	f.OrderDir = "desc"
	if strings.EqualFold(strings.TrimSpace(dir), "asc") {
		f.OrderDir = "asc"
	}
	if f.Filters == nil {
		f.Filters = map[string]interface{}{}
	}
	return f
}

func (f Filter) Offset() int { return (f.Page - 1) * f.PageSize }

// Paginated is one page of a list result.
type Paginated[T any] struct {
	Items      []T   `json:"items"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int   `json:"total_pages"`
}

func NewPaginated[T any](items []T, total int64, page, pageSize int) Paginated[T] {
	pageSize = max(pageSize, 1)
	return Paginated[T]{
		Items:      items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: TotalPages(total, pageSize),
	}
}

// TotalPages is the number of pages needed for total rows; zero when
// pageSize is not positive.
func TotalPages(total int64, pageSize int) int {
	if pageSize < 1 {
		return 0
	}
	size := int64(pageSize)
	return int((total + size - 1) / size)
}
