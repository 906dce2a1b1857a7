package shared

import (
	"github.com/google/uuid"
	"github.com/jewelry-erp/backend/internal/domain/shared"
)

// ListQuery holds the paging, ordering and search parameters shared by
// every list endpoint
type ListQuery struct {
	Page           int    `form:"page" binding:"omitempty,min=1"`
	PageSize       int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy        string `form:"order_by" binding:"omitempty,max=50"`
	OrderDir       string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
	Search         string `form:"search" binding:"omitempty,max=100"`
	IncludeDeleted bool   `form:"include_deleted"`
}

// Filter converts the query into a normalized domain filter
func (q ListQuery) Filter() shared.Filter {
	f := shared.DefaultFilter()
	f.Page = q.Page
	f.PageSize = q.PageSize
	if q.OrderBy != "" {
		f.OrderBy = q.OrderBy
	}
	if q.OrderDir != "" {
		f.OrderDir = q.OrderDir
	}
	f.Search = q.Search
	f.IncludeDeleted = q.IncludeDeleted
	return f.Normalize()
}

// SetUUID stores id under key when it is set
func SetUUID(f shared.Filter, key string, id *uuid.UUID) {
	if id != nil && *id != uuid.Nil {
		f.Filters[key] = *id
	}
}

// SetString stores s under key when it is not empty
func SetString(f shared.Filter, key, s string) {
	if s != "" {
		f.Filters[key] = s
	}
}
