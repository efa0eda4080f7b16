package query

import (
	"math"
	"slices"
)

// Order is one ORDER BY term
type Order[T any] struct {
	Field Field[T]
	Desc  bool
}

// PageResult is a bounded slice of a filtered, sorted collection plus the
// total match count.
type PageResult[T any] struct {
	Items      []T   `json:"items"`
	TotalCount int64 `json:"total_count"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
}

// NewPageResult never returns nil Items
func NewPageResult[T any](items []T, total int64, spec Spec) PageResult[T] {
	if items == nil {
		items = []T{}
	}
	return PageResult[T]{Items: items, TotalCount: total, Page: spec.Page, PageSize: spec.PageSize}
}

// TotalPages rounds up, zero when nothing matched
func (p PageResult[T]) TotalPages() int {
	if p.PageSize <= 0 || p.TotalCount <= 0 {
		return 0
	}
	return int((p.TotalCount + int64(p.PageSize) - 1) / int64(p.PageSize))
}

// SortItems orders items in place. The sort is stable so callers that list
// the key last get a deterministic order.
func SortItems[T any](items []T, orders []Order[T]) {
	if len(orders) == 0 {
		return
	}
	slices.SortStableFunc(items, func(a, b T) int {
		for _, o := range orders {
			c := compareValues(o.Field.Get(a), o.Field.Get(b))
			if c == 0 {
				continue
			}
			if o.Desc {
				return -c
			}
			return c
		}
		return 0
	})
}

// Paginate returns the window [offset, offset+pageSize) of an ordered slice.
// page < 1 is treated as 1. An offset past the end yields an empty slice.
func Paginate[T any](items []T, page, pageSize int) []T {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		return []T{}
	}
	if page-1 > math.MaxInt/pageSize {
		return []T{}
	}
	offset := (page - 1) * pageSize
	return Window(items, offset, pageSize)
}

// Window is Paginate in offset/limit form. limit <= 0 means no limit.
func Window[T any](items []T, offset, limit int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) {
		return []T{}
	}
	end := len(items)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return slices.Clone(items[offset:end])
}
