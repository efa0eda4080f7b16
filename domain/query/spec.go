/*
Package query is the generic paginated search core shared by every entity.

A Spec describes what a caller asked for. EntityConfig describes what an entity
allows. Together they yield a predicate tree, an ordering and a window that any
Source can evaluate, in memory or in SQL.
*/
package query

import (
	"maps"
	"math"
	"strings"
)

const (
	// MaxPageSize upper bound of a page window
	MaxPageSize = 1000

	// FallbackPageSize is used when an entity declares no default
	FallbackPageSize = 50
)

// Spec describes paging, sorting, search and filter intent for one request.
type Spec struct {
	Page           int               `json:"page"`
	PageSize       int               `json:"page_size"`
	SearchTerm     string            `json:"search_term,omitempty"`
	Filters        map[string]string `json:"filters,omitempty"`
	SortField      string            `json:"sort_field,omitempty"`
	SortDescending bool              `json:"sort_descending,omitempty"`
}

// Normalize returns a copy with out-of-range values coerced.
// Page below 1 becomes 1, a page size outside [1, MaxPageSize] becomes
// defaultPageSize. Page is capped so the offset fits in an int; such a page
// still lies past the end of any collection. It never fails.
func (s Spec) Normalize(defaultPageSize int) Spec {
	if defaultPageSize < 1 || defaultPageSize > MaxPageSize {
		defaultPageSize = FallbackPageSize
	}

	out := s
	if out.Page < 1 {
		out.Page = 1
	}
	if out.PageSize < 1 || out.PageSize > MaxPageSize {
		out.PageSize = defaultPageSize
	}
	if maxPage := math.MaxInt / out.PageSize; out.Page > maxPage {
		out.Page = maxPage
	}
	out.SearchTerm = strings.TrimSpace(out.SearchTerm)
	out.SortField = strings.TrimSpace(out.SortField)
	out.Filters = maps.Clone(s.Filters)
	return out
}

// HasSearch reports whether free-text search is active
func (s Spec) HasSearch() bool {
	return strings.TrimSpace(s.SearchTerm) != ""
}

// Offset of the first item of the page. Call on a normalized Spec.
func (s Spec) Offset() int {
	if s.Page < 1 || s.PageSize < 1 {
		return 0
	}
	if s.Page-1 > math.MaxInt/s.PageSize {
		return math.MaxInt
	}
	return (s.Page - 1) * s.PageSize
}

// Filter returns the trimmed filter value, empty when absent
func (s Spec) Filter(name string) string {
	if s.Filters == nil {
		return ""
	}
	return strings.TrimSpace(s.Filters[name])
}

// WithFilter returns a copy with one filter set
func (s Spec) WithFilter(name, value string) Spec {
	out := s
	out.Filters = maps.Clone(s.Filters)
	if out.Filters == nil {
		out.Filters = make(map[string]string, 1)
	}
	out.Filters[name] = value
	return out
}

// WithSearch returns a copy with the search term replaced
func (s Spec) WithSearch(term string) Spec {
	out := s
	out.Filters = maps.Clone(s.Filters)
	out.SearchTerm = term
	return out
}
