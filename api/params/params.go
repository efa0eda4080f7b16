// Package params turns gin query parameters into a query.Spec.
// Nothing here rejects input: bad numbers fall back to zero and the entity
// config coerces them.
package params

import (
	"strconv"
	"strings"

	"erp/domain/query"

	"github.com/gin-gonic/gin"
)

// reserved parameters are never treated as filters
var reserved = map[string]bool{
	"page":           true,
	"pageSize":       true,
	"page_size":      true,
	"search":         true,
	"searchTerm":     true,
	"q":              true,
	"sortField":      true,
	"sortBy":         true,
	"sortDescending": true,
	"sortDesc":       true,
	"groupBy":        true,
}

// Spec reads page, pageSize, search, sortField and sortDescending. Every other
// non-empty parameter becomes a filter; the entity ignores names it does not
// know.
func Spec(c *gin.Context) query.Spec {
	spec := query.Spec{
		Page:           Int(c, "page"),
		PageSize:       first(Int(c, "pageSize"), Int(c, "page_size")),
		SearchTerm:     firstString(c.Query("search"), c.Query("searchTerm")),
		SortField:      firstString(c.Query("sortField"), c.Query("sortBy")),
		SortDescending: Bool(c, "sortDescending") || Bool(c, "sortDesc"),
	}
	for name, values := range c.Request.URL.Query() {
		if reserved[name] || len(values) == 0 {
			continue
		}
		if v := strings.TrimSpace(values[0]); v != "" {
			spec = spec.WithFilter(name, v)
		}
	}
	return spec
}

// Int parses an integer parameter, zero when missing or malformed
func Int(c *gin.Context, name string) int {
	n, err := strconv.Atoi(strings.TrimSpace(c.Query(name)))
	if err != nil {
		return 0
	}
	return n
}

// Bool accepts true/false, 1/0 and the other strconv spellings
func Bool(c *gin.Context, name string) bool {
	b, err := strconv.ParseBool(strings.TrimSpace(c.Query(name)))
	return err == nil && b
}

// Int64Param parses a path parameter
func Int64Param(c *gin.Context, name string) (int64, error) {
	return strconv.ParseInt(strings.TrimSpace(c.Param(name)), 10, 64)
}

func first(values ...int) int {
	for _, v := range values {
		if v != 0 {
			return v
		}
	}
	return 0
}

func firstString(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
