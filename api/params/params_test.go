package params

import (
	"net/http/httptest"
	"testing"

	"erp/domain/query"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func contextFor(target string) *gin.Context {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", target, nil)
	return c
}

func TestSpec(t *testing.T) {
	tests := []struct {
		name   string
		target string
		want   query.Spec
	}{
		{
			name:   "empty",
			target: "/",
			want:   query.Spec{},
		},
		{
			name:   "paging and sort",
			target: "/?page=2&pageSize=15&sortField=name&sortDescending=true",
			want:   query.Spec{Page: 2, PageSize: 15, SortField: "name", SortDescending: true},
		},
		{
			name:   "malformed numbers are zero",
			target: "/?page=x&pageSize=&sortDescending=maybe",
			want:   query.Spec{},
		},
		{
			name:   "filters and search",
			target: "/?search=acme&status=HOLD&letter=0-9&type=",
			want:   query.Spec{SearchTerm: "acme", Filters: map[string]string{"status": "HOLD", "letter": "0-9"}},
		},
		{
			name:   "aliases",
			target: "/?page_size=5&searchTerm=x&sortBy=code&sortDesc=1",
			want:   query.Spec{PageSize: 5, SearchTerm: "x", SortField: "code", SortDescending: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Spec(contextFor(tt.target)))
		})
	}
}
