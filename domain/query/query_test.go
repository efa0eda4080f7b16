package query

import (
	"context"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	No      int64
	Code    string
	Name    string
	Status  string
	Created *time.Time
	Amount  decimal.Decimal
}

var (
	noField      = IntField("no", "no", func(r record) int64 { return r.No })
	codeField    = TextField("code", "code", func(r record) string { return r.Code })
	nameField    = TextField("name", "name", func(r record) string { return r.Name })
	statusField  = TextField("status", "status", func(r record) string { return r.Status })
	createdField = TimeField("created", "created", func(r record) *time.Time { return r.Created })
	amountMetric = Metric[record]{Name: "amount", Expr: "amount", Value: func(r record) decimal.Decimal { return r.Amount }}
)

func testConfig() EntityConfig[record] {
	return EntityConfig[record]{
		Name:            "record",
		Key:             noField,
		DefaultSort:     codeField,
		DefaultPageSize: 50,
		Searchable:      []Field[record]{codeField, nameField, noField},
		Sortable:        []Field[record]{codeField, nameField, statusField, createdField},
		Filters: []Filter[record]{
			EqualFilter("status", statusField),
			LetterFilter("letter", codeField, nameField),
			FromFilter("from", createdField),
			ToFilter("to", createdField),
		},
		GroupBy: []Field[record]{statusField},
		Sums:    []Metric[record]{amountMetric},
	}
}

func at(day int) *time.Time {
	t := time.Date(2024, time.March, day, 12, 0, 0, 0, time.UTC)
	return &t
}

func evaluate(cfg EntityConfig[record], spec Spec, items []record) []record {
	spec = cfg.Normalize(spec)
	matched := FilterItems(context.Background(), items, cfg.Predicate(spec))
	SortItems(matched, cfg.Orders(spec))
	return Paginate(matched, spec.Page, spec.PageSize)
}

func codes(items []record) []string {
	out := make([]string, len(items))
	for i, r := range items {
		out[i] = r.Code
	}
	return out
}

func TestSpecNormalize(t *testing.T) {
	tests := []struct {
		name         string
		in           Spec
		wantPage     int
		wantPageSize int
	}{
		{"defaults", Spec{}, 1, 50},
		{"negative page", Spec{Page: -3, PageSize: 10}, 1, 10},
		{"zero page size", Spec{Page: 2, PageSize: 0}, 2, 50},
		{"page size over max", Spec{Page: 1, PageSize: 1500}, 1, 50},
		{"page size at max", Spec{Page: 1, PageSize: MaxPageSize}, 1, MaxPageSize},
		{"page size one", Spec{Page: 4, PageSize: 1}, 4, 1},
		{"page beyond int offset", Spec{Page: math.MaxInt, PageSize: 50}, math.MaxInt / 50, 50},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.in.Normalize(50)
			assert.Equal(t, tc.wantPage, got.Page)
			assert.Equal(t, tc.wantPageSize, got.PageSize)
		})
	}
}

func TestOffsetNeverOverflows(t *testing.T) {
	spec := Spec{Page: math.MaxInt/50 + 2, PageSize: 50}
	assert.Equal(t, math.MaxInt, spec.Offset())
	assert.Positive(t, spec.Normalize(50).Offset())

	items := []record{{No: 1, Code: "A"}}
	assert.Empty(t, Paginate(items, math.MaxInt, 50))
}

func TestSpecNormalizeDisablesBlankSearch(t *testing.T) {
	spec := Spec{SearchTerm: "   \t"}.Normalize(20)
	assert.False(t, spec.HasSearch())
	assert.Equal(t, "", spec.SearchTerm)
}

func TestSpecNormalizeCopiesFilters(t *testing.T) {
	filters := map[string]string{"status": "A"}
	spec := Spec{Filters: filters}.Normalize(20)
	spec.Filters["status"] = "B"
	assert.Equal(t, "A", filters["status"])
}

func TestSearchIsCaseInsensitiveAcrossFields(t *testing.T) {
	items := []record{
		{No: 1, Code: "C1", Name: "Test Customer 1"},
		{No: 2, Code: "C2", Name: "Test Customer 2"},
		{No: 3, Code: "C3", Name: "Different Customer"},
		{No: 4, Code: "C4", Name: "ACME Corporation"},
	}

	got := evaluate(testConfig(), Spec{SearchTerm: "test"}, items)
	assert.Equal(t, []string{"C1", "C2"}, codes(got))

	got = evaluate(testConfig(), Spec{SearchTerm: "c4"}, items)
	assert.Equal(t, []string{"C4"}, codes(got))
}

func TestSearchMatchesIntegerFieldExactly(t *testing.T) {
	items := []record{{No: 12, Code: "A"}, {No: 123, Code: "B"}}

	got := evaluate(testConfig(), Spec{SearchTerm: "12"}, items)
	assert.Equal(t, []string{"A"}, codes(got))
}

func TestSearchWithNoApplicableFieldMatchesNothing(t *testing.T) {
	cfg := testConfig()
	cfg.Searchable = []Field[record]{noField}

	got := evaluate(cfg, Spec{SearchTerm: "abc"}, []record{{No: 1, Code: "A"}})
	assert.Empty(t, got)
}

func TestLetterFilterDigitBucket(t *testing.T) {
	items := []record{
		{No: 1, Code: "ACME001", Name: "Acme"},
		{No: 2, Code: "ALPHA002", Name: "Alpha"},
		{No: 3, Code: "BETA003", Name: "Beta"},
		{No: 4, Code: "123CORP", Name: "Numbers"},
	}

	got := evaluate(testConfig(), Spec{Filters: map[string]string{"letter": DigitBucket}}, items)
	assert.Equal(t, []string{"123CORP"}, codes(got))

	got = evaluate(testConfig(), Spec{Filters: map[string]string{"letter": "a"}}, items)
	assert.Equal(t, []string{"ACME001", "ALPHA002"}, codes(got))
}

func TestFiltersAreConjunctive(t *testing.T) {
	items := []record{
		{No: 1, Code: "A", Status: "X", Created: at(1)},
		{No: 2, Code: "B", Status: "X", Created: at(10)},
		{No: 3, Code: "C", Status: "Y", Created: at(10)},
		{No: 4, Code: "D", Status: "X"},
	}

	spec := Spec{Filters: map[string]string{"status": "X", "from": "2024-03-05", "to": "2024-03-10"}}
	got := evaluate(testConfig(), spec, items)
	assert.Equal(t, []string{"B"}, codes(got))
}

func TestEqualityFilterIgnoresCase(t *testing.T) {
	items := []record{{No: 1, Code: "A", Status: "ACTIVE"}, {No: 2, Code: "B", Status: "closed"}}

	got := evaluate(testConfig(), Spec{Filters: map[string]string{"status": "active"}}, items)
	assert.Equal(t, []string{"A"}, codes(got))

	got = evaluate(testConfig(), Spec{Filters: map[string]string{"status": "CLOSED"}}, items)
	assert.Equal(t, []string{"B"}, codes(got))
}

func TestEmptyOrUnparsableFilterIsNoConstraint(t *testing.T) {
	items := []record{{No: 1, Code: "A", Created: at(1)}, {No: 2, Code: "B"}}

	got := evaluate(testConfig(), Spec{Filters: map[string]string{"status": "", "from": "not-a-date"}}, items)
	assert.Len(t, got, 2)
}

func TestOrderingIsDeterministicWithTieBreak(t *testing.T) {
	items := []record{
		{No: 5, Code: "E", Status: "A"},
		{No: 2, Code: "B", Status: "A"},
		{No: 4, Code: "D", Status: "B"},
		{No: 1, Code: "A", Status: "A"},
		{No: 3, Code: "C", Status: "B"},
	}

	spec := Spec{SortField: "status", PageSize: 3}
	first := evaluate(testConfig(), spec, items)
	second := evaluate(testConfig(), spec, append([]record(nil), items...))

	assert.Equal(t, []string{"A", "B", "E"}, codes(first))
	assert.Equal(t, codes(first), codes(second))
}

func TestUnknownSortFieldFallsBackToDefault(t *testing.T) {
	items := []record{{No: 1, Code: "B"}, {No: 2, Code: "A"}}

	got := evaluate(testConfig(), Spec{SortField: "nope"}, items)
	assert.Equal(t, []string{"A", "B"}, codes(got))

	got = evaluate(testConfig(), Spec{SortField: "code", SortDescending: true}, items)
	assert.Equal(t, []string{"B", "A"}, codes(got))
}

func TestPaginate(t *testing.T) {
	items := make([]int, 50)
	for i := range items {
		items[i] = i + 1
	}

	assert.Equal(t, []int{16, 17, 18, 19, 20, 21, 22, 23, 24, 25, 26, 27, 28, 29, 30}, Paginate(items, 2, 15))
	assert.Len(t, Paginate(items, 1, 1000), 50)
	assert.Empty(t, Paginate(items, 9, 10))
	assert.Equal(t, []int{1, 2}, Paginate(items, 0, 2))
	assert.NotNil(t, Paginate([]int{}, 1, 10))
}

func TestPageResultTotalPages(t *testing.T) {
	assert.Equal(t, 0, PageResult[int]{TotalCount: 0, PageSize: 10}.TotalPages())
	assert.Equal(t, 1, PageResult[int]{TotalCount: 10, PageSize: 10}.TotalPages())
	assert.Equal(t, 2, PageResult[int]{TotalCount: 11, PageSize: 10}.TotalPages())
}

func TestAggregate(t *testing.T) {
	var items []record
	for i := 1; i <= 9; i++ {
		items = append(items, record{
			No:     int64(i),
			Code:   fmt.Sprintf("R%02d", i),
			Status: []string{"A", "B", ""}[i%3],
			Amount: decimal.RequireFromString("10.25"),
		})
	}

	group := statusField
	stats := Aggregate(items, &group, []Metric[record]{amountMetric})

	var sum int64
	for _, n := range stats.Counts {
		sum += n
	}
	assert.Equal(t, stats.Total, sum)
	assert.Equal(t, int64(3), stats.Counts[""])
	assert.True(t, decimal.RequireFromString("92.25").Equal(stats.Sums["amount"]))
}

func TestAggregateEmpty(t *testing.T) {
	group := statusField
	stats := Aggregate[record](nil, &group, []Metric[record]{amountMetric})

	require.NotNil(t, stats.Counts)
	assert.Equal(t, int64(0), stats.Total)
	assert.Empty(t, stats.Counts)
	assert.True(t, stats.Sums["amount"].IsZero())
}

func TestPeriodStart(t *testing.T) {
	now := time.Date(2024, time.June, 15, 10, 30, 0, 0, time.UTC)

	got, ok := PeriodStart("today", now)
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC), got)

	got, ok = PeriodStart("quarter", now)
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, time.March, 15, 10, 30, 0, 0, time.UTC), got)

	_, ok = PeriodStart("decade", now)
	assert.False(t, ok)
}
