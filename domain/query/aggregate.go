package query

import (
	"slices"

	"github.com/shopspring/decimal"
)

// Statistics is computed per request over the filtered set, ignoring paging.
// Counts partitions Total by the GroupBy field. Indicators holds entity
// specific counts that do not partition the set.
type Statistics struct {
	Total      int64                      `json:"total"`
	GroupBy    string                     `json:"group_by,omitempty"`
	Counts     map[string]int64           `json:"counts"`
	Sums       map[string]decimal.Decimal `json:"sums"`
	Indicators map[string]int64           `json:"indicators,omitempty"`
}

// NewStatistics returns empty, non-nil maps
func NewStatistics() Statistics {
	return Statistics{Counts: map[string]int64{}, Sums: map[string]decimal.Decimal{}}
}

// CountBy groups items by field. NULL values share the "" bucket.
func CountBy[T any](items []T, field Field[T]) map[string]int64 {
	counts := make(map[string]int64)
	for _, item := range items {
		counts[GroupKey(field.Get(item))]++
	}
	return counts
}

// Sum adds the metric over items, zero for an empty slice
func Sum[T any](items []T, metric Metric[T]) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(metric.Value(item))
	}
	return total
}

// Aggregate computes counts by group and every metric in one pass over items
func Aggregate[T any](items []T, group *Field[T], metrics []Metric[T]) Statistics {
	stats := NewStatistics()
	stats.Total = int64(len(items))
	if group != nil {
		stats.GroupBy = group.Name
		stats.Counts = CountBy(items, *group)
	}
	for _, m := range metrics {
		stats.Sums[m.Name] = Sum(items, m)
	}
	return stats
}

// Distinct returns the distinct non-null values of field in ascending order
func Distinct[T any](items []T, field Field[T]) []string {
	values := make([]any, 0, len(items))
	for _, item := range items {
		if v := field.Get(item); v != nil {
			values = append(values, v)
		}
	}
	slices.SortFunc(values, compareValues)

	out := make([]string, 0, len(values))
	for i, v := range values {
		if i > 0 && compareValues(values[i-1], v) == 0 {
			continue
		}
		out = append(out, GroupKey(v))
	}
	return out
}
