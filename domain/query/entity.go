package query

import (
	"strconv"
	"strings"

	"erp/domain/shared"

	"github.com/shopspring/decimal"
)

// Metric is a named decimal sum. Expr is the SQL expression over storage
// columns, Value the equivalent in-memory selector.
type Metric[T any] struct {
	Name  string
	Expr  string
	Value func(T) decimal.Decimal
}

// EntityConfig is the static description of what one entity allows:
// which fields are searched, sorted, filtered, grouped and summed.
type EntityConfig[T any] struct {
	Name            string
	Key             Field[T]
	KeyParts        []Field[T] // remaining columns of a composite key
	DefaultSort     Field[T]
	DefaultDesc     bool
	DefaultPageSize int
	Searchable      []Field[T]
	Sortable        []Field[T]
	Filters         []Filter[T]
	GroupBy         []Field[T]
	Sums            []Metric[T]
}

// PageSize returns the configured default, FallbackPageSize when unset
func (c EntityConfig[T]) PageSize() int {
	if c.DefaultPageSize < 1 || c.DefaultPageSize > MaxPageSize {
		return FallbackPageSize
	}
	return c.DefaultPageSize
}

// Normalize coerces spec against this entity's default page size
func (c EntityConfig[T]) Normalize(spec Spec) Spec {
	return spec.Normalize(c.PageSize())
}

// Predicate builds the filter tree for spec. nil means no constraint.
//
// A record matches when the search term is empty or any searchable field
// contains it, and every recognised filter holds.
func (c EntityConfig[T]) Predicate(spec Spec) shared.Specification[T] {
	var where shared.Specification[T]

	if spec.HasSearch() {
		where = c.SearchPredicate(spec.SearchTerm)
	}

	for _, f := range c.Filters {
		raw := spec.Filter(f.Name)
		if raw == "" {
			continue
		}
		if p, ok := f.Build(raw); ok {
			where = shared.And(where, p)
		}
	}
	return where
}

// SearchPredicate ORs the term across searchable fields. Text fields match by
// substring, integer fields only when the term is a whole number equal to them.
func (c EntityConfig[T]) SearchPredicate(term string) shared.Specification[T] {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil
	}

	var match shared.Specification[T]
	for _, f := range c.Searchable {
		switch f.Kind {
		case KindText:
			match = shared.Or(match, Contains(f, term))
		case KindInt:
			if n, err := strconv.ParseInt(term, 10, 64); err == nil {
				match = shared.Or(match, Equals(f, n))
			}
		}
	}
	if match == nil {
		return NoneSpec[T]{}
	}
	return match
}

// Orders resolves the sort requested by spec, falling back to the default
// sort, and always appends the key as a tie-break.
func (c EntityConfig[T]) Orders(spec Spec) []Order[T] {
	field, desc := c.DefaultSort, c.DefaultDesc || spec.SortDescending
	if spec.SortField != "" {
		if f, ok := c.sortable(spec.SortField); ok {
			field, desc = f, spec.SortDescending
		}
	}
	if field.Get == nil {
		field = c.Key
	}

	orders := []Order[T]{{Field: field, Desc: desc}}
	for _, k := range append([]Field[T]{c.Key}, c.KeyParts...) {
		if k.Column != field.Column {
			orders = append(orders, Order[T]{Field: k})
		}
	}
	return orders
}

func (c EntityConfig[T]) sortable(name string) (Field[T], bool) {
	for _, f := range c.Sortable {
		if strings.EqualFold(f.Name, name) {
			return f, true
		}
	}
	if strings.EqualFold(c.Key.Name, name) {
		return c.Key, true
	}
	return Field[T]{}, false
}

// GroupField resolves a group-by name, the first declared field when empty
func (c EntityConfig[T]) GroupField(name string) (Field[T], bool) {
	if len(c.GroupBy) == 0 {
		return Field[T]{}, false
	}
	if strings.TrimSpace(name) == "" {
		return c.GroupBy[0], true
	}
	for _, f := range c.GroupBy {
		if strings.EqualFold(f.Name, name) {
			return f, true
		}
	}
	return Field[T]{}, false
}

// Criteria assembles the outbound query for a normalized spec
func (c EntityConfig[T]) Criteria(spec Spec) Criteria[T] {
	return Criteria[T]{
		Where:  c.Predicate(spec),
		Orders: c.Orders(spec),
		Offset: spec.Offset(),
		Limit:  spec.PageSize,
	}
}
