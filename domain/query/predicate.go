package query

import (
	"context"
	"strings"
	"time"

	"erp/domain/shared"
)

// ============================================================================
// Leaf predicates
// Each carries the Field so that both the in-memory evaluator and the SQL
// translator can use it.
// ============================================================================

// EqualsSpec exact match of a field against a value
type EqualsSpec[T any] struct {
	Field Field[T]
	Value any
}

// IsSatisfiedBy compares with the field's natural ordering. Text compares
// case-insensitively, as the SQL translation does.
func (s EqualsSpec[T]) IsSatisfiedBy(_ context.Context, entity T) bool {
	v := s.Field.Get(entity)
	if v == nil || s.Value == nil {
		return false
	}
	return equalValues(v, s.Value)
}

func equalValues(a, b any) bool {
	if x, ok := a.(string); ok {
		if y, ok := b.(string); ok {
			return strings.EqualFold(x, y)
		}
	}
	return compareValues(a, b) == 0
}

// ContainsSpec case-insensitive substring match
type ContainsSpec[T any] struct {
	Field Field[T]
	Term  string
}

// IsSatisfiedBy upper-cases both sides
func (s ContainsSpec[T]) IsSatisfiedBy(_ context.Context, entity T) bool {
	v, ok := s.Field.Get(entity).(string)
	if !ok {
		return false
	}
	return strings.Contains(strings.ToUpper(v), strings.ToUpper(s.Term))
}

// PrefixSpec case-insensitive prefix match
type PrefixSpec[T any] struct {
	Field  Field[T]
	Prefix string
}

// IsSatisfiedBy upper-cases both sides
func (s PrefixSpec[T]) IsSatisfiedBy(_ context.Context, entity T) bool {
	v, ok := s.Field.Get(entity).(string)
	if !ok {
		return false
	}
	return strings.HasPrefix(strings.ToUpper(v), strings.ToUpper(s.Prefix))
}

// BetweenSpec inclusive time range, either bound may be nil
type BetweenSpec[T any] struct {
	Field Field[T]
	From  *time.Time
	To    *time.Time
}

// IsSatisfiedBy rejects NULL values
func (s BetweenSpec[T]) IsSatisfiedBy(_ context.Context, entity T) bool {
	v, ok := s.Field.Get(entity).(time.Time)
	if !ok {
		return false
	}
	if s.From != nil && v.Before(*s.From) {
		return false
	}
	if s.To != nil && v.After(*s.To) {
		return false
	}
	return true
}

// InSpec membership in a fixed set of values
type InSpec[T any] struct {
	Field  Field[T]
	Values []any
}

// IsSatisfiedBy is false for an empty set. Text is case-insensitive.
func (s InSpec[T]) IsSatisfiedBy(_ context.Context, entity T) bool {
	v := s.Field.Get(entity)
	if v == nil {
		return false
	}
	for _, want := range s.Values {
		if equalValues(v, want) {
			return true
		}
	}
	return false
}

// NoneSpec matches nothing. Used when a search term cannot apply to any field.
type NoneSpec[T any] struct{}

// IsSatisfiedBy always false
func (NoneSpec[T]) IsSatisfiedBy(context.Context, T) bool { return false }

// ============================================================================
// Constructors
// ============================================================================

func Equals[T any](field Field[T], value any) shared.Specification[T] {
	return EqualsSpec[T]{Field: field, Value: value}
}

func Contains[T any](field Field[T], term string) shared.Specification[T] {
	return ContainsSpec[T]{Field: field, Term: term}
}

func HasPrefix[T any](field Field[T], prefix string) shared.Specification[T] {
	return PrefixSpec[T]{Field: field, Prefix: prefix}
}

func In[T any](field Field[T], values ...any) shared.Specification[T] {
	if len(values) == 0 {
		return NoneSpec[T]{}
	}
	return InSpec[T]{Field: field, Values: values}
}

func Between[T any](field Field[T], from, to *time.Time) shared.Specification[T] {
	return BetweenSpec[T]{Field: field, From: from, To: to}
}

// Matches evaluates spec in memory, nil matches everything
func Matches[T any](ctx context.Context, spec shared.Specification[T], entity T) bool {
	if spec == nil {
		return true
	}
	return spec.IsSatisfiedBy(ctx, entity)
}

// FilterItems keeps the items that satisfy spec, preserving order
func FilterItems[T any](ctx context.Context, items []T, spec shared.Specification[T]) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if Matches(ctx, spec, item) {
			out = append(out, item)
		}
	}
	return out
}
