package shared

import (
	"context"
)

// Specification defines the interface for domain specifications
// A specification encapsulates a rule for selecting records
// It is evaluated in memory by IsSatisfiedBy and translated to SQL by the persistence layer
type Specification[T any] interface {
	// IsSatisfiedBy checks if an entity satisfies the specification
	IsSatisfiedBy(ctx context.Context, entity T) bool
}

// ============================================================================
// Composite Specifications
// ============================================================================

// AndSpecification represents the logical AND of two specifications
type AndSpecification[T any] struct {
	Left  Specification[T]
	Right Specification[T]
}

// IsSatisfiedBy returns true if both left and right specifications are satisfied
func (spec AndSpecification[T]) IsSatisfiedBy(ctx context.Context, entity T) bool {
	return spec.Left.IsSatisfiedBy(ctx, entity) && spec.Right.IsSatisfiedBy(ctx, entity)
}

// And creates a new AndSpecification, nil operands are dropped
func And[T any](left, right Specification[T]) Specification[T] {
	if left == nil {
		return right
	}
	if right == nil {
		return left
	}
	return AndSpecification[T]{
		Left:  left,
		Right: right,
	}
}

// OrSpecification represents the logical OR of two specifications
type OrSpecification[T any] struct {
	Left  Specification[T]
	Right Specification[T]
}

// IsSatisfiedBy returns true if either left or right specification is satisfied
func (spec OrSpecification[T]) IsSatisfiedBy(ctx context.Context, entity T) bool {
	return spec.Left.IsSatisfiedBy(ctx, entity) || spec.Right.IsSatisfiedBy(ctx, entity)
}

// Or creates a new OrSpecification, nil operands are dropped
func Or[T any](left, right Specification[T]) Specification[T] {
	if left == nil {
		return right
	}
	if right == nil {
		return left
	}
	return OrSpecification[T]{
		Left:  left,
		Right: right,
	}
}

// NotSpecification represents the logical NOT of a specification
type NotSpecification[T any] struct {
	Spec Specification[T]
}

// IsSatisfiedBy returns true if the inner specification is NOT satisfied
func (spec NotSpecification[T]) IsSatisfiedBy(ctx context.Context, entity T) bool {
	return !spec.Spec.IsSatisfiedBy(ctx, entity)
}

// Not creates a new NotSpecification
func Not[T any](inner Specification[T]) Specification[T] {
	return NotSpecification[T]{
		Spec: inner,
	}
}

// AllOf folds specs with And, nil when specs is empty
func AllOf[T any](specs ...Specification[T]) Specification[T] {
	var result Specification[T]
	for _, s := range specs {
		result = And(result, s)
	}
	return result
}

// AnyOf folds specs with Or, nil when specs is empty
func AnyOf[T any](specs ...Specification[T]) Specification[T] {
	var result Specification[T]
	for _, s := range specs {
		result = Or(result, s)
	}
	return result
}
