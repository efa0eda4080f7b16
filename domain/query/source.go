package query

import (
	"context"

	"erp/domain/shared"

	"github.com/shopspring/decimal"
)

// Criteria is the outbound query: filter, sort and window.
// Limit <= 0 means unbounded.
type Criteria[T any] struct {
	Where  shared.Specification[T]
	Orders []Order[T]
	Offset int
	Limit  int
}

// Source is a named collection that can filter, sort, skip/take and count.
type Source[T any] interface {
	// Find returns the window and the count of all matches ignoring the window
	Find(ctx context.Context, c Criteria[T]) ([]T, int64, error)
	CountBy(ctx context.Context, where shared.Specification[T], field Field[T]) (map[string]int64, error)
	Sum(ctx context.Context, where shared.Specification[T], metric Metric[T]) (decimal.Decimal, error)
}

// Store adds single-record writes keyed by K.
//
// Get, Update and Delete return a shared.ErrNotFound error for a missing key.
// Insert returns a shared.ErrConflict error for a duplicate natural key and
// the stored record, including generated keys.
type Store[T any, K comparable] interface {
	Source[T]
	Get(ctx context.Context, key K) (T, error)
	Insert(ctx context.Context, entity T) (T, error)
	Update(ctx context.Context, entity T) error
	Delete(ctx context.Context, key K) error
}

// Distincter is implemented by sources that can list the distinct non-null
// values of a field, ascending
type Distincter[T any] interface {
	Distinct(ctx context.Context, where shared.Specification[T], field Field[T]) ([]string, error)
}
