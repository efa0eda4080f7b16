/*
Package memory provides in-process stores for the memory database driver and
for service tests. Every Collection evaluates the same specification tree the
SQL backend translates, so both backends return the same pages.
*/
package memory

import (
	"context"
	"slices"
	"sync"

	"erp/domain/query"
	"erp/domain/shared"

	"github.com/shopspring/decimal"
)

// Option configures a Collection
type Option[T any, K comparable] func(*Collection[T, K])

// WithSequence assigns generated keys on Insert. assign receives the next
// sequence number and returns the entity with its key set; it is only
// called when the entity's key is the zero value.
func WithSequence[T any, K comparable](assign func(entity T, next int64) T) Option[T, K] {
	return func(c *Collection[T, K]) { c.assign = assign }
}

// WithSeed loads initial rows. Generated keys in the seed advance the sequence.
func WithSeed[T any, K comparable](rows ...T) Option[T, K] {
	return func(c *Collection[T, K]) { c.seed = append(c.seed, rows...) }
}

// WithUnique declares a natural key besides K. Insert and Update reject a
// row whose natural key is already held by a different row.
func WithUnique[T any, K comparable](natural func(T) string) Option[T, K] {
	return func(c *Collection[T, K]) { c.unique = append(c.unique, natural) }
}

// Collection is an in-memory query.Store keyed by K
type Collection[T any, K comparable] struct {
	mu     sync.RWMutex
	name   string
	key    func(T) K
	items  []T
	index  map[K]int
	seq    int64
	assign func(T, int64) T
	unique []func(T) string
	seed   []T
}

// NewCollection creates an empty collection. name is used in errors.
func NewCollection[T any, K comparable](name string, key func(T) K, opts ...Option[T, K]) *Collection[T, K] {
	c := &Collection[T, K]{
		name:  name,
		key:   key,
		index: make(map[K]int),
	}
	for _, opt := range opts {
		opt(c)
	}
	for _, row := range c.seed {
		c.insertLocked(row)
	}
	c.seed = nil
	return c
}

// Find filters, sorts and windows a snapshot of the collection
func (c *Collection[T, K]) Find(ctx context.Context, criteria query.Criteria[T]) ([]T, int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, shared.NewTransientError(c.name, err)
	}
	matched := c.matching(ctx, criteria.Where)
	query.SortItems(matched, criteria.Orders)
	return query.Window(matched, criteria.Offset, criteria.Limit), int64(len(matched)), nil
}

// CountBy groups the filtered rows by field
func (c *Collection[T, K]) CountBy(ctx context.Context, where shared.Specification[T], field query.Field[T]) (map[string]int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, shared.NewTransientError(c.name, err)
	}
	return query.CountBy(c.matching(ctx, where), field), nil
}

// Sum totals metric over the filtered rows
func (c *Collection[T, K]) Sum(ctx context.Context, where shared.Specification[T], metric query.Metric[T]) (decimal.Decimal, error) {
	if err := ctx.Err(); err != nil {
		return decimal.Zero, shared.NewTransientError(c.name, err)
	}
	return query.Sum(c.matching(ctx, where), metric).Round(2), nil
}

// Get returns the row stored under key
func (c *Collection[T, K]) Get(ctx context.Context, key K) (T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	i, ok := c.index[key]
	if !ok {
		var zero T
		return zero, shared.NewNotFoundError(c.name)
	}
	return c.items[i], nil
}

// Insert stores entity, assigning a generated key when configured
func (c *Collection[T, K]) Insert(ctx context.Context, entity T) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero K
	if c.assign != nil && c.key(entity) == zero {
		c.seq++
		entity = c.assign(entity, c.seq)
	}
	if _, exists := c.index[c.key(entity)]; exists || c.clashesLocked(entity) {
		var empty T
		return empty, shared.NewConflictError(c.name, c.name+" already exists", nil)
	}
	c.insertLocked(entity)
	return entity, nil
}

// Update replaces the row with the same key
func (c *Collection[T, K]) Update(ctx context.Context, entity T) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	i, ok := c.index[c.key(entity)]
	if !ok {
		return shared.NewNotFoundError(c.name)
	}
	if c.clashesLocked(entity) {
		return shared.NewConflictError(c.name, c.name+" already exists", nil)
	}
	c.items[i] = entity
	return nil
}

// Delete removes the row stored under key
func (c *Collection[T, K]) Delete(ctx context.Context, key K) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	i, ok := c.index[key]
	if !ok {
		return shared.NewNotFoundError(c.name)
	}
	c.items = slices.Delete(c.items, i, i+1)
	c.reindexLocked()
	return nil
}

// Len returns the number of stored rows
func (c *Collection[T, K]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// All returns a copy of every row in insertion order
func (c *Collection[T, K]) All() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.items)
}

// Snapshot captures the current rows and returns a function restoring them.
// UnitOfWork uses it to roll back a failed write.
func (c *Collection[T, K]) Snapshot() (restore func()) {
	c.mu.RLock()
	items, seq := slices.Clone(c.items), c.seq
	c.mu.RUnlock()

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		c.items, c.seq = items, seq
		c.reindexLocked()
	}
}

func (c *Collection[T, K]) matching(ctx context.Context, where shared.Specification[T]) []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return query.FilterItems(ctx, c.items, where)
}

func (c *Collection[T, K]) insertLocked(entity T) {
	c.index[c.key(entity)] = len(c.items)
	c.items = append(c.items, entity)
	if n, ok := any(c.key(entity)).(int64); ok && n > c.seq {
		c.seq = n
	}
}

// clashesLocked reports whether another row holds one of entity's natural keys
func (c *Collection[T, K]) clashesLocked(entity T) bool {
	key := c.key(entity)
	for _, natural := range c.unique {
		want := natural(entity)
		for _, item := range c.items {
			if c.key(item) != key && natural(item) == want {
				return true
			}
		}
	}
	return false
}

func (c *Collection[T, K]) reindexLocked() {
	clear(c.index)
	for i, item := range c.items {
		c.index[c.key(item)] = i
	}
}

// Distinct lists the distinct non-null values of field among matching rows
func (c *Collection[T, K]) Distinct(ctx context.Context, where shared.Specification[T], field query.Field[T]) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, shared.NewTransientError(c.name, err)
	}
	return query.Distinct(c.matching(ctx, where), field), nil
}

var (
	_ query.Store[int64, int64] = (*Collection[int64, int64])(nil)
	_ query.Distincter[int64]   = (*Collection[int64, int64])(nil)
)
