/*
Package crud is the entity service facade: list, search, statistics and
single-record writes over any query.Store, driven by the entity's
query.EntityConfig.

Reads never open a transaction. Writes run inside a shared.UnitOfWork so a
write hook (an audit entry, say) commits or rolls back with the write itself.
Transient store failures are logged once here and returned unchanged; nothing
in this package retries.
*/
package crud

import (
	"context"
	"errors"

	"erp/domain/query"
	"erp/domain/shared"
	"erp/pkg/logger"

	"go.uber.org/zap"
)

// Op names a write for hooks and logs
type Op string

const (
	OpCreate Op = "create"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
)

// WriteHook runs inside the write's unit of work after the store accepted it.
// before is the zero value on create, after is the zero value on delete.
// Returning an error rolls the write back.
type WriteHook[T any] func(ctx context.Context, op Op, before, after T) error

// Option configures a Service
type Option[T any, K comparable] func(*Service[T, K])

// WithValidator checks records before Create and Update
func WithValidator[T any, K comparable](validate func(T) error) Option[T, K] {
	return func(s *Service[T, K]) { s.validate = validate }
}

// WithAfterWrite registers a hook run after every successful write
func WithAfterWrite[T any, K comparable](hook WriteHook[T]) Option[T, K] {
	return func(s *Service[T, K]) { s.hooks = append(s.hooks, hook) }
}

// WithPageSize overrides the entity's default page size. Values outside
// [1, query.MaxPageSize] are ignored.
func WithPageSize[T any, K comparable](size int) Option[T, K] {
	return func(s *Service[T, K]) {
		if size >= 1 && size <= query.MaxPageSize {
			s.config.DefaultPageSize = size
		}
	}
}

// WithLogger replaces the component logger
func WithLogger[T any, K comparable](l *zap.Logger) Option[T, K] {
	return func(s *Service[T, K]) { s.log = l }
}

// Service is the generic facade instantiated once per entity
type Service[T any, K comparable] struct {
	store    query.Store[T, K]
	config   query.EntityConfig[T]
	key      func(T) K
	uow      shared.UnitOfWork
	validate func(T) error
	hooks    []WriteHook[T]
	log      *zap.Logger
}

// NewService creates a facade over store. key extracts a record's key.
func NewService[T any, K comparable](store query.Store[T, K], config query.EntityConfig[T], key func(T) K, uow shared.UnitOfWork, opts ...Option[T, K]) *Service[T, K] {
	s := &Service[T, K]{
		store:  store,
		config: config,
		key:    key,
		uow:    uow,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = logger.Named("crud")
	}
	s.log = s.log.With(zap.String("entity", config.Name))
	return s
}

// Config returns the entity configuration in effect
func (s *Service[T, K]) Config() query.EntityConfig[T] { return s.config }

// Store exposes the underlying store to entity services
func (s *Service[T, K]) Store() query.Store[T, K] { return s.store }

// List returns one page of the filtered, sorted collection.
// Out of range paging is coerced, never rejected.
func (s *Service[T, K]) List(ctx context.Context, spec query.Spec) (query.PageResult[T], error) {
	return s.ListWhere(ctx, spec, nil)
}

// ListWhere is List with an extra constraint ANDed onto the spec's predicate
func (s *Service[T, K]) ListWhere(ctx context.Context, spec query.Spec, extra shared.Specification[T]) (query.PageResult[T], error) {
	spec = s.config.Normalize(spec)
	criteria := s.config.Criteria(spec)
	criteria.Where = shared.And(criteria.Where, extra)

	items, total, err := s.store.Find(ctx, criteria)
	if err != nil {
		return query.PageResult[T]{}, s.observe("list", err)
	}
	return query.NewPageResult(items, total, spec), nil
}

// Search lists with term replacing any search term in spec
func (s *Service[T, K]) Search(ctx context.Context, term string, spec query.Spec) (query.PageResult[T], error) {
	return s.List(ctx, spec.WithSearch(term))
}

// Statistics counts the filtered set, groups it and sums every metric.
// Paging in spec is ignored. An empty or unknown groupBy uses the entity's
// first group field.
func (s *Service[T, K]) Statistics(ctx context.Context, spec query.Spec, groupBy string) (query.Statistics, error) {
	return s.StatisticsWhere(ctx, spec, groupBy, nil)
}

// StatisticsWhere is Statistics with an extra constraint
func (s *Service[T, K]) StatisticsWhere(ctx context.Context, spec query.Spec, groupBy string, extra shared.Specification[T]) (query.Statistics, error) {
	spec = s.config.Normalize(spec)
	where := shared.And(s.config.Predicate(spec), extra)

	stats := query.NewStatistics()
	_, total, err := s.store.Find(ctx, query.Criteria[T]{Where: where, Limit: 1})
	if err != nil {
		return query.Statistics{}, s.observe("statistics", err)
	}
	stats.Total = total

	field, ok := s.config.GroupField(groupBy)
	if !ok && groupBy != "" {
		s.log.Debug("Unknown group field, using default", zap.String("group_by", groupBy))
		field, ok = s.config.GroupField("")
	}
	if ok {
		counts, err := s.store.CountBy(ctx, where, field)
		if err != nil {
			return query.Statistics{}, s.observe("statistics", err)
		}
		stats.GroupBy = field.Name
		stats.Counts = counts
	}

	for _, metric := range s.config.Sums {
		sum, err := s.store.Sum(ctx, where, metric)
		if err != nil {
			return query.Statistics{}, s.observe("statistics", err)
		}
		stats.Sums[metric.Name] = sum
	}
	return stats, nil
}

// GetByKey loads one record. found is false when no record has key.
func (s *Service[T, K]) GetByKey(ctx context.Context, key K) (entity T, found bool, err error) {
	entity, err = s.store.Get(ctx, key)
	switch {
	case err == nil:
		return entity, true, nil
	case shared.IsNotFound(err):
		var zero T
		return zero, false, nil
	default:
		var zero T
		return zero, false, s.observe("get", err)
	}
}

// Create validates and inserts entity, returning it with generated keys.
// A duplicate natural key yields a shared.ErrConflict error.
func (s *Service[T, K]) Create(ctx context.Context, entity T) (T, error) {
	var zero T
	if err := s.check(entity); err != nil {
		return zero, err
	}

	var created T
	err := s.uow.Execute(ctx, func(ctx context.Context) error {
		var err error
		if created, err = s.store.Insert(ctx, entity); err != nil {
			return err
		}
		return s.runHooks(ctx, OpCreate, zero, created)
	})
	if err != nil {
		return zero, s.observe(string(OpCreate), err)
	}
	return created, nil
}

// Update replaces the record with entity's key. found is false when the key
// does not exist.
func (s *Service[T, K]) Update(ctx context.Context, entity T) (updated T, found bool, err error) {
	var zero T
	if err := s.check(entity); err != nil {
		return zero, false, err
	}

	err = s.uow.Execute(ctx, func(ctx context.Context) error {
		before, err := s.store.Get(ctx, s.key(entity))
		if err != nil {
			return err
		}
		if err := s.store.Update(ctx, entity); err != nil {
			return err
		}
		return s.runHooks(ctx, OpUpdate, before, entity)
	})
	switch {
	case err == nil:
		return entity, true, nil
	case shared.IsNotFound(err):
		return zero, false, nil
	default:
		return zero, false, s.observe(string(OpUpdate), err)
	}
}

// Delete removes the record with key. Deleting a missing key reports false
// and no error, so repeating a delete is harmless.
func (s *Service[T, K]) Delete(ctx context.Context, key K) (bool, error) {
	var zero T
	err := s.uow.Execute(ctx, func(ctx context.Context) error {
		before, err := s.store.Get(ctx, key)
		if err != nil {
			return err
		}
		if err := s.store.Delete(ctx, key); err != nil {
			return err
		}
		return s.runHooks(ctx, OpDelete, before, zero)
	})
	switch {
	case err == nil:
		return true, nil
	case shared.IsNotFound(err):
		return false, nil
	default:
		return false, s.observe(string(OpDelete), err)
	}
}

func (s *Service[T, K]) check(entity T) error {
	if s.validate == nil {
		return nil
	}
	return s.validate(entity)
}

func (s *Service[T, K]) runHooks(ctx context.Context, op Op, before, after T) error {
	for _, hook := range s.hooks {
		if err := hook(ctx, op, before, after); err != nil {
			return err
		}
	}
	return nil
}

// observe logs transient failures once and passes every error through
func (s *Service[T, K]) observe(op string, err error) error {
	if errors.Is(err, shared.ErrTransient) {
		s.log.Warn("Store unavailable",
			zap.String("op", op),
			zap.Error(err),
		)
	}
	return err
}
