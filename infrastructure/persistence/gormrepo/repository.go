package gormrepo

import (
	"context"
	"fmt"

	"erp/domain/query"
	"erp/domain/shared"
	"erp/infrastructure/persistence"
	"erp/infrastructure/persistence/specification"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Mapping converts between a domain record T, its persistence object P and
// the key K.
type Mapping[T any, P any, K comparable] struct {
	FromDomain func(T) *P
	ToDomain   func(*P) T
	KeyWhere   func(K) clause.Expression
	// EntityKey extracts the key from a domain record, used by Update
	EntityKey func(T) K
}

// Repository is a GORM backed query.Store. One instance serves one table.
type Repository[T any, P any, K comparable] struct {
	db      *gorm.DB
	name    string
	mapping Mapping[T, P, K]
}

// NewRepository creates a repository for entity name
func NewRepository[T any, P any, K comparable](db *gorm.DB, name string, mapping Mapping[T, P, K]) *Repository[T, P, K] {
	return &Repository[T, P, K]{db: db, name: name, mapping: mapping}
}

// KeyColumn builds a KeyWhere for a single column key
func KeyColumn[K comparable](column string) func(K) clause.Expression {
	return func(k K) clause.Expression {
		return clause.Eq{Column: clause.Column{Name: column}, Value: k}
	}
}

func (r *Repository[T, P, K]) getDB(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx.WithContext(ctx)
	}
	return r.db.WithContext(ctx)
}

// scoped starts a fresh statement on the table with where applied
func (r *Repository[T, P, K]) scoped(ctx context.Context, where shared.Specification[T]) (*gorm.DB, error) {
	db := r.getDB(ctx).Model(new(P))
	expr, err := specification.Translate(where)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", r.name, err)
	}
	if expr != nil {
		db = db.Where(expr)
	}
	return db, nil
}

// Find counts every match, then loads the ordered window
func (r *Repository[T, P, K]) Find(ctx context.Context, c query.Criteria[T]) ([]T, int64, error) {
	db, err := r.scoped(ctx, c.Where)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := db.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, classify(r.name, err)
	}
	if total == 0 || (c.Limit > 0 && int64(c.Offset) >= total) {
		return []T{}, total, nil
	}

	page := db.Session(&gorm.Session{})
	if len(c.Orders) > 0 {
		page = page.Clauses(specification.OrderBy(c.Orders))
	}
	if c.Offset > 0 {
		page = page.Offset(c.Offset)
	}
	if c.Limit > 0 {
		page = page.Limit(c.Limit)
	}

	var rows []P
	if err := page.Find(&rows).Error; err != nil {
		return nil, 0, classify(r.name, err)
	}
	items := make([]T, 0, len(rows))
	for i := range rows {
		items = append(items, r.mapping.ToDomain(&rows[i]))
	}
	return items, total, nil
}

// CountBy pushes the grouping down as GROUP BY
func (r *Repository[T, P, K]) CountBy(ctx context.Context, where shared.Specification[T], field query.Field[T]) (map[string]int64, error) {
	db, err := r.scoped(ctx, where)
	if err != nil {
		return nil, err
	}

	col := specification.Column(field)
	rows, err := db.Select("? AS group_key, COUNT(*) AS group_count", col).Group(field.Column).Rows()
	if err != nil {
		return nil, classify(r.name, err)
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var key any
		var n int64
		if err := rows.Scan(&key, &n); err != nil {
			return nil, classify(r.name, err)
		}
		// NULL and "" share a bucket, as in memory
		counts[query.GroupKey(key)] += n
	}
	if err := rows.Err(); err != nil {
		return nil, classify(r.name, err)
	}
	return counts, nil
}

// Sum evaluates COALESCE(SUM(expr), 0) rounded to pence
func (r *Repository[T, P, K]) Sum(ctx context.Context, where shared.Specification[T], metric query.Metric[T]) (decimal.Decimal, error) {
	db, err := r.scoped(ctx, where)
	if err != nil {
		return decimal.Zero, err
	}

	var total decimal.NullDecimal
	if err := db.Select("COALESCE(SUM(" + metric.Expr + "), 0)").Row().Scan(&total); err != nil {
		return decimal.Zero, classify(r.name, err)
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal.Round(2), nil
}

// Get loads one row by key
func (r *Repository[T, P, K]) Get(ctx context.Context, key K) (T, error) {
	var row P
	if err := r.getDB(ctx).Where(r.mapping.KeyWhere(key)).Take(&row).Error; err != nil {
		var zero T
		return zero, classify(r.name, err)
	}
	return r.mapping.ToDomain(&row), nil
}

// Insert creates the row and returns it with generated keys filled in
func (r *Repository[T, P, K]) Insert(ctx context.Context, entity T) (T, error) {
	row := r.mapping.FromDomain(entity)
	if err := r.getDB(ctx).Create(row).Error; err != nil {
		var zero T
		return zero, classify(r.name, err)
	}
	return r.mapping.ToDomain(row), nil
}

// Update writes every column of the row with the same key
func (r *Repository[T, P, K]) Update(ctx context.Context, entity T) error {
	row := r.mapping.FromDomain(entity)
	result := r.getDB(ctx).Model(new(P)).
		Where(r.mapping.KeyWhere(r.mapping.EntityKey(entity))).
		Select("*").
		Updates(row)
	if result.Error != nil {
		return classify(r.name, result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.NewNotFoundError(r.name)
	}
	return nil
}

// Delete removes the row with key
func (r *Repository[T, P, K]) Delete(ctx context.Context, key K) error {
	result := r.getDB(ctx).Where(r.mapping.KeyWhere(key)).Delete(new(P))
	if result.Error != nil {
		return classify(r.name, result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.NewNotFoundError(r.name)
	}
	return nil
}

// Distinct returns the distinct non-null values of field among rows
// matching where, in ascending order
func (r *Repository[T, P, K]) Distinct(ctx context.Context, where shared.Specification[T], field query.Field[T]) ([]string, error) {
	db, err := r.scoped(ctx, where)
	if err != nil {
		return nil, err
	}

	col := specification.Column(field)
	rows, err := db.Distinct(field.Column).
		Where(clause.Expr{SQL: "? IS NOT NULL", Vars: []any{col}}).
		Order(clause.OrderByColumn{Column: col}).
		Rows()
	if err != nil {
		return nil, classify(r.name, err)
	}
	defer rows.Close()

	var values []string
	for rows.Next() {
		var v any
		if err := rows.Scan(&v); err != nil {
			return nil, classify(r.name, err)
		}
		values = append(values, query.GroupKey(v))
	}
	return values, classify(r.name, rows.Err())
}

var (
	_ query.Store[int64, int64] = (*Repository[int64, struct{}, int64])(nil)
	_ query.Distincter[int64]   = (*Repository[int64, struct{}, int64])(nil)
)
