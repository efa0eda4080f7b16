package gormrepo

import (
	"context"
	"fmt"

	"erp/domain/shared"
	"erp/infrastructure/persistence"

	"gorm.io/gorm"
)

// UnitOfWork runs writes inside one database transaction.
// Repositories called with the ctx passed to fn pick the transaction up
// through persistence.TxFromContext.
type UnitOfWork struct {
	db *gorm.DB
}

// NewUnitOfWork creates a new UnitOfWork instance
func NewUnitOfWork(db *gorm.DB) *UnitOfWork {
	return &UnitOfWork{db: db}
}

// Execute begins a transaction, runs fn and commits, or rolls back when fn
// fails. A ctx that already carries a transaction joins it. Failed commits
// are not retried.
func (u *UnitOfWork) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	if persistence.TxFromContext(ctx) != nil {
		return fn(ctx)
	}

	tx := u.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return classify("transaction", fmt.Errorf("failed to begin transaction: %w", tx.Error))
	}

	txCtx := persistence.ContextWithTx(ctx, tx)
	if err := fn(txCtx); err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Commit().Error; err != nil {
		return classify("transaction", fmt.Errorf("failed to commit transaction: %w", err))
	}
	return nil
}

// Compile-time check that UnitOfWork implements shared.UnitOfWork
var _ shared.UnitOfWork = (*UnitOfWork)(nil)
