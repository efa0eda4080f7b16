package shared

import "context"

// UnitOfWork manages the transaction boundary of a write.
// Repositories called with the ctx passed to fn join the same transaction.
type UnitOfWork interface {
	Execute(ctx context.Context, fn func(ctx context.Context) error) error
}
