package memory

import (
	"context"
	"sync"

	"erp/domain/shared"
)

// Snapshotter is implemented by every Collection
type Snapshotter interface {
	Snapshot() (restore func())
}

type uowKey struct{}

// UnitOfWork serialises writes across collections and restores every
// registered collection when fn fails.
type UnitOfWork struct {
	mu          sync.Mutex
	collections []Snapshotter
}

// NewUnitOfWork creates a UnitOfWork covering collections
func NewUnitOfWork(collections ...Snapshotter) *UnitOfWork {
	return &UnitOfWork{collections: collections}
}

// Register adds collections after construction
func (u *UnitOfWork) Register(collections ...Snapshotter) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.collections = append(u.collections, collections...)
}

// Execute runs fn, rolling back on error. Nested calls join the outer unit.
func (u *UnitOfWork) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(uowKey{}) == u {
		return fn(ctx)
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	restores := make([]func(), 0, len(u.collections))
	for _, c := range u.collections {
		restores = append(restores, c.Snapshot())
	}

	if err := fn(context.WithValue(ctx, uowKey{}, u)); err != nil {
		for _, restore := range restores {
			restore()
		}
		return err
	}
	return nil
}

var _ shared.UnitOfWork = (*UnitOfWork)(nil)
