package ports

import (
	"context"
)

// UnitOfWorkFactory creates a UnitOfWork per command or query.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is the serialization boundary around order access.
// Between Begin and Commit/Rollback the caller has exclusive access to the
// orders it reads; triggers must only be fired inside that window.
type UnitOfWork interface {
	// Begin acquires exclusive access. It fails if ctx is done first.
	Begin(ctx context.Context) error

	// Commit publishes staged additions and releases access.
	Commit(ctx context.Context) error

	// Rollback discards staged additions and releases access.
	// Without an active unit, for example after Commit, it is a no-op.
	Rollback(ctx context.Context) error

	// OrderRepository returns a repository bound to this unit of work.
	OrderRepository() OrderRepository
}
