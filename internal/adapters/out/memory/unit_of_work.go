// Package memory keeps live orders in process memory behind a unit of work.
//
// Orders are not durable: they live as long as the Store. The unit of work is
// the serialization boundary for order access: Begin acquires the store-wide
// lock and Commit or Rollback release it, so every command observes and
// mutates orders one at a time.
//
// Usage:
//
//	factory := memory.NewUnitOfWorkFactory(memory.NewStore())
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	o, err := uow.OrderRepository().Get(ctx, id)
//	...
//	return uow.Commit(ctx)
package memory

import (
	"context"
	"errors"

	"purchasing/internal/core/domain/model/order"
	"purchasing/internal/core/ports"

	"github.com/google/uuid"
)

// ErrTransactionNotActive is returned when repository access or Commit
// happen outside Begin.
var ErrTransactionNotActive = errors.New("unit of work is not active")

// Store owns the orders and the lock guarding them.
type Store struct {
	sem    chan struct{}
	orders map[uuid.UUID]order.Lifecycle
}

func NewStore() *Store {
	return &Store{
		sem:    make(chan struct{}, 1),
		orders: make(map[uuid.UUID]order.Lifecycle),
	}
}

// UnitOfWorkFactory creates units of work over one Store.
type UnitOfWorkFactory struct {
	store *Store
}

func NewUnitOfWorkFactory(store *Store) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{store: store}
}

func (f *UnitOfWorkFactory) Create() ports.UnitOfWork {
	return &UnitOfWork{store: f.store}
}

// UnitOfWork stages additions until Commit. Triggers fired on orders obtained
// through it take effect immediately; domain operations are all-or-nothing so
// there is nothing to undo on Rollback.
type UnitOfWork struct {
	store  *Store
	active bool
	staged []order.Lifecycle
}

// Begin waits for exclusive access to the store or for ctx to be done.
// Calling Begin on an active unit is a no-op.
func (uow *UnitOfWork) Begin(ctx context.Context) error {
	if uow.active {
		return nil
	}

	select {
	case uow.store.sem <- struct{}{}:
		uow.active = true
		uow.staged = nil
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (uow *UnitOfWork) Commit(_ context.Context) error {
	if !uow.active {
		return ErrTransactionNotActive
	}

	for _, o := range uow.staged {
		uow.store.orders[o.ID().Bytes()] = o
	}
	uow.release()
	return nil
}

func (uow *UnitOfWork) Rollback(_ context.Context) error {
	if !uow.active {
		return nil
	}

	uow.release()
	return nil
}

func (uow *UnitOfWork) OrderRepository() ports.OrderRepository {
	return &OrderRepository{uow: uow}
}

func (uow *UnitOfWork) release() {
	uow.staged = nil
	uow.active = false
	<-uow.store.sem
}

func (uow *UnitOfWork) stage(o order.Lifecycle) {
	uow.staged = append(uow.staged, o)
}
