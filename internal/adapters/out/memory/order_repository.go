package memory

import (
	"context"
	"fmt"
	"sort"

	"purchasing/internal/core/domain/model/kernel"
	"purchasing/internal/core/domain/model/order"
	"purchasing/internal/pkg/errs"
)

// OrderRepository reads committed orders plus the orders staged in its unit of work.
type OrderRepository struct {
	uow *UnitOfWork
}

func (r *OrderRepository) Add(_ context.Context, aggregate order.Lifecycle) error {
	if !r.uow.active {
		return ErrTransactionNotActive
	}
	if aggregate == nil {
		return errs.NewValueIsRequiredError("order")
	}
	if _, exists := r.lookup(aggregate.ID()); exists {
		return errs.NewValueIsInvalidErrorWithCause("id", fmt.Errorf("order %s already exists", aggregate.ID()))
	}

	r.uow.stage(aggregate)
	return nil
}

func (r *OrderRepository) Get(_ context.Context, id kernel.UUID) (order.Lifecycle, error) {
	if !r.uow.active {
		return nil, ErrTransactionNotActive
	}

	o, ok := r.lookup(id)
	if !ok {
		return nil, errs.NewObjectNotFoundError("id", id.String())
	}
	return o, nil
}

func (r *OrderRepository) GetAllInStatus(ctx context.Context, status order.Status) ([]order.Lifecycle, error) {
	all, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	filtered := make([]order.Lifecycle, 0, len(all))
	for _, o := range all {
		if o.Status() == status {
			filtered = append(filtered, o)
		}
	}
	return filtered, nil
}

func (r *OrderRepository) GetAll(_ context.Context) ([]order.Lifecycle, error) {
	if !r.uow.active {
		return nil, ErrTransactionNotActive
	}

	all := make([]order.Lifecycle, 0, len(r.uow.store.orders)+len(r.uow.staged))
	for _, o := range r.uow.store.orders {
		all = append(all, o)
	}
	all = append(all, r.uow.staged...)

	sort.Slice(all, func(i, j int) bool {
		return all[i].ID().Compare(all[j].ID()) < 0
	})
	return all, nil
}

func (r *OrderRepository) lookup(id kernel.UUID) (order.Lifecycle, bool) {
	if o, ok := r.uow.store.orders[id.Bytes()]; ok {
		return o, true
	}
	for _, o := range r.uow.staged {
		if o.ID().IsEqual(id) {
			return o, true
		}
	}
	return nil, false
}
