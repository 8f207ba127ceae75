package queries

import (
	"context"

	"purchasing/internal/core/ports"
)

// GetOpenOrdersQueryHandler lists Pending and Processing orders.
type GetOpenOrdersQueryHandler struct {
	uowFactory ports.UnitOfWorkFactory
}

func NewGetOpenOrdersQueryHandler(uowFactory ports.UnitOfWorkFactory) GetOpenOrdersQueryHandler {
	return GetOpenOrdersQueryHandler{uowFactory: uowFactory}
}

// Handle returns the open orders sorted by id; the slice is empty, never nil.
func (h GetOpenOrdersQueryHandler) Handle(ctx context.Context, query GetOpenOrdersQuery) ([]OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	all, err := uow.OrderRepository().GetAll(ctx)
	if err != nil {
		return nil, err
	}

	orders := make([]OrderResponse, 0, len(all))
	for _, o := range all {
		if o.Status().IsTerminal() {
			continue
		}
		orders = append(orders, newOrderResponse(o))
	}

	return orders, nil
}
