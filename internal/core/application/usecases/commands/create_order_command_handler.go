package commands

import (
	"context"

	"purchasing/internal/core/domain/model/order"
)

// CreateOrderCommandHandler builds the order with the requested engine and
// registers it in the repository.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	factory    order.Factory
}

// NewCreateOrderCommandHandler creates a handler for order creation.
// The order factory carries the observers attached to table-engine orders.
func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory, factory order.Factory) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		factory:    factory,
	}
}

// Handle creates the order and commits it. Nothing is registered on error.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	o, err := h.factory.New(cmd.Engine(), cmd.OrderID(), cmd.InitialStatus())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
