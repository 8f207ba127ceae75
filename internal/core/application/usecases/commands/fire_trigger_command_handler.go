package commands

import (
	"context"
)

// FireTriggerCommandHandler dispatches Confirm or Cancel to the order's engine.
// A rejected trigger leaves the order untouched and its error is returned as is,
// so callers can match errs.ErrInvalidTransition.
type FireTriggerCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewFireTriggerCommandHandler(uowFactory OrderUoWFactory) FireTriggerCommandHandler {
	return FireTriggerCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h *FireTriggerCommandHandler) Handle(ctx context.Context, cmd FireTriggerCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = o.Fire(cmd.Trigger()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
