package commands

import (
	"errors"

	"purchasing/internal/core/domain/model/kernel"
	"purchasing/internal/core/domain/model/order"
	"purchasing/internal/pkg/errs"
	"purchasing/internal/pkg/guard"
)

var ErrFireTriggerCommandIsNotConstructed = errors.New(
	"FireTriggerCommand must be created via NewFireTriggerCommand constructor",
)

// FireTriggerCommand requests a lifecycle trigger against an existing order.
//
// Example:
//
//	trigger, err := order.ParseTrigger(c.Param("trigger"))
//	if err != nil {
//	    return err
//	}
//	cmd, err := NewFireTriggerCommand(orderID, trigger)
//	if err != nil {
//	    return err
//	}
//
//	if err := handler.Handle(ctx, cmd); errors.Is(err, errs.ErrInvalidTransition) {
//	    // the order stays in its previous status
//	}
type FireTriggerCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	trigger order.Trigger

	guard guard.ConstructorGuard
}

func NewFireTriggerCommand(orderID kernel.UUID, trigger order.Trigger) (FireTriggerCommand, error) {
	cmd := FireTriggerCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setTrigger(trigger),
	); err != nil {
		return FireTriggerCommand{}, err
	}

	return cmd, nil
}

func (c FireTriggerCommand) Validate() error {
	return c.guard.Validate(ErrFireTriggerCommandIsNotConstructed)
}

func (c FireTriggerCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c FireTriggerCommand) Trigger() order.Trigger {
	return c.trigger
}

func (c *FireTriggerCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *FireTriggerCommand) setTrigger(trigger order.Trigger) error {
	if trigger != order.TriggerConfirm && trigger != order.TriggerCancel {
		return errs.NewValueIsRequiredError("trigger")
	}

	c.trigger = trigger
	return nil
}
