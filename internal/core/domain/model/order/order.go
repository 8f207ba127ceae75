package order

import (
	"errors"

	"purchasing/internal/core/domain/model/kernel"
	"purchasing/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order was not created through NewOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrOrderIsNotPaid is the cause attached when a Pending order is confirmed before payment.
	ErrOrderIsNotPaid = errors.New("order is not paid")
)

// Order is the canonical purchase order. Its transitions are plain branches:
//
//   - Confirm: Pending -> Processing when paid, Processing -> Completed.
//   - Cancel:  Pending or Processing -> Canceled.
//
// Confirming an unpaid Pending order fails every time; Order has no retry
// policy and never changes its retry counter. Any failed trigger leaves the
// order untouched.
type Order struct {
	id           kernel.UUID
	status       Status
	isPaid       bool
	retryCounter int

	isConstructed bool
}

// NewOrder creates an order in the given initial status (Pending for new
// purchases, any valid status when resuming or testing).
//
// Example:
//
//	o, err := order.NewOrder(kernel.NewUUID(), order.Pending)
//	if err != nil {
//	    return err
//	}
//	o.Pay()
//	err = o.Confirm() // Processing
func NewOrder(id kernel.UUID, initial Status) (*Order, error) {
	if err := errors.Join(id.Validate(), initial.Validate()); err != nil {
		return nil, err
	}

	return &Order{
		id:            id,
		status:        initial,
		isConstructed: true,
	}, nil
}

// Validate ensures the Order was created through NewOrder.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

func (o *Order) Engine() Engine {
	return EngineConditional
}

func (o *Order) Status() Status {
	return o.status
}

func (o *Order) IsPaid() bool {
	return o.isPaid
}

func (o *Order) RetryCounter() int {
	return o.retryCounter
}

// Pay marks the order as paid. Calling it again has no further effect.
func (o *Order) Pay() {
	o.isPaid = true
}

// Confirm advances Pending (paid) to Processing and Processing to Completed.
func (o *Order) Confirm() error {
	switch o.status {
	case Pending:
		if !o.isPaid {
			return errs.NewInvalidTransitionErrorWithCause(o.status.String(), TriggerConfirm.String(), ErrOrderIsNotPaid)
		}
		o.status = Processing
	case Processing:
		o.status = Completed
	default:
		return errs.NewInvalidTransitionError(o.status.String(), TriggerConfirm.String())
	}
	return nil
}

// Cancel moves Pending or Processing to Canceled.
func (o *Order) Cancel() error {
	switch o.status {
	case Pending, Processing:
		o.status = Canceled
	default:
		return errs.NewInvalidTransitionError(o.status.String(), TriggerCancel.String())
	}
	return nil
}

func (o *Order) Fire(trigger Trigger) error {
	switch trigger {
	case TriggerConfirm:
		return o.Confirm()
	case TriggerCancel:
		return o.Cancel()
	default:
		return errs.NewInvalidTransitionError(o.status.String(), trigger.String())
	}
}

// countConfirmationAttempt is the Facade's exit action for Pending.
func (o *Order) countConfirmationAttempt() {
	o.retryCounter++
}
