package commands

import (
	"context"
	"errors"
	"fmt"

	"purchasing/internal/core/domain/model/order"
)

// RetryPendingConfirmationsCommandHandler walks every Pending order and fires
// Confirm where the order's engine can make progress:
//   - paid orders of either engine move to Processing;
//   - unpaid table-engine orders count a retry, and are auto-canceled once
//     their retries are exhausted.
//
// Unpaid conditional-engine orders are skipped; confirming them can only fail.
type RetryPendingConfirmationsCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewRetryPendingConfirmationsCommandHandler(uowFactory OrderUoWFactory) RetryPendingConfirmationsCommandHandler {
	return RetryPendingConfirmationsCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle returns the number of orders Confirm was fired on. A failing order
// does not stop the others; failures are joined into the returned error.
func (h *RetryPendingConfirmationsCommandHandler) Handle(
	ctx context.Context,
	cmd RetryPendingConfirmationsCommand,
) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	pending, err := uow.OrderRepository().GetAllInStatus(ctx, order.Pending)
	if err != nil {
		return 0, err
	}

	var (
		processed int
		failures  []error
	)
	for _, o := range pending {
		if !o.IsPaid() && o.Engine() != order.EngineTable {
			continue
		}

		processed++
		if confirmErr := o.Confirm(); confirmErr != nil {
			failures = append(failures, fmt.Errorf("order %s: %w", o.ID(), confirmErr))
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return processed, err
	}

	return processed, errors.Join(failures...)
}
