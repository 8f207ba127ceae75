package commands

import (
	"errors"

	"purchasing/internal/pkg/guard"
)

var ErrRetryPendingConfirmationsCommandIsNotConstructed = errors.New(
	"RetryPendingConfirmationsCommand must be created via NewRetryPendingConfirmationsCommand constructor",
)

// RetryPendingConfirmationsCommand re-fires Confirm on pending orders.
// It is parameterless and typically issued by the confirmation retry job.
type RetryPendingConfirmationsCommand struct {
	guard guard.ConstructorGuard
}

func NewRetryPendingConfirmationsCommand() RetryPendingConfirmationsCommand {
	return RetryPendingConfirmationsCommand{guard: guard.NewConstructorGuard()}
}

func (c RetryPendingConfirmationsCommand) Validate() error {
	return c.guard.Validate(ErrRetryPendingConfirmationsCommandIsNotConstructed)
}
