package errs

import (
	"errors"
	"fmt"
)

// ErrInvalidTransition is the sentinel for triggers that have no transition
// defined in the current state (or whose guards all rejected the move).
var ErrInvalidTransition = errors.New("invalid transition")

// InvalidTransitionError describes a rejected trigger. The state is never
// modified when this error is returned.
type InvalidTransitionError struct {
	State   string
	Trigger string
	Cause   error
}

func NewInvalidTransitionError(state, trigger string) *InvalidTransitionError {
	return &InvalidTransitionError{State: state, Trigger: trigger}
}

func NewInvalidTransitionErrorWithCause(state, trigger string, cause error) *InvalidTransitionError {
	return &InvalidTransitionError{State: state, Trigger: trigger, Cause: cause}
}

func (e *InvalidTransitionError) Error() string {
	return withCause(
		fmt.Sprintf("%s: trigger %s is not permitted in state %s", ErrInvalidTransition, e.Trigger, e.State),
		e.Cause,
	)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}
