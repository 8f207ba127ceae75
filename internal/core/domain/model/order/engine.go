package order

import (
	"fmt"
	"strings"

	"purchasing/internal/core/domain/model/kernel"
	"purchasing/internal/pkg/errs"
)

// Engine names the implementation executing an order's transitions.
type Engine int

const (
	EngineUnknown Engine = iota
	// EngineConditional is the Order type: hand written branches, no retry policy.
	EngineConditional
	// EngineTable is the Facade type: guarded transition table with bounded retries.
	EngineTable
)

func (e Engine) String() string {
	switch e {
	case EngineConditional:
		return "conditional"
	case EngineTable:
		return "table"
	default:
		return "unknown"
	}
}

// Validate rejects EngineUnknown and out of range values.
func (e Engine) Validate() error {
	if e != EngineConditional && e != EngineTable {
		return errs.NewValueIsInvalidErrorWithCause("engine is invalid", fmt.Errorf("%d is not a valid engine", e))
	}
	return nil
}

// ParseEngine resolves "conditional" or "table" case-insensitively.
func ParseEngine(name string) (Engine, error) {
	for _, e := range []Engine{EngineConditional, EngineTable} {
		if strings.EqualFold(strings.TrimSpace(name), e.String()) {
			return e, nil
		}
	}
	return EngineUnknown, errs.NewValueIsInvalidErrorWithCause("engine is invalid", fmt.Errorf("%q is not a known engine", name))
}

// Lifecycle is the capability set shared by both engines. Callers hold orders
// through this interface and cannot tell the engines apart except by the
// documented unpaid-confirmation policy.
type Lifecycle interface {
	ID() kernel.UUID
	Engine() Engine
	Status() Status
	IsPaid() bool
	RetryCounter() int

	// Pay records that the external payment collaborator settled the order. Idempotent.
	Pay()
	// Confirm fires TriggerConfirm.
	Confirm() error
	// Cancel fires TriggerCancel.
	Cancel() error
	// Fire dispatches any trigger; unknown triggers fail with errs.ErrInvalidTransition.
	Fire(trigger Trigger) error
}

var (
	_ Lifecycle = (*Order)(nil)
	_ Lifecycle = (*Facade)(nil)
)
