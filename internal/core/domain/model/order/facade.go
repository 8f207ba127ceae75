package order

import (
	"fmt"
	"log/slog"
	"time"

	"purchasing/internal/core/domain/model/kernel"
	"purchasing/internal/pkg/errs"
	"purchasing/internal/pkg/statemachine"
)

// MaxUnpaidConfirmations is the number of unpaid confirmations the Facade
// absorbs as reentries before the next one cancels the order.
const MaxUnpaidConfirmations = 2

// Transition is a committed move of a Facade.
type Transition = statemachine.Transition[Status, Trigger]

// Observer is notified synchronously after every committed Facade transition.
// It cannot fail or block the transition; panics are recovered and logged.
type Observer func(id kernel.UUID, t Transition)

// FacadeOption configures a Facade.
type FacadeOption func(*facadeOptions)

type facadeOptions struct {
	observers []Observer
	logger    *slog.Logger
	clock     func() time.Time
}

func WithObserver(observer Observer) FacadeOption {
	return func(o *facadeOptions) {
		if observer != nil {
			o.observers = append(o.observers, observer)
		}
	}
}

func WithLogger(logger *slog.Logger) FacadeOption {
	return func(o *facadeOptions) {
		o.logger = logger
	}
}

func WithClock(clock func() time.Time) FacadeOption {
	return func(o *facadeOptions) {
		o.clock = clock
	}
}

// Facade exposes the Lifecycle contract through a declarative transition
// table. The wrapped Order owns identity, the paid flag and the retry
// counter; the state machine owns the status.
//
//	| State      | Trigger | Guard                   | Destination |
//	|------------|---------|-------------------------|-------------|
//	| Pending    | Confirm | paid                    | Processing  |
//	| Pending    | Confirm | unpaid, retries < 2     | Pending     |
//	| Pending    | Confirm | unpaid, retries >= 2    | Canceled    |
//	| Pending    | Cancel  |                         | Canceled    |
//	| Processing | Confirm |                         | Completed   |
//	| Processing | Cancel  |                         | Canceled    |
//
// Leaving Pending by any trigger, reentry included, increments the retry
// counter. A single paid confirmation therefore ends with RetryCounter() == 1,
// and cancelling a Pending order increments it as well.
type Facade struct {
	core    *Order
	machine *statemachine.Machine[Status, Trigger]
}

// NewFacade creates a table-driven order in the given initial status.
func NewFacade(id kernel.UUID, initial Status, opts ...FacadeOption) (*Facade, error) {
	core, err := NewOrder(id, initial)
	if err != nil {
		return nil, err
	}
	return wrapOrder(core, opts...)
}

// wrapOrder builds a Facade around a freshly constructed Order, starting the machine
// from the order's current status.
func wrapOrder(core *Order, opts ...FacadeOption) (*Facade, error) {
	if err := core.Validate(); err != nil {
		return nil, err
	}

	o := &facadeOptions{}
	for _, opt := range opts {
		opt(o)
	}

	f := &Facade{core: core}

	cfg := statemachine.NewConfig[Status, Trigger]()
	cfg.Configure(Pending).
		PermitIf(TriggerConfirm, Processing, f.isPaid, "paid").
		PermitReentryIf(TriggerConfirm, f.canRetryUnpaid, "unpaid, retries left").
		PermitIf(TriggerConfirm, Canceled, f.retriesExhausted, "unpaid, retries exhausted").
		Permit(TriggerCancel, Canceled).
		OnExit(core.countConfirmationAttempt, "retry counter++")
	cfg.Configure(Processing).
		Permit(TriggerConfirm, Completed).
		Permit(TriggerCancel, Canceled)

	var machineOpts []statemachine.Option
	if o.logger != nil {
		machineOpts = append(machineOpts, statemachine.WithLogger(o.logger.With("order_id", core.ID().String())))
	}
	if o.clock != nil {
		machineOpts = append(machineOpts, statemachine.WithClock(o.clock))
	}

	machine, err := statemachine.New(cfg, core.Status(), machineOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to configure order %s: %w", core.ID(), err)
	}

	for _, observer := range o.observers {
		machine.OnTransitioned(func(t Transition) {
			observer(core.ID(), t)
		})
	}

	f.machine = machine
	return f, nil
}

func (f *Facade) isPaid() bool {
	return f.core.IsPaid()
}

func (f *Facade) canRetryUnpaid() bool {
	return !f.core.IsPaid() && f.core.RetryCounter() < MaxUnpaidConfirmations
}

func (f *Facade) retriesExhausted() bool {
	return !f.core.IsPaid() && f.core.RetryCounter() >= MaxUnpaidConfirmations
}

func (f *Facade) ID() kernel.UUID {
	return f.core.ID()
}

func (f *Facade) Engine() Engine {
	return EngineTable
}

func (f *Facade) Status() Status {
	return f.machine.State()
}

func (f *Facade) IsPaid() bool {
	return f.core.IsPaid()
}

func (f *Facade) RetryCounter() int {
	return f.core.RetryCounter()
}

func (f *Facade) Pay() {
	f.core.Pay()
}

func (f *Facade) Confirm() error {
	return f.Fire(TriggerConfirm)
}

func (f *Facade) Cancel() error {
	return f.Fire(TriggerCancel)
}

func (f *Facade) Fire(trigger Trigger) error {
	if trigger != TriggerConfirm && trigger != TriggerCancel {
		return errs.NewInvalidTransitionError(f.Status().String(), trigger.String())
	}
	return f.machine.Fire(trigger)
}

// PermittedTriggers lists the triggers that would currently succeed.
func (f *Facade) PermittedTriggers() []Trigger {
	return f.machine.PermittedTriggers()
}

// Graph renders the transition table as a Graphviz DOT document.
func (f *Facade) Graph() string {
	return f.machine.DotGraph()
}

// TableGraph renders the Facade transition table starting from Pending.
func TableGraph() (string, error) {
	f, err := NewFacade(kernel.NewUUID(), Pending)
	if err != nil {
		return "", err
	}
	return f.Graph(), nil
}
