package statemachine

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"purchasing/internal/pkg/errs"

	"github.com/robbyt/go-fsm"
)

// ErrUnknownState is returned when go-fsm reports a state the Config never declared.
var ErrUnknownState = errors.New("state is not declared in the configuration")

// Transition describes one committed move.
type Transition[S State, T State] struct {
	Source      S
	Destination S
	Trigger     T
	At          time.Time
}

// IsReentry reports whether the transition left and re-entered the same state.
func (t Transition[S, T]) IsReentry() bool {
	return t.Source == t.Destination
}

// Observer is notified after a transition has been committed.
type Observer[S State, T State] func(Transition[S, T])

// Option configures a Machine.
type Option func(*options)

type options struct {
	logger *slog.Logger
	clock  func() time.Time
}

// WithLogger sets the logger used for transition records and for go-fsm itself.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithClock overrides the time source used to stamp transitions.
func WithClock(clock func() time.Time) Option {
	return func(o *options) {
		if clock != nil {
			o.clock = clock
		}
	}
}

// Machine fires triggers against a Config. It is not safe for concurrent use;
// callers serialize access to a machine the same way they serialize access to
// the entity that owns it.
type Machine[S State, T State] struct {
	config    *Config[S, T]
	fsm       *fsm.Machine
	known     map[string]S
	observers []Observer[S, T]
	logger    *slog.Logger
	clock     func() time.Time
}

// New compiles cfg and starts the machine in initial.
func New[S State, T State](cfg *Config[S, T], initial S, opts ...Option) (*Machine[S, T], error) {
	o := &options{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		clock:  time.Now,
	}
	for _, opt := range opts {
		opt(o)
	}

	transitions, known := cfg.edges(initial)
	inner, err := fsm.New(o.logger.Handler(), initial.String(), transitions)
	if err != nil {
		return nil, fmt.Errorf("failed to create state machine: %w", err)
	}

	return &Machine[S, T]{
		config: cfg,
		fsm:    inner,
		known:  known,
		logger: o.logger,
		clock:  o.clock,
	}, nil
}

// State returns the committed state.
func (m *Machine[S, T]) State() S {
	return m.known[m.fsm.GetState()]
}

// OnTransitioned registers an observer. Observers run synchronously, in
// registration order, after the new state is committed.
func (m *Machine[S, T]) OnTransitioned(observer Observer[S, T]) {
	if observer != nil {
		m.observers = append(m.observers, observer)
	}
}

// CanFire reports whether trigger would currently select a row.
func (m *Machine[S, T]) CanFire(trigger T) bool {
	_, ok := m.resolve(m.State(), trigger)
	return ok
}

// PermittedTriggers lists the triggers that currently select a row, in declaration order.
func (m *Machine[S, T]) PermittedTriggers() []T {
	sc, ok := m.config.states[m.State()]
	if !ok {
		return nil
	}

	var triggers []T
	seen := make(map[T]struct{})
	for _, row := range sc.rows {
		if _, dup := seen[row.trigger]; dup {
			continue
		}
		if row.allowed() {
			seen[row.trigger] = struct{}{}
			triggers = append(triggers, row.trigger)
		}
	}
	return triggers
}

// Fire evaluates the rows for trigger in the current state; the first row
// whose guard holds wins. With no eligible row nothing changes and an
// *errs.InvalidTransitionError is returned.
func (m *Machine[S, T]) Fire(trigger T) error {
	source := m.State()
	row, ok := m.resolve(source, trigger)
	if !ok {
		return errs.NewInvalidTransitionError(source.String(), trigger.String())
	}

	for _, exit := range m.config.states[source].exits {
		exit.action()
	}

	if err := m.fsm.Transition(row.destination.String()); err != nil {
		return errs.NewInvalidTransitionErrorWithCause(source.String(), trigger.String(), err)
	}
	if _, known := m.known[m.fsm.GetState()]; !known {
		return fmt.Errorf("%w: %s", ErrUnknownState, m.fsm.GetState())
	}

	m.notify(Transition[S, T]{
		Source:      source,
		Destination: row.destination,
		Trigger:     trigger,
		At:          m.clock(),
	})
	return nil
}

func (m *Machine[S, T]) resolve(state S, trigger T) (transitionRow[S, T], bool) {
	sc, ok := m.config.states[state]
	if !ok {
		return transitionRow[S, T]{}, false
	}
	for _, row := range sc.rows {
		if row.trigger == trigger && row.allowed() {
			return row, true
		}
	}
	return transitionRow[S, T]{}, false
}

func (m *Machine[S, T]) notify(t Transition[S, T]) {
	m.logger.Debug("State transitioned",
		"trigger", t.Trigger.String(),
		"source", t.Source.String(),
		"destination", t.Destination.String(),
		"at", t.At,
	)

	for _, observer := range m.observers {
		m.safeObserve(observer, t)
	}
}

// safeObserve isolates observer panics so a broken observer cannot undo or
// fail a committed transition.
func (m *Machine[S, T]) safeObserve(observer Observer[S, T], t Transition[S, T]) {
	defer func() {
		if r := recover(); r != nil {
			m.logger.Error("Transition observer panicked",
				"trigger", t.Trigger.String(),
				"source", t.Source.String(),
				"destination", t.Destination.String(),
				"panic", r,
			)
		}
	}()
	observer(t)
}
