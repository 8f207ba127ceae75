// Package statemachine is a small guarded state machine engine. States and
// triggers are declared with a fluent Config; the committed state and the set
// of legal edges live in a go-fsm machine.
package statemachine

import "fmt"

// State is any comparable value with a stable name.
type State interface {
	comparable
	fmt.Stringer
}

// GuardFunc reports whether a transition row is eligible.
type GuardFunc func() bool

type transitionRow[S State, T State] struct {
	trigger          T
	destination      S
	guard            GuardFunc
	guardDescription string
	reentry          bool
}

func (r transitionRow[S, T]) allowed() bool {
	return r.guard == nil || r.guard()
}

type exitAction struct {
	action      func()
	description string
}

// Config holds the declared rows of every configured state.
type Config[S State, T State] struct {
	states map[S]*StateConfig[S, T]
	order  []S
}

func NewConfig[S State, T State]() *Config[S, T] {
	return &Config[S, T]{states: make(map[S]*StateConfig[S, T])}
}

// Configure returns the builder for state, creating it on first use.
func (c *Config[S, T]) Configure(state S) *StateConfig[S, T] {
	if sc, ok := c.states[state]; ok {
		return sc
	}
	sc := &StateConfig[S, T]{state: state}
	c.states[state] = sc
	c.order = append(c.order, state)
	return sc
}

// StateConfig declares the outgoing rows and exit actions of one state.
// Rows for the same trigger are evaluated in declaration order.
type StateConfig[S State, T State] struct {
	state S
	rows  []transitionRow[S, T]
	exits []exitAction
}

// Permit allows trigger to move unconditionally to destination.
func (sc *StateConfig[S, T]) Permit(trigger T, destination S) *StateConfig[S, T] {
	sc.rows = append(sc.rows, transitionRow[S, T]{trigger: trigger, destination: destination})
	return sc
}

// PermitIf allows trigger to move to destination while guard holds.
func (sc *StateConfig[S, T]) PermitIf(trigger T, destination S, guard GuardFunc, description string) *StateConfig[S, T] {
	sc.rows = append(sc.rows, transitionRow[S, T]{
		trigger:          trigger,
		destination:      destination,
		guard:            guard,
		guardDescription: description,
	})
	return sc
}

// PermitReentryIf allows trigger to leave and re-enter the same state while
// guard holds. Exit actions run as for any other transition.
func (sc *StateConfig[S, T]) PermitReentryIf(trigger T, guard GuardFunc, description string) *StateConfig[S, T] {
	sc.rows = append(sc.rows, transitionRow[S, T]{
		trigger:          trigger,
		destination:      sc.state,
		guard:            guard,
		guardDescription: description,
		reentry:          true,
	})
	return sc
}

// OnExit registers an action run whenever a trigger moves out of the state,
// reentry included.
func (sc *StateConfig[S, T]) OnExit(action func(), description string) *StateConfig[S, T] {
	sc.exits = append(sc.exits, exitAction{action: action, description: description})
	return sc
}

// edges compiles the rows into the allowed-transitions table go-fsm expects.
// Every state that appears anywhere gets a key, terminal states with an empty list.
func (c *Config[S, T]) edges(initial S) (map[string][]string, map[string]S) {
	transitions := make(map[string][]string)
	known := make(map[string]S)

	register := func(s S) {
		if _, ok := known[s.String()]; ok {
			return
		}
		known[s.String()] = s
		transitions[s.String()] = []string{}
	}

	register(initial)
	for _, state := range c.order {
		register(state)
		for _, row := range c.states[state].rows {
			register(row.destination)
		}
	}

	for _, state := range c.order {
		seen := make(map[string]struct{})
		for _, row := range c.states[state].rows {
			name := row.destination.String()
			if _, dup := seen[name]; dup {
				continue
			}
			seen[name] = struct{}{}
			transitions[state.String()] = append(transitions[state.String()], name)
		}
	}

	return transitions, known
}
