// Package metrics exports order lifecycle activity to Prometheus.
package metrics

import (
	"purchasing/internal/core/domain/model/kernel"
	"purchasing/internal/core/domain/model/order"

	"github.com/prometheus/client_golang/prometheus"
)

// TransitionRecorder counts committed order transitions. It is attached to
// orders as an observer, so it only ever sees transitions that succeeded.
type TransitionRecorder struct {
	transitions *prometheus.CounterVec
}

// NewTransitionRecorder registers purchasing_order_transitions_total on registerer.
func NewTransitionRecorder(registerer prometheus.Registerer) (*TransitionRecorder, error) {
	transitions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "purchasing",
		Subsystem: "order",
		Name:      "transitions_total",
		Help:      "Committed order lifecycle transitions.",
	}, []string{"source", "trigger", "destination"})

	if err := registerer.Register(transitions); err != nil {
		return nil, err
	}

	return &TransitionRecorder{transitions: transitions}, nil
}

// Observe matches order.Observer.
func (r *TransitionRecorder) Observe(_ kernel.UUID, t order.Transition) {
	r.transitions.WithLabelValues(
		t.Source.String(),
		t.Trigger.String(),
		t.Destination.String(),
	).Inc()
}
