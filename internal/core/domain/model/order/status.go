package order

import (
	"fmt"
	"strings"

	"purchasing/internal/pkg/errs"
)

// Status is the lifecycle state of an order.
type Status int

const (
	// Unknown is the zero value and never a valid status.
	Unknown Status = iota

	// Pending is the initial status. The order waits for payment and confirmation.
	Pending

	// Processing means the order was confirmed and is being fulfilled.
	Processing

	// Completed is terminal: the order was fulfilled.
	Completed

	// Canceled is terminal: the order was canceled by a caller or by the retry policy.
	Canceled
)

var statusNames = map[Status]string{
	Unknown:    "Unknown",
	Pending:    "Pending",
	Processing: "Processing",
	Completed:  "Completed",
	Canceled:   "Canceled",
}

// Statuses lists every valid status in lifecycle order.
func Statuses() []Status {
	return []Status{Pending, Processing, Completed, Canceled}
}

// Validate rejects Unknown and out of range values.
func (s Status) Validate() error {
	if s < Pending || s > Canceled {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String implements fmt.Stringer. Invalid values render as "Unknown".
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return statusNames[Unknown]
}

// IsTerminal reports whether no trigger is accepted in s.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Canceled
}

// ParseStatus resolves a status name case-insensitively. "Cancelled" is accepted as an alias.
func ParseStatus(name string) (Status, error) {
	normalized := strings.TrimSpace(name)
	if strings.EqualFold(normalized, "cancelled") {
		return Canceled, nil
	}
	for _, s := range Statuses() {
		if strings.EqualFold(normalized, s.String()) {
			return s, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a known status", name))
}
