package order

import (
	"fmt"
	"strings"

	"purchasing/internal/pkg/errs"
)

// Trigger is an event requested against an order.
type Trigger int

const (
	TriggerUnknown Trigger = iota
	TriggerConfirm
	TriggerCancel
)

func (t Trigger) String() string {
	switch t {
	case TriggerConfirm:
		return "Confirm"
	case TriggerCancel:
		return "Cancel"
	default:
		return "Unknown"
	}
}

// ParseTrigger resolves "confirm" or "cancel" case-insensitively.
func ParseTrigger(name string) (Trigger, error) {
	for _, t := range []Trigger{TriggerConfirm, TriggerCancel} {
		if strings.EqualFold(strings.TrimSpace(name), t.String()) {
			return t, nil
		}
	}
	return TriggerUnknown, errs.NewValueIsInvalidErrorWithCause("trigger is invalid", fmt.Errorf("%q is not a known trigger", name))
}
