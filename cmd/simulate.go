package cmd

import (
	"errors"
	"fmt"
	"strings"

	"purchasing/internal/core/domain/model/kernel"
	"purchasing/internal/core/domain/model/order"
	"purchasing/internal/pkg/errs"
)

// StepPay is the simulation step that records a payment instead of firing a trigger.
const StepPay = "pay"

// SimulationStep is the outcome of one step against a simulated order.
type SimulationStep struct {
	Step         string
	Status       order.Status
	IsPaid       bool
	RetryCounter int
	Err          error
}

// ParseSteps splits "pay,confirm,cancel" and rejects unknown steps.
func ParseSteps(raw string) ([]string, error) {
	var (
		steps    []string
		problems []error
	)
	for _, step := range strings.Split(raw, ",") {
		step = strings.ToLower(strings.TrimSpace(step))
		if step == "" {
			continue
		}
		if step != StepPay {
			if _, err := order.ParseTrigger(step); err != nil {
				problems = append(problems, err)
				continue
			}
		}
		steps = append(steps, step)
	}

	if err := errors.Join(problems...); err != nil {
		return nil, err
	}
	if len(steps) == 0 {
		return nil, errs.NewValueIsRequiredError("steps")
	}
	return steps, nil
}

// Simulate runs steps against a fresh Pending order of the given engine.
// Rejected triggers are recorded on their step and the run continues.
func Simulate(factory order.Factory, engine order.Engine, steps []string) ([]SimulationStep, error) {
	o, err := factory.New(engine, kernel.NewUUID(), order.Pending)
	if err != nil {
		return nil, err
	}

	results := make([]SimulationStep, 0, len(steps))
	for _, step := range steps {
		var stepErr error
		if step == StepPay {
			o.Pay()
		} else {
			trigger, parseErr := order.ParseTrigger(step)
			if parseErr != nil {
				return nil, parseErr
			}
			stepErr = o.Fire(trigger)
		}

		results = append(results, SimulationStep{
			Step:         step,
			Status:       o.Status(),
			IsPaid:       o.IsPaid(),
			RetryCounter: o.RetryCounter(),
			Err:          stepErr,
		})
	}
	return results, nil
}

func (s SimulationStep) String() string {
	line := fmt.Sprintf("%-8s -> %-10s paid=%t retries=%d", s.Step, s.Status, s.IsPaid, s.RetryCounter)
	if s.Err != nil {
		line += " rejected: " + s.Err.Error()
	}
	return line
}
