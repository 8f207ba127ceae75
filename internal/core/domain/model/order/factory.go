package order

import (
	"fmt"

	"purchasing/internal/core/domain/model/kernel"
)

// Factory builds orders of either engine with shared Facade options
// (observers, logger, clock). Options only affect EngineTable orders.
type Factory struct {
	opts []FacadeOption
}

func NewFactory(opts ...FacadeOption) Factory {
	return Factory{opts: opts}
}

// New creates an order with the requested engine in the initial status.
func (f Factory) New(engine Engine, id kernel.UUID, initial Status) (Lifecycle, error) {
	var (
		o   Lifecycle
		err error
	)

	switch engine {
	case EngineConditional:
		var core *Order
		if core, err = NewOrder(id, initial); err == nil {
			o = core
		}
	case EngineTable:
		var facade *Facade
		if facade, err = NewFacade(id, initial, f.opts...); err == nil {
			o = facade
		}
	default:
		err = fmt.Errorf("cannot create order %s: %w", id, engine.Validate())
	}

	if err != nil {
		return nil, err
	}
	return o, nil
}
