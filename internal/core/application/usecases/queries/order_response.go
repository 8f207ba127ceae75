package queries

import (
	"purchasing/internal/core/domain/model/kernel"
	"purchasing/internal/core/domain/model/order"
)

// OrderResponse is the read model of a single order.
type OrderResponse struct {
	ID           kernel.UUID
	Engine       order.Engine
	Status       order.Status
	IsPaid       bool
	RetryCounter int
}

func newOrderResponse(o order.Lifecycle) OrderResponse {
	return OrderResponse{
		ID:           o.ID(),
		Engine:       o.Engine(),
		Status:       o.Status(),
		IsPaid:       o.IsPaid(),
		RetryCounter: o.RetryCounter(),
	}
}
