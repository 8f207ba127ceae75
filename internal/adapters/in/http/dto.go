package http

import (
	"purchasing/internal/core/application/usecases/queries"
)

// Error is the body of every non-2xx response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// NewOrder is the optional body of POST /api/v1/orders.
type NewOrder struct {
	Engine string `json:"engine"`
	Status string `json:"status"`
}

type Order struct {
	ID           string `json:"id"`
	Engine       string `json:"engine"`
	Status       string `json:"status"`
	IsPaid       bool   `json:"isPaid"`
	RetryCounter int    `json:"retryCounter"`
}

type DiscountQuote struct {
	Price float64 `json:"price"`
	Code  string  `json:"code"`
	Total float64 `json:"total"`
}

func toOrder(o queries.OrderResponse) Order {
	return Order{
		ID:           o.ID.String(),
		Engine:       o.Engine.String(),
		Status:       o.Status.String(),
		IsPaid:       o.IsPaid,
		RetryCounter: o.RetryCounter,
	}
}
