package ports

import (
	"context"

	"purchasing/internal/core/domain/model/kernel"
	"purchasing/internal/core/domain/model/order"
)

// OrderRepository holds the live orders of the service.
// Orders are returned by reference: triggers fired on them are visible to
// later readers without an explicit update.
type OrderRepository interface {
	// Add registers a new order. Adding an id twice fails.
	Add(ctx context.Context, aggregate order.Lifecycle) error

	// Get returns the order with id or an errs.ObjectNotFoundError.
	Get(ctx context.Context, id kernel.UUID) (order.Lifecycle, error)

	// GetAllInStatus returns the orders currently in status, sorted by id.
	GetAllInStatus(ctx context.Context, status order.Status) ([]order.Lifecycle, error)

	// GetAll returns every order, sorted by id.
	GetAll(ctx context.Context) ([]order.Lifecycle, error)
}
