package queries

import (
	"context"
	"errors"

	"purchasing/internal/core/domain/model/order"
	"purchasing/internal/pkg/guard"
)

var ErrGetLifecycleGraphQueryIsNotConstructed = errors.New(
	"GetLifecycleGraphQuery must be created via NewGetLifecycleGraphQuery constructor",
)

// GetLifecycleGraphQuery renders the table-engine lifecycle as Graphviz DOT.
type GetLifecycleGraphQuery struct {
	guard guard.ConstructorGuard
}

func NewGetLifecycleGraphQuery() GetLifecycleGraphQuery {
	return GetLifecycleGraphQuery{guard: guard.NewConstructorGuard()}
}

func (q GetLifecycleGraphQuery) Validate() error {
	return q.guard.Validate(ErrGetLifecycleGraphQueryIsNotConstructed)
}

type GetLifecycleGraphQueryHandler struct{}

func NewGetLifecycleGraphQueryHandler() GetLifecycleGraphQueryHandler {
	return GetLifecycleGraphQueryHandler{}
}

func (h GetLifecycleGraphQueryHandler) Handle(_ context.Context, query GetLifecycleGraphQuery) (string, error) {
	if err := query.Validate(); err != nil {
		return "", err
	}

	return order.TableGraph()
}
