package queries

import (
	"errors"
	"strings"

	"purchasing/internal/pkg/guard"
)

var ErrQuoteDiscountQueryIsNotConstructed = errors.New(
	"QuoteDiscountQuery must be created via NewQuoteDiscountQuery constructor",
)

// QuoteDiscountQuery asks the discount collaborator for the price after a code.
// Price validation is left to the collaborator so its error surfaces unchanged.
type QuoteDiscountQuery struct {
	price float64
	code  string

	guard guard.ConstructorGuard
}

func NewQuoteDiscountQuery(price float64, code string) QuoteDiscountQuery {
	return QuoteDiscountQuery{
		price: price,
		code:  strings.TrimSpace(code),
		guard: guard.NewConstructorGuard(),
	}
}

func (q QuoteDiscountQuery) Validate() error {
	return q.guard.Validate(ErrQuoteDiscountQueryIsNotConstructed)
}

func (q QuoteDiscountQuery) Price() float64 {
	return q.price
}

func (q QuoteDiscountQuery) Code() string {
	return q.code
}

type QuoteDiscountQueryResponse struct {
	Price float64
	Code  string
	Total float64
}
