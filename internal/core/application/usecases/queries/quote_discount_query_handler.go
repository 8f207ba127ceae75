package queries

import (
	"context"
)

// DiscountCalculator is the discount collaborator contract.
type DiscountCalculator interface {
	CalculateDiscount(price float64, code string) (float64, error)
}

type QuoteDiscountQueryHandler struct {
	calculator DiscountCalculator
}

func NewQuoteDiscountQueryHandler(calculator DiscountCalculator) QuoteDiscountQueryHandler {
	return QuoteDiscountQueryHandler{calculator: calculator}
}

func (h QuoteDiscountQueryHandler) Handle(_ context.Context, query QuoteDiscountQuery) (QuoteDiscountQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return QuoteDiscountQueryResponse{}, err
	}

	total, err := h.calculator.CalculateDiscount(query.Price(), query.Code())
	if err != nil {
		return QuoteDiscountQueryResponse{}, err
	}

	return QuoteDiscountQueryResponse{
		Price: query.Price(),
		Code:  query.Code(),
		Total: total,
	}, nil
}
