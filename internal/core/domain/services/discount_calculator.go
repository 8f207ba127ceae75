package services

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"purchasing/internal/pkg/errs"
)

var (
	// ErrNegativePrice is returned for prices below zero.
	ErrNegativePrice = errs.NewValueIsInvalidError("negative price not allowed")

	// ErrNonFinitePrice is returned for NaN and infinite prices.
	ErrNonFinitePrice = errs.NewValueIsInvalidError("price must be a finite number")

	// ErrInvalidDiscountCode is returned for non-empty codes that are not configured.
	ErrInvalidDiscountCode = errs.NewValueIsInvalidError("invalid discount code")
)

// DefaultDiscountCodes maps the built-in codes to their percentage reduction.
func DefaultDiscountCodes() map[string]int {
	return map[string]int{
		"SAVE10NOW":     10,
		"DISCOUNT20OFF": 20,
	}
}

// DiscountCalculator applies fixed percentage discount codes to a price.
// It is stateless after construction and safe for concurrent use.
//
// Example:
//
//	calc, _ := NewDiscountCalculator(DefaultDiscountCodes())
//	total, err := calc.CalculateDiscount(100, "SAVE10NOW") // 90
type DiscountCalculator struct {
	codes map[string]int
}

// NewDiscountCalculator validates that every code is non-empty and every
// percentage lies in [0, 100].
func NewDiscountCalculator(codes map[string]int) (DiscountCalculator, error) {
	validated := make(map[string]int, len(codes))
	for code, percent := range codes {
		if strings.TrimSpace(code) == "" {
			return DiscountCalculator{}, errs.NewValueIsRequiredError("discount code")
		}
		if percent < 0 || percent > 100 {
			return DiscountCalculator{}, errs.NewValueIsOutOfRangeError(fmt.Sprintf("discount %s", code), percent, 0, 100)
		}
		validated[code] = percent
	}
	return DiscountCalculator{codes: validated}, nil
}

// CalculateDiscount returns price reduced by the percentage of code.
// An empty code returns the price unchanged.
func (c DiscountCalculator) CalculateDiscount(price float64, code string) (float64, error) {
	if math.IsNaN(price) || math.IsInf(price, 0) {
		return 0, ErrNonFinitePrice
	}
	if price < 0 {
		return 0, ErrNegativePrice
	}
	if code == "" {
		return price, nil
	}

	percent, ok := c.codes[code]
	if !ok {
		return 0, ErrInvalidDiscountCode
	}

	return price - price*float64(percent)/100, nil
}

// Codes returns the configured codes sorted alphabetically.
func (c DiscountCalculator) Codes() []string {
	codes := make([]string, 0, len(c.codes))
	for code := range c.codes {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
