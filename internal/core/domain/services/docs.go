// Package services holds stateless domain services that sit beside the order
// lifecycle.
//
// The package includes:
//   - DiscountCalculator: applies fixed percentage discount codes to a price.
//     Negative or non-finite prices and unknown codes fail with errs.ErrValueIsInvalid.
package services
