package app

import (
	"errors"

	"github.com/dwikikusuma/storefront/internal/order/domain"
)

var (
	ErrEmptyCart          = errors.New("cart is empty")
	ErrProductUnavailable = errors.New("one or more products are unavailable")
	ErrInsufficientStock  = errors.New("insufficient stock for one or more items")
	ErrCurrencyMismatch   = errors.New("cart mixes currencies")
	ErrNotFound           = errors.New("order not found")
	ErrInvalidInput       = errors.New("invalid input")
)

// IsRejection reports whether err is an expected business outcome rather
// than a storage or programming failure.
func IsRejection(err error) bool {
	for _, target := range []error{
		ErrEmptyCart,
		ErrProductUnavailable,
		ErrInsufficientStock,
		ErrCurrencyMismatch,
		ErrNotFound,
		ErrInvalidInput,
		domain.ErrInvalidTransition,
		domain.ErrInvalidStatus,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
