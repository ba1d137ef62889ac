package app

import (
	"context"

	"github.com/dwikikusuma/storefront/internal/cart/domain"
)

type CartRepo interface {
	// GetOrCreate returns the user's active cart, creating it on first use.
	GetOrCreate(ctx context.Context, userID string) (domain.Cart, error)
	// AddItem merges into an existing line by adding to its quantity.
	AddItem(ctx context.Context, item domain.CartItem, cartID string) error
	// SetItemQuantity reports false when the cart has no line for the product.
	SetItemQuantity(ctx context.Context, cartID string, item domain.CartItem) (bool, error)
	RemoveItem(ctx context.Context, cartID string, productID string) error
	ClearCart(ctx context.Context, cartID string) error
}

// ProductLookup tells whether a product can be put in a cart.
type ProductLookup interface {
	Exists(ctx context.Context, productID string) (bool, error)
}
