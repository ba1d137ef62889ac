package adapter

import (
	"context"
	"errors"

	cartapp "github.com/dwikikusuma/storefront/internal/cart/app"
	cartdomain "github.com/dwikikusuma/storefront/internal/cart/domain"
	"github.com/dwikikusuma/storefront/internal/order/app"
)

// CartLocker is the transactional side of a cart repository.
type CartLocker interface {
	LockActive(ctx context.Context, userID string) (cartdomain.Cart, error)
	ClearCart(ctx context.Context, cartID string) error
}

type Carts struct {
	repo CartLocker
}

func NewCarts(repo CartLocker) *Carts {
	return &Carts{repo: repo}
}

func (c *Carts) LockActive(ctx context.Context, userID string) (app.CartSnapshot, error) {
	cart, err := c.repo.LockActive(ctx, userID)
	if errors.Is(err, cartapp.ErrInvalidInput) {
		return app.CartSnapshot{}, app.ErrInvalidInput
	}
	if err != nil {
		return app.CartSnapshot{}, err
	}
	return Snapshot(cart), nil
}

func (c *Carts) Clear(ctx context.Context, cartID string) error {
	return c.repo.ClearCart(ctx, cartID)
}

func Snapshot(cart cartdomain.Cart) app.CartSnapshot {
	lines := make([]app.CartLine, 0, len(cart.Items))
	for _, it := range cart.Items {
		lines = append(lines, app.CartLine{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	return app.CartSnapshot{CartID: cart.ID, UserID: cart.UserID, Lines: lines}
}
