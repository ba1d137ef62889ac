package app

import (
	"context"

	"github.com/dwikikusuma/storefront/internal/order/domain"
)

type CartLine struct {
	ProductID string
	Quantity  int32
}

type CartSnapshot struct {
	CartID string
	UserID string
	Lines  []CartLine
}

type Product struct {
	ID         string
	Name       string
	Currency   string
	UnitAmount int64
	Quantity   int32
}

// CartStore is the cart as seen from inside a unit of work.
type CartStore interface {
	// LockActive creates the user's cart when missing and holds it against
	// concurrent changes until the unit of work ends.
	LockActive(ctx context.Context, userID string) (CartSnapshot, error)
	Clear(ctx context.Context, cartID string) error
}

type ProductStore interface {
	// GetMany omits ids that do not resolve to a product.
	GetMany(ctx context.Context, ids []string) (map[string]Product, error)
	// DecrementStock is one atomic conditional update. It reports false,
	// changing nothing, when fewer than qty units remain.
	DecrementStock(ctx context.Context, id string, qty int32) (bool, error)
	// IncrementStock reports false when the product no longer exists.
	IncrementStock(ctx context.Context, id string, qty int32) (bool, error)
}

type OrderStore interface {
	Create(ctx context.Context, o domain.Order) (domain.Order, error)
	// GetForUpdate locks the order until the unit of work ends.
	GetForUpdate(ctx context.Context, id string) (domain.Order, error)
	// UpdateStatus only applies when the stored status still equals from.
	UpdateStatus(ctx context.Context, id string, from, to domain.Status) (domain.Order, error)
}

type Tx interface {
	Carts() CartStore
	Products() ProductStore
	Orders() OrderStore
}

// UnitOfWork runs fn atomically. Every effect of fn is committed when it
// returns nil and discarded otherwise.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

type OrderReader interface {
	Get(ctx context.Context, id string) (domain.Order, error)
	// ListByUser and ListAll return newest first.
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
	ListAll(ctx context.Context) ([]domain.Order, error)
}

// Notifier must not block; delivery is best-effort.
type Notifier interface {
	NotifyOrderPlaced(ctx context.Context, userID, orderID string, totalAmount int64, currency string)
	NotifyStatusChanged(ctx context.Context, userID, orderID string, status domain.Status)
}

type nopNotifier struct{}

func (nopNotifier) NotifyOrderPlaced(context.Context, string, string, int64, string) {}
func (nopNotifier) NotifyStatusChanged(context.Context, string, string, domain.Status) {}
