package app

import (
	"context"

	"github.com/dwikikusuma/storefront/internal/catalog/domain"
)

type ProductRepo interface {
	Create(ctx context.Context, p domain.Product) (domain.Product, error)
	Get(ctx context.Context, id string) (domain.Product, error)
	List(ctx context.Context, limit int, cursor string) ([]domain.Product, string, error)
}

// StockRepo is the stock side of the catalog. Implementations must make
// DecrementStock a single conditional update so concurrent callers can
// never drive a quantity below zero.
type StockRepo interface {
	// GetMany returns the products that exist among ids. Missing ids are
	// simply absent from the result.
	GetMany(ctx context.Context, ids []string) (map[string]domain.Product, error)
	// DecrementStock reports false when fewer than qty units remain.
	DecrementStock(ctx context.Context, id string, qty int32) (bool, error)
	// IncrementStock reports false when the product no longer exists.
	IncrementStock(ctx context.Context, id string, qty int32) (bool, error)
}
