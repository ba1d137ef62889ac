// Package adapter exposes the catalog and cart repositories through the
// order ports.
package adapter

import (
	"context"

	catalogapp "github.com/dwikikusuma/storefront/internal/catalog/app"
	"github.com/dwikikusuma/storefront/internal/order/app"
)

type Products struct {
	repo catalogapp.StockRepo
}

func NewProducts(repo catalogapp.StockRepo) *Products {
	return &Products{repo: repo}
}

func (p *Products) GetMany(ctx context.Context, ids []string) (map[string]app.Product, error) {
	rows, err := p.repo.GetMany(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make(map[string]app.Product, len(rows))
	for id, row := range rows {
		out[id] = app.Product{
			ID:         row.ID,
			Name:       row.Name,
			Currency:   row.Price.Currency,
			UnitAmount: row.Price.Amount,
			Quantity:   row.Quantity,
		}
	}
	return out, nil
}

func (p *Products) DecrementStock(ctx context.Context, id string, qty int32) (bool, error) {
	return p.repo.DecrementStock(ctx, id, qty)
}

func (p *Products) IncrementStock(ctx context.Context, id string, qty int32) (bool, error) {
	return p.repo.IncrementStock(ctx, id, qty)
}
