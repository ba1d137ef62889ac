package adapter

import (
	"context"
	"errors"

	catalogapp "github.com/dwikikusuma/storefront/internal/catalog/app"
)

type CatalogLookup struct {
	svc *catalogapp.Service
}

func NewCatalogLookup(svc *catalogapp.Service) *CatalogLookup {
	return &CatalogLookup{svc: svc}
}

func (l *CatalogLookup) Exists(ctx context.Context, productID string) (bool, error) {
	_, err := l.svc.GetProduct(ctx, productID)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, catalogapp.ErrNotFound), errors.Is(err, catalogapp.ErrInvalidInput):
		return false, nil
	default:
		return false, err
	}
}
