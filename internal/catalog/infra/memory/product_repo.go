// Package memory keeps the catalog in process. Used with STORE=memory and in tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dwikikusuma/storefront/internal/catalog/app"
	"github.com/dwikikusuma/storefront/internal/catalog/domain"
)

type ProductRepo struct {
	mu       sync.RWMutex
	products map[string]domain.Product
	now      func() time.Time
}

func NewProductRepo() *ProductRepo {
	return &ProductRepo{
		products: make(map[string]domain.Product),
		now:      time.Now,
	}
}

func (r *ProductRepo) Create(ctx context.Context, p domain.Product) (domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	now := r.now()
	p.CreatedAt, p.UpdatedAt = now, now
	r.products[p.ID] = p
	return p, nil
}

func (r *ProductRepo) Get(ctx context.Context, id string) (domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.products[id]
	if !ok {
		return domain.Product{}, app.ErrNotFound
	}
	return p, nil
}

// List orders by id, matching the Postgres keyset cursor.
func (r *ProductRepo) List(ctx context.Context, limit int, cursor string) ([]domain.Product, string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.products))
	for id := range r.products {
		if id > cursor {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	if len(ids) > limit {
		ids = ids[:limit]
	}

	out := make([]domain.Product, 0, len(ids))
	for _, id := range ids {
		out = append(out, r.products[id])
	}

	var next string
	if len(out) == limit && limit > 0 {
		next = out[len(out)-1].ID
	}
	return out, next, nil
}

func (r *ProductRepo) GetMany(ctx context.Context, ids []string) (map[string]domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]domain.Product, len(ids))
	for _, id := range ids {
		if p, ok := r.products[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

// DecrementStock checks and subtracts under one lock, the in-process
// counterpart of the conditional UPDATE.
func (r *ProductRepo) DecrementStock(ctx context.Context, id string, qty int32) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.products[id]
	if !ok || qty <= 0 || p.Quantity < qty {
		return false, nil
	}
	p.Quantity -= qty
	p.UpdatedAt = r.now()
	r.products[id] = p
	return true, nil
}

func (r *ProductRepo) IncrementStock(ctx context.Context, id string, qty int32) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.products[id]
	if !ok {
		return false, nil
	}
	p.Quantity += qty
	p.UpdatedAt = r.now()
	r.products[id] = p
	return true, nil
}

// SetPrice changes a product's price in place.
func (r *ProductRepo) SetPrice(id string, amount int64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.products[id]
	if !ok {
		return false
	}
	p.Price.Amount = amount
	p.UpdatedAt = r.now()
	r.products[id] = p
	return true
}
