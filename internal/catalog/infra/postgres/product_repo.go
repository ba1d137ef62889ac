package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/dwikikusuma/storefront/internal/catalog/app"
	"github.com/dwikikusuma/storefront/internal/catalog/domain"
	"github.com/dwikikusuma/storefront/internal/catalog/infra/postgres/catalogdb"
)

type ProductRepo struct {
	q *catalogdb.Queries
}

func NewProductRepo(db *sql.DB) *ProductRepo {
	return &ProductRepo{q: catalogdb.New(db)}
}

// WithTx binds the repo to tx so stock changes join the caller's unit of work.
func (r *ProductRepo) WithTx(tx *sql.Tx) *ProductRepo {
	return &ProductRepo{q: r.q.WithTx(tx)}
}

func (r *ProductRepo) Create(ctx context.Context, p domain.Product) (domain.Product, error) {
	row, err := r.q.CreateProduct(ctx, catalogdb.CreateProductParams{
		Name:          p.Name,
		Description:   p.Description,
		PriceAmount:   p.Price.Amount,
		Currency:      p.Price.Currency,
		StockQuantity: p.Quantity,
	})
	if err != nil {
		return domain.Product{}, err
	}

	return toDomain(row), nil
}

func (r *ProductRepo) Get(ctx context.Context, id string) (domain.Product, error) {
	prodID, err := uuid.Parse(id)
	if err != nil {
		return domain.Product{}, app.ErrNotFound
	}

	product, err := r.q.GetProduct(ctx, prodID)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Product{}, app.ErrNotFound
	}
	if err != nil {
		return domain.Product{}, err
	}

	return toDomain(product), nil
}

func (r *ProductRepo) List(ctx context.Context, limit int, cursor string) ([]domain.Product, string, error) {
	var cur uuid.NullUUID
	if cursor != "" {
		uid, err := uuid.Parse(cursor)
		if err != nil {
			return nil, "", app.ErrInvalidInput
		}
		cur = uuid.NullUUID{UUID: uid, Valid: true}
	}

	rows, err := r.q.ListProducts(ctx, catalogdb.ListProductsParams{
		Limit:  int32(limit),
		Cursor: cur,
	})
	if err != nil {
		return nil, "", err
	}

	out := make([]domain.Product, 0, len(rows))
	var nextCursor string

	for _, row := range rows {
		out = append(out, toDomain(row))
		nextCursor = row.ID.String()
	}

	if len(out) < limit {
		nextCursor = ""
	}

	return out, nextCursor, nil
}

// GetMany skips ids that are not valid UUIDs; they cannot name a product.
func (r *ProductRepo) GetMany(ctx context.Context, ids []string) (map[string]domain.Product, error) {
	valid := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, err := uuid.Parse(id); err == nil {
			valid = append(valid, id)
		}
	}
	out := make(map[string]domain.Product, len(valid))
	if len(valid) == 0 {
		return out, nil
	}

	rows, err := r.q.GetProductsByIDs(ctx, valid)
	if err != nil {
		return nil, fmt.Errorf("get products: %w", err)
	}
	for _, row := range rows {
		p := toDomain(row)
		out[p.ID] = p
	}
	return out, nil
}

func (r *ProductRepo) DecrementStock(ctx context.Context, id string, qty int32) (bool, error) {
	prodID, err := uuid.Parse(id)
	if err != nil {
		return false, nil
	}
	n, err := r.q.DecrementStock(ctx, catalogdb.DecrementStockParams{ID: prodID, Quantity: qty})
	if err != nil {
		return false, fmt.Errorf("decrement stock %s: %w", id, err)
	}
	return n == 1, nil
}

func (r *ProductRepo) IncrementStock(ctx context.Context, id string, qty int32) (bool, error) {
	prodID, err := uuid.Parse(id)
	if err != nil {
		return false, nil
	}
	n, err := r.q.IncrementStock(ctx, catalogdb.IncrementStockParams{ID: prodID, Quantity: qty})
	if err != nil {
		return false, fmt.Errorf("increment stock %s: %w", id, err)
	}
	return n == 1, nil
}

func toDomain(row catalogdb.Product) domain.Product {
	return domain.Product{
		ID:          row.ID.String(),
		Name:        row.Name,
		Description: row.Description,
		Price: domain.Money{
			Amount:   row.PriceAmount,
			Currency: row.Currency,
		},
		Quantity:  row.StockQuantity,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}
