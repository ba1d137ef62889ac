package catalogdb

import (
	"context"

	"github.com/google/uuid"
)

const createProduct = `-- name: CreateProduct :one
INSERT INTO products (name, description, price_amount, currency, stock_quantity)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, name, description, price_amount, currency, stock_quantity, created_at, updated_at
`

type CreateProductParams struct {
	Name          string
	Description   string
	PriceAmount   int64
	Currency      string
	StockQuantity int32
}

func (q *Queries) CreateProduct(ctx context.Context, arg CreateProductParams) (Product, error) {
	row := q.db.QueryRowContext(ctx, createProduct,
		arg.Name,
		arg.Description,
		arg.PriceAmount,
		arg.Currency,
		arg.StockQuantity,
	)
	var i Product
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.Description,
		&i.PriceAmount,
		&i.Currency,
		&i.StockQuantity,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const getProduct = `-- name: GetProduct :one
SELECT id, name, description, price_amount, currency, stock_quantity, created_at, updated_at
FROM products
WHERE id = $1
`

func (q *Queries) GetProduct(ctx context.Context, id uuid.UUID) (Product, error) {
	row := q.db.QueryRowContext(ctx, getProduct, id)
	var i Product
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.Description,
		&i.PriceAmount,
		&i.Currency,
		&i.StockQuantity,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const getProductsByIDs = `-- name: GetProductsByIDs :many
SELECT id, name, description, price_amount, currency, stock_quantity, created_at, updated_at
FROM products
WHERE id = ANY($1::text[]::uuid[])
`

func (q *Queries) GetProductsByIDs(ctx context.Context, ids []string) ([]Product, error) {
	rows, err := q.db.QueryContext(ctx, getProductsByIDs, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Product
	for rows.Next() {
		var i Product
		if err := rows.Scan(
			&i.ID,
			&i.Name,
			&i.Description,
			&i.PriceAmount,
			&i.Currency,
			&i.StockQuantity,
			&i.CreatedAt,
			&i.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const listProducts = `-- name: ListProducts :many
SELECT id, name, description, price_amount, currency, stock_quantity, created_at, updated_at
FROM products
WHERE $2::uuid IS NULL OR id > $2::uuid
ORDER BY id
LIMIT $1
`

type ListProductsParams struct {
	Limit  int32
	Cursor uuid.NullUUID
}

func (q *Queries) ListProducts(ctx context.Context, arg ListProductsParams) ([]Product, error) {
	rows, err := q.db.QueryContext(ctx, listProducts, arg.Limit, arg.Cursor)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Product
	for rows.Next() {
		var i Product
		if err := rows.Scan(
			&i.ID,
			&i.Name,
			&i.Description,
			&i.PriceAmount,
			&i.Currency,
			&i.StockQuantity,
			&i.CreatedAt,
			&i.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const decrementStock = `-- name: DecrementStock :execrows
UPDATE products
SET stock_quantity = stock_quantity - $2, updated_at = now()
WHERE id = $1 AND stock_quantity >= $2
`

type DecrementStockParams struct {
	ID       uuid.UUID
	Quantity int32
}

func (q *Queries) DecrementStock(ctx context.Context, arg DecrementStockParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, decrementStock, arg.ID, arg.Quantity)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const incrementStock = `-- name: IncrementStock :execrows
UPDATE products
SET stock_quantity = stock_quantity + $2, updated_at = now()
WHERE id = $1
`

type IncrementStockParams struct {
	ID       uuid.UUID
	Quantity int32
}

func (q *Queries) IncrementStock(ctx context.Context, arg IncrementStockParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, incrementStock, arg.ID, arg.Quantity)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
