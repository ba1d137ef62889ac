package cartdb

import (
	"context"

	"github.com/google/uuid"
)

const getActiveCartByUserID = `-- name: GetActiveCartByUserID :one
SELECT id, user_id, status, created_at, updated_at
FROM carts
WHERE user_id = $1 AND status = 'ACTIVE'
`

func (q *Queries) GetActiveCartByUserID(ctx context.Context, userID uuid.UUID) (Cart, error) {
	row := q.db.QueryRowContext(ctx, getActiveCartByUserID, userID)
	var i Cart
	err := row.Scan(
		&i.ID,
		&i.UserID,
		&i.Status,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const lockActiveCartByUserID = `-- name: LockActiveCartByUserID :one
SELECT id, user_id, status, created_at, updated_at
FROM carts
WHERE user_id = $1 AND status = 'ACTIVE'
FOR UPDATE
`

func (q *Queries) LockActiveCartByUserID(ctx context.Context, userID uuid.UUID) (Cart, error) {
	row := q.db.QueryRowContext(ctx, lockActiveCartByUserID, userID)
	var i Cart
	err := row.Scan(
		&i.ID,
		&i.UserID,
		&i.Status,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const createActiveCart = `-- name: CreateActiveCart :one
INSERT INTO carts (user_id, status)
VALUES ($1, 'ACTIVE')
RETURNING id, user_id, status, created_at, updated_at
`

func (q *Queries) CreateActiveCart(ctx context.Context, userID uuid.UUID) (Cart, error) {
	row := q.db.QueryRowContext(ctx, createActiveCart, userID)
	var i Cart
	err := row.Scan(
		&i.ID,
		&i.UserID,
		&i.Status,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const ensureActiveCart = `-- name: EnsureActiveCart :exec
INSERT INTO carts (user_id, status)
VALUES ($1, 'ACTIVE')
ON CONFLICT (user_id) WHERE status = 'ACTIVE' DO NOTHING
`

func (q *Queries) EnsureActiveCart(ctx context.Context, userID uuid.UUID) error {
	_, err := q.db.ExecContext(ctx, ensureActiveCart, userID)
	return err
}

const touchCart = `-- name: TouchCart :execrows
UPDATE carts SET updated_at = now() WHERE id = $1
`

func (q *Queries) TouchCart(ctx context.Context, id uuid.UUID) (int64, error) {
	result, err := q.db.ExecContext(ctx, touchCart, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const listCartItems = `-- name: ListCartItems :many
SELECT cart_id, product_id, quantity, created_at, updated_at
FROM cart_items
WHERE cart_id = $1
ORDER BY created_at, product_id
`

func (q *Queries) ListCartItems(ctx context.Context, cartID uuid.UUID) ([]CartItem, error) {
	rows, err := q.db.QueryContext(ctx, listCartItems, cartID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []CartItem
	for rows.Next() {
		var i CartItem
		if err := rows.Scan(
			&i.CartID,
			&i.ProductID,
			&i.Quantity,
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

const upsertAddItemIncrement = `-- name: UpsertAddItemIncrement :one
INSERT INTO cart_items (cart_id, product_id, quantity)
VALUES ($1, $2, $3)
ON CONFLICT (cart_id, product_id)
DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity, updated_at = now()
RETURNING cart_id, product_id, quantity, created_at, updated_at
`

type UpsertAddItemIncrementParams struct {
	CartID    uuid.UUID
	ProductID uuid.UUID
	Quantity  int32
}

func (q *Queries) UpsertAddItemIncrement(ctx context.Context, arg UpsertAddItemIncrementParams) (CartItem, error) {
	row := q.db.QueryRowContext(ctx, upsertAddItemIncrement, arg.CartID, arg.ProductID, arg.Quantity)
	var i CartItem
	err := row.Scan(
		&i.CartID,
		&i.ProductID,
		&i.Quantity,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const setItemQuantity = `-- name: SetItemQuantity :execrows
UPDATE cart_items
SET quantity = $3, updated_at = now()
WHERE cart_id = $1 AND product_id = $2
`

type SetItemQuantityParams struct {
	CartID    uuid.UUID
	ProductID uuid.UUID
	Quantity  int32
}

func (q *Queries) SetItemQuantity(ctx context.Context, arg SetItemQuantityParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, setItemQuantity, arg.CartID, arg.ProductID, arg.Quantity)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const removeItem = `-- name: RemoveItem :exec
DELETE FROM cart_items WHERE cart_id = $1 AND product_id = $2
`

type RemoveItemParams struct {
	CartID    uuid.UUID
	ProductID uuid.UUID
}

func (q *Queries) RemoveItem(ctx context.Context, arg RemoveItemParams) error {
	_, err := q.db.ExecContext(ctx, removeItem, arg.CartID, arg.ProductID)
	return err
}

const clearCart = `-- name: ClearCart :exec
DELETE FROM cart_items WHERE cart_id = $1
`

func (q *Queries) ClearCart(ctx context.Context, cartID uuid.UUID) error {
	_, err := q.db.ExecContext(ctx, clearCart, cartID)
	return err
}
