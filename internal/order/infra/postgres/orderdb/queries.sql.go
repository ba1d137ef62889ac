package orderdb

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
)

const createOrder = `-- name: CreateOrder :one
INSERT INTO orders (user_id, status, currency, total_amount)
VALUES ($1, $2, $3, $4)
RETURNING id, user_id, status, currency, total_amount, created_at, updated_at
`

type CreateOrderParams struct {
	UserID      uuid.UUID
	Status      string
	Currency    string
	TotalAmount int64
}

func (q *Queries) CreateOrder(ctx context.Context, arg CreateOrderParams) (Order, error) {
	row := q.db.QueryRowContext(ctx, createOrder,
		arg.UserID,
		arg.Status,
		arg.Currency,
		arg.TotalAmount,
	)
	return scanOrder(row)
}

const addOrderItem = `-- name: AddOrderItem :one
INSERT INTO order_items (order_id, position, product_id, name, unit_amount, quantity, line_total_amount)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id, order_id, position, product_id, name, unit_amount, quantity, line_total_amount
`

type AddOrderItemParams struct {
	OrderID         uuid.UUID
	Position        int32
	ProductID       uuid.UUID
	Name            string
	UnitAmount      int64
	Quantity        int32
	LineTotalAmount int64
}

func (q *Queries) AddOrderItem(ctx context.Context, arg AddOrderItemParams) (OrderItem, error) {
	row := q.db.QueryRowContext(ctx, addOrderItem,
		arg.OrderID,
		arg.Position,
		arg.ProductID,
		arg.Name,
		arg.UnitAmount,
		arg.Quantity,
		arg.LineTotalAmount,
	)
	var i OrderItem
	err := row.Scan(
		&i.ID,
		&i.OrderID,
		&i.Position,
		&i.ProductID,
		&i.Name,
		&i.UnitAmount,
		&i.Quantity,
		&i.LineTotalAmount,
	)
	return i, err
}

const getOrder = `-- name: GetOrder :one
SELECT id, user_id, status, currency, total_amount, created_at, updated_at
FROM orders
WHERE id = $1
`

func (q *Queries) GetOrder(ctx context.Context, id uuid.UUID) (Order, error) {
	return scanOrder(q.db.QueryRowContext(ctx, getOrder, id))
}

const getOrderForUpdate = `-- name: GetOrderForUpdate :one
SELECT id, user_id, status, currency, total_amount, created_at, updated_at
FROM orders
WHERE id = $1
FOR UPDATE
`

func (q *Queries) GetOrderForUpdate(ctx context.Context, id uuid.UUID) (Order, error) {
	return scanOrder(q.db.QueryRowContext(ctx, getOrderForUpdate, id))
}

const listOrderItems = `-- name: ListOrderItems :many
SELECT id, order_id, position, product_id, name, unit_amount, quantity, line_total_amount
FROM order_items
WHERE order_id = $1
ORDER BY position
`

func (q *Queries) ListOrderItems(ctx context.Context, orderID uuid.UUID) ([]OrderItem, error) {
	rows, err := q.db.QueryContext(ctx, listOrderItems, orderID)
	if err != nil {
		return nil, err
	}
	return scanOrderItems(rows)
}

const listOrderItemsByOrderIDs = `-- name: ListOrderItemsByOrderIDs :many
SELECT id, order_id, position, product_id, name, unit_amount, quantity, line_total_amount
FROM order_items
WHERE order_id = ANY($1::text[]::uuid[])
ORDER BY order_id, position
`

func (q *Queries) ListOrderItemsByOrderIDs(ctx context.Context, orderIDs []string) ([]OrderItem, error) {
	rows, err := q.db.QueryContext(ctx, listOrderItemsByOrderIDs, orderIDs)
	if err != nil {
		return nil, err
	}
	return scanOrderItems(rows)
}

const listOrdersByUser = `-- name: ListOrdersByUser :many
SELECT id, user_id, status, currency, total_amount, created_at, updated_at
FROM orders
WHERE user_id = $1
ORDER BY created_at DESC, id DESC
`

func (q *Queries) ListOrdersByUser(ctx context.Context, userID uuid.UUID) ([]Order, error) {
	rows, err := q.db.QueryContext(ctx, listOrdersByUser, userID)
	if err != nil {
		return nil, err
	}
	return scanOrders(rows)
}

const listOrders = `-- name: ListOrders :many
SELECT id, user_id, status, currency, total_amount, created_at, updated_at
FROM orders
ORDER BY created_at DESC, id DESC
`

func (q *Queries) ListOrders(ctx context.Context) ([]Order, error) {
	rows, err := q.db.QueryContext(ctx, listOrders)
	if err != nil {
		return nil, err
	}
	return scanOrders(rows)
}

const updateOrderStatus = `-- name: UpdateOrderStatus :one
UPDATE orders
SET status = $3, updated_at = now()
WHERE id = $1 AND status = $2
RETURNING id, user_id, status, currency, total_amount, created_at, updated_at
`

type UpdateOrderStatusParams struct {
	ID         uuid.UUID
	FromStatus string
	ToStatus   string
}

func (q *Queries) UpdateOrderStatus(ctx context.Context, arg UpdateOrderStatusParams) (Order, error) {
	return scanOrder(q.db.QueryRowContext(ctx, updateOrderStatus, arg.ID, arg.FromStatus, arg.ToStatus))
}

func scanOrder(row *sql.Row) (Order, error) {
	var i Order
	err := row.Scan(
		&i.ID,
		&i.UserID,
		&i.Status,
		&i.Currency,
		&i.TotalAmount,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

func scanOrders(rows *sql.Rows) ([]Order, error) {
	defer rows.Close()
	var items []Order
	for rows.Next() {
		var i Order
		if err := rows.Scan(
			&i.ID,
			&i.UserID,
			&i.Status,
			&i.Currency,
			&i.TotalAmount,
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

func scanOrderItems(rows *sql.Rows) ([]OrderItem, error) {
	defer rows.Close()
	var items []OrderItem
	for rows.Next() {
		var i OrderItem
		if err := rows.Scan(
			&i.ID,
			&i.OrderID,
			&i.Position,
			&i.ProductID,
			&i.Name,
			&i.UnitAmount,
			&i.Quantity,
			&i.LineTotalAmount,
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
