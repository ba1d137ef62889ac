package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/dwikikusuma/storefront/internal/order/app"
	"github.com/dwikikusuma/storefront/internal/order/domain"
	"github.com/dwikikusuma/storefront/internal/order/infra/postgres/orderdb"
)

// OrderRepo serves reads on the pool and, once bound with WithTx, the
// transactional order store.
type OrderRepo struct {
	q *orderdb.Queries
}

func NewOrderRepo(db *sql.DB) *OrderRepo {
	return &OrderRepo{q: orderdb.New(db)}
}

func (r *OrderRepo) WithTx(tx *sql.Tx) *OrderRepo {
	return &OrderRepo{q: r.q.WithTx(tx)}
}

func (r *OrderRepo) Create(ctx context.Context, order domain.Order) (domain.Order, error) {
	userUUID, err := uuid.Parse(order.UserID)
	if err != nil {
		return domain.Order{}, app.ErrInvalidInput
	}

	o, err := r.q.CreateOrder(ctx, orderdb.CreateOrderParams{
		UserID:      userUUID,
		Status:      order.Status.String(),
		Currency:    order.Currency,
		TotalAmount: order.TotalAmount,
	})
	if err != nil {
		return domain.Order{}, fmt.Errorf("failed to create order: %w", err)
	}

	rows := make([]orderdb.OrderItem, 0, len(order.Items))
	for i, item := range order.Items {
		expected := item.UnitAmount * int64(item.Quantity)
		if item.LineTotalAmount != expected {
			return domain.Order{}, fmt.Errorf("item %d: line total mismatch", i)
		}

		pUUID, err := uuid.Parse(item.ProductID)
		if err != nil {
			return domain.Order{}, fmt.Errorf("item %d: invalid product UUID: %w", i, err)
		}

		row, err := r.q.AddOrderItem(ctx, orderdb.AddOrderItemParams{
			OrderID:         o.ID,
			Position:        int32(i),
			ProductID:       pUUID,
			Name:            item.Name,
			UnitAmount:      item.UnitAmount,
			Quantity:        item.Quantity,
			LineTotalAmount: item.LineTotalAmount,
		})
		if err != nil {
			return domain.Order{}, fmt.Errorf("failed to insert item %d: %w", i, err)
		}
		rows = append(rows, row)
	}

	return toDomain(o, rows), nil
}

func (r *OrderRepo) Get(ctx context.Context, id string) (domain.Order, error) {
	return r.get(ctx, id, r.q.GetOrder)
}

func (r *OrderRepo) GetForUpdate(ctx context.Context, id string) (domain.Order, error) {
	return r.get(ctx, id, r.q.GetOrderForUpdate)
}

func (r *OrderRepo) get(ctx context.Context, id string, fetch func(context.Context, uuid.UUID) (orderdb.Order, error)) (domain.Order, error) {
	orderID, err := uuid.Parse(id)
	if err != nil {
		return domain.Order{}, app.ErrNotFound
	}

	o, err := fetch(ctx, orderID)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Order{}, app.ErrNotFound
	}
	if err != nil {
		return domain.Order{}, err
	}

	items, err := r.q.ListOrderItems(ctx, o.ID)
	if err != nil {
		return domain.Order{}, err
	}
	return toDomain(o, items), nil
}

func (r *OrderRepo) UpdateStatus(ctx context.Context, id string, from, to domain.Status) (domain.Order, error) {
	orderID, err := uuid.Parse(id)
	if err != nil {
		return domain.Order{}, app.ErrNotFound
	}

	o, err := r.q.UpdateOrderStatus(ctx, orderdb.UpdateOrderStatusParams{
		ID:         orderID,
		FromStatus: from.String(),
		ToStatus:   to.String(),
	})
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Order{}, fmt.Errorf("%w: status changed concurrently", domain.ErrInvalidTransition)
	}
	if err != nil {
		return domain.Order{}, err
	}

	items, err := r.q.ListOrderItems(ctx, o.ID)
	if err != nil {
		return domain.Order{}, err
	}
	return toDomain(o, items), nil
}

func (r *OrderRepo) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, nil
	}
	rows, err := r.q.ListOrdersByUser(ctx, userUUID)
	if err != nil {
		return nil, err
	}
	return r.withItems(ctx, rows)
}

func (r *OrderRepo) ListAll(ctx context.Context) ([]domain.Order, error) {
	rows, err := r.q.ListOrders(ctx)
	if err != nil {
		return nil, err
	}
	return r.withItems(ctx, rows)
}

// withItems loads the items of every order in one query.
func (r *OrderRepo) withItems(ctx context.Context, rows []orderdb.Order) ([]domain.Order, error) {
	out := make([]domain.Order, 0, len(rows))
	if len(rows) == 0 {
		return out, nil
	}

	ids := make([]string, len(rows))
	for i, o := range rows {
		ids[i] = o.ID.String()
	}
	items, err := r.q.ListOrderItemsByOrderIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byOrder := make(map[uuid.UUID][]orderdb.OrderItem, len(rows))
	for _, it := range items {
		byOrder[it.OrderID] = append(byOrder[it.OrderID], it)
	}

	for _, o := range rows {
		out = append(out, toDomain(o, byOrder[o.ID]))
	}
	return out, nil
}

func toDomain(o orderdb.Order, rows []orderdb.OrderItem) domain.Order {
	items := make([]domain.OrderItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, domain.OrderItem{
			ID:              row.ID.String(),
			OrderID:         row.OrderID.String(),
			ProductID:       row.ProductID.String(),
			Name:            row.Name,
			UnitAmount:      row.UnitAmount,
			Quantity:        row.Quantity,
			LineTotalAmount: row.LineTotalAmount,
		})
	}

	return domain.Order{
		ID:          o.ID.String(),
		UserID:      o.UserID.String(),
		Status:      domain.Status(o.Status),
		Currency:    o.Currency,
		TotalAmount: o.TotalAmount,
		Items:       items,
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
}
