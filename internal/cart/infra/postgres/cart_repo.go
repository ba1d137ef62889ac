package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/dwikikusuma/storefront/internal/cart/app"
	"github.com/dwikikusuma/storefront/internal/cart/domain"
	"github.com/dwikikusuma/storefront/internal/cart/infra/postgres/cartdb"
	"github.com/dwikikusuma/storefront/pkg/postgres"
)

type CartRepo struct {
	q *cartdb.Queries
	// db is nil when the repo is bound to a caller's transaction.
	db *sql.DB
}

func NewCartRepo(db *sql.DB) *CartRepo {
	return &CartRepo{
		q:  cartdb.New(db),
		db: db,
	}
}

func (r *CartRepo) WithTx(tx *sql.Tx) *CartRepo {
	return &CartRepo{q: r.q.WithTx(tx)}
}

// execTX runs fn in its own transaction, or directly when already bound to one.
func (r *CartRepo) execTX(ctx context.Context, fn func(q *cartdb.Queries) error) error {
	if r.db == nil {
		return fn(r.q)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	err = fn(r.q.WithTx(tx))
	if err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("tx err: %w; rollback err: %v", err, rbErr)
		}
		return err
	}

	return tx.Commit()
}

func (r *CartRepo) Get(ctx context.Context, userID string) (domain.Cart, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.Cart{}, app.ErrInvalidInput
	}

	cart, err := r.q.GetActiveCartByUserID(ctx, userUUID)
	if err != nil {
		return domain.Cart{}, err
	}
	return r.load(ctx, r.q, cart)
}

func (r *CartRepo) load(ctx context.Context, q *cartdb.Queries, cart cartdb.Cart) (domain.Cart, error) {
	rows, err := q.ListCartItems(ctx, cart.ID)
	if err != nil {
		return domain.Cart{}, err
	}

	items := make([]domain.CartItem, 0, len(rows))
	for _, item := range rows {
		items = append(items, domain.CartItem{
			ProductID: item.ProductID.String(),
			Quantity:  item.Quantity,
		})
	}

	return domain.Cart{
		ID:        cart.ID.String(),
		UserID:    cart.UserID.String(),
		Status:    cart.Status,
		Items:     items,
		CreatedAt: cart.CreatedAt,
		UpdatedAt: cart.UpdatedAt,
	}, nil
}

func (r *CartRepo) GetOrCreate(ctx context.Context, userID string) (domain.Cart, error) {
	cart, err := r.Get(ctx, userID)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return domain.Cart{}, err
	}

	userUUID, _ := uuid.Parse(userID)
	_, createErr := r.q.CreateActiveCart(ctx, userUUID)
	if createErr == nil || postgres.IsUniqueViolation(createErr) {
		// a concurrent caller may have won the insert
		return r.Get(ctx, userID)
	}

	return domain.Cart{}, createErr
}

// LockActive ensures the user's active cart exists and takes its row lock
// for the rest of the transaction. Only valid on a WithTx repo.
func (r *CartRepo) LockActive(ctx context.Context, userID string) (domain.Cart, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.Cart{}, app.ErrInvalidInput
	}
	if err := r.q.EnsureActiveCart(ctx, userUUID); err != nil {
		return domain.Cart{}, fmt.Errorf("ensure cart: %w", err)
	}
	cart, err := r.q.LockActiveCartByUserID(ctx, userUUID)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("lock cart: %w", err)
	}
	return r.load(ctx, r.q, cart)
}

// lock serializes item changes with an in-flight order placement on the same cart.
func lock(ctx context.Context, q *cartdb.Queries, cartID uuid.UUID) error {
	n, err := q.TouchCart(ctx, cartID)
	if err != nil {
		return err
	}
	if n == 0 {
		return app.ErrNotFound
	}
	return nil
}

func (r *CartRepo) AddItem(ctx context.Context, item domain.CartItem, cartID string) error {
	cartUUID, err := uuid.Parse(cartID)
	if err != nil {
		return app.ErrInvalidInput
	}
	productUUID, err := uuid.Parse(item.ProductID)
	if err != nil {
		return app.ErrInvalidInput
	}

	return r.execTX(ctx, func(q *cartdb.Queries) error {
		if err := lock(ctx, q, cartUUID); err != nil {
			return err
		}
		_, err := q.UpsertAddItemIncrement(ctx, cartdb.UpsertAddItemIncrementParams{
			CartID:    cartUUID,
			ProductID: productUUID,
			Quantity:  item.Quantity,
		})
		if postgres.IsOutOfRange(err) {
			return app.ErrInvalidInput
		}
		return err
	})
}

func (r *CartRepo) ClearCart(ctx context.Context, cartID string) error {
	cartUUID, err := uuid.Parse(cartID)
	if err != nil {
		return app.ErrInvalidInput
	}
	return r.q.ClearCart(ctx, cartUUID)
}

func (r *CartRepo) RemoveItem(ctx context.Context, cartID string, productID string) error {
	cartUUID, err := uuid.Parse(cartID)
	if err != nil {
		return app.ErrInvalidInput
	}
	productUUID, err := uuid.Parse(productID)
	if err != nil {
		return nil
	}

	return r.execTX(ctx, func(q *cartdb.Queries) error {
		if err := lock(ctx, q, cartUUID); err != nil {
			return err
		}
		return q.RemoveItem(ctx, cartdb.RemoveItemParams{
			CartID:    cartUUID,
			ProductID: productUUID,
		})
	})
}

func (r *CartRepo) SetItemQuantity(ctx context.Context, cartID string, item domain.CartItem) (bool, error) {
	cartUUID, err := uuid.Parse(cartID)
	if err != nil {
		return false, app.ErrInvalidInput
	}
	productUUID, err := uuid.Parse(item.ProductID)
	if err != nil {
		return false, nil
	}

	var updated bool
	err = r.execTX(ctx, func(q *cartdb.Queries) error {
		if err := lock(ctx, q, cartUUID); err != nil {
			return err
		}
		n, err := q.SetItemQuantity(ctx, cartdb.SetItemQuantityParams{
			CartID:    cartUUID,
			ProductID: productUUID,
			Quantity:  item.Quantity,
		})
		updated = n > 0
		return err
	})
	return updated, err
}
