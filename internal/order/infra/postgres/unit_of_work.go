package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	cartpg "github.com/dwikikusuma/storefront/internal/cart/infra/postgres"
	catalogpg "github.com/dwikikusuma/storefront/internal/catalog/infra/postgres"
	"github.com/dwikikusuma/storefront/internal/order/app"
	"github.com/dwikikusuma/storefront/internal/order/infra/adapter"
)

// UnitOfWork opens one READ COMMITTED transaction per call. Correctness
// rests on row locks (cart and order FOR UPDATE) and the conditional stock
// UPDATE, not on the isolation level.
type UnitOfWork struct {
	db      *sql.DB
	timeout time.Duration

	carts    *cartpg.CartRepo
	products *catalogpg.ProductRepo
	orders   *OrderRepo
}

// NewUnitOfWork bounds each transaction by timeout when it is positive.
func NewUnitOfWork(db *sql.DB, timeout time.Duration) *UnitOfWork {
	return &UnitOfWork{
		db:       db,
		timeout:  timeout,
		carts:    cartpg.NewCartRepo(db),
		products: catalogpg.NewProductRepo(db),
		orders:   NewOrderRepo(db),
	}
}

type pgTx struct {
	carts    app.CartStore
	products app.ProductStore
	orders   app.OrderStore
}

func (t pgTx) Carts() app.CartStore       { return t.carts }
func (t pgTx) Products() app.ProductStore { return t.products }
func (t pgTx) Orders() app.OrderStore     { return t.orders }

func (u *UnitOfWork) WithinTx(ctx context.Context, fn func(ctx context.Context, tx app.Tx) error) (err error) {
	if u.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, u.timeout)
		defer cancel()
	}

	tx, err := u.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	err = fn(ctx, pgTx{
		carts:    adapter.NewCarts(u.carts.WithTx(tx)),
		products: adapter.NewProducts(u.products.WithTx(tx)),
		orders:   u.orders.WithTx(tx),
	})
	if err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("tx err: %w; rollback err: %v", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
