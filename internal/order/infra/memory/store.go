// Package memory is an in-process unit of work over the memory catalog
// and cart repositories.
//
// Stock decrements apply at once, atomically per product, and are undone
// on rollback. Order writes, restocks and the cart clear are staged and
// only applied on commit. Carts, orders and products touched by a unit of
// work stay locked until it ends, so another unit of work never reads a
// decrement that is about to be rolled back. Callers take product locks in
// ascending id order.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	cartmem "github.com/dwikikusuma/storefront/internal/cart/infra/memory"
	catalogmem "github.com/dwikikusuma/storefront/internal/catalog/infra/memory"
	"github.com/dwikikusuma/storefront/internal/order/app"
	"github.com/dwikikusuma/storefront/internal/order/domain"
	"github.com/dwikikusuma/storefront/internal/order/infra/adapter"
	"github.com/dwikikusuma/storefront/pkg/keylock"
)

type Store struct {
	carts    *cartmem.CartRepo
	products *catalogmem.ProductRepo

	mu     sync.RWMutex
	orders map[string]storedOrder
	seq    int64

	orderLocks   *keylock.Map
	productLocks *keylock.Map
	now          func() time.Time
}

type storedOrder struct {
	order domain.Order
	seq   int64
}

func NewStore(carts *cartmem.CartRepo, products *catalogmem.ProductRepo) *Store {
	return &Store{
		carts:      carts,
		products:   products,
		orders:     make(map[string]storedOrder),
		orderLocks:   keylock.New(),
		productLocks: keylock.New(),
		now:          time.Now,
	}
}

func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, tx app.Tx) error) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	tx := &memTx{
		store:  s,
		staged:   make(map[string]domain.Order),
		locked:   make(map[string]bool),
		products: make(map[string]bool),
	}
	defer tx.release()
	defer func() {
		if p := recover(); p != nil {
			tx.rollback()
			panic(p)
		}
	}()

	if err := fn(ctx, tx); err != nil {
		if rbErr := tx.rollback(); rbErr != nil {
			return fmt.Errorf("tx err: %w; rollback err: %v", err, rbErr)
		}
		return err
	}
	if err := ctx.Err(); err != nil {
		tx.rollback()
		return err
	}
	tx.commit()
	return nil
}

func (s *Store) Get(ctx context.Context, id string) (domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	so, ok := s.orders[id]
	if !ok {
		return domain.Order{}, app.ErrNotFound
	}
	return so.order.Clone(), nil
}

func (s *Store) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	return s.list(func(o domain.Order) bool { return o.UserID == userID }), nil
}

func (s *Store) ListAll(ctx context.Context) ([]domain.Order, error) {
	return s.list(func(domain.Order) bool { return true }), nil
}

func (s *Store) list(keep func(domain.Order) bool) []domain.Order {
	s.mu.RLock()
	rows := make([]storedOrder, 0, len(s.orders))
	for _, so := range s.orders {
		if keep(so.order) {
			rows = append(rows, so)
		}
	}
	s.mu.RUnlock()

	sort.Slice(rows, func(i, j int) bool { return rows[i].seq > rows[j].seq })
	out := make([]domain.Order, len(rows))
	for i, so := range rows {
		out[i] = so.order.Clone()
	}
	return out
}

type stockChange struct {
	productID string
	qty       int32
}

type memTx struct {
	store *Store

	cart      *cartmem.Exclusive
	clearCart bool

	decremented []stockChange
	restocks    []stockChange

	staged   map[string]domain.Order
	created  []string
	locked   map[string]bool
	products map[string]bool
	unlocks  []func()
}

func (t *memTx) Carts() app.CartStore       { return txCarts{t} }
func (t *memTx) Products() app.ProductStore { return txProducts{t} }
func (t *memTx) Orders() app.OrderStore     { return txOrders{t} }

// lockProduct holds id for the rest of the unit of work.
func (t *memTx) lockProduct(id string) {
	if t.products[id] {
		return
	}
	t.unlocks = append(t.unlocks, t.store.productLocks.Lock(id))
	t.products[id] = true
}

// rollback puts back every decrement applied so far.
func (t *memTx) rollback() error {
	ctx := context.Background()
	for i := len(t.decremented) - 1; i >= 0; i-- {
		ch := t.decremented[i]
		if _, err := t.store.products.IncrementStock(ctx, ch.productID, ch.qty); err != nil {
			return err
		}
	}
	t.decremented = nil
	t.restocks = nil
	t.staged = nil
	t.clearCart = false
	return nil
}

func (t *memTx) commit() {
	ctx := context.Background()
	for _, ch := range t.restocks {
		_, _ = t.store.products.IncrementStock(ctx, ch.productID, ch.qty)
	}

	s := t.store
	s.mu.Lock()
	for _, id := range t.created {
		s.seq++
		s.orders[id] = storedOrder{order: t.staged[id], seq: s.seq}
		delete(t.staged, id)
	}
	for id, o := range t.staged {
		so := s.orders[id]
		so.order = o
		s.orders[id] = so
	}
	s.mu.Unlock()

	if t.clearCart && t.cart != nil {
		t.cart.Clear()
	}
}

func (t *memTx) release() {
	for i := len(t.unlocks) - 1; i >= 0; i-- {
		t.unlocks[i]()
	}
	t.unlocks = nil
	if t.cart != nil {
		t.cart.Release()
		t.cart = nil
	}
}

type txCarts struct{ t *memTx }

func (c txCarts) LockActive(ctx context.Context, userID string) (app.CartSnapshot, error) {
	if c.t.cart == nil {
		ex, err := c.t.store.carts.Acquire(ctx, userID)
		if err != nil {
			return app.CartSnapshot{}, err
		}
		c.t.cart = ex
	}
	return adapter.Snapshot(c.t.cart.Cart()), nil
}

func (c txCarts) Clear(ctx context.Context, cartID string) error {
	if c.t.cart == nil || c.t.cart.Cart().ID != cartID {
		return fmt.Errorf("cart %s is not held by this transaction", cartID)
	}
	c.t.clearCart = true
	return nil
}

type txProducts struct{ t *memTx }

func (p txProducts) GetMany(ctx context.Context, ids []string) (map[string]app.Product, error) {
	return adapter.NewProducts(p.t.store.products).GetMany(ctx, ids)
}

func (p txProducts) DecrementStock(ctx context.Context, id string, qty int32) (bool, error) {
	p.t.lockProduct(id)
	ok, err := p.t.store.products.DecrementStock(ctx, id, qty)
	if ok {
		p.t.decremented = append(p.t.decremented, stockChange{productID: id, qty: qty})
	}
	return ok, err
}

func (p txProducts) IncrementStock(ctx context.Context, id string, qty int32) (bool, error) {
	if _, err := p.t.store.products.Get(ctx, id); err != nil {
		return false, nil
	}
	p.t.lockProduct(id)
	p.t.restocks = append(p.t.restocks, stockChange{productID: id, qty: qty})
	return true, nil
}

type txOrders struct{ t *memTx }

func (o txOrders) Create(ctx context.Context, order domain.Order) (domain.Order, error) {
	s := o.t.store
	now := s.now()
	order = order.Clone()
	order.ID = uuid.NewString()
	order.CreatedAt, order.UpdatedAt = now, now
	for i := range order.Items {
		order.Items[i].ID = uuid.NewString()
		order.Items[i].OrderID = order.ID
	}
	o.t.staged[order.ID] = order
	o.t.created = append(o.t.created, order.ID)
	return order.Clone(), nil
}

func (o txOrders) GetForUpdate(ctx context.Context, id string) (domain.Order, error) {
	if staged, ok := o.t.staged[id]; ok {
		return staged.Clone(), nil
	}

	s := o.t.store
	s.mu.RLock()
	_, ok := s.orders[id]
	s.mu.RUnlock()
	if !ok {
		return domain.Order{}, app.ErrNotFound
	}

	if !o.t.locked[id] {
		o.t.unlocks = append(o.t.unlocks, s.orderLocks.Lock(id))
		o.t.locked[id] = true
	}

	// re-read under the lock, a previous holder may have changed it
	return s.Get(ctx, id)
}

func (o txOrders) UpdateStatus(ctx context.Context, id string, from, to domain.Status) (domain.Order, error) {
	cur, ok := o.t.staged[id]
	if !ok {
		var err error
		if cur, err = o.t.store.Get(ctx, id); err != nil {
			return domain.Order{}, err
		}
	}
	if cur.Status != from {
		return domain.Order{}, fmt.Errorf("%w: status changed concurrently", domain.ErrInvalidTransition)
	}
	cur.Status = to
	cur.UpdatedAt = o.t.store.now()
	o.t.staged[id] = cur
	return cur.Clone(), nil
}
