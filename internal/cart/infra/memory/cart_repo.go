// Package memory keeps carts in process.
package memory

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dwikikusuma/storefront/internal/cart/app"
	"github.com/dwikikusuma/storefront/internal/cart/domain"
	"github.com/dwikikusuma/storefront/pkg/keylock"
)

type cartState struct {
	cart  domain.Cart
	items []domain.CartItem
}

// CartRepo guards its maps with mu. Item mutations and Exclusive also hold
// the per-cart lock so an order placement sees a stable cart.
type CartRepo struct {
	mu     sync.Mutex
	byUser map[string]*cartState
	byID   map[string]*cartState
	locks  *keylock.Map
	now    func() time.Time
}

func NewCartRepo() *CartRepo {
	return &CartRepo{
		byUser: make(map[string]*cartState),
		byID:   make(map[string]*cartState),
		locks:  keylock.New(),
		now:    time.Now,
	}
}

func (r *CartRepo) GetOrCreate(ctx context.Context, userID string) (domain.Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.getOrCreateLocked(userID).snapshot(), nil
}

func (r *CartRepo) getOrCreateLocked(userID string) *cartState {
	if st, ok := r.byUser[userID]; ok {
		return st
	}
	now := r.now()
	st := &cartState{cart: domain.Cart{
		ID:        uuid.NewString(),
		UserID:    userID,
		Status:    domain.StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}}
	r.byUser[userID] = st
	r.byID[st.cart.ID] = st
	return st
}

func (st *cartState) snapshot() domain.Cart {
	c := st.cart
	c.Items = append([]domain.CartItem(nil), st.items...)
	return c
}

// mutate runs fn on the cart under both the per-cart lock and mu.
func (r *CartRepo) mutate(cartID string, fn func(st *cartState) error) error {
	unlock := r.locks.Lock(cartID)
	defer unlock()

	r.mu.Lock()
	defer r.mu.Unlock()
	st, ok := r.byID[cartID]
	if !ok {
		return app.ErrNotFound
	}
	if err := fn(st); err != nil {
		return err
	}
	st.cart.UpdatedAt = r.now()
	return nil
}

func (r *CartRepo) AddItem(ctx context.Context, item domain.CartItem, cartID string) error {
	return r.mutate(cartID, func(st *cartState) error {
		for i := range st.items {
			if st.items[i].ProductID == item.ProductID {
				// Matches the int4 column: a sum past MaxInt32 is rejected, not wrapped.
				if int64(st.items[i].Quantity)+int64(item.Quantity) > math.MaxInt32 {
					return app.ErrInvalidInput
				}
				st.items[i].Quantity += item.Quantity
				return nil
			}
		}
		st.items = append(st.items, item)
		return nil
	})
}

func (r *CartRepo) SetItemQuantity(ctx context.Context, cartID string, item domain.CartItem) (bool, error) {
	var found bool
	err := r.mutate(cartID, func(st *cartState) error {
		for i := range st.items {
			if st.items[i].ProductID == item.ProductID {
				st.items[i].Quantity = item.Quantity
				found = true
				return nil
			}
		}
		return nil
	})
	return found, err
}

func (r *CartRepo) RemoveItem(ctx context.Context, cartID string, productID string) error {
	return r.mutate(cartID, func(st *cartState) error {
		kept := st.items[:0]
		for _, it := range st.items {
			if it.ProductID != productID {
				kept = append(kept, it)
			}
		}
		st.items = kept
		return nil
	})
}

func (r *CartRepo) ClearCart(ctx context.Context, cartID string) error {
	return r.mutate(cartID, func(st *cartState) error {
		st.items = nil
		return nil
	})
}

// Exclusive is a held lock on one user's cart. Nothing else can change
// the cart until Release.
type Exclusive struct {
	repo   *CartRepo
	cart   domain.Cart
	unlock func()
}

// Acquire creates the user's cart if needed and locks it. The caller must
// call Release.
func (r *CartRepo) Acquire(ctx context.Context, userID string) (*Exclusive, error) {
	r.mu.Lock()
	cartID := r.getOrCreateLocked(userID).cart.ID
	r.mu.Unlock()

	unlock := r.locks.Lock(cartID)

	r.mu.Lock()
	cart := r.byID[cartID].snapshot()
	r.mu.Unlock()

	return &Exclusive{repo: r, cart: cart, unlock: unlock}, nil
}

// Cart is the snapshot taken when the lock was acquired.
func (e *Exclusive) Cart() domain.Cart { return e.cart }

// Clear empties the locked cart.
func (e *Exclusive) Clear() {
	r := e.repo
	r.mu.Lock()
	defer r.mu.Unlock()
	if st, ok := r.byID[e.cart.ID]; ok {
		st.items = nil
		st.cart.UpdatedAt = r.now()
	}
}

func (e *Exclusive) Release() { e.unlock() }
