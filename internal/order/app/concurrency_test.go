package app_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
	"pgregory.net/rapid"

	catalogdomain "github.com/dwikikusuma/storefront/internal/catalog/domain"
	"github.com/dwikikusuma/storefront/internal/order/app"
)

func TestPlaceOrder_ConcurrentBuyersNeverOversell(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	const stock, buyers = 7, 30
	p := f.product(t, "Last units", 100, stock)

	users := make([]string, buyers)
	for i := range users {
		users[i] = newUser()
		f.addToCart(t, users[i], p, 1)
	}

	var ok, short atomic.Int32
	var g errgroup.Group
	for _, u := range users {
		g.Go(func() error {
			_, err := f.svc.PlaceOrder(ctx, u)
			switch {
			case err == nil:
				ok.Add(1)
			case errors.Is(err, app.ErrInsufficientStock):
				short.Add(1)
			default:
				return err
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	assert.Equal(t, int32(stock), ok.Load())
	assert.Equal(t, int32(buyers-stock), short.Load())
	assert.Equal(t, int32(0), f.stock(t, p))
}

func TestPlaceOrder_SameCartTwiceOnlyOnce(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	user := newUser()
	p := f.product(t, "A", 10, 100)
	f.addToCart(t, user, p, 3)

	var ok, empty atomic.Int32
	var g errgroup.Group
	for i := 0; i < 10; i++ {
		g.Go(func() error {
			_, err := f.svc.PlaceOrder(ctx, user)
			switch {
			case err == nil:
				ok.Add(1)
			case errors.Is(err, app.ErrEmptyCart):
				empty.Add(1)
			default:
				return err
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	assert.Equal(t, int32(1), ok.Load())
	assert.Equal(t, int32(9), empty.Load())
	assert.Equal(t, int32(97), f.stock(t, p))
}

func TestPlaceOrder_CancelRacesPlacement(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	p := f.product(t, "A", 10, 10)

	first := newUser()
	f.addToCart(t, first, p, 4)
	o, err := f.svc.PlaceOrder(ctx, first)
	require.NoError(t, err)

	second := newUser()
	f.addToCart(t, second, p, 6)

	var g errgroup.Group
	g.Go(func() error {
		_, err := f.svc.CancelOrder(ctx, first, o.ID)
		return err
	})
	g.Go(func() error {
		_, err := f.svc.PlaceOrder(ctx, second)
		return err
	})
	require.NoError(t, g.Wait())

	assert.Equal(t, int32(4), f.stock(t, p))
}

// pausingUoW parks the first decrement of one product until resume closes.
type pausingUoW struct {
	inner     app.UnitOfWork
	productID string
	reached   chan struct{}
	resume    chan struct{}
	once      sync.Once
}

type pausingTx struct {
	app.Tx
	u *pausingUoW
}

type pausingProducts struct {
	app.ProductStore
	u *pausingUoW
}

func (u *pausingUoW) WithinTx(ctx context.Context, fn func(context.Context, app.Tx) error) error {
	return u.inner.WithinTx(ctx, func(ctx context.Context, tx app.Tx) error {
		return fn(ctx, pausingTx{Tx: tx, u: u})
	})
}

func (t pausingTx) Products() app.ProductStore {
	return pausingProducts{ProductStore: t.Tx.Products(), u: t.u}
}

func (p pausingProducts) DecrementStock(ctx context.Context, id string, qty int32) (bool, error) {
	if id == p.u.productID {
		p.u.once.Do(func() { close(p.u.reached) })
		<-p.u.resume
	}
	return p.ProductStore.DecrementStock(ctx, id, qty)
}

// A buyer whose order is about to roll back must not make a concurrent
// buyer of the same product see it as sold out.
func TestPlaceOrder_RollbackDoesNotStarveConcurrentBuyer(t *testing.T) {
	ctx := context.Background()
	const firstID, secondID = "00000000-0000-4000-8000-00000000000a", "00000000-0000-4000-8000-00000000000b"

	pause := &pausingUoW{productID: secondID, reached: make(chan struct{}), resume: make(chan struct{})}
	f := newFixture(t, func(u app.UnitOfWork) app.UnitOfWork {
		pause.inner = u
		return pause
	})
	for id, qty := range map[string]int32{firstID: 1, secondID: 0} {
		_, err := f.products.Create(ctx, catalogdomain.Product{
			ID:       id,
			Name:     "P",
			Price:    catalogdomain.Money{Currency: "IDR", Amount: 100},
			Quantity: qty,
		})
		require.NoError(t, err)
	}

	doomed, buyer := newUser(), newUser()
	f.addToCart(t, doomed, firstID, 1)
	f.addToCart(t, doomed, secondID, 1)
	f.addToCart(t, buyer, firstID, 1)

	doomedErr := make(chan error, 1)
	go func() {
		_, err := f.svc.PlaceOrder(ctx, doomed)
		doomedErr <- err
	}()

	select {
	case <-pause.reached:
	case <-time.After(time.Second):
		t.Fatal("first order never reached the second product")
	}

	buyerErr := make(chan error, 1)
	go func() {
		_, err := f.svc.PlaceOrder(ctx, buyer)
		buyerErr <- err
	}()
	time.Sleep(50 * time.Millisecond)
	close(pause.resume)

	require.ErrorIs(t, <-doomedErr, app.ErrInsufficientStock)
	require.NoError(t, <-buyerErr)
	assert.Equal(t, int32(0), f.stock(t, firstID))
	assert.Equal(t, int32(0), f.stock(t, secondID))
}

// Stock is conserved: what left the shelf is exactly what was ordered.
func TestPlaceOrder_StockConservation(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		ctx := context.Background()
		f := newFixture(t)

		nProducts := rapid.IntRange(1, 4).Draw(rt, "products")
		ids := make([]string, nProducts)
		initial := make(map[string]int32, nProducts)
		for i := range ids {
			q := rapid.Int32Range(0, 10).Draw(rt, "stock")
			ids[i] = f.product(t, "P", rapid.Int64Range(1, 500).Draw(rt, "price"), q)
			initial[ids[i]] = q
		}

		ordered := make(map[string]int32)
		nUsers := rapid.IntRange(1, 6).Draw(rt, "users")
		for u := 0; u < nUsers; u++ {
			user := newUser()
			lines := rapid.IntRange(1, 3).Draw(rt, "lines")
			for l := 0; l < lines; l++ {
				id := rapid.SampledFrom(ids).Draw(rt, "product")
				f.addToCart(t, user, id, rapid.Int32Range(1, 6).Draw(rt, "qty"))
			}

			o, err := f.svc.PlaceOrder(ctx, user)
			if err != nil {
				if !errors.Is(err, app.ErrInsufficientStock) {
					rt.Fatalf("unexpected error: %v", err)
				}
				continue
			}
			var sum int64
			for _, it := range o.Items {
				ordered[it.ProductID] += it.Quantity
				sum += it.UnitAmount * int64(it.Quantity)
			}
			if sum != o.TotalAmount {
				rt.Fatalf("total %d != sum %d", o.TotalAmount, sum)
			}
		}

		for _, id := range ids {
			left := f.stock(t, id)
			if left < 0 {
				rt.Fatalf("negative stock %d", left)
			}
			if left+ordered[id] != initial[id] {
				rt.Fatalf("product %s: %d left + %d ordered != %d", id, left, ordered[id], initial[id])
			}
		}
	})
}
