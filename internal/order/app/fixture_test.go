package app_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	cartdomain "github.com/dwikikusuma/storefront/internal/cart/domain"
	cartmem "github.com/dwikikusuma/storefront/internal/cart/infra/memory"
	catalogdomain "github.com/dwikikusuma/storefront/internal/catalog/domain"
	catalogmem "github.com/dwikikusuma/storefront/internal/catalog/infra/memory"
	"github.com/dwikikusuma/storefront/internal/order/app"
	"github.com/dwikikusuma/storefront/internal/order/domain"
	"github.com/dwikikusuma/storefront/internal/order/infra/memory"
	"github.com/dwikikusuma/storefront/pkg/logger"
)

type event struct {
	kind    string
	userID  string
	orderID string
	amount  int64
	status  domain.Status
}

type recorder struct {
	mu     sync.Mutex
	events []event
}

func (r *recorder) NotifyOrderPlaced(ctx context.Context, userID, orderID string, total int64, currency string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event{kind: "placed", userID: userID, orderID: orderID, amount: total})
}

func (r *recorder) NotifyStatusChanged(ctx context.Context, userID, orderID string, st domain.Status) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event{kind: "status", userID: userID, orderID: orderID, status: st})
}

func (r *recorder) all() []event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]event(nil), r.events...)
}

type fixture struct {
	svc      *app.Service
	store    *memory.Store
	products *catalogmem.ProductRepo
	carts    *cartmem.CartRepo
	notes    *recorder
	spans    *tracetest.SpanRecorder
}

func newFixture(t *testing.T, wrap ...func(app.UnitOfWork) app.UnitOfWork) *fixture {
	t.Helper()
	products := catalogmem.NewProductRepo()
	carts := cartmem.NewCartRepo()
	store := memory.NewStore(carts, products)

	var uow app.UnitOfWork = store
	for _, w := range wrap {
		uow = w(uow)
	}

	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	notes := &recorder{}
	return &fixture{
		svc:      app.NewService(uow, store, notes, app.WithLogger(logger.Discard()), app.WithTracer(tp)),
		store:    store,
		products: products,
		carts:    carts,
		notes:    notes,
		spans:    sr,
	}
}

func (f *fixture) product(t *testing.T, name string, price int64, qty int32) string {
	t.Helper()
	return f.productIn(t, name, "IDR", price, qty)
}

func (f *fixture) productIn(t *testing.T, name, currency string, price int64, qty int32) string {
	t.Helper()
	p, err := f.products.Create(context.Background(), catalogdomain.Product{
		Name:     name,
		Price:    catalogdomain.Money{Currency: currency, Amount: price},
		Quantity: qty,
	})
	require.NoError(t, err)
	return p.ID
}

func (f *fixture) stock(t *testing.T, id string) int32 {
	t.Helper()
	p, err := f.products.Get(context.Background(), id)
	require.NoError(t, err)
	return p.Quantity
}

func (f *fixture) addToCart(t *testing.T, userID, productID string, qty int32) {
	t.Helper()
	ctx := context.Background()
	cart, err := f.carts.GetOrCreate(ctx, userID)
	require.NoError(t, err)
	require.NoError(t, f.carts.AddItem(ctx, cartdomain.CartItem{ProductID: productID, Quantity: qty}, cart.ID))
}

func (f *fixture) cart(t *testing.T, userID string) cartdomain.Cart {
	t.Helper()
	c, err := f.carts.GetOrCreate(context.Background(), userID)
	require.NoError(t, err)
	return c
}

func newUser() string { return uuid.NewString() }

var errStorage = errors.New("disk on fire")

// failingUoW makes the wrapped unit of work's order writes fail.
type failingUoW struct {
	inner    app.UnitOfWork
	onCreate bool
	onStatus bool
}

type failingTx struct {
	app.Tx
	u *failingUoW
}

type failingOrders struct {
	app.OrderStore
	u *failingUoW
}

func (u *failingUoW) WithinTx(ctx context.Context, fn func(context.Context, app.Tx) error) error {
	return u.inner.WithinTx(ctx, func(ctx context.Context, tx app.Tx) error {
		return fn(ctx, failingTx{Tx: tx, u: u})
	})
}

func (t failingTx) Orders() app.OrderStore { return failingOrders{OrderStore: t.Tx.Orders(), u: t.u} }

func (o failingOrders) Create(ctx context.Context, ord domain.Order) (domain.Order, error) {
	if o.u.onCreate {
		return domain.Order{}, errStorage
	}
	return o.OrderStore.Create(ctx, ord)
}

func (o failingOrders) UpdateStatus(ctx context.Context, id string, from, to domain.Status) (domain.Order, error) {
	if o.u.onStatus {
		return domain.Order{}, errStorage
	}
	return o.OrderStore.UpdateStatus(ctx, id, from, to)
}
