package app_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dwikikusuma/storefront/internal/cart/app"
	"github.com/dwikikusuma/storefront/internal/cart/domain"
	"github.com/dwikikusuma/storefront/internal/cart/infra/memory"
)

type lookup map[string]bool

func (l lookup) Exists(ctx context.Context, productID string) (bool, error) {
	if productID == "broken" {
		return false, errors.New("catalog down")
	}
	return l[productID], nil
}

func TestService_ItemLifecycle(t *testing.T) {
	ctx := context.Background()
	svc := app.NewService(memory.NewCartRepo(), lookup{"p1": true, "p2": true})
	user := uuid.NewString()

	cart, err := svc.GetCart(ctx, user)
	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())

	cart, err = svc.AddItem(ctx, user, domain.CartItem{ProductID: "p1", Quantity: 2})
	require.NoError(t, err)
	cart, err = svc.AddItem(ctx, user, domain.CartItem{ProductID: "p1"})
	require.NoError(t, err)
	cart, err = svc.AddItem(ctx, user, domain.CartItem{ProductID: "p2", Quantity: 1})
	require.NoError(t, err)

	require.Len(t, cart.Items, 2)
	it, _ := cart.Find("p1")
	assert.Equal(t, int32(3), it.Quantity)

	cart, err = svc.SetItemQuantity(ctx, user, domain.CartItem{ProductID: "p2", Quantity: 7})
	require.NoError(t, err)
	it, _ = cart.Find("p2")
	assert.Equal(t, int32(7), it.Quantity)

	cart, err = svc.RemoveItem(ctx, user, "p1")
	require.NoError(t, err)
	_, found := cart.Find("p1")
	assert.False(t, found)

	cart, err = svc.ClearCart(ctx, user)
	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())
}

func TestService_Validation(t *testing.T) {
	ctx := context.Background()
	svc := app.NewService(memory.NewCartRepo(), lookup{"p1": true})
	user := uuid.NewString()

	t.Run("unknown product -> ErrProductNotFound", func(t *testing.T) {
		_, err := svc.AddItem(ctx, user, domain.CartItem{ProductID: "nope", Quantity: 1})
		assert.ErrorIs(t, err, app.ErrProductNotFound)
	})

	t.Run("negative add -> invalid", func(t *testing.T) {
		_, err := svc.AddItem(ctx, user, domain.CartItem{ProductID: "p1", Quantity: -1})
		assert.ErrorIs(t, err, app.ErrInvalidInput)
	})

	t.Run("set zero -> invalid", func(t *testing.T) {
		_, err := svc.SetItemQuantity(ctx, user, domain.CartItem{ProductID: "p1", Quantity: 0})
		assert.ErrorIs(t, err, app.ErrInvalidInput)
	})

	t.Run("set missing line -> not found", func(t *testing.T) {
		_, err := svc.SetItemQuantity(ctx, user, domain.CartItem{ProductID: "p1", Quantity: 2})
		assert.ErrorIs(t, err, app.ErrNotFound)
	})

	t.Run("catalog failure surfaces", func(t *testing.T) {
		_, err := svc.AddItem(ctx, user, domain.CartItem{ProductID: "broken", Quantity: 1})
		assert.EqualError(t, err, "catalog down")
	})

	t.Run("blank user -> invalid", func(t *testing.T) {
		_, err := svc.GetCart(ctx, " ")
		assert.ErrorIs(t, err, app.ErrInvalidInput)
	})
}
