package app

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCart []CartItem

func (f fakeCart) GetCart(ctx context.Context, userID string) ([]CartItem, error) { return f, nil }

type fakeCatalog map[string]Product

func (f fakeCatalog) GetProduct(ctx context.Context, id string) (Product, error) {
	p, ok := f[id]
	if !ok {
		return Product{}, ErrProductUnavailable
	}
	return p, nil
}

var catalog = fakeCatalog{
	"a": {ID: "a", Name: "A", Currency: "IDR", Amount: 10, Quantity: 5},
	"b": {ID: "b", Name: "B", Currency: "IDR", Amount: 7, Quantity: 1},
	"u": {ID: "u", Name: "U", Currency: "USD", Amount: 3, Quantity: 9},
}

func TestQuote(t *testing.T) {
	ctx := context.Background()

	t.Run("prices each line and sums", func(t *testing.T) {
		svc := NewService(fakeCart{{"a", 2}, {"b", 1}}, catalog, 2)
		q, err := svc.Quote(ctx, "u1")
		require.NoError(t, err)
		require.Len(t, q.Lines, 2)
		assert.Equal(t, "a", q.Lines[0].ProductID)
		assert.Equal(t, int64(20), q.Lines[0].LineTotal.Amount)
		assert.Equal(t, int64(27), q.Total.Amount)
		assert.Equal(t, "IDR", q.Total.Currency)
		assert.True(t, q.Orderable())
	})

	t.Run("flags lines short on stock", func(t *testing.T) {
		svc := NewService(fakeCart{{"a", 10}}, catalog, 0)
		q, err := svc.Quote(ctx, "u1")
		require.NoError(t, err)
		assert.False(t, q.Lines[0].Available)
		assert.False(t, q.Orderable())
	})

	t.Run("empty cart -> ErrEmptyCart", func(t *testing.T) {
		_, err := NewService(fakeCart{}, catalog, 0).Quote(ctx, "u1")
		assert.ErrorIs(t, err, ErrEmptyCart)
	})

	t.Run("unknown product -> ErrProductUnavailable", func(t *testing.T) {
		_, err := NewService(fakeCart{{"a", 1}, {"zzz", 1}}, catalog, 0).Quote(ctx, "u1")
		assert.True(t, errors.Is(err, ErrProductUnavailable))
	})

	t.Run("mixed currency -> ErrCurrencyMismatch", func(t *testing.T) {
		_, err := NewService(fakeCart{{"a", 1}, {"u", 1}}, catalog, 0).Quote(ctx, "u1")
		assert.ErrorIs(t, err, ErrCurrencyMismatch)
	})
}
