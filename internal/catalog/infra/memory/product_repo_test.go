package memory

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/dwikikusuma/storefront/internal/catalog/app"
	"github.com/dwikikusuma/storefront/internal/catalog/domain"
)

func TestProductRepo_DecrementIsConditional(t *testing.T) {
	ctx := context.Background()
	repo := NewProductRepo()
	p, err := repo.Create(ctx, domain.Product{Name: "A", Price: domain.Money{Currency: "IDR", Amount: 10}, Quantity: 5})
	require.NoError(t, err)

	ok, err := repo.DecrementStock(ctx, p.ID, 6)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = repo.DecrementStock(ctx, p.ID, 0)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = repo.DecrementStock(ctx, p.ID, 5)
	require.NoError(t, err)
	assert.True(t, ok)

	got, err := repo.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, int32(0), got.Quantity)

	ok, err = repo.DecrementStock(ctx, "missing", 1)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestProductRepo_ConcurrentDecrementNeverOversells(t *testing.T) {
	ctx := context.Background()
	repo := NewProductRepo()
	p, err := repo.Create(ctx, domain.Product{Name: "A", Quantity: 25})
	require.NoError(t, err)

	var wins atomic.Int32
	var g errgroup.Group
	for i := 0; i < 200; i++ {
		g.Go(func() error {
			ok, err := repo.DecrementStock(ctx, p.ID, 1)
			if ok {
				wins.Add(1)
			}
			return err
		})
	}
	require.NoError(t, g.Wait())

	assert.Equal(t, int32(25), wins.Load())
	got, _ := repo.Get(ctx, p.ID)
	assert.Equal(t, int32(0), got.Quantity)
}

func TestProductRepo_ListPages(t *testing.T) {
	ctx := context.Background()
	repo := NewProductRepo()
	for _, id := range []string{"c", "a", "b"} {
		_, err := repo.Create(ctx, domain.Product{ID: id, Name: id})
		require.NoError(t, err)
	}

	page, next, err := repo.List(ctx, 2, "")
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "a", page[0].ID)
	assert.Equal(t, "b", next)

	page, next, err = repo.List(ctx, 2, next)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "c", page[0].ID)
	assert.Empty(t, next)

	_, err = repo.Get(ctx, "zzz")
	assert.ErrorIs(t, err, app.ErrNotFound)
}
