package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dwikikusuma/storefront/internal/catalog/domain"
)

type fakeRepo struct {
	created   domain.Product
	lastLimit int
}

func (f *fakeRepo) Create(ctx context.Context, p domain.Product) (domain.Product, error) {
	p.ID = "p-1"
	f.created = p
	return p, nil
}
func (f *fakeRepo) Get(ctx context.Context, id string) (domain.Product, error) {
	return domain.Product{}, ErrNotFound
}
func (f *fakeRepo) List(ctx context.Context, limit int, cursor string) ([]domain.Product, string, error) {
	f.lastLimit = limit
	return nil, "", nil
}

func TestCreateProductValidation(t *testing.T) {
	svc := NewService(&fakeRepo{})

	t.Run("empty name -> invalid", func(t *testing.T) {
		_, err := svc.CreateProduct(context.Background(), "   ", "x", "IDR", 100, 1)
		if err != ErrInvalidInput {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("negative amount -> invalid", func(t *testing.T) {
		_, err := svc.CreateProduct(context.Background(), "Keyboard", "x", "IDR", -1, 1)
		if err != ErrInvalidInput {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("empty currency -> invalid", func(t *testing.T) {
		_, err := svc.CreateProduct(context.Background(), "Keyboard", "x", "   ", 100, 1)
		if err != ErrInvalidInput {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("negative stock -> invalid", func(t *testing.T) {
		_, err := svc.CreateProduct(context.Background(), "Keyboard", "x", "IDR", 100, -3)
		if err != ErrInvalidInput {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})
}

func TestCreateProductNormalizes(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo)

	p, err := svc.CreateProduct(context.Background(), "  Mouse ", "wireless", " idr ", 50000, 0)
	require.NoError(t, err)

	assert.Equal(t, "p-1", p.ID)
	assert.Equal(t, "Mouse", repo.created.Name)
	assert.Equal(t, "IDR", repo.created.Price.Currency)
	assert.Equal(t, int32(0), repo.created.Quantity)
}

func TestListProductsClampsLimit(t *testing.T) {
	cases := []struct {
		in, want int
	}{
		{0, 20},
		{-5, 20},
		{7, 7},
		{100, 100},
		{1000, 100},
	}
	for _, tc := range cases {
		repo := &fakeRepo{}
		_, _, err := NewService(repo).ListProducts(context.Background(), tc.in, "")
		require.NoError(t, err)
		assert.Equal(t, tc.want, repo.lastLimit, "limit %d", tc.in)
	}
}

func TestGetProductRequiresID(t *testing.T) {
	_, err := NewService(&fakeRepo{}).GetProduct(context.Background(), " ")
	assert.ErrorIs(t, err, ErrInvalidInput)
}
