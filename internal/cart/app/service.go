package app

import (
	"context"
	"errors"
	"strings"

	"github.com/dwikikusuma/storefront/internal/cart/domain"
)

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrNotFound        = errors.New("item not found")
	ErrProductNotFound = errors.New("product not found")
)

type Service struct {
	repo     CartRepo
	products ProductLookup
}

// NewService builds the cart service. products may be nil, in which case
// AddItem does not check that the product exists.
func NewService(repo CartRepo, products ProductLookup) *Service {
	return &Service{
		repo:     repo,
		products: products,
	}
}

func (s *Service) GetCart(ctx context.Context, userID string) (domain.Cart, error) {
	return s.GetOrCreate(ctx, userID)
}

func (s *Service) GetOrCreate(ctx context.Context, userID string) (domain.Cart, error) {
	if strings.TrimSpace(userID) == "" {
		return domain.Cart{}, ErrInvalidInput
	}
	return s.repo.GetOrCreate(ctx, userID)
}

// AddItem treats a zero quantity as one unit.
func (s *Service) AddItem(ctx context.Context, userID string, item domain.CartItem) (domain.Cart, error) {
	if item.Quantity == 0 {
		item.Quantity = 1
	}
	if strings.TrimSpace(item.ProductID) == "" || item.Quantity < 0 {
		return domain.Cart{}, ErrInvalidInput
	}

	if s.products != nil {
		ok, err := s.products.Exists(ctx, item.ProductID)
		if err != nil {
			return domain.Cart{}, err
		}
		if !ok {
			return domain.Cart{}, ErrProductNotFound
		}
	}

	cart, err := s.GetOrCreate(ctx, userID)
	if err != nil {
		return domain.Cart{}, err
	}
	if err := s.repo.AddItem(ctx, item, cart.ID); err != nil {
		return domain.Cart{}, err
	}
	return s.repo.GetOrCreate(ctx, userID)
}

func (s *Service) SetItemQuantity(ctx context.Context, userID string, item domain.CartItem) (domain.Cart, error) {
	if strings.TrimSpace(item.ProductID) == "" || item.Quantity < 1 {
		return domain.Cart{}, ErrInvalidInput
	}

	cart, err := s.GetOrCreate(ctx, userID)
	if err != nil {
		return domain.Cart{}, err
	}
	ok, err := s.repo.SetItemQuantity(ctx, cart.ID, item)
	if err != nil {
		return domain.Cart{}, err
	}
	if !ok {
		return domain.Cart{}, ErrNotFound
	}
	return s.repo.GetOrCreate(ctx, userID)
}

// RemoveItem is a no-op for products not in the cart.
func (s *Service) RemoveItem(ctx context.Context, userID string, productID string) (domain.Cart, error) {
	cart, err := s.GetOrCreate(ctx, userID)
	if err != nil {
		return domain.Cart{}, err
	}
	if err := s.repo.RemoveItem(ctx, cart.ID, productID); err != nil {
		return domain.Cart{}, err
	}
	return s.repo.GetOrCreate(ctx, userID)
}

func (s *Service) ClearCart(ctx context.Context, userID string) (domain.Cart, error) {
	cart, err := s.GetOrCreate(ctx, userID)
	if err != nil {
		return domain.Cart{}, err
	}
	if err := s.repo.ClearCart(ctx, cart.ID); err != nil {
		return domain.Cart{}, err
	}
	return s.repo.GetOrCreate(ctx, userID)
}
