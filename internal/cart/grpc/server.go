package grpc

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"

	cartv1 "github.com/dwikikusuma/storefront/api/cart/v1"
	"github.com/dwikikusuma/storefront/api/rpc"
	"github.com/dwikikusuma/storefront/internal/cart/app"
	"github.com/dwikikusuma/storefront/internal/cart/domain"
)

type Server struct {
	cartv1.UnimplementedCartServiceServer
	svc *app.Service
}

func NewServer(svc *app.Service) *Server {
	return &Server{svc: svc}
}

func (s *Server) GetCart(ctx context.Context, req *cartv1.UserID) (*cartv1.Cart, error) {
	cart, err := s.svc.GetCart(ctx, req.ID)
	if err != nil {
		return nil, mapErr(err)
	}
	return toProto(cart), nil
}

func (s *Server) AddItem(ctx context.Context, req *cartv1.UpdateCartItemRequest) (*cartv1.Cart, error) {
	if req.Item == nil {
		return nil, rpc.Error(codes.InvalidArgument, rpc.ReasonInvalidArgument, "item is required")
	}
	cart, err := s.svc.AddItem(ctx, req.UserID, domain.CartItem{
		ProductID: req.Item.ProductID,
		Quantity:  req.Item.Quantity,
	})
	if err != nil {
		return nil, mapErr(err)
	}
	return toProto(cart), nil
}

func (s *Server) SetItemQuantity(ctx context.Context, req *cartv1.UpdateCartItemRequest) (*cartv1.Cart, error) {
	if req.Item == nil {
		return nil, rpc.Error(codes.InvalidArgument, rpc.ReasonInvalidArgument, "item is required")
	}
	cart, err := s.svc.SetItemQuantity(ctx, req.UserID, domain.CartItem{
		ProductID: req.Item.ProductID,
		Quantity:  req.Item.Quantity,
	})
	if err != nil {
		return nil, mapErr(err)
	}
	return toProto(cart), nil
}

func (s *Server) RemoveItem(ctx context.Context, req *cartv1.RemoveCartItemRequest) (*cartv1.Cart, error) {
	cart, err := s.svc.RemoveItem(ctx, req.UserID, req.ProductID)
	if err != nil {
		return nil, mapErr(err)
	}
	return toProto(cart), nil
}

func mapErr(err error) error {
	switch {
	case errors.Is(err, app.ErrInvalidInput):
		return rpc.Error(codes.InvalidArgument, rpc.ReasonInvalidArgument, err.Error())
	case errors.Is(err, app.ErrNotFound), errors.Is(err, app.ErrProductNotFound):
		return rpc.Error(codes.NotFound, rpc.ReasonNotFound, err.Error())
	default:
		return rpc.Error(codes.Internal, "", "internal error")
	}
}

func toProto(cart domain.Cart) *cartv1.Cart {
	items := make([]*cartv1.CartItem, 0, len(cart.Items))
	for _, item := range cart.Items {
		items = append(items, &cartv1.CartItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	return &cartv1.Cart{
		ID:            cart.ID,
		UserID:        cart.UserID,
		Status:        cart.Status,
		Items:         items,
		CreatedAtUnix: cart.CreatedAt.Unix(),
		UpdatedAtUnix: cart.UpdatedAt.Unix(),
	}
}
