package grpc

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"

	orderv1 "github.com/dwikikusuma/storefront/api/order/v1"
	"github.com/dwikikusuma/storefront/api/rpc"
	"github.com/dwikikusuma/storefront/internal/order/app"
	"github.com/dwikikusuma/storefront/internal/order/domain"
)

type Server struct {
	orderv1.UnimplementedOrderServiceServer
	svc *app.Service
}

func NewServer(svc *app.Service) *Server {
	return &Server{svc: svc}
}

func (s *Server) PlaceOrder(ctx context.Context, req *orderv1.PlaceOrderRequest) (*orderv1.Order, error) {
	order, err := s.svc.PlaceOrder(ctx, req.UserID)
	if err != nil {
		return nil, mapErr(err)
	}
	return toProto(order), nil
}

func (s *Server) CancelOrder(ctx context.Context, req *orderv1.CancelOrderRequest) (*orderv1.Order, error) {
	order, err := s.svc.CancelOrder(ctx, req.UserID, req.OrderID)
	if err != nil {
		return nil, mapErr(err)
	}
	return toProto(order), nil
}

func (s *Server) GetOrder(ctx context.Context, req *orderv1.GetOrderRequest) (*orderv1.Order, error) {
	order, err := s.svc.GetOrder(ctx, req.UserID, req.OrderID)
	if err != nil {
		return nil, mapErr(err)
	}
	return toProto(order), nil
}

func (s *Server) ListOrders(ctx context.Context, req *orderv1.ListOrdersRequest) (*orderv1.ListOrdersResponse, error) {
	orders, err := s.svc.ListOrders(ctx, req.UserID)
	if err != nil {
		return nil, mapErr(err)
	}
	return toListProto(orders), nil
}

func (s *Server) AdminListOrders(ctx context.Context, _ *orderv1.AdminListOrdersRequest) (*orderv1.ListOrdersResponse, error) {
	orders, err := s.svc.ListAllOrders(ctx)
	if err != nil {
		return nil, mapErr(err)
	}
	return toListProto(orders), nil
}

func (s *Server) AdminSetStatus(ctx context.Context, req *orderv1.AdminSetStatusRequest) (*orderv1.Order, error) {
	order, err := s.svc.SetStatus(ctx, req.OrderID, req.Status)
	if err != nil {
		return nil, mapErr(err)
	}
	return toProto(order), nil
}

func mapErr(err error) error {
	switch {
	case errors.Is(err, app.ErrNotFound):
		return rpc.Error(codes.NotFound, rpc.ReasonNotFound, err.Error())
	case errors.Is(err, domain.ErrInvalidStatus):
		return rpc.Error(codes.InvalidArgument, rpc.ReasonInvalidStatus, err.Error())
	case errors.Is(err, app.ErrInvalidInput):
		return rpc.Error(codes.InvalidArgument, rpc.ReasonInvalidArgument, err.Error())
	case errors.Is(err, app.ErrEmptyCart):
		return rpc.Error(codes.FailedPrecondition, rpc.ReasonEmptyCart, err.Error())
	case errors.Is(err, app.ErrProductUnavailable):
		return rpc.Error(codes.FailedPrecondition, rpc.ReasonProductUnavailable, err.Error())
	case errors.Is(err, app.ErrInsufficientStock):
		return rpc.Error(codes.FailedPrecondition, rpc.ReasonInsufficientStock, err.Error())
	case errors.Is(err, app.ErrCurrencyMismatch):
		return rpc.Error(codes.FailedPrecondition, rpc.ReasonCurrencyMismatch, err.Error())
	case errors.Is(err, domain.ErrInvalidTransition):
		return rpc.Error(codes.FailedPrecondition, rpc.ReasonInvalidTransition, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return rpc.Error(codes.DeadlineExceeded, "", "deadline exceeded")
	case errors.Is(err, context.Canceled):
		return rpc.Error(codes.Canceled, "", "canceled")
	default:
		return rpc.Error(codes.Internal, "", "internal error")
	}
}

func toListProto(orders []domain.Order) *orderv1.ListOrdersResponse {
	out := make([]*orderv1.Order, 0, len(orders))
	for _, o := range orders {
		out = append(out, toProto(o))
	}
	return &orderv1.ListOrdersResponse{Orders: out}
}

func toProto(o domain.Order) *orderv1.Order {
	items := make([]*orderv1.OrderItem, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, &orderv1.OrderItem{
			ProductID:       it.ProductID,
			Name:            it.Name,
			UnitAmount:      it.UnitAmount,
			Quantity:        it.Quantity,
			LineTotalAmount: it.LineTotalAmount,
		})
	}

	return &orderv1.Order{
		ID:            o.ID,
		UserID:        o.UserID,
		Status:        o.Status.String(),
		Currency:      o.Currency,
		TotalAmount:   o.TotalAmount,
		Items:         items,
		CreatedAtUnix: o.CreatedAt.Unix(),
		UpdatedAtUnix: o.UpdatedAt.Unix(),
	}
}
