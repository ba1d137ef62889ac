package grpc

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"

	checkoutv1 "github.com/dwikikusuma/storefront/api/checkout/v1"
	"github.com/dwikikusuma/storefront/api/rpc"
	"github.com/dwikikusuma/storefront/internal/checkout/app"
	"github.com/dwikikusuma/storefront/internal/checkout/domain"
)

type Server struct {
	checkoutv1.UnimplementedCheckoutServiceServer
	svc *app.Service
}

func NewServer(svc *app.Service) *Server {
	return &Server{svc: svc}
}

func (s *Server) Quote(ctx context.Context, req *checkoutv1.QuoteRequest) (*checkoutv1.QuoteResponse, error) {
	if req.GetUserID() == "" {
		return nil, rpc.Error(codes.InvalidArgument, rpc.ReasonInvalidArgument, "user_id is required")
	}

	q, err := s.svc.Quote(ctx, req.UserID)
	switch {
	case err == nil:
		return toProto(q), nil
	case errors.Is(err, app.ErrEmptyCart):
		return nil, rpc.Error(codes.FailedPrecondition, rpc.ReasonEmptyCart, "cart is empty")
	case errors.Is(err, app.ErrProductUnavailable):
		return nil, rpc.Error(codes.FailedPrecondition, rpc.ReasonProductUnavailable, err.Error())
	case errors.Is(err, app.ErrCurrencyMismatch):
		return nil, rpc.Error(codes.FailedPrecondition, rpc.ReasonCurrencyMismatch, err.Error())
	default:
		return nil, rpc.Error(codes.Internal, "", "internal error")
	}
}

func toProto(q domain.Quote) *checkoutv1.QuoteResponse {
	lines := make([]*checkoutv1.QuoteLine, 0, len(q.Lines))
	for _, ln := range q.Lines {
		lines = append(lines, &checkoutv1.QuoteLine{
			ProductID: ln.ProductID,
			Name:      ln.Name,
			Quantity:  int32(ln.Quantity),
			UnitPrice: &checkoutv1.Money{Currency: ln.UnitPrice.Currency, Amount: ln.UnitPrice.Amount},
			LineTotal: &checkoutv1.Money{Currency: ln.LineTotal.Currency, Amount: ln.LineTotal.Amount},
			Available: ln.Available,
		})
	}

	return &checkoutv1.QuoteResponse{
		Lines:     lines,
		Total:     &checkoutv1.Money{Currency: q.Total.Currency, Amount: q.Total.Amount},
		Orderable: q.Orderable(),
	}
}
