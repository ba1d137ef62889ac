package grpc

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"

	catalogv1 "github.com/dwikikusuma/storefront/api/catalog/v1"
	"github.com/dwikikusuma/storefront/api/rpc"
	"github.com/dwikikusuma/storefront/internal/catalog/app"
	"github.com/dwikikusuma/storefront/internal/catalog/domain"
)

type Server struct {
	catalogv1.UnimplementedCatalogServiceServer
	svc *app.Service
}

func NewServer(svc *app.Service) *Server {
	return &Server{svc: svc}
}

func (s *Server) CreateProduct(ctx context.Context, req *catalogv1.CreateProductRequest) (*catalogv1.CreateProductResponse, error) {
	if req == nil || req.Price == nil {
		return nil, rpc.Error(codes.InvalidArgument, rpc.ReasonInvalidArgument, "missing body/price")
	}
	product, err := s.svc.CreateProduct(ctx, req.Name, req.Description, req.Price.Currency, req.Price.Amount, req.Quantity)
	if err != nil {
		return nil, mapErr(err)
	}
	return &catalogv1.CreateProductResponse{
		Product: toProto(product),
	}, nil
}

func (s *Server) GetProduct(ctx context.Context, req *catalogv1.GetProductRequest) (*catalogv1.GetProductResponse, error) {
	p, err := s.svc.GetProduct(ctx, req.GetID())
	if err != nil {
		return nil, mapErr(err)
	}
	return &catalogv1.GetProductResponse{Product: toProto(p)}, nil
}

func (s *Server) ListProducts(ctx context.Context, req *catalogv1.ListProductsRequest) (*catalogv1.ListProductsResponse, error) {
	products, next, err := s.svc.ListProducts(ctx, int(req.GetLimit()), req.GetCursor())
	if err != nil {
		return nil, mapErr(err)
	}

	out := make([]*catalogv1.Product, 0, len(products))
	for _, p := range products {
		out = append(out, toProto(p))
	}

	return &catalogv1.ListProductsResponse{Products: out, NextCursor: next}, nil
}

func toProto(p domain.Product) *catalogv1.Product {
	return &catalogv1.Product{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price: &catalogv1.Money{
			Currency: p.Price.Currency,
			Amount:   p.Price.Amount,
		},
		Quantity:      p.Quantity,
		CreatedAtUnix: p.CreatedAt.Unix(),
		UpdatedAtUnix: p.UpdatedAt.Unix(),
	}
}

func mapErr(err error) error {
	if errors.Is(err, app.ErrInvalidInput) {
		return rpc.Error(codes.InvalidArgument, rpc.ReasonInvalidArgument, err.Error())
	}
	if errors.Is(err, app.ErrNotFound) {
		return rpc.Error(codes.NotFound, rpc.ReasonNotFound, "product not found")
	}
	return rpc.Error(codes.Internal, "", "internal error")
}
