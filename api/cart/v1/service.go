package cartv1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dwikikusuma/storefront/api/rpc"
)

const ServiceName = "storefront.cart.v1.CartService"

type CartServiceServer interface {
	GetCart(context.Context, *UserID) (*Cart, error)
	AddItem(context.Context, *UpdateCartItemRequest) (*Cart, error)
	SetItemQuantity(context.Context, *UpdateCartItemRequest) (*Cart, error)
	RemoveItem(context.Context, *RemoveCartItemRequest) (*Cart, error)
}

type UnimplementedCartServiceServer struct{}

func (UnimplementedCartServiceServer) GetCart(context.Context, *UserID) (*Cart, error) {
	return nil, status.Error(codes.Unimplemented, "method GetCart not implemented")
}
func (UnimplementedCartServiceServer) AddItem(context.Context, *UpdateCartItemRequest) (*Cart, error) {
	return nil, status.Error(codes.Unimplemented, "method AddItem not implemented")
}
func (UnimplementedCartServiceServer) SetItemQuantity(context.Context, *UpdateCartItemRequest) (*Cart, error) {
	return nil, status.Error(codes.Unimplemented, "method SetItemQuantity not implemented")
}
func (UnimplementedCartServiceServer) RemoveItem(context.Context, *RemoveCartItemRequest) (*Cart, error) {
	return nil, status.Error(codes.Unimplemented, "method RemoveItem not implemented")
}

var CartService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*CartServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		rpc.Unary(ServiceName, "GetCart", CartServiceServer.GetCart),
		rpc.Unary(ServiceName, "AddItem", CartServiceServer.AddItem),
		rpc.Unary(ServiceName, "SetItemQuantity", CartServiceServer.SetItemQuantity),
		rpc.Unary(ServiceName, "RemoveItem", CartServiceServer.RemoveItem),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "storefront/cart/v1",
}

func RegisterCartServiceServer(s grpc.ServiceRegistrar, srv CartServiceServer) {
	s.RegisterService(&CartService_ServiceDesc, srv)
}

type CartServiceClient interface {
	GetCart(ctx context.Context, in *UserID, opts ...grpc.CallOption) (*Cart, error)
	AddItem(ctx context.Context, in *UpdateCartItemRequest, opts ...grpc.CallOption) (*Cart, error)
	SetItemQuantity(ctx context.Context, in *UpdateCartItemRequest, opts ...grpc.CallOption) (*Cart, error)
	RemoveItem(ctx context.Context, in *RemoveCartItemRequest, opts ...grpc.CallOption) (*Cart, error)
}

type cartServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewCartServiceClient(cc grpc.ClientConnInterface) CartServiceClient {
	return &cartServiceClient{cc: cc}
}

func (c *cartServiceClient) GetCart(ctx context.Context, in *UserID, opts ...grpc.CallOption) (*Cart, error) {
	return rpc.Invoke[Cart](ctx, c.cc, ServiceName, "GetCart", in, opts...)
}

func (c *cartServiceClient) AddItem(ctx context.Context, in *UpdateCartItemRequest, opts ...grpc.CallOption) (*Cart, error) {
	return rpc.Invoke[Cart](ctx, c.cc, ServiceName, "AddItem", in, opts...)
}

func (c *cartServiceClient) SetItemQuantity(ctx context.Context, in *UpdateCartItemRequest, opts ...grpc.CallOption) (*Cart, error) {
	return rpc.Invoke[Cart](ctx, c.cc, ServiceName, "SetItemQuantity", in, opts...)
}

func (c *cartServiceClient) RemoveItem(ctx context.Context, in *RemoveCartItemRequest, opts ...grpc.CallOption) (*Cart, error) {
	return rpc.Invoke[Cart](ctx, c.cc, ServiceName, "RemoveItem", in, opts...)
}
