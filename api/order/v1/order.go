// Package orderv1 defines the storefront.order.v1.OrderService wire contract.
package orderv1

type OrderItem struct {
	ProductID       string `json:"product_id"`
	Name            string `json:"name"`
	UnitAmount      int64  `json:"unit_amount"`
	Quantity        int32  `json:"quantity"`
	LineTotalAmount int64  `json:"line_total_amount"`
}

type Order struct {
	ID            string       `json:"id"`
	UserID        string       `json:"user_id"`
	Status        string       `json:"status"`
	Currency      string       `json:"currency"`
	TotalAmount   int64        `json:"total_amount"`
	Items         []*OrderItem `json:"items"`
	CreatedAtUnix int64        `json:"created_at_unix"`
	UpdatedAtUnix int64        `json:"updated_at_unix"`
}

type PlaceOrderRequest struct {
	UserID string `json:"user_id"`
}

type CancelOrderRequest struct {
	UserID  string `json:"user_id"`
	OrderID string `json:"order_id"`
}

type GetOrderRequest struct {
	UserID  string `json:"user_id"`
	OrderID string `json:"order_id"`
}

type ListOrdersRequest struct {
	UserID string `json:"user_id"`
}

type AdminListOrdersRequest struct{}

type ListOrdersResponse struct {
	Orders []*Order `json:"orders"`
}

type AdminSetStatusRequest struct {
	OrderID string `json:"order_id"`
	Status  string `json:"status"`
}
