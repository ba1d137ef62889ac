// Package cartv1 defines the storefront.cart.v1.CartService wire contract.
package cartv1

type CartItem struct {
	ProductID string `json:"product_id"`
	Quantity  int32  `json:"quantity"`
}

type Cart struct {
	ID            string      `json:"id"`
	UserID        string      `json:"user_id"`
	Status        string      `json:"status"`
	Items         []*CartItem `json:"items"`
	CreatedAtUnix int64       `json:"created_at_unix"`
	UpdatedAtUnix int64       `json:"updated_at_unix"`
}

type UserID struct {
	ID string `json:"id"`
}

type UpdateCartItemRequest struct {
	UserID string    `json:"user_id"`
	Item   *CartItem `json:"item"`
}

type RemoveCartItemRequest struct {
	UserID    string `json:"user_id"`
	ProductID string `json:"product_id"`
}
