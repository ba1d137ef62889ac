// Package catalogv1 defines the storefront.catalog.v1.CatalogService wire contract.
package catalogv1

type Money struct {
	Currency string `json:"currency"`
	Amount   int64  `json:"amount"`
}

type Product struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	Price         *Money `json:"price"`
	Quantity      int32  `json:"quantity"`
	CreatedAtUnix int64  `json:"created_at_unix"`
	UpdatedAtUnix int64  `json:"updated_at_unix"`
}

type CreateProductRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       *Money `json:"price"`
	Quantity    int32  `json:"quantity"`
}

type CreateProductResponse struct {
	Product *Product `json:"product"`
}

type GetProductRequest struct {
	ID string `json:"id"`
}

func (r *GetProductRequest) GetID() string {
	if r == nil {
		return ""
	}
	return r.ID
}

type GetProductResponse struct {
	Product *Product `json:"product"`
}

type ListProductsRequest struct {
	Limit  int32  `json:"limit"`
	Cursor string `json:"cursor"`
}

func (r *ListProductsRequest) GetLimit() int32 {
	if r == nil {
		return 0
	}
	return r.Limit
}

func (r *ListProductsRequest) GetCursor() string {
	if r == nil {
		return ""
	}
	return r.Cursor
}

type ListProductsResponse struct {
	Products   []*Product `json:"products"`
	NextCursor string     `json:"next_cursor"`
}
