// Package checkoutv1 defines the storefront.checkout.v1.CheckoutService wire contract.
package checkoutv1

type Money struct {
	Currency string `json:"currency"`
	Amount   int64  `json:"amount"`
}

type QuoteRequest struct {
	UserID string `json:"user_id"`
}

func (r *QuoteRequest) GetUserID() string {
	if r == nil {
		return ""
	}
	return r.UserID
}

type QuoteLine struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Quantity  int32  `json:"quantity"`
	UnitPrice *Money `json:"unit_price"`
	LineTotal *Money `json:"line_total"`
	Available bool   `json:"available"`
}

type QuoteResponse struct {
	Lines []*QuoteLine `json:"lines"`
	Total *Money       `json:"total"`
	// Orderable is false when any line lacks stock.
	Orderable bool `json:"orderable"`
}
