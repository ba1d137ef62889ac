package domain

import "time"

type Money struct {
	Currency string
	Amount   int64
}

// Times multiplies a unit price by a quantity.
func (m Money) Times(qty int32) Money {
	return Money{Currency: m.Currency, Amount: m.Amount * int64(qty)}
}

type Product struct {
	ID          string
	Name        string
	Price       Money
	Description string
	// Quantity is the units available for sale. Never negative.
	Quantity  int32
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (p Product) InStock(qty int32) bool {
	return qty > 0 && p.Quantity >= qty
}
