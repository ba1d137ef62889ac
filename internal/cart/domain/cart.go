package domain

import "time"

const StatusActive = "ACTIVE"

type CartItem struct {
	ProductID string
	Quantity  int32
}

// Cart holds at most one line per product, each with Quantity >= 1.
type Cart struct {
	ID        string
	UserID    string
	Status    string
	Items     []CartItem
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (c Cart) IsEmpty() bool { return len(c.Items) == 0 }

func (c Cart) Find(productID string) (CartItem, bool) {
	for _, it := range c.Items {
		if it.ProductID == productID {
			return it, true
		}
	}
	return CartItem{}, false
}
