package domain

import "time"

// Order is priced once at creation. Items are frozen copies of the catalog
// at that moment and TotalAmount is never recomputed.
type Order struct {
	ID          string
	UserID      string
	Status      Status
	Currency    string
	TotalAmount int64
	Items       []OrderItem
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type OrderItem struct {
	ID              string
	OrderID         string
	ProductID       string
	Name            string
	UnitAmount      int64
	Quantity        int32
	LineTotalAmount int64
}

// NewOrder builds a pending order, filling in line totals and the total.
func NewOrder(userID, currency string, items []OrderItem) Order {
	out := make([]OrderItem, len(items))
	var total int64
	for i, it := range items {
		it.LineTotalAmount = it.UnitAmount * int64(it.Quantity)
		total += it.LineTotalAmount
		out[i] = it
	}
	return Order{
		UserID:      userID,
		Status:      StatusPending,
		Currency:    currency,
		TotalAmount: total,
		Items:       out,
	}
}

// ItemsTotal sums the frozen line totals.
func (o Order) ItemsTotal() int64 {
	var total int64
	for _, it := range o.Items {
		total += it.LineTotalAmount
	}
	return total
}

// Clone returns a copy that shares no slices with o.
func (o Order) Clone() Order {
	o.Items = append([]OrderItem(nil), o.Items...)
	return o
}
