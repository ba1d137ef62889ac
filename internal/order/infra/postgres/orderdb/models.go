package orderdb

import (
	"time"

	"github.com/google/uuid"
)

type Order struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Status      string
	Currency    string
	TotalAmount int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type OrderItem struct {
	ID              uuid.UUID
	OrderID         uuid.UUID
	Position        int32
	ProductID       uuid.UUID
	Name            string
	UnitAmount      int64
	Quantity        int32
	LineTotalAmount int64
}
