package catalogdb

import (
	"time"

	"github.com/google/uuid"
)

type Product struct {
	ID            uuid.UUID
	Name          string
	Description   string
	PriceAmount   int64
	Currency      string
	StockQuantity int32
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
