package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Restock entrada de mercancía: incrementa el stock de un producto y deja
// registro del precio de compra.
type Restock struct {
	ID            string
	ProductID     string
	Quantity      int64
	PurchasePrice decimal.Decimal
	CreatedAt     time.Time
}
