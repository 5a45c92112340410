package inventory

import (
	"time"

	"github.com/shopspring/decimal"
)

// Kind classifies an inventory movement.
type Kind string

const (
	KindPurchase Kind = "COMPRA"
	KindSale     Kind = "VENTA"
)

// Product is a neutral inventory item. Costing method is chosen per kardex
// run, not stored on the product.
type Product struct {
	ID        int64     `json:"id,omitempty"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

// Movement is one purchase or sale of a product. For purchases, Remaining
// tracks how much of the lot later sales have not yet consumed; it is a
// write-time FIFO bookkeeping side effect and report replays never read it.
// For sales, UnitCost and TotalCost are the values derived at write time;
// reports recompute them under the requested method.
type Movement struct {
	ID        int64           `json:"id,omitempty"`
	ProductID int64           `json:"product_id"`
	Date      time.Time       `json:"date"`
	Kind      Kind            `json:"kind"`
	Quantity  int64           `json:"quantity"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
	TotalCost decimal.Decimal `json:"total_cost"`
	Remaining int64           `json:"remaining"`
}
