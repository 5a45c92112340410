package inventory

import (
	"errors"
	"fmt"
)

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrInvalidProduct   = errors.New("product code and name are required")
	ErrDuplicateProduct = errors.New("product code already exists")
	ErrInvalidQuantity  = errors.New("quantity must be positive")
	ErrNegativeCost     = errors.New("unit cost must not be negative")
	ErrNegativeStock    = errors.New("movement history drives stock below zero")
)

// InsufficientStockError rejects a sale exceeding the quantity available
// across all open lots.
type InsufficientStockError struct {
	ProductCode string
	Requested   int64
	Available   int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s: requested %d, available %d",
		e.ProductCode, e.Requested, e.Available)
}
