package service

import (
	"errors"
	"fmt"
)

var (
	ErrItemNotFound    = errors.New("item not found in cart")
	ErrInvalidQuantity = errors.New("quantity must be positive")
)

// OutOfStockError rejects a quantity (new or cumulative) that exceeds the
// product's remaining stock. Available and Unit carry enough for the UI to
// tell the shopper how much they can still take.
type OutOfStockError struct {
	ProductID int64
	Available int
	Unit      string
}

func (e *OutOfStockError) Error() string {
	return fmt.Sprintf("only %d %s left in stock", e.Available, e.Unit)
}
