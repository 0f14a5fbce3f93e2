package service

import (
	"errors"
	"fmt"
)

// Conversion failures surfaced by the JSON boundary. The messages are
// part of the HTTP contract and are returned verbatim as 400 bodies.
var (
	ErrMarshal   = errors.New("error converting from object")
	ErrUnmarshal = errors.New("error converting from string")
)

// OutOfStockError reports an order referencing a product whose stock
// was exhausted at placement time.
type OutOfStockError struct {
	ProductID int64
}

func (e *OutOfStockError) Error() string {
	return fmt.Sprintf("product with id %d is out of stock", e.ProductID)
}

// IsOutOfStock reports whether err is a stock exhaustion failure.
func IsOutOfStock(err error) bool {
	var oos *OutOfStockError
	return errors.As(err, &oos)
}
