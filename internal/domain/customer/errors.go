package customer

import "errors"

var (
	ErrNotFound     = errors.New("customer not found")
	ErrSaleNotFound = errors.New("milk sale not found")
	ErrInvalidSale  = errors.New("sale needs a positive quantity and price")
)
