package inventory

import "errors"

var (
	ErrNotFound            = errors.New("inventory item not found")
	ErrInvalidMovementType = errors.New("invalid movement type")
	ErrInvalidQuantity     = errors.New("quantity must not be negative")
)
