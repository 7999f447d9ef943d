package ledger

import "errors"

var (
	ErrNotFound       = errors.New("ledger entry not found")
	ErrOverDeduction  = errors.New("deduction exceeds remaining balance")
	ErrAlreadyCleared = errors.New("ledger entry already cleared")
	ErrInvalidAmount  = errors.New("amount must be positive")
	ErrNoItems        = errors.New("product debt needs at least one item")
)
