package person

import "errors"

var (
	ErrNotFound          = errors.New("person not found")
	ErrInvalidPersonType = errors.New("invalid person type")
)
