package inventory

import (
	"context"
	"time"
)

type StoreAPI interface {
	ListItems(ctx context.Context) ([]Item, error)
	GetItem(ctx context.Context, id string) (Item, error)
	CreateItem(ctx context.Context, item Item) (Item, error)
	UpdateItem(ctx context.Context, id string, update ItemUpdate) (Item, error)
	DeleteItem(ctx context.Context, id string) error
	// SetQuantity updates the quantity (and optionally lastRestocked) and
	// recomputes the derived status.
	SetQuantity(ctx context.Context, id string, quantity float64, restockedAt *time.Time) (Item, error)

	AppendMovement(ctx context.Context, movement Movement) (Movement, error)
	ListMovements(ctx context.Context, itemID string) ([]Movement, error)
}
