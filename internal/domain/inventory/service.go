package inventory

import (
	"context"
	"sort"
	"time"
)

type Service struct {
	store StoreAPI
}

func NewService(store StoreAPI) *Service {
	return &Service{store: store}
}

func (s *Service) Items(ctx context.Context) ([]Item, error) {
	return s.store.ListItems(ctx)
}

func (s *Service) Item(ctx context.Context, id string) (Item, error) {
	return s.store.GetItem(ctx, id)
}

func (s *Service) AddItem(ctx context.Context, item Item) (Item, error) {
	if item.Quantity < 0 {
		return Item{}, ErrInvalidQuantity
	}
	return s.store.CreateItem(ctx, item)
}

func (s *Service) UpdateItem(ctx context.Context, id string, update ItemUpdate) (Item, error) {
	if update.Quantity != nil && *update.Quantity < 0 {
		return Item{}, ErrInvalidQuantity
	}
	return s.store.UpdateItem(ctx, id, update)
}

func (s *Service) RemoveItem(ctx context.Context, id string) error {
	return s.store.DeleteItem(ctx, id)
}

// AdjustStock applies a stock movement: IN adds, OUT subtracts (clamped at
// zero), ADJUSTMENT sets the quantity outright. Every adjustment lands in
// the movement ledger with before/after quantities.
func (s *Service) AdjustStock(ctx context.Context, itemID string, adjustment Adjustment, performedBy string) (Movement, error) {
	if !ValidMovementType(adjustment.Type) {
		return Movement{}, ErrInvalidMovementType
	}
	if adjustment.Quantity < 0 {
		return Movement{}, ErrInvalidQuantity
	}

	item, err := s.store.GetItem(ctx, itemID)
	if err != nil {
		return Movement{}, err
	}

	previous := item.Quantity
	var next float64
	switch adjustment.Type {
	case MovementIn:
		next = previous + adjustment.Quantity
	case MovementOut:
		next = previous - adjustment.Quantity
		if next < 0 {
			next = 0
		}
	default:
		next = adjustment.Quantity
	}

	var restockedAt *time.Time
	if adjustment.Type == MovementIn {
		now := time.Now().UTC()
		restockedAt = &now
	}
	if _, err := s.store.SetQuantity(ctx, itemID, next, restockedAt); err != nil {
		return Movement{}, err
	}

	return s.store.AppendMovement(ctx, Movement{
		ItemID:           item.ID,
		ItemName:         item.Name,
		Type:             adjustment.Type,
		Quantity:         adjustment.Quantity,
		PreviousQuantity: previous,
		NewQuantity:      next,
		Reason:           adjustment.Reason,
		PerformedBy:      performedBy,
	})
}

func (s *Service) Movements(ctx context.Context, itemID string) ([]Movement, error) {
	return s.store.ListMovements(ctx, itemID)
}

func (s *Service) Categories(ctx context.Context) ([]string, error) {
	items, err := s.store.ListItems(ctx)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	var categories []string
	for _, item := range items {
		if item.Category == "" || seen[item.Category] {
			continue
		}
		seen[item.Category] = true
		categories = append(categories, item.Category)
	}
	sort.Strings(categories)
	return categories, nil
}

func (s *Service) Stats(ctx context.Context) (Stats, error) {
	items, err := s.store.ListItems(ctx)
	if err != nil {
		return Stats{}, err
	}
	stats := Stats{TotalItems: len(items)}
	for _, item := range items {
		stats.TotalValue += item.Quantity * item.UnitPrice
		switch item.Status {
		case StatusLowStock:
			stats.LowStockItems++
		case StatusOutOfStock:
			stats.OutOfStockItems++
		}
	}
	return stats, nil
}
