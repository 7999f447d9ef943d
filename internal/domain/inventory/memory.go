package inventory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

type MemoryStore struct {
	mu        sync.RWMutex
	items     []Item
	movements []Movement
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) ListItems(_ context.Context) ([]Item, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Item, len(m.items))
	copy(out, m.items)
	return out, nil
}

func (m *MemoryStore) GetItem(_ context.Context, id string) (Item, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, item := range m.items {
		if item.ID == id {
			return item, nil
		}
	}
	return Item{}, ErrNotFound
}

func (m *MemoryStore) CreateItem(_ context.Context, item Item) (Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	item.ID = uuid.NewString()
	item.Status = StatusFor(item.Quantity, item.ReorderLevel)
	if item.LastRestocked.IsZero() {
		item.LastRestocked = time.Now().UTC()
	}
	m.items = append(m.items, item)
	return item, nil
}

func (m *MemoryStore) UpdateItem(_ context.Context, id string, update ItemUpdate) (Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.items {
		if m.items[i].ID != id {
			continue
		}
		applyItemUpdate(&m.items[i], update)
		m.items[i].Status = StatusFor(m.items[i].Quantity, m.items[i].ReorderLevel)
		return m.items[i], nil
	}
	return Item{}, ErrNotFound
}

func (m *MemoryStore) DeleteItem(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.items {
		if m.items[i].ID == id {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (m *MemoryStore) SetQuantity(_ context.Context, id string, quantity float64, restockedAt *time.Time) (Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.items {
		if m.items[i].ID != id {
			continue
		}
		m.items[i].Quantity = quantity
		if restockedAt != nil {
			m.items[i].LastRestocked = *restockedAt
		}
		m.items[i].Status = StatusFor(quantity, m.items[i].ReorderLevel)
		return m.items[i], nil
	}
	return Item{}, ErrNotFound
}

func (m *MemoryStore) AppendMovement(_ context.Context, movement Movement) (Movement, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	movement.ID = uuid.NewString()
	if movement.Date.IsZero() {
		movement.Date = time.Now().UTC()
	}
	m.movements = append(m.movements, movement)
	return movement, nil
}

func (m *MemoryStore) ListMovements(_ context.Context, itemID string) ([]Movement, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []Movement
	for _, movement := range m.movements {
		if itemID != "" && movement.ItemID != itemID {
			continue
		}
		out = append(out, movement)
	}
	return out, nil
}

func applyItemUpdate(item *Item, update ItemUpdate) {
	if update.Name != nil {
		item.Name = *update.Name
	}
	if update.SKU != nil {
		item.SKU = *update.SKU
	}
	if update.Category != nil {
		item.Category = *update.Category
	}
	if update.Quantity != nil {
		item.Quantity = *update.Quantity
	}
	if update.Unit != nil {
		item.Unit = *update.Unit
	}
	if update.UnitPrice != nil {
		item.UnitPrice = *update.UnitPrice
	}
	if update.ReorderLevel != nil {
		item.ReorderLevel = *update.ReorderLevel
	}
	if update.Supplier != nil {
		item.Supplier = *update.Supplier
	}
	if update.Location != nil {
		item.Location = *update.Location
	}
	if update.ExpiryDate != nil {
		item.ExpiryDate = update.ExpiryDate
	}
	if update.Description != nil {
		item.Description = *update.Description
	}
}
