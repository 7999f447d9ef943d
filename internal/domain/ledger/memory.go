package ledger

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"gemura/internal/domain/person"
)

type MemoryStore struct {
	mu       sync.RWMutex
	advances []Advance
	debts    []ProductDebt
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) ListAdvances(_ context.Context) ([]Advance, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Advance, len(m.advances))
	for i, advance := range m.advances {
		out[i] = cloneAdvance(advance)
	}
	return out, nil
}

func (m *MemoryStore) GetAdvance(_ context.Context, id string) (Advance, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, advance := range m.advances {
		if advance.ID == id {
			return cloneAdvance(advance), nil
		}
	}
	return Advance{}, ErrNotFound
}

func (m *MemoryStore) CreateAdvance(_ context.Context, advance Advance) (Advance, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	advance.ID = uuid.NewString()
	advance.RemainingBalance = advance.Amount
	advance.Status = StatusPending
	advance.Deductions = nil
	m.advances = append(m.advances, advance)
	return cloneAdvance(advance), nil
}

func (m *MemoryStore) AdvancesFor(_ context.Context, personID string, personType person.PersonType, includeCleared bool) ([]Advance, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []Advance
	for _, advance := range m.advances {
		if advance.PersonID != personID || advance.PersonType != personType {
			continue
		}
		if !includeCleared && advance.Status == StatusCleared {
			continue
		}
		out = append(out, cloneAdvance(advance))
	}
	return out, nil
}

func (m *MemoryStore) ApplyAdvanceDeduction(_ context.Context, id string, amount float64, payrollID string) (Advance, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.advances {
		advance := &m.advances[i]
		if advance.ID != id {
			continue
		}
		if advance.RemainingBalance == 0 {
			return Advance{}, ErrAlreadyCleared
		}
		if amount > advance.RemainingBalance {
			return Advance{}, ErrOverDeduction
		}
		advance.RemainingBalance -= amount
		advance.Deductions = append(advance.Deductions, AdvanceDeduction{
			ID:        uuid.NewString(),
			AdvanceID: advance.ID,
			PayrollID: payrollID,
			Amount:    amount,
			Date:      time.Now().UTC(),
		})
		advance.Status = StatusFor(advance.RemainingBalance, advance.Amount)
		return cloneAdvance(*advance), nil
	}
	return Advance{}, ErrNotFound
}

func (m *MemoryStore) ListProductDebts(_ context.Context) ([]ProductDebt, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]ProductDebt, len(m.debts))
	for i, debt := range m.debts {
		out[i] = cloneDebt(debt)
	}
	return out, nil
}

func (m *MemoryStore) GetProductDebt(_ context.Context, id string) (ProductDebt, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, debt := range m.debts {
		if debt.ID == id {
			return cloneDebt(debt), nil
		}
	}
	return ProductDebt{}, ErrNotFound
}

func (m *MemoryStore) CreateProductDebt(_ context.Context, debt ProductDebt) (ProductDebt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	debt.ID = uuid.NewString()
	debt.RemainingBalance = debt.TotalAmount
	debt.Status = StatusPending
	m.debts = append(m.debts, debt)
	return cloneDebt(debt), nil
}

func (m *MemoryStore) ProductDebtsFor(_ context.Context, personID string, personType person.PersonType, includeCleared bool) ([]ProductDebt, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []ProductDebt
	for _, debt := range m.debts {
		if debt.PersonID != personID || debt.PersonType != personType {
			continue
		}
		if !includeCleared && debt.Status == StatusCleared {
			continue
		}
		out = append(out, cloneDebt(debt))
	}
	return out, nil
}

func (m *MemoryStore) ApplyDebtDeduction(_ context.Context, id string, amount float64) (ProductDebt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.debts {
		debt := &m.debts[i]
		if debt.ID != id {
			continue
		}
		if debt.RemainingBalance == 0 {
			return ProductDebt{}, ErrAlreadyCleared
		}
		if amount > debt.RemainingBalance {
			return ProductDebt{}, ErrOverDeduction
		}
		debt.RemainingBalance -= amount
		debt.Status = StatusFor(debt.RemainingBalance, debt.TotalAmount)
		return cloneDebt(*debt), nil
	}
	return ProductDebt{}, ErrNotFound
}

func cloneAdvance(advance Advance) Advance {
	deductions := make([]AdvanceDeduction, len(advance.Deductions))
	copy(deductions, advance.Deductions)
	advance.Deductions = deductions
	return advance
}

func cloneDebt(debt ProductDebt) ProductDebt {
	items := make([]DebtItem, len(debt.Items))
	copy(items, debt.Items)
	debt.Items = items
	return debt
}
