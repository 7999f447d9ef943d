package ledger

import (
	"context"
	"time"

	"gemura/internal/domain/person"
)

type Service struct {
	store StoreAPI
}

func NewService(store StoreAPI) *Service {
	return &Service{store: store}
}

// RecordAdvance opens a new advance with the full amount outstanding.
func (s *Service) RecordAdvance(ctx context.Context, personID, personName string, personType person.PersonType, amount float64, reason string, date time.Time) (Advance, error) {
	if !personType.Valid() {
		return Advance{}, person.ErrInvalidPersonType
	}
	if amount <= 0 {
		return Advance{}, ErrInvalidAmount
	}
	if date.IsZero() {
		date = time.Now().UTC()
	}
	return s.store.CreateAdvance(ctx, Advance{
		PersonID:   personID,
		PersonName: personName,
		PersonType: personType,
		Amount:     amount,
		Reason:     reason,
		Date:       date,
	})
}

// RecordProductDebt opens an in-kind debt. Line totals and the aggregate
// are computed here; the caller supplies name, quantity and unit price.
func (s *Service) RecordProductDebt(ctx context.Context, personID, personName string, personType person.PersonType, items []DebtItem, date time.Time) (ProductDebt, error) {
	if !personType.Valid() {
		return ProductDebt{}, person.ErrInvalidPersonType
	}
	if len(items) == 0 {
		return ProductDebt{}, ErrNoItems
	}
	var total float64
	for i := range items {
		if items[i].Quantity <= 0 || items[i].UnitPrice < 0 {
			return ProductDebt{}, ErrInvalidAmount
		}
		items[i].TotalPrice = items[i].Quantity * items[i].UnitPrice
		total += items[i].TotalPrice
	}
	if total <= 0 {
		return ProductDebt{}, ErrInvalidAmount
	}
	if date.IsZero() {
		date = time.Now().UTC()
	}
	return s.store.CreateProductDebt(ctx, ProductDebt{
		PersonID:    personID,
		PersonName:  personName,
		PersonType:  personType,
		Items:       items,
		TotalAmount: total,
		Date:        date,
	})
}

func (s *Service) Advances(ctx context.Context) ([]Advance, error) {
	return s.store.ListAdvances(ctx)
}

func (s *Service) ProductDebts(ctx context.Context) ([]ProductDebt, error) {
	return s.store.ListProductDebts(ctx)
}

func (s *Service) Advance(ctx context.Context, id string) (Advance, error) {
	return s.store.GetAdvance(ctx, id)
}

func (s *Service) ProductDebt(ctx context.Context, id string) (ProductDebt, error) {
	return s.store.GetProductDebt(ctx, id)
}

// PendingAdvances returns a person's not-yet-cleared advances in insertion order.
func (s *Service) PendingAdvances(ctx context.Context, personID string, personType person.PersonType) ([]Advance, error) {
	return s.store.AdvancesFor(ctx, personID, personType, false)
}

func (s *Service) PendingProductDebts(ctx context.Context, personID string, personType person.PersonType) ([]ProductDebt, error) {
	return s.store.ProductDebtsFor(ctx, personID, personType, false)
}

func (s *Service) ApplyAdvanceDeduction(ctx context.Context, advanceID string, amount float64, payrollID string) (Advance, error) {
	if amount <= 0 {
		return Advance{}, ErrInvalidAmount
	}
	return s.store.ApplyAdvanceDeduction(ctx, advanceID, amount, payrollID)
}

func (s *Service) ApplyDebtDeduction(ctx context.Context, debtID string, amount float64) (ProductDebt, error) {
	if amount <= 0 {
		return ProductDebt{}, ErrInvalidAmount
	}
	return s.store.ApplyDebtDeduction(ctx, debtID, amount)
}

// OutstandingTotals sums remaining balances across both ledgers.
func (s *Service) OutstandingTotals(ctx context.Context) (advances, debts float64, err error) {
	allAdvances, err := s.store.ListAdvances(ctx)
	if err != nil {
		return 0, 0, err
	}
	for _, advance := range allAdvances {
		if advance.Status != StatusCleared {
			advances += advance.RemainingBalance
		}
	}
	allDebts, err := s.store.ListProductDebts(ctx)
	if err != nil {
		return 0, 0, err
	}
	for _, debt := range allDebts {
		if debt.Status != StatusCleared {
			debts += debt.RemainingBalance
		}
	}
	return advances, debts, nil
}
