package ledger

import (
	"context"

	"gemura/internal/domain/person"
)

type StoreAPI interface {
	ListAdvances(ctx context.Context) ([]Advance, error)
	GetAdvance(ctx context.Context, id string) (Advance, error)
	CreateAdvance(ctx context.Context, advance Advance) (Advance, error)
	AdvancesFor(ctx context.Context, personID string, personType person.PersonType, includeCleared bool) ([]Advance, error)
	// ApplyAdvanceDeduction atomically decrements the balance, appends the
	// deduction event and recomputes status. ErrOverDeduction leaves the
	// entry untouched.
	ApplyAdvanceDeduction(ctx context.Context, id string, amount float64, payrollID string) (Advance, error)

	ListProductDebts(ctx context.Context) ([]ProductDebt, error)
	GetProductDebt(ctx context.Context, id string) (ProductDebt, error)
	CreateProductDebt(ctx context.Context, debt ProductDebt) (ProductDebt, error)
	ProductDebtsFor(ctx context.Context, personID string, personType person.PersonType, includeCleared bool) ([]ProductDebt, error)
	ApplyDebtDeduction(ctx context.Context, id string, amount float64) (ProductDebt, error)
}
