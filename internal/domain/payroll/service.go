package payroll

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gemura/internal/domain/ledger"
	"gemura/internal/domain/person"
)

// Ledgers is the slice of the ledger service the payroll engine needs.
type Ledgers interface {
	PendingAdvances(ctx context.Context, personID string, personType person.PersonType) ([]ledger.Advance, error)
	PendingProductDebts(ctx context.Context, personID string, personType person.PersonType) ([]ledger.ProductDebt, error)
	Advance(ctx context.Context, id string) (ledger.Advance, error)
	ProductDebt(ctx context.Context, id string) (ledger.ProductDebt, error)
	ApplyAdvanceDeduction(ctx context.Context, advanceID string, amount float64, payrollID string) (ledger.Advance, error)
	ApplyDebtDeduction(ctx context.Context, debtID string, amount float64) (ledger.ProductDebt, error)
	OutstandingTotals(ctx context.Context) (advances, debts float64, err error)
}

// People resolves person references and feeds the summary.
type People interface {
	ResolveName(ctx context.Context, personType person.PersonType, id string) (string, error)
	ActiveEmployees(ctx context.Context) ([]person.Employee, error)
	ListSuppliers(ctx context.Context) ([]person.Supplier, error)
}

type Service struct {
	store   StoreAPI
	ledgers Ledgers
	people  People
}

func NewService(store StoreAPI, ledgers Ledgers, people People) *Service {
	return &Service{store: store, ledgers: ledgers, people: people}
}

// Generate builds a draft payroll record for one person and period. The
// deduction lines are proposals only; ledger balances stay untouched until
// the record is paid.
func (s *Service) Generate(ctx context.Context, personID string, personType person.PersonType, period string, periodStart, periodEnd time.Time, grossAmount float64) (Record, error) {
	if !personType.Valid() {
		return Record{}, person.ErrInvalidPersonType
	}
	if periodEnd.Before(periodStart) {
		return Record{}, ErrInvalidPeriod
	}

	personName, err := s.people.ResolveName(ctx, personType, personID)
	if err != nil {
		if !errors.Is(err, person.ErrNotFound) {
			return Record{}, err
		}
		personName = "Unknown"
	}

	pendingAdvances, err := s.ledgers.PendingAdvances(ctx, personID, personType)
	if err != nil {
		return Record{}, err
	}
	pendingDebts, err := s.ledgers.PendingProductDebts(ctx, personID, personType)
	if err != nil {
		return Record{}, err
	}

	advances := make([]AdvanceBalance, 0, len(pendingAdvances))
	for _, advance := range pendingAdvances {
		advances = append(advances, AdvanceBalance{
			ID:        advance.ID,
			Reason:    advance.Reason,
			Remaining: advance.RemainingBalance,
		})
	}
	debts := make([]DebtBalance, 0, len(pendingDebts))
	for _, debt := range pendingDebts {
		products := make([]string, 0, len(debt.Items))
		for _, item := range debt.Items {
			products = append(products, item.ProductName)
		}
		debts = append(debts, DebtBalance{
			ID:        debt.ID,
			Products:  products,
			Remaining: debt.RemainingBalance,
		})
	}

	deductions, totalDeductions := ProposeDeductions(grossAmount, advances, debts)

	return s.store.CreateRecord(ctx, Record{
		PersonID:        personID,
		PersonName:      personName,
		PersonType:      personType,
		Period:          period,
		PeriodStart:     periodStart,
		PeriodEnd:       periodEnd,
		GrossAmount:     grossAmount,
		Deductions:      deductions,
		TotalDeductions: totalDeductions,
		NetAmount:       grossAmount - totalDeductions,
		Status:          StatusDraft,
	})
}

func (s *Service) Records(ctx context.Context) ([]Record, error) {
	return s.store.ListRecords(ctx)
}

func (s *Service) Record(ctx context.Context, id string) (Record, error) {
	return s.store.GetRecord(ctx, id)
}

func (s *Service) RecordsByPeriod(ctx context.Context, period string) ([]Record, error) {
	return s.store.RecordsByPeriod(ctx, period)
}

// Approve moves a draft record to approved, stamping the approver.
func (s *Service) Approve(ctx context.Context, payrollID, approvedBy string) (Record, error) {
	return s.store.MarkApproved(ctx, payrollID, approvedBy, time.Now().UTC())
}

// Pay finalizes an approved record: every advance and product-debt line is
// re-validated against the current ledger balance first, then all ledger
// deductions are applied and the record is marked paid. A stale line fails
// the whole payment before anything is mutated.
func (s *Service) Pay(ctx context.Context, payrollID, method string) (Record, error) {
	if !ValidPaymentMethod(method) {
		return Record{}, ErrInvalidMethod
	}

	record, err := s.store.GetRecord(ctx, payrollID)
	if err != nil {
		return Record{}, err
	}
	if record.Status != StatusApproved {
		return Record{}, ErrInvalidTransition
	}

	if err := s.validateDeductions(ctx, record); err != nil {
		return Record{}, err
	}

	for _, deduction := range record.Deductions {
		if deduction.ReferenceID == "" {
			continue
		}
		switch deduction.Kind {
		case DeductionAdvance:
			if _, err := s.ledgers.ApplyAdvanceDeduction(ctx, deduction.ReferenceID, deduction.Amount, record.ID); err != nil {
				return Record{}, fmt.Errorf("apply advance deduction %s: %w", deduction.ReferenceID, err)
			}
		case DeductionProductDebt:
			if _, err := s.ledgers.ApplyDebtDeduction(ctx, deduction.ReferenceID, deduction.Amount); err != nil {
				return Record{}, fmt.Errorf("apply product debt deduction %s: %w", deduction.ReferenceID, err)
			}
		}
	}

	return s.store.MarkPaid(ctx, payrollID, method, time.Now().UTC())
}

func (s *Service) validateDeductions(ctx context.Context, record Record) error {
	for _, deduction := range record.Deductions {
		if deduction.ReferenceID == "" {
			continue
		}
		switch deduction.Kind {
		case DeductionAdvance:
			advance, err := s.ledgers.Advance(ctx, deduction.ReferenceID)
			if err != nil {
				return fmt.Errorf("advance %s: %w", deduction.ReferenceID, err)
			}
			if deduction.Amount > advance.RemainingBalance {
				return ErrStaleDeductions
			}
		case DeductionProductDebt:
			debt, err := s.ledgers.ProductDebt(ctx, deduction.ReferenceID)
			if err != nil {
				return fmt.Errorf("product debt %s: %w", deduction.ReferenceID, err)
			}
			if deduction.Amount > debt.RemainingBalance {
				return ErrStaleDeductions
			}
		}
	}
	return nil
}

// Summarize aggregates the figures the dashboard's payroll card shows.
func (s *Service) Summarize(ctx context.Context) (Summary, error) {
	employees, err := s.people.ActiveEmployees(ctx)
	if err != nil {
		return Summary{}, err
	}
	suppliers, err := s.people.ListSuppliers(ctx)
	if err != nil {
		return Summary{}, err
	}
	records, err := s.store.ListRecords(ctx)
	if err != nil {
		return Summary{}, err
	}
	advanceTotal, debtTotal, err := s.ledgers.OutstandingTotals(ctx)
	if err != nil {
		return Summary{}, err
	}

	summary := Summary{
		TotalEmployees:    len(employees),
		TotalSuppliers:    len(suppliers),
		TotalAdvances:     advanceTotal,
		TotalProductDebts: debtTotal,
	}
	for _, record := range records {
		if record.Status != StatusPaid {
			summary.PendingPayroll++
		}
	}
	for _, employee := range employees {
		summary.MonthlyPayrollAmount += employee.BaseSalary
	}
	return summary, nil
}
