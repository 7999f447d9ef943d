package payroll_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"gemura/internal/domain/ledger"
	"gemura/internal/domain/payroll"
	"gemura/internal/domain/person"
)

type testEnv struct {
	people  *person.Service
	ledgers *ledger.Service
	payroll *payroll.Service
}

func newTestEnv() *testEnv {
	people := person.NewService(person.NewMemoryStore())
	ledgers := ledger.NewService(ledger.NewMemoryStore())
	return &testEnv{
		people:  people,
		ledgers: ledgers,
		payroll: payroll.NewService(payroll.NewMemoryStore(), ledgers, people),
	}
}

func (e *testEnv) addEmployee(t *testing.T, name string, salary float64) person.Employee {
	t.Helper()
	employee, err := e.people.AddEmployee(context.Background(), person.Employee{
		Name:       name,
		Role:       "Farm Hand",
		Department: "Production",
		BaseSalary: salary,
		HireDate:   time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("add employee: %v", err)
	}
	return employee
}

func TestGenerateProposesWithoutTouchingLedger(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	employee := env.addEmployee(t, "Alice Uwase", 150000)

	advance, err := env.ledgers.RecordAdvance(ctx, employee.ID, employee.Name, person.TypeEmployee, 50000, "School fees", time.Now())
	if err != nil {
		t.Fatalf("record advance: %v", err)
	}

	record, err := env.payroll.Generate(ctx, employee.ID, person.TypeEmployee, "2025-12",
		time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC), time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC), 150000)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if record.Status != payroll.StatusDraft {
		t.Fatalf("expected draft, got %q", record.Status)
	}
	if len(record.Deductions) != 1 {
		t.Fatalf("expected 1 deduction, got %d", len(record.Deductions))
	}
	if record.Deductions[0].Amount != 45000 {
		t.Fatalf("expected 45000 deduction (30%% of 150000), got %v", record.Deductions[0].Amount)
	}
	if record.NetAmount != 105000 {
		t.Fatalf("expected net 105000, got %v", record.NetAmount)
	}
	if record.PersonName != "Alice Uwase" {
		t.Fatalf("unexpected person name %q", record.PersonName)
	}

	// Generating a draft must not move the ledger.
	current, err := env.ledgers.Advance(ctx, advance.ID)
	if err != nil {
		t.Fatalf("get advance: %v", err)
	}
	if current.RemainingBalance != 50000 || current.Status != ledger.StatusPending {
		t.Fatalf("ledger touched by draft: %v %q", current.RemainingBalance, current.Status)
	}
}

func TestPayrollLifecycle(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	employee := env.addEmployee(t, "Alice Uwase", 150000)

	advance, err := env.ledgers.RecordAdvance(ctx, employee.ID, employee.Name, person.TypeEmployee, 50000, "School fees", time.Now())
	if err != nil {
		t.Fatalf("record advance: %v", err)
	}

	record, err := env.payroll.Generate(ctx, employee.ID, person.TypeEmployee, "2025-12",
		time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC), time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC), 150000)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	approved, err := env.payroll.Approve(ctx, record.ID, "admin@coop.rw")
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if approved.Status != payroll.StatusApproved || approved.ApprovedBy != "admin@coop.rw" || approved.ApprovedAt == nil {
		t.Fatalf("bad approved record: %+v", approved)
	}

	paid, err := env.payroll.Pay(ctx, record.ID, payroll.PaymentBank)
	if err != nil {
		t.Fatalf("pay: %v", err)
	}
	if paid.Status != payroll.StatusPaid || paid.PaymentMethod != payroll.PaymentBank || paid.PaidAt == nil {
		t.Fatalf("bad paid record: %+v", paid)
	}

	current, err := env.ledgers.Advance(ctx, advance.ID)
	if err != nil {
		t.Fatalf("get advance: %v", err)
	}
	if current.RemainingBalance != 5000 {
		t.Fatalf("expected remaining 5000 after payment, got %v", current.RemainingBalance)
	}
	if current.Status != ledger.StatusPartial {
		t.Fatalf("expected partial, got %q", current.Status)
	}
	if len(current.Deductions) != 1 || current.Deductions[0].PayrollID != record.ID {
		t.Fatalf("deduction history not linked to payroll: %+v", current.Deductions)
	}
}

func TestPayRequiresApprovedRecord(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	employee := env.addEmployee(t, "Bob", 100000)

	record, err := env.payroll.Generate(ctx, employee.ID, person.TypeEmployee, "2026-01",
		time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC), 100000)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, err := env.payroll.Pay(ctx, record.ID, payroll.PaymentCash); !errors.Is(err, payroll.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition for draft, got %v", err)
	}

	if _, err := env.payroll.Approve(ctx, record.ID, "admin"); err != nil {
		t.Fatalf("approve: %v", err)
	}
	if _, err := env.payroll.Approve(ctx, record.ID, "admin"); !errors.Is(err, payroll.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition on second approve, got %v", err)
	}
	if _, err := env.payroll.Pay(ctx, record.ID, payroll.PaymentCash); err != nil {
		t.Fatalf("pay: %v", err)
	}
	if _, err := env.payroll.Pay(ctx, record.ID, payroll.PaymentCash); !errors.Is(err, payroll.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition on second pay, got %v", err)
	}
}

func TestPayRejectsUnknownMethod(t *testing.T) {
	env := newTestEnv()
	if _, err := env.payroll.Pay(context.Background(), "whatever", "cheque"); !errors.Is(err, payroll.ErrInvalidMethod) {
		t.Fatalf("expected ErrInvalidMethod, got %v", err)
	}
}

func TestPayFailsWholeOnStaleDeductions(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	employee := env.addEmployee(t, "Claire", 150000)

	advance, err := env.ledgers.RecordAdvance(ctx, employee.ID, employee.Name, person.TypeEmployee, 50000, "Seeds", time.Now())
	if err != nil {
		t.Fatalf("record advance: %v", err)
	}

	record, err := env.payroll.Generate(ctx, employee.ID, person.TypeEmployee, "2025-12",
		time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC), time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC), 150000)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := env.payroll.Approve(ctx, record.ID, "admin"); err != nil {
		t.Fatalf("approve: %v", err)
	}

	// Another payment shrinks the balance below the 45000 proposal.
	if _, err := env.ledgers.ApplyAdvanceDeduction(ctx, advance.ID, 15000, "other-payroll"); err != nil {
		t.Fatalf("external deduction: %v", err)
	}

	if _, err := env.payroll.Pay(ctx, record.ID, payroll.PaymentBank); !errors.Is(err, payroll.ErrStaleDeductions) {
		t.Fatalf("expected ErrStaleDeductions, got %v", err)
	}

	// Nothing may have moved: record stays approved, balance stays put.
	after, err := env.payroll.Record(ctx, record.ID)
	if err != nil {
		t.Fatalf("get record: %v", err)
	}
	if after.Status != payroll.StatusApproved {
		t.Fatalf("record mutated by failed payment: %q", after.Status)
	}
	current, err := env.ledgers.Advance(ctx, advance.ID)
	if err != nil {
		t.Fatalf("get advance: %v", err)
	}
	if current.RemainingBalance != 35000 {
		t.Fatalf("ledger mutated by failed payment: %v", current.RemainingBalance)
	}
}

func TestGenerateFallsBackToUnknownName(t *testing.T) {
	env := newTestEnv()
	record, err := env.payroll.Generate(context.Background(), "missing-person", person.TypeEmployee, "2026-02",
		time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC), 80000)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if record.PersonName != "Unknown" {
		t.Fatalf("expected Unknown, got %q", record.PersonName)
	}
}

func TestGenerateRejectsInvertedPeriod(t *testing.T) {
	env := newTestEnv()
	_, err := env.payroll.Generate(context.Background(), "p1", person.TypeEmployee, "2026-02",
		time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC), time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), 80000)
	if !errors.Is(err, payroll.ErrInvalidPeriod) {
		t.Fatalf("expected ErrInvalidPeriod, got %v", err)
	}
}

func TestPayslipOnlyForPaidRecords(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	employee := env.addEmployee(t, "Denise", 120000)

	record, err := env.payroll.Generate(ctx, employee.ID, person.TypeEmployee, "2026-03",
		time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC), 120000)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, err := env.payroll.PayslipPDF(ctx, record.ID); !errors.Is(err, payroll.ErrNotPaid) {
		t.Fatalf("expected ErrNotPaid for draft, got %v", err)
	}

	if _, err := env.payroll.Approve(ctx, record.ID, "admin"); err != nil {
		t.Fatalf("approve: %v", err)
	}
	if _, err := env.payroll.Pay(ctx, record.ID, payroll.PaymentMobile); err != nil {
		t.Fatalf("pay: %v", err)
	}

	payslip, err := env.payroll.PayslipPDF(ctx, record.ID)
	if err != nil {
		t.Fatalf("payslip: %v", err)
	}
	if !bytes.HasPrefix(payslip, []byte("%PDF")) {
		t.Fatalf("payslip does not look like a PDF")
	}
}

func TestSummarize(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	active := env.addEmployee(t, "Eva", 100000)
	env.addEmployee(t, "Frank", 50000)
	inactive := "inactive"
	if _, err := env.people.UpdateEmployee(ctx, active.ID, person.EmployeeUpdate{Status: &inactive}); err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	if _, err := env.people.AddSupplier(ctx, person.Supplier{Name: "Dairy Co"}); err != nil {
		t.Fatalf("add supplier: %v", err)
	}
	if _, err := env.ledgers.RecordAdvance(ctx, "x", "X", person.TypeSupplier, 30000, "", time.Now()); err != nil {
		t.Fatalf("advance: %v", err)
	}

	summary, err := env.payroll.Summarize(ctx)
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}
	if summary.TotalEmployees != 1 {
		t.Fatalf("inactive employees must not count, got %d", summary.TotalEmployees)
	}
	if summary.TotalSuppliers != 1 {
		t.Fatalf("expected 1 supplier, got %d", summary.TotalSuppliers)
	}
	if summary.TotalAdvances != 30000 {
		t.Fatalf("expected outstanding advances 30000, got %v", summary.TotalAdvances)
	}
	if summary.MonthlyPayrollAmount != 50000 {
		t.Fatalf("expected monthly payroll 50000, got %v", summary.MonthlyPayrollAmount)
	}
}
