package payroll

import "testing"

func TestProposeDeductionsCapsEachAdvance(t *testing.T) {
	deductions, total := ProposeDeductions(200000, []AdvanceBalance{
		{ID: "a1", Reason: "School fees", Remaining: 100000},
	}, nil)

	if len(deductions) != 1 {
		t.Fatalf("expected 1 deduction, got %d", len(deductions))
	}
	if deductions[0].Amount != 60000 {
		t.Fatalf("expected 60000 (30%% of gross), got %v", deductions[0].Amount)
	}
	if deductions[0].Kind != DeductionAdvance {
		t.Fatalf("unexpected kind %q", deductions[0].Kind)
	}
	if deductions[0].Description != "Advance repayment - School fees" {
		t.Fatalf("unexpected description %q", deductions[0].Description)
	}
	if deductions[0].ReferenceID != "a1" {
		t.Fatalf("unexpected reference %q", deductions[0].ReferenceID)
	}
	if total != 60000 {
		t.Fatalf("expected total 60000, got %v", total)
	}
}

func TestProposeDeductionsCapIsPerAdvance(t *testing.T) {
	deductions, total := ProposeDeductions(200000, []AdvanceBalance{
		{ID: "a1", Remaining: 100000},
		{ID: "a2", Remaining: 100000},
	}, nil)

	if len(deductions) != 2 {
		t.Fatalf("expected 2 deductions, got %d", len(deductions))
	}
	for _, deduction := range deductions {
		if deduction.Amount != 60000 {
			t.Fatalf("expected each advance capped at 60000, got %v", deduction.Amount)
		}
	}
	if total != 120000 {
		t.Fatalf("expected total 120000, got %v", total)
	}
}

func TestProposeDeductionsSmallAdvanceTakenWhole(t *testing.T) {
	deductions, total := ProposeDeductions(200000, []AdvanceBalance{
		{ID: "a1", Remaining: 20000},
	}, nil)

	if len(deductions) != 1 || deductions[0].Amount != 20000 {
		t.Fatalf("expected the full 20000, got %+v", deductions)
	}
	if total != 20000 {
		t.Fatalf("expected total 20000, got %v", total)
	}
}

func TestProposeDeductionsDebtsAreUncapped(t *testing.T) {
	deductions, total := ProposeDeductions(100000, nil, []DebtBalance{
		{ID: "d1", Products: []string{"Milk", "Yogurt"}, Remaining: 90000},
	})

	if len(deductions) != 1 {
		t.Fatalf("expected 1 deduction, got %d", len(deductions))
	}
	if deductions[0].Amount != 90000 {
		t.Fatalf("product debt must be recovered in full, got %v", deductions[0].Amount)
	}
	if deductions[0].Kind != DeductionProductDebt {
		t.Fatalf("unexpected kind %q", deductions[0].Kind)
	}
	if deductions[0].Description != "Product debt - Milk, Yogurt" {
		t.Fatalf("unexpected description %q", deductions[0].Description)
	}
	if total != 90000 {
		t.Fatalf("expected total 90000, got %v", total)
	}
}

func TestProposeDeductionsCanExceedGross(t *testing.T) {
	deductions, total := ProposeDeductions(100000, []AdvanceBalance{
		{ID: "a1", Remaining: 50000},
	}, []DebtBalance{
		{ID: "d1", Products: []string{"Feed"}, Remaining: 120000},
	})

	if len(deductions) != 2 {
		t.Fatalf("expected 2 deductions, got %d", len(deductions))
	}
	// 30000 advance cap + 120000 debt; net pay would go negative and that
	// is the intended outcome.
	if total != 150000 {
		t.Fatalf("expected total 150000, got %v", total)
	}
}

func TestProposeDeductionsSkipsEmptyBalances(t *testing.T) {
	deductions, total := ProposeDeductions(100000, []AdvanceBalance{
		{ID: "a1", Remaining: 0},
	}, []DebtBalance{
		{ID: "d1", Remaining: 0},
	})

	if len(deductions) != 0 || total != 0 {
		t.Fatalf("expected no deductions, got %+v (total %v)", deductions, total)
	}
}
