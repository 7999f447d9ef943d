package payroll

import "strings"

// AdvanceBalance and DebtBalance are the slices of ledger state the
// generator needs; keeping them plain makes the proposal a pure function.
type AdvanceBalance struct {
	ID        string
	Reason    string
	Remaining float64
}

type DebtBalance struct {
	ID        string
	Products  []string
	Remaining float64
}

// ProposeDeductions computes the deduction lines for a pay run. Each
// advance is capped at AdvanceDeductionCap of gross; product debts are
// recovered in full. Ledger balances are not touched here - the lines are
// proposals committed only when the record is paid.
func ProposeDeductions(gross float64, advances []AdvanceBalance, debts []DebtBalance) ([]Deduction, float64) {
	var deductions []Deduction
	var total float64

	perAdvance := gross * AdvanceDeductionCap
	for _, advance := range advances {
		amount := advance.Remaining
		if amount > perAdvance {
			amount = perAdvance
		}
		if amount <= 0 {
			continue
		}
		deductions = append(deductions, Deduction{
			Kind:        DeductionAdvance,
			Description: "Advance repayment - " + advance.Reason,
			Amount:      amount,
			ReferenceID: advance.ID,
		})
		total += amount
	}

	for _, debt := range debts {
		if debt.Remaining <= 0 {
			continue
		}
		deductions = append(deductions, Deduction{
			Kind:        DeductionProductDebt,
			Description: "Product debt - " + strings.Join(debt.Products, ", "),
			Amount:      debt.Remaining,
			ReferenceID: debt.ID,
		})
		total += debt.Remaining
	}

	return deductions, total
}
