package payroll

import "errors"

var (
	ErrNotFound          = errors.New("payroll record not found")
	ErrInvalidTransition = errors.New("invalid payroll state transition")
	ErrInvalidPeriod     = errors.New("period end before period start")
	ErrInvalidMethod     = errors.New("unknown payment method")
	ErrNotPaid           = errors.New("payroll record not paid yet")
	// ErrStaleDeductions means a proposed deduction no longer fits the
	// ledger entry's remaining balance; the payment is rejected whole.
	ErrStaleDeductions = errors.New("proposed deductions exceed current ledger balances")
)
