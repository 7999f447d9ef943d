package payroll

const (
	StatusDraft    = "draft"
	StatusApproved = "approved"
	StatusPaid     = "paid"

	DeductionAdvance     = "advance"
	DeductionProductDebt = "product_debt"
	DeductionTax         = "tax"
	DeductionOther       = "other"

	PaymentBank   = "bank"
	PaymentCash   = "cash"
	PaymentMobile = "mobile"
)

// AdvanceDeductionCap limits each advance repayment to a share of gross
// pay. The cap applies per advance, not to the sum of advance deductions.
const AdvanceDeductionCap = 0.30

func ValidPaymentMethod(method string) bool {
	return method == PaymentBank || method == PaymentCash || method == PaymentMobile
}
