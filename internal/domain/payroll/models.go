package payroll

import (
	"time"

	"gemura/internal/domain/person"
)

// Record is one pay period's computed gross/deductions/net for one person.
// It moves draft -> approved -> paid and is immutable once paid.
type Record struct {
	ID              string            `json:"id"`
	PersonID        string            `json:"personId"`
	PersonName      string            `json:"personName"`
	PersonType      person.PersonType `json:"personType"`
	Period          string            `json:"period"`
	PeriodStart     time.Time         `json:"periodStart"`
	PeriodEnd       time.Time         `json:"periodEnd"`
	GrossAmount     float64           `json:"grossAmount"`
	Deductions      []Deduction       `json:"deductions"`
	TotalDeductions float64           `json:"totalDeductions"`
	NetAmount       float64           `json:"netAmount"`
	Status          string            `json:"status"`
	ApprovedBy      string            `json:"approvedBy,omitempty"`
	ApprovedAt      *time.Time        `json:"approvedAt,omitempty"`
	PaidAt          *time.Time        `json:"paidAt,omitempty"`
	PaymentMethod   string            `json:"paymentMethod,omitempty"`
	Notes           string            `json:"notes,omitempty"`
	CreatedAt       time.Time         `json:"createdAt"`
}

type Deduction struct {
	Kind        string  `json:"type"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	ReferenceID string  `json:"referenceId,omitempty"`
}

type Summary struct {
	TotalEmployees       int     `json:"totalEmployees"`
	TotalSuppliers       int     `json:"totalSuppliers"`
	PendingPayroll       int     `json:"pendingPayroll"`
	TotalAdvances        float64 `json:"totalAdvances"`
	TotalProductDebts    float64 `json:"totalProductDebts"`
	MonthlyPayrollAmount float64 `json:"monthlyPayrollAmount"`
}
