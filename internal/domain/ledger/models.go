package ledger

import (
	"time"

	"gemura/internal/domain/person"
)

// Advance is a cash sum paid out ahead of wages, recovered through payroll
// deductions. Entries are historical records and are never deleted.
type Advance struct {
	ID               string             `json:"id"`
	PersonID         string             `json:"personId"`
	PersonName       string             `json:"personName"`
	PersonType       person.PersonType  `json:"personType"`
	Amount           float64            `json:"amount"`
	RemainingBalance float64            `json:"remainingBalance"`
	Reason           string             `json:"reason"`
	Date             time.Time          `json:"date"`
	Status           string             `json:"status"`
	Deductions       []AdvanceDeduction `json:"deductions"`
}

type AdvanceDeduction struct {
	ID        string    `json:"id"`
	AdvanceID string    `json:"advanceId"`
	PayrollID string    `json:"payrollId"`
	Amount    float64   `json:"amount"`
	Date      time.Time `json:"date"`
}

// ProductDebt is an in-kind liability: goods taken against future pay.
// Unlike advances it keeps no per-deduction history, only the running balance.
type ProductDebt struct {
	ID               string            `json:"id"`
	PersonID         string            `json:"personId"`
	PersonName       string            `json:"personName"`
	PersonType       person.PersonType `json:"personType"`
	Items            []DebtItem        `json:"products"`
	TotalAmount      float64           `json:"totalAmount"`
	RemainingBalance float64           `json:"remainingBalance"`
	Date             time.Time         `json:"date"`
	Status           string            `json:"status"`
}

type DebtItem struct {
	ProductName string  `json:"productName"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
	TotalPrice  float64 `json:"totalPrice"`
}
