package person

import "time"

// PersonType discriminates who a ledger entry or payroll record belongs to.
type PersonType string

const (
	TypeEmployee PersonType = "employee"
	TypeSupplier PersonType = "supplier"
)

func (t PersonType) Valid() bool {
	return t == TypeEmployee || t == TypeSupplier
}

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

type Employee struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Phone       string    `json:"phone"`
	Email       string    `json:"email,omitempty"`
	Role        string    `json:"role"`
	Department  string    `json:"department"`
	BaseSalary  float64   `json:"baseSalary"`
	BankName    string    `json:"bankName,omitempty"`
	BankAccount string    `json:"bankAccount,omitempty"`
	HireDate    time.Time `json:"hireDate"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

type Supplier struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email,omitempty"`
	Category  string    `json:"category"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// EmployeeUpdate carries a partial edit; nil fields are left unchanged.
type EmployeeUpdate struct {
	Name        *string    `json:"name"`
	Phone       *string    `json:"phone"`
	Email       *string    `json:"email"`
	Role        *string    `json:"role"`
	Department  *string    `json:"department"`
	BaseSalary  *float64   `json:"baseSalary"`
	BankName    *string    `json:"bankName"`
	BankAccount *string    `json:"bankAccount"`
	HireDate    *time.Time `json:"hireDate"`
	Status      *string    `json:"status"`
}

type SupplierUpdate struct {
	Name     *string `json:"name"`
	Phone    *string `json:"phone"`
	Email    *string `json:"email"`
	Category *string `json:"category"`
	Status   *string `json:"status"`
}
