package person

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore keeps both registries in process memory. It backs unit tests
// and the no-database mode of the server.
type MemoryStore struct {
	mu        sync.RWMutex
	employees []Employee
	suppliers []Supplier
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) ListEmployees(_ context.Context) ([]Employee, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Employee, len(m.employees))
	copy(out, m.employees)
	return out, nil
}

func (m *MemoryStore) GetEmployee(_ context.Context, id string) (Employee, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, employee := range m.employees {
		if employee.ID == id {
			return employee, nil
		}
	}
	return Employee{}, ErrNotFound
}

func (m *MemoryStore) CreateEmployee(_ context.Context, employee Employee) (Employee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	employee.ID = uuid.NewString()
	employee.CreatedAt = time.Now().UTC()
	if employee.Status == "" {
		employee.Status = StatusActive
	}
	m.employees = append(m.employees, employee)
	return employee, nil
}

func (m *MemoryStore) UpdateEmployee(_ context.Context, id string, update EmployeeUpdate) (Employee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.employees {
		if m.employees[i].ID != id {
			continue
		}
		applyEmployeeUpdate(&m.employees[i], update)
		return m.employees[i], nil
	}
	return Employee{}, ErrNotFound
}

func (m *MemoryStore) DeleteEmployee(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.employees {
		if m.employees[i].ID == id {
			m.employees = append(m.employees[:i], m.employees[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (m *MemoryStore) ListSuppliers(_ context.Context) ([]Supplier, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Supplier, len(m.suppliers))
	copy(out, m.suppliers)
	return out, nil
}

func (m *MemoryStore) GetSupplier(_ context.Context, id string) (Supplier, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, supplier := range m.suppliers {
		if supplier.ID == id {
			return supplier, nil
		}
	}
	return Supplier{}, ErrNotFound
}

func (m *MemoryStore) CreateSupplier(_ context.Context, supplier Supplier) (Supplier, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	supplier.ID = uuid.NewString()
	supplier.CreatedAt = time.Now().UTC()
	if supplier.Status == "" {
		supplier.Status = StatusActive
	}
	m.suppliers = append(m.suppliers, supplier)
	return supplier, nil
}

func (m *MemoryStore) UpdateSupplier(_ context.Context, id string, update SupplierUpdate) (Supplier, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.suppliers {
		if m.suppliers[i].ID != id {
			continue
		}
		applySupplierUpdate(&m.suppliers[i], update)
		return m.suppliers[i], nil
	}
	return Supplier{}, ErrNotFound
}

func (m *MemoryStore) DeleteSupplier(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.suppliers {
		if m.suppliers[i].ID == id {
			m.suppliers = append(m.suppliers[:i], m.suppliers[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func applyEmployeeUpdate(employee *Employee, update EmployeeUpdate) {
	if update.Name != nil {
		employee.Name = *update.Name
	}
	if update.Phone != nil {
		employee.Phone = *update.Phone
	}
	if update.Email != nil {
		employee.Email = *update.Email
	}
	if update.Role != nil {
		employee.Role = *update.Role
	}
	if update.Department != nil {
		employee.Department = *update.Department
	}
	if update.BaseSalary != nil {
		employee.BaseSalary = *update.BaseSalary
	}
	if update.BankName != nil {
		employee.BankName = *update.BankName
	}
	if update.BankAccount != nil {
		employee.BankAccount = *update.BankAccount
	}
	if update.HireDate != nil {
		employee.HireDate = *update.HireDate
	}
	if update.Status != nil {
		employee.Status = *update.Status
	}
}

func applySupplierUpdate(supplier *Supplier, update SupplierUpdate) {
	if update.Name != nil {
		supplier.Name = *update.Name
	}
	if update.Phone != nil {
		supplier.Phone = *update.Phone
	}
	if update.Email != nil {
		supplier.Email = *update.Email
	}
	if update.Category != nil {
		supplier.Category = *update.Category
	}
	if update.Status != nil {
		supplier.Status = *update.Status
	}
}
