package person

import (
	"context"
	"sort"
)

// Service fronts the employee and supplier registries and resolves the
// PersonType tag for the ledgers and payroll.
type Service struct {
	store StoreAPI
}

func NewService(store StoreAPI) *Service {
	return &Service{store: store}
}

func (s *Service) ListEmployees(ctx context.Context) ([]Employee, error) {
	return s.store.ListEmployees(ctx)
}

func (s *Service) GetEmployee(ctx context.Context, id string) (Employee, error) {
	return s.store.GetEmployee(ctx, id)
}

func (s *Service) AddEmployee(ctx context.Context, employee Employee) (Employee, error) {
	return s.store.CreateEmployee(ctx, employee)
}

func (s *Service) UpdateEmployee(ctx context.Context, id string, update EmployeeUpdate) (Employee, error) {
	return s.store.UpdateEmployee(ctx, id, update)
}

func (s *Service) RemoveEmployee(ctx context.Context, id string) error {
	return s.store.DeleteEmployee(ctx, id)
}

func (s *Service) ListSuppliers(ctx context.Context) ([]Supplier, error) {
	return s.store.ListSuppliers(ctx)
}

func (s *Service) GetSupplier(ctx context.Context, id string) (Supplier, error) {
	return s.store.GetSupplier(ctx, id)
}

func (s *Service) AddSupplier(ctx context.Context, supplier Supplier) (Supplier, error) {
	return s.store.CreateSupplier(ctx, supplier)
}

func (s *Service) UpdateSupplier(ctx context.Context, id string, update SupplierUpdate) (Supplier, error) {
	return s.store.UpdateSupplier(ctx, id, update)
}

func (s *Service) RemoveSupplier(ctx context.Context, id string) error {
	return s.store.DeleteSupplier(ctx, id)
}

// ResolveName returns the display name for a tagged person reference.
func (s *Service) ResolveName(ctx context.Context, personType PersonType, id string) (string, error) {
	switch personType {
	case TypeEmployee:
		employee, err := s.store.GetEmployee(ctx, id)
		if err != nil {
			return "", err
		}
		return employee.Name, nil
	case TypeSupplier:
		supplier, err := s.store.GetSupplier(ctx, id)
		if err != nil {
			return "", err
		}
		return supplier.Name, nil
	default:
		return "", ErrInvalidPersonType
	}
}

// ActiveEmployees filters the registry down to payroll-eligible people.
func (s *Service) ActiveEmployees(ctx context.Context) ([]Employee, error) {
	employees, err := s.store.ListEmployees(ctx)
	if err != nil {
		return nil, err
	}
	active := employees[:0:0]
	for _, employee := range employees {
		if employee.Status == StatusActive {
			active = append(active, employee)
		}
	}
	return active, nil
}

func (s *Service) Departments(ctx context.Context) ([]string, error) {
	employees, err := s.store.ListEmployees(ctx)
	if err != nil {
		return nil, err
	}
	return distinct(employees, func(e Employee) string { return e.Department }), nil
}

func (s *Service) Roles(ctx context.Context) ([]string, error) {
	employees, err := s.store.ListEmployees(ctx)
	if err != nil {
		return nil, err
	}
	return distinct(employees, func(e Employee) string { return e.Role }), nil
}

func distinct(employees []Employee, pick func(Employee) string) []string {
	seen := make(map[string]bool)
	var values []string
	for _, employee := range employees {
		value := pick(employee)
		if value == "" || seen[value] {
			continue
		}
		seen[value] = true
		values = append(values, value)
	}
	sort.Strings(values)
	return values
}
