package person

import "context"

type StoreAPI interface {
	ListEmployees(ctx context.Context) ([]Employee, error)
	GetEmployee(ctx context.Context, id string) (Employee, error)
	CreateEmployee(ctx context.Context, employee Employee) (Employee, error)
	UpdateEmployee(ctx context.Context, id string, update EmployeeUpdate) (Employee, error)
	DeleteEmployee(ctx context.Context, id string) error

	ListSuppliers(ctx context.Context) ([]Supplier, error)
	GetSupplier(ctx context.Context, id string) (Supplier, error)
	CreateSupplier(ctx context.Context, supplier Supplier) (Supplier, error)
	UpdateSupplier(ctx context.Context, id string, update SupplierUpdate) (Supplier, error)
	DeleteSupplier(ctx context.Context, id string) error
}
