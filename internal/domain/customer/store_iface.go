package customer

import (
	"context"
	"time"
)

type StoreAPI interface {
	ListCustomers(ctx context.Context) ([]Customer, error)
	GetCustomer(ctx context.Context, id string) (Customer, error)
	CreateCustomer(ctx context.Context, customer Customer) (Customer, error)
	UpdateCustomer(ctx context.Context, id string, update CustomerUpdate) (Customer, error)
	DeleteCustomer(ctx context.Context, id string) error
	// ApplySaleRollup bumps purchase counters after a recorded sale.
	ApplySaleRollup(ctx context.Context, customerID string, amount float64, date time.Time) error

	CreateSale(ctx context.Context, sale MilkSale) (MilkSale, error)
	ListSales(ctx context.Context, customerID string) ([]MilkSale, error)
}
