package customer

import (
	"context"
	"time"
)

type Service struct {
	store StoreAPI
}

func NewService(store StoreAPI) *Service {
	return &Service{store: store}
}

func (s *Service) List(ctx context.Context) ([]Customer, error) {
	return s.store.ListCustomers(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (Customer, error) {
	return s.store.GetCustomer(ctx, id)
}

func (s *Service) Create(ctx context.Context, customer Customer) (Customer, error) {
	return s.store.CreateCustomer(ctx, customer)
}

func (s *Service) Update(ctx context.Context, id string, update CustomerUpdate) (Customer, error) {
	return s.store.UpdateCustomer(ctx, id, update)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.store.DeleteCustomer(ctx, id)
}

// RecordSale writes the sale and bumps the customer's purchase rollup in one call.
// TotalAmount is always recomputed from quantity and price.
func (s *Service) RecordSale(ctx context.Context, sale MilkSale) (MilkSale, error) {
	if sale.Quantity <= 0 || sale.PricePerLiter <= 0 {
		return MilkSale{}, ErrInvalidSale
	}
	cust, err := s.store.GetCustomer(ctx, sale.CustomerID)
	if err != nil {
		return MilkSale{}, err
	}
	sale.CustomerName = cust.Name
	sale.TotalAmount = sale.Quantity * sale.PricePerLiter
	if sale.Date.IsZero() {
		sale.Date = time.Now().UTC()
	}
	if sale.PaymentStatus == "" {
		sale.PaymentStatus = PaymentStatusPending
	}

	created, err := s.store.CreateSale(ctx, sale)
	if err != nil {
		return MilkSale{}, err
	}
	if err := s.store.ApplySaleRollup(ctx, sale.CustomerID, sale.TotalAmount, sale.Date); err != nil {
		return MilkSale{}, err
	}
	return created, nil
}

func (s *Service) Sales(ctx context.Context, customerID string) ([]MilkSale, error) {
	return s.store.ListSales(ctx, customerID)
}
