package customer

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

type MemoryStore struct {
	mu        sync.RWMutex
	customers []Customer
	sales     []MilkSale
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) ListCustomers(_ context.Context) ([]Customer, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Customer, len(m.customers))
	copy(out, m.customers)
	return out, nil
}

func (m *MemoryStore) GetCustomer(_ context.Context, id string) (Customer, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, customer := range m.customers {
		if customer.ID == id {
			return customer, nil
		}
	}
	return Customer{}, ErrNotFound
}

func (m *MemoryStore) CreateCustomer(_ context.Context, customer Customer) (Customer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	customer.ID = uuid.NewString()
	if customer.Status == "" {
		customer.Status = StatusActive
	}
	if customer.RegistrationDate.IsZero() {
		customer.RegistrationDate = time.Now().UTC()
	}
	m.customers = append(m.customers, customer)
	return customer, nil
}

func (m *MemoryStore) UpdateCustomer(_ context.Context, id string, update CustomerUpdate) (Customer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.customers {
		if m.customers[i].ID != id {
			continue
		}
		applyCustomerUpdate(&m.customers[i], update)
		return m.customers[i], nil
	}
	return Customer{}, ErrNotFound
}

func (m *MemoryStore) DeleteCustomer(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.customers {
		if m.customers[i].ID == id {
			m.customers = append(m.customers[:i], m.customers[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (m *MemoryStore) ApplySaleRollup(_ context.Context, customerID string, amount float64, date time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.customers {
		if m.customers[i].ID != customerID {
			continue
		}
		m.customers[i].TotalPurchases++
		m.customers[i].TotalAmount += amount
		m.customers[i].LastPurchaseDate = &date
		return nil
	}
	return ErrNotFound
}

func (m *MemoryStore) CreateSale(_ context.Context, sale MilkSale) (MilkSale, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sale.ID = uuid.NewString()
	m.sales = append(m.sales, sale)
	return sale, nil
}

func (m *MemoryStore) ListSales(_ context.Context, customerID string) ([]MilkSale, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []MilkSale
	for _, sale := range m.sales {
		if customerID != "" && sale.CustomerID != customerID {
			continue
		}
		out = append(out, sale)
	}
	return out, nil
}

func applyCustomerUpdate(customer *Customer, update CustomerUpdate) {
	if update.Name != nil {
		customer.Name = *update.Name
	}
	if update.Email != nil {
		customer.Email = *update.Email
	}
	if update.Phone != nil {
		customer.Phone = *update.Phone
	}
	if update.Address != nil {
		customer.Address = *update.Address
	}
	if update.City != nil {
		customer.City = *update.City
	}
	if update.Region != nil {
		customer.Region = *update.Region
	}
	if update.CustomerType != nil {
		customer.CustomerType = *update.CustomerType
	}
	if update.Status != nil {
		customer.Status = *update.Status
	}
	if update.PreferredDeliveryTime != nil {
		customer.PreferredDeliveryTime = *update.PreferredDeliveryTime
	}
	if update.PricePerLiter != nil {
		customer.PricePerLiter = *update.PricePerLiter
	}
	if update.Notes != nil {
		customer.Notes = *update.Notes
	}
}
