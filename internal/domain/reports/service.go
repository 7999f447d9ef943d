// Package reports aggregates figures from the other domains for the dashboard.
package reports

import (
	"context"

	"gemura/internal/domain/customer"
	"gemura/internal/domain/inventory"
	"gemura/internal/domain/payroll"
)

// recentMovementLimit bounds the stock-movement feed on the landing page.
const recentMovementLimit = 5

type Dashboard struct {
	Payroll         payroll.Summary      `json:"payroll"`
	Inventory       inventory.Stats      `json:"inventory"`
	RecentMovements []inventory.Movement `json:"recentMovements"`
	TotalCustomers  int                  `json:"totalCustomers"`
	ActiveCustomers int                  `json:"activeCustomers"`
	MilkSalesAmount float64              `json:"milkSalesAmount"`
	MilkSalesLiters float64              `json:"milkSalesLiters"`
}

type Payrolls interface {
	Summarize(ctx context.Context) (payroll.Summary, error)
}

type Inventories interface {
	Stats(ctx context.Context) (inventory.Stats, error)
	Movements(ctx context.Context, itemID string) ([]inventory.Movement, error)
}

type Customers interface {
	List(ctx context.Context) ([]customer.Customer, error)
	Sales(ctx context.Context, customerID string) ([]customer.MilkSale, error)
}

type Service struct {
	payrolls    Payrolls
	inventories Inventories
	customers   Customers
}

func NewService(payrolls Payrolls, inventories Inventories, customers Customers) *Service {
	return &Service{payrolls: payrolls, inventories: inventories, customers: customers}
}

func (s *Service) Dashboard(ctx context.Context) (Dashboard, error) {
	var dash Dashboard

	summary, err := s.payrolls.Summarize(ctx)
	if err != nil {
		return Dashboard{}, err
	}
	dash.Payroll = summary

	stats, err := s.inventories.Stats(ctx)
	if err != nil {
		return Dashboard{}, err
	}
	dash.Inventory = stats

	movements, err := s.inventories.Movements(ctx, "")
	if err != nil {
		return Dashboard{}, err
	}
	// Movements are stored oldest first; the dashboard shows the newest.
	dash.RecentMovements = make([]inventory.Movement, 0, recentMovementLimit)
	for i := len(movements) - 1; i >= 0 && len(dash.RecentMovements) < recentMovementLimit; i-- {
		dash.RecentMovements = append(dash.RecentMovements, movements[i])
	}

	customers, err := s.customers.List(ctx)
	if err != nil {
		return Dashboard{}, err
	}
	dash.TotalCustomers = len(customers)
	for _, c := range customers {
		if c.Status == customer.StatusActive {
			dash.ActiveCustomers++
		}
	}

	sales, err := s.customers.Sales(ctx, "")
	if err != nil {
		return Dashboard{}, err
	}
	for _, sale := range sales {
		dash.MilkSalesAmount += sale.TotalAmount
		dash.MilkSalesLiters += sale.Quantity
	}

	return dash, nil
}
