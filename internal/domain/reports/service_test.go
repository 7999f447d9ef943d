package reports_test

import (
	"context"
	"testing"

	"gemura/internal/domain/customer"
	"gemura/internal/domain/inventory"
	"gemura/internal/domain/ledger"
	"gemura/internal/domain/payroll"
	"gemura/internal/domain/person"
	"gemura/internal/domain/reports"
)

func TestDashboardAggregates(t *testing.T) {
	ctx := context.Background()

	people := person.NewService(person.NewMemoryStore())
	ledgers := ledger.NewService(ledger.NewMemoryStore())
	payrolls := payroll.NewService(payroll.NewMemoryStore(), ledgers, people)
	inventories := inventory.NewService(inventory.NewMemoryStore())
	customers := customer.NewService(customer.NewMemoryStore())
	service := reports.NewService(payrolls, inventories, customers)

	if _, err := people.AddEmployee(ctx, person.Employee{Name: "Alice", BaseSalary: 120000}); err != nil {
		t.Fatalf("add employee: %v", err)
	}

	item, err := inventories.AddItem(ctx, inventory.Item{Name: "Milk Can", SKU: "MC-1", Quantity: 10, UnitPrice: 100})
	if err != nil {
		t.Fatalf("add item: %v", err)
	}
	for i := 0; i < 7; i++ {
		if _, err := inventories.AdjustStock(ctx, item.ID, inventory.Adjustment{Type: inventory.MovementOut, Quantity: 1}, "x"); err != nil {
			t.Fatalf("adjust: %v", err)
		}
	}

	buyer, err := customers.Create(ctx, customer.Customer{Name: "Hotel"})
	if err != nil {
		t.Fatalf("create customer: %v", err)
	}
	if _, err := customers.RecordSale(ctx, customer.MilkSale{CustomerID: buyer.ID, Quantity: 40, PricePerLiter: 500}); err != nil {
		t.Fatalf("record sale: %v", err)
	}

	dash, err := service.Dashboard(ctx)
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if dash.Payroll.TotalEmployees != 1 {
		t.Fatalf("expected 1 employee, got %d", dash.Payroll.TotalEmployees)
	}
	if dash.TotalCustomers != 1 || dash.ActiveCustomers != 1 {
		t.Fatalf("unexpected customer counts: %d/%d", dash.TotalCustomers, dash.ActiveCustomers)
	}
	if dash.MilkSalesAmount != 20000 || dash.MilkSalesLiters != 40 {
		t.Fatalf("unexpected sales rollup: %v RWF / %v L", dash.MilkSalesAmount, dash.MilkSalesLiters)
	}
	if len(dash.RecentMovements) != 5 {
		t.Fatalf("expected the feed capped at 5 movements, got %d", len(dash.RecentMovements))
	}
	// Newest first.
	if dash.RecentMovements[0].NewQuantity != 3 {
		t.Fatalf("expected the latest movement first, got %+v", dash.RecentMovements[0])
	}
}
