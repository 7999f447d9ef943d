package customer

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRecordSaleRollsUpCustomerTotals(t *testing.T) {
	service := NewService(NewMemoryStore())
	ctx := context.Background()

	created, err := service.Create(ctx, Customer{Name: "Hotel Mille Collines", Phone: "0788123456", CustomerType: "Business"})
	if err != nil {
		t.Fatalf("create customer: %v", err)
	}
	if created.Status != StatusActive {
		t.Fatalf("expected defaulted active status, got %q", created.Status)
	}

	date := time.Date(2026, 1, 10, 6, 0, 0, 0, time.UTC)
	sale, err := service.RecordSale(ctx, MilkSale{
		CustomerID:    created.ID,
		Date:          date,
		Quantity:      40,
		PricePerLiter: 500,
		PaymentMethod: "Cash",
	})
	if err != nil {
		t.Fatalf("record sale: %v", err)
	}
	if sale.TotalAmount != 20000 {
		t.Fatalf("expected total 20000, got %v", sale.TotalAmount)
	}
	if sale.CustomerName != "Hotel Mille Collines" {
		t.Fatalf("customer name not resolved: %q", sale.CustomerName)
	}
	if sale.PaymentStatus != PaymentStatusPending {
		t.Fatalf("expected defaulted pending payment, got %q", sale.PaymentStatus)
	}

	if _, err := service.RecordSale(ctx, MilkSale{CustomerID: created.ID, Quantity: 10, PricePerLiter: 500}); err != nil {
		t.Fatalf("second sale: %v", err)
	}

	after, err := service.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("get customer: %v", err)
	}
	if after.TotalPurchases != 2 {
		t.Fatalf("expected 2 purchases, got %d", after.TotalPurchases)
	}
	if after.TotalAmount != 25000 {
		t.Fatalf("expected 25000 total, got %v", after.TotalAmount)
	}
	if after.LastPurchaseDate == nil {
		t.Fatal("last purchase date not set")
	}
}

func TestRecordSaleValidation(t *testing.T) {
	service := NewService(NewMemoryStore())
	ctx := context.Background()

	created, err := service.Create(ctx, Customer{Name: "Kiosk"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := service.RecordSale(ctx, MilkSale{CustomerID: created.ID, Quantity: 0, PricePerLiter: 500}); !errors.Is(err, ErrInvalidSale) {
		t.Fatalf("expected ErrInvalidSale for zero quantity, got %v", err)
	}
	if _, err := service.RecordSale(ctx, MilkSale{CustomerID: created.ID, Quantity: 5, PricePerLiter: -1}); !errors.Is(err, ErrInvalidSale) {
		t.Fatalf("expected ErrInvalidSale for negative price, got %v", err)
	}
	if _, err := service.RecordSale(ctx, MilkSale{CustomerID: "missing", Quantity: 5, PricePerLiter: 500}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown customer, got %v", err)
	}
}

func TestSalesFilterByCustomer(t *testing.T) {
	service := NewService(NewMemoryStore())
	ctx := context.Background()

	first, err := service.Create(ctx, Customer{Name: "First"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	second, err := service.Create(ctx, Customer{Name: "Second"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := service.RecordSale(ctx, MilkSale{CustomerID: first.ID, Quantity: 1, PricePerLiter: 500}); err != nil {
		t.Fatalf("sale: %v", err)
	}
	if _, err := service.RecordSale(ctx, MilkSale{CustomerID: second.ID, Quantity: 2, PricePerLiter: 500}); err != nil {
		t.Fatalf("sale: %v", err)
	}

	sales, err := service.Sales(ctx, first.ID)
	if err != nil {
		t.Fatalf("sales: %v", err)
	}
	if len(sales) != 1 || sales[0].CustomerID != first.ID {
		t.Fatalf("expected only the first customer's sale, got %+v", sales)
	}

	all, err := service.Sales(ctx, "")
	if err != nil {
		t.Fatalf("sales: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 sales, got %d", len(all))
	}
}

func TestCustomerPartialUpdate(t *testing.T) {
	service := NewService(NewMemoryStore())
	ctx := context.Background()

	created, err := service.Create(ctx, Customer{Name: "Shop", Phone: "0788", CustomerType: "Individual"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	status := StatusSuspended
	updated, err := service.Update(ctx, created.ID, CustomerUpdate{Status: &status})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Status != StatusSuspended {
		t.Fatalf("status not updated: %q", updated.Status)
	}
	if updated.Name != "Shop" || updated.Phone != "0788" {
		t.Fatalf("untouched fields changed: %+v", updated)
	}
}
