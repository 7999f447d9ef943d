package inventory

import (
	"context"
	"strings"
	"testing"
)

func TestImportCSVReportsRowErrorsWithoutAborting(t *testing.T) {
	service := NewService(NewMemoryStore())

	input := strings.Join([]string{
		"name,sku,category,quantity,unit,unitPrice,reorderLevel,supplier,location",
		"Milk Can,MC-1,Equipment,50,pcs,12000,10,AgriSupplies,Store A",
		",NO-NAME,Equipment,5,pcs,100,1,,",
		"Filter,F-1,Equipment,not-a-number,pcs,100,1,,",
		"Teat Dip,TD-1,Consumables,8,bottles,3500,3,VetCo,Store B",
	}, "\n")

	result, err := service.ImportCSV(context.Background(), strings.NewReader(input))
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if result.Success != 2 {
		t.Fatalf("expected 2 imported rows, got %d", result.Success)
	}
	if len(result.Errors) != 2 {
		t.Fatalf("expected 2 row errors, got %v", result.Errors)
	}
	if !strings.HasPrefix(result.Errors[0], "row 3:") {
		t.Fatalf("expected row-numbered error, got %q", result.Errors[0])
	}
	if !strings.HasPrefix(result.Errors[1], "row 4:") {
		t.Fatalf("expected row-numbered error, got %q", result.Errors[1])
	}

	items, err := service.Items(context.Background())
	if err != nil {
		t.Fatalf("items: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items after import, got %d", len(items))
	}
}

func TestImportCSVRejectsMissingColumns(t *testing.T) {
	service := NewService(NewMemoryStore())
	if _, err := service.ImportCSV(context.Background(), strings.NewReader("name,category\nMilk Can,Equipment\n")); err == nil {
		t.Fatal("expected an error for a header without sku/quantity")
	}
}

func TestExportCSVRoundTripsLayout(t *testing.T) {
	service := NewService(NewMemoryStore())
	addItem(t, service, Item{Name: "Milk Can", SKU: "MC-1", Category: "Equipment", Quantity: 50, Unit: "pcs", UnitPrice: 12000, ReorderLevel: 10})

	payload, err := service.ExportCSV(context.Background())
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(payload)), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header + 1 row, got %d lines", len(lines))
	}
	if lines[0] != "name,sku,category,quantity,unit,unitPrice,reorderLevel,supplier,location" {
		t.Fatalf("unexpected header %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "Milk Can,MC-1,Equipment,50,pcs,12000,10") {
		t.Fatalf("unexpected row %q", lines[1])
	}

	// The export layout must feed straight back into the importer.
	other := NewService(NewMemoryStore())
	result, err := other.ImportCSV(context.Background(), strings.NewReader(string(payload)))
	if err != nil {
		t.Fatalf("re-import: %v", err)
	}
	if result.Success != 1 || len(result.Errors) != 0 {
		t.Fatalf("re-import failed: %+v", result)
	}
}
