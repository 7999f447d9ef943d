package inventory

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

var csvHeader = []string{"name", "sku", "category", "quantity", "unit", "unitPrice", "reorderLevel", "supplier", "location"}

// ExportCSV writes all items in the import-compatible column layout.
func (s *Service) ExportCSV(ctx context.Context) ([]byte, error) {
	items, err := s.store.ListItems(ctx)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	if err := writer.Write(csvHeader); err != nil {
		return nil, err
	}
	for _, item := range items {
		row := []string{
			item.Name,
			item.SKU,
			item.Category,
			strconv.FormatFloat(item.Quantity, 'f', -1, 64),
			item.Unit,
			strconv.FormatFloat(item.UnitPrice, 'f', -1, 64),
			strconv.FormatFloat(item.ReorderLevel, 'f', -1, 64),
			item.Supplier,
			item.Location,
		}
		if err := writer.Write(row); err != nil {
			return nil, err
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ImportCSV reads rows in the export layout and creates one item per valid
// row. Bad rows are reported but do not abort the batch.
func (s *Service) ImportCSV(ctx context.Context, r io.Reader) (ImportResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return ImportResult{}, fmt.Errorf("read csv header: %w", err)
	}
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{"name", "sku", "quantity"} {
		if _, ok := index[required]; !ok {
			return ImportResult{}, fmt.Errorf("missing csv column %q", required)
		}
	}

	result := ImportResult{Errors: []string{}}
	line := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", line, err))
			continue
		}

		item, rowErr := parseItemRow(row, index)
		if rowErr != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", line, rowErr))
			continue
		}
		if _, err := s.store.CreateItem(ctx, item); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", line, err))
			continue
		}
		result.Success++
	}
	return result, nil
}

func parseItemRow(row []string, index map[string]int) (Item, error) {
	field := func(name string) string {
		i, ok := index[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	name := field("name")
	if name == "" {
		return Item{}, fmt.Errorf("name is required")
	}
	sku := field("sku")
	if sku == "" {
		return Item{}, fmt.Errorf("sku is required")
	}
	quantity, err := strconv.ParseFloat(field("quantity"), 64)
	if err != nil || quantity < 0 {
		return Item{}, fmt.Errorf("invalid quantity %q", field("quantity"))
	}

	item := Item{
		Name:     name,
		SKU:      sku,
		Category: field("category"),
		Quantity: quantity,
		Unit:     field("unit"),
		Supplier: field("supplier"),
		Location: field("location"),
	}
	if raw := field("unitPrice"); raw != "" {
		price, err := strconv.ParseFloat(raw, 64)
		if err != nil || price < 0 {
			return Item{}, fmt.Errorf("invalid unitPrice %q", raw)
		}
		item.UnitPrice = price
	}
	if raw := field("reorderLevel"); raw != "" {
		level, err := strconv.ParseFloat(raw, 64)
		if err != nil || level < 0 {
			return Item{}, fmt.Errorf("invalid reorderLevel %q", raw)
		}
		item.ReorderLevel = level
	}
	return item, nil
}
