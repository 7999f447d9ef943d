package inventory

import "time"

type Item struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	SKU           string     `json:"sku"`
	Category      string     `json:"category"`
	Quantity      float64    `json:"quantity"`
	Unit          string     `json:"unit"`
	UnitPrice     float64    `json:"unitPrice"`
	ReorderLevel  float64    `json:"reorderLevel"`
	Supplier      string     `json:"supplier"`
	Location      string     `json:"location"`
	Status        string     `json:"status"`
	LastRestocked time.Time  `json:"lastRestocked"`
	ExpiryDate    *time.Time `json:"expiryDate,omitempty"`
	Description   string     `json:"description,omitempty"`
}

type ItemUpdate struct {
	Name         *string    `json:"name"`
	SKU          *string    `json:"sku"`
	Category     *string    `json:"category"`
	Quantity     *float64   `json:"quantity"`
	Unit         *string    `json:"unit"`
	UnitPrice    *float64   `json:"unitPrice"`
	ReorderLevel *float64   `json:"reorderLevel"`
	Supplier     *string    `json:"supplier"`
	Location     *string    `json:"location"`
	ExpiryDate   *time.Time `json:"expiryDate"`
	Description  *string    `json:"description"`
}

// Movement is one entry in the append-only stock ledger. Previous and new
// quantities are captured so the history stays explainable even if items
// are edited later.
type Movement struct {
	ID               string    `json:"id"`
	ItemID           string    `json:"itemId"`
	ItemName         string    `json:"itemName"`
	Type             string    `json:"type"`
	Quantity         float64   `json:"quantity"`
	PreviousQuantity float64   `json:"previousQuantity"`
	NewQuantity      float64   `json:"newQuantity"`
	Reason           string    `json:"reason"`
	Date             time.Time `json:"date"`
	PerformedBy      string    `json:"performedBy"`
}

type Adjustment struct {
	Type     string  `json:"type"`
	Quantity float64 `json:"quantity"`
	Reason   string  `json:"reason"`
}

type Stats struct {
	TotalItems      int     `json:"totalItems"`
	TotalValue      float64 `json:"totalValue"`
	LowStockItems   int     `json:"lowStockItems"`
	OutOfStockItems int     `json:"outOfStockItems"`
}

type ImportResult struct {
	Success int      `json:"success"`
	Errors  []string `json:"errors"`
}
