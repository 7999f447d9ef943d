package inventory

const (
	StatusInStock    = "In Stock"
	StatusLowStock   = "Low Stock"
	StatusOutOfStock = "Out of Stock"

	MovementIn         = "IN"
	MovementOut        = "OUT"
	MovementAdjustment = "ADJUSTMENT"
)

// StatusFor derives the stock status from quantity and reorder level.
func StatusFor(quantity, reorderLevel float64) string {
	switch {
	case quantity <= 0:
		return StatusOutOfStock
	case quantity <= reorderLevel:
		return StatusLowStock
	default:
		return StatusInStock
	}
}

func ValidMovementType(movementType string) bool {
	return movementType == MovementIn || movementType == MovementOut || movementType == MovementAdjustment
}
