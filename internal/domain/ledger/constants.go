package ledger

const (
	StatusPending = "pending"
	StatusPartial = "partial"
	StatusCleared = "cleared"
)

// StatusFor derives the entry status from its balances. Status is never
// stored independently of the numbers it is derived from.
func StatusFor(remaining, total float64) string {
	switch {
	case remaining == 0:
		return StatusCleared
	case remaining < total:
		return StatusPartial
	default:
		return StatusPending
	}
}
