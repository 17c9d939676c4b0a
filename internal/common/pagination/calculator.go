package pagination

// CalculateVisible returns how many items are actually visible for a
// requested shown value: min(shown, total).
func CalculateVisible(shown, total int) int {
	if shown > total {
		return total
	}
	return shown
}

// CalculateNextShown returns the shown value after one "load more" press:
// visible + step, capped at total.
//
// Examples:
//   - Visible 6, Step 6, Total 20 -> 12
//   - Visible 18, Step 6, Total 20 -> 20
//   - Visible 20, Step 6, Total 20 -> 20 (already exhausted)
func CalculateNextShown(visible, step, total int) int {
	next := visible + step
	if next > total {
		next = total
	}
	return next
}
