package view

import (
	"github.com/amsaid/makhzan/internal/inventory"
)

// FormatQty renders a quantity for table cells. Zero shows as a dash so
// movement columns stay scannable.
func FormatQty(q inventory.Quantity) string {
	if q.IsZero() {
		return "-"
	}

	return q.String()
}

// FormatDate renders a document date exactly as entered, or a dash when
// the document carries none.
func FormatDate(d inventory.Date) string {
	if d.IsEmpty() {
		return "-"
	}

	return d.Raw()
}

// Truncate shortens a cell value to width runes. Arabic names run long
// and the table component clips bytes, not runes.
func Truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}

	return string(r[:width-1]) + "…"
}
