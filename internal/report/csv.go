package report

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/amsaid/makhzan/internal/ledger"
)

// Column headers keep the Arabic labels the printed reports always had.
var (
	stockHeader = []string{"الصنف", "الوحدة", "المجموعة", "النوع", "الرصيد"}
	cardHeader  = []string{"البيان", "وارد", "منصرف", "الرصيد", "رقم الإذن", "التاريخ"}
)

// utf8BOM leads every CSV so spreadsheet apps pick the right encoding for
// the Arabic text.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// WriteStockCSV renders the stock report.
func WriteStockCSV(w io.Writer, rows []StockRow) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return fmt.Errorf("writing bom: %w", err)
	}

	cw := csv.NewWriter(w)

	if err := cw.Write(stockHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, r := range rows {
		name := r.Name
		if name == "" {
			name = r.ItemID
		}

		record := []string{name, r.Unit, r.Group, r.Type, r.Balance.String()}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing row: %w", err)
		}
	}

	cw.Flush()

	return cw.Error()
}

// WriteCardCSV renders an item card.
func WriteCardCSV(w io.Writer, card ledger.Card) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return fmt.Errorf("writing bom: %w", err)
	}

	cw := csv.NewWriter(w)

	if err := cw.Write(cardHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, r := range card.Rows {
		record := []string{
			r.Narrative,
			r.In.String(),
			r.Out.String(),
			r.Balance.String(),
			r.Number,
			r.Date.Raw(),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing row: %w", err)
		}
	}

	cw.Flush()

	return cw.Error()
}
