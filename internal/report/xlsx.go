package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/amsaid/makhzan/internal/ledger"
)

const sheet = "Sheet1"

// WriteStockXLSX renders the stock report as a workbook.
func WriteStockXLSX(w io.Writer, rows []StockRow) error {
	f := excelize.NewFile()
	defer f.Close()

	writeHeader(f, stockHeader)

	for i, r := range rows {
		name := r.Name
		if name == "" {
			name = r.ItemID
		}

		row := fmt.Sprint(i + 2)
		bal, _ := r.Balance.Decimal().Float64()

		f.SetCellValue(sheet, "A"+row, name)
		f.SetCellValue(sheet, "B"+row, r.Unit)
		f.SetCellValue(sheet, "C"+row, r.Group)
		f.SetCellValue(sheet, "D"+row, r.Type)
		f.SetCellValue(sheet, "E"+row, bal)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}

	return nil
}

// WriteCardXLSX renders an item card as a workbook.
func WriteCardXLSX(w io.Writer, card ledger.Card) error {
	f := excelize.NewFile()
	defer f.Close()

	writeHeader(f, cardHeader)

	for i, r := range card.Rows {
		row := fmt.Sprint(i + 2)
		in, _ := r.In.Decimal().Float64()
		out, _ := r.Out.Decimal().Float64()
		bal, _ := r.Balance.Decimal().Float64()

		f.SetCellValue(sheet, "A"+row, r.Narrative)
		f.SetCellValue(sheet, "B"+row, in)
		f.SetCellValue(sheet, "C"+row, out)
		f.SetCellValue(sheet, "D"+row, bal)
		f.SetCellValue(sheet, "E"+row, r.Number)
		f.SetCellValue(sheet, "F"+row, r.Date.Raw())
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}

	return nil
}

func writeHeader(f *excelize.File, header []string) {
	for i, h := range header {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}
}
