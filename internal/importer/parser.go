package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	enc "github.com/amsaid/makhzan/internal/encoding"
	"github.com/amsaid/makhzan/internal/inventory"
)

// Known header names, matched case-insensitively after trimming. Sheets
// in the wild vary only in column order and extra columns.
const (
	colName       = "name"
	colUnit       = "unit"
	colType       = "type"
	colGroup      = "group"
	colInitialQty = "initial_qty"
)

// DefaultItemType is what imported rows get when the sheet carries no
// type column (consumable).
const DefaultItemType = "مستهلك"

// Parser reads tabular item sheets. It finds the header row by landmark
// instead of assuming it comes first, because exported sheets often lead
// with title rows.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

func (p *Parser) Parse(r io.Reader) ([]Row, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	data, err := io.ReadAll(utf8r)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = sniffDelimiter(data)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	cols, headerIdx := detectHeader(rows)
	if cols == nil {
		return nil, fmt.Errorf("no header row found: expected name and unit columns")
	}

	return parseRows(cols, rows[headerIdx+1:]), nil
}

// sniffDelimiter picks between comma and semicolon by counting them on
// the first line. Exports from Arabic Excel locales use semicolons.
func sniffDelimiter(data []byte) rune {
	line := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		line = data[:i]
	}

	if bytes.Count(line, []byte{';'}) > bytes.Count(line, []byte{','}) {
		return ';'
	}

	return ','
}

// colIndex maps lowercased column names to their index in the row.
type colIndex map[string]int

// detectHeader scans for the first row carrying both name and unit.
func detectHeader(rows [][]string) (colIndex, int) {
	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row {
			name := strings.ToLower(strings.TrimSpace(cell))
			if name != "" {
				cols[name] = i
			}
		}

		_, hasName := cols[colName]
		_, hasUnit := cols[colUnit]

		if hasName && hasUnit {
			return cols, rowIdx
		}
	}

	return nil, 0
}

// parseRows extracts item rows. Rows without a name are skipped; they are
// usually footers or blank padding.
func parseRows(cols colIndex, rows [][]string) []Row {
	nameIdx := cols[colName]
	unitIdx := cols[colUnit]

	typeIdx, hasType := cols[colType]
	groupIdx, hasGroup := cols[colGroup]
	qtyIdx, hasQty := cols[colInitialQty]

	var out []Row

	for _, row := range rows {
		name := cellValue(row, nameIdx)
		if name == "" {
			continue
		}

		item := Row{
			Name: name,
			Unit: cellValue(row, unitIdx),
			Type: DefaultItemType,
		}

		if hasType {
			if t := cellValue(row, typeIdx); t != "" {
				item.Type = t
			}
		}

		if hasGroup {
			item.Group = cellValue(row, groupIdx)
		}

		if hasQty {
			item.InitialQty = parseQty(cellValue(row, qtyIdx))
		}

		out = append(out, item)
	}

	return out
}

// parseQty reads a quantity cell. Locales that separate columns with
// semicolons write decimal commas, so "12,5" means 12.5.
func parseQty(s string) inventory.Quantity {
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}

	return inventory.ParseQuantity(s)
}

// cellValue safely gets a trimmed cell value from a row.
func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}
