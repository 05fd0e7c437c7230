package importer

import (
	"io"

	"github.com/amsaid/makhzan/internal/inventory"
)

// Row is one parsed item line from a sheet.
type Row struct {
	Name       string
	Unit       string
	Type       string
	Group      string
	InitialQty inventory.Quantity
}

type Importer interface {
	Parse(r io.Reader) ([]Row, error)
}
