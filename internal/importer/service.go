package importer

import (
	"context"
	"fmt"
	"io"

	"github.com/amsaid/makhzan/internal/inventory"
)

// Opening-stock permissions are labeled in Arabic like every other
// document.
const (
	openingNumber = "افتتاحي"
	openingDesc   = "رصيد افتتاحي"
)

// Inventory is the slice of the inventory service the importer drives.
type Inventory interface {
	Snapshot() *inventory.Snapshot
	AddItem(ctx context.Context, params inventory.AddItemParams) (inventory.Item, error)
	AddPermission(ctx context.Context, params inventory.AddPermissionParams) (inventory.Permission, error)
}

// Result summarizes one import run.
type Result struct {
	Imported []inventory.Item
	Skipped  []string
	Openings int
}

type Service struct {
	parser    Importer
	inventory Inventory
}

func NewService(inv Inventory) *Service {
	return &Service{
		parser:    NewParser(),
		inventory: inv,
	}
}

// Import parses an item sheet and creates the missing items. Names match
// exactly; existing items are skipped, never updated. A row with positive
// opening stock gets one posted addition permission crediting the first
// warehouse.
func (s *Service) Import(ctx context.Context, r io.Reader) (*Result, error) {
	rows, err := s.parser.Parse(r)
	if err != nil {
		return nil, err
	}

	snap := s.inventory.Snapshot()
	store := openingStore(snap)

	seen := make(map[string]bool, len(snap.Items))
	for _, it := range snap.Items {
		seen[it.Name] = true
	}

	result := &Result{
		Imported: []inventory.Item{},
		Skipped:  []string{},
	}

	for _, row := range rows {
		if row.Unit == "" || seen[row.Name] {
			result.Skipped = append(result.Skipped, row.Name)
			continue
		}

		item, err := s.inventory.AddItem(ctx, inventory.AddItemParams{
			Name:  row.Name,
			Unit:  row.Unit,
			Type:  row.Type,
			Group: row.Group,
		})
		if err != nil {
			return nil, fmt.Errorf("adding item %q: %w", row.Name, err)
		}

		seen[item.Name] = true
		result.Imported = append(result.Imported, item)

		if !row.InitialQty.IsPositive() {
			continue
		}

		_, err = s.inventory.AddPermission(ctx, inventory.AddPermissionParams{
			Number: openingNumber,
			Type:   inventory.TypeAddition,
			Store:  store,
			Date:   inventory.Today(),
			Posted: true,
			Lines: []inventory.LineParams{{
				ItemID: item.ID,
				Unit:   item.Unit,
				Qty:    row.InitialQty,
				Desc:   openingDesc,
			}},
		})
		if err != nil {
			return nil, fmt.Errorf("adding opening stock for %q: %w", row.Name, err)
		}

		result.Openings++
	}

	return result, nil
}

// openingStore picks the warehouse opening stock credits: the first one,
// or the standard main warehouse name when none exist yet.
func openingStore(snap *inventory.Snapshot) string {
	if len(snap.Warehouses) > 0 {
		return snap.Warehouses[0].Name
	}

	return "المخزن الرئيسي"
}
