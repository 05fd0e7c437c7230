// Package report renders the two ledger tables: the stock balance report
// and the per-item card. Rendering stays dumb; every number comes straight
// from the ledger calls.
package report

import (
	"slices"

	"github.com/amsaid/makhzan/internal/inventory"
	"github.com/amsaid/makhzan/internal/ledger"
)

type Repository interface {
	Snapshot() *inventory.Snapshot
}

type Service struct {
	repo   Repository
	strict bool
}

// NewService builds a report service. strict selects strict date filtering
// for balance queries.
func NewService(repo Repository, strict bool) *Service {
	return &Service{repo: repo, strict: strict}
}

// StockRow is one line of the stock balance report.
type StockRow struct {
	ItemID  string             `json:"itemId"`
	Name    string             `json:"name"`
	Unit    string             `json:"unit"`
	Group   string             `json:"group"`
	Type    string             `json:"type"`
	Balance inventory.Quantity `json:"balance"`
}

// StockParams narrows the stock report the same way the ledger filter
// does.
type StockParams struct {
	From   inventory.Date
	To     inventory.Date
	Type   inventory.Type
	ItemID string
	Group  string
}

// Stock returns one row per balance entry: current items first in
// container order, then dangling ids in lexical order.
func (s *Service) Stock(params StockParams) []StockRow {
	snap := s.repo.Snapshot()

	balances := ledger.Balances(snap, ledger.Filter{
		From:   params.From,
		To:     params.To,
		Type:   params.Type,
		ItemID: params.ItemID,
		Group:  params.Group,
		Strict: s.strict,
	})

	rows := make([]StockRow, 0, len(balances))
	seen := make(map[string]bool, len(balances))

	for _, it := range snap.Items {
		bal, ok := balances[it.ID]
		if !ok {
			continue
		}

		rows = append(rows, StockRow{
			ItemID:  it.ID,
			Name:    it.Name,
			Unit:    it.Unit,
			Group:   it.Group,
			Type:    it.Type,
			Balance: bal,
		})
		seen[it.ID] = true
	}

	// Lines can reference removed items; those ids still carry balances.
	var dangling []string

	for id := range balances {
		if !seen[id] {
			dangling = append(dangling, id)
		}
	}

	slices.Sort(dangling)

	for _, id := range dangling {
		rows = append(rows, StockRow{ItemID: id, Balance: balances[id]})
	}

	return rows
}

// Card returns the item card plus the item record when it still exists.
func (s *Service) Card(itemID string) (inventory.Item, ledger.Card) {
	snap := s.repo.Snapshot()

	var item inventory.Item
	if it := snap.ItemByID(itemID); it != nil {
		item = *it
	}

	return item, ledger.ItemCard(snap, itemID)
}
