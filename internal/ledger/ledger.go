// Package ledger derives balances and item cards from a snapshot. Both
// functions are pure and total: they never mutate their input and never
// fail, whatever the stored documents contain.
package ledger

import (
	"slices"

	"github.com/amsaid/makhzan/internal/inventory"
)

// Filter narrows which permissions and items a balance query sees. Zero
// values mean unset. ItemID beats Group when both are set.
type Filter struct {
	From   inventory.Date
	To     inventory.Date
	Type   inventory.Type
	ItemID string
	Group  string

	// Strict excludes permissions whose dates cannot be compared against
	// the range instead of letting them through.
	Strict bool
}

// Balances computes the signed quantity per item id. Every current item
// appears in the result, zero included; dangling line references keep
// their ids as extra keys.
func Balances(snap *inventory.Snapshot, f Filter) map[string]inventory.Quantity {
	totals := make(map[string]inventory.Quantity, len(snap.Items))

	for _, it := range snap.Items {
		totals[it.ID] = inventory.Quantity{}
	}

	for _, p := range snap.Permissions {
		if !p.Posted {
			continue
		}

		if f.Type != "" && p.Type != f.Type {
			continue
		}

		if excludedByDate(p.Date, f) {
			continue
		}

		sign := p.Type.Sign()

		for _, ln := range p.Lines {
			total := totals[ln.ItemID]

			switch sign {
			case 1:
				total = total.Add(ln.Qty)
			case -1:
				total = total.Sub(ln.Qty)
			}

			totals[ln.ItemID] = total
		}
	}

	if f.ItemID != "" {
		return map[string]inventory.Quantity{f.ItemID: totals[f.ItemID]}
	}

	if f.Group != "" {
		group := make(map[string]inventory.Quantity)

		for _, it := range snap.Items {
			if it.Group == f.Group {
				group[it.ID] = totals[it.ID]
			}
		}

		return group
	}

	return totals
}

// excludedByDate applies the inclusive date range. The permissive rule
// keeps any permission whose date cannot be compared; Strict drops it.
func excludedByDate(d inventory.Date, f Filter) bool {
	if !f.From.IsEmpty() {
		if d.Before(f.From) {
			return true
		}

		if f.Strict && !(d.Valid() && f.From.Valid()) {
			return true
		}
	}

	if !f.To.IsEmpty() {
		if d.After(f.To) {
			return true
		}

		if f.Strict && !(d.Valid() && f.To.Valid()) {
			return true
		}
	}

	return false
}

// Row is one movement on an item card.
type Row struct {
	Narrative string             `json:"narrative"`
	In        inventory.Quantity `json:"in"`
	Out       inventory.Quantity `json:"out"`
	Balance   inventory.Quantity `json:"balance"`
	Desc      string             `json:"desc"`
	Number    string             `json:"number"`
	Date      inventory.Date     `json:"date"`
}

// Card is the chronological statement for one item.
type Card struct {
	Rows    []Row              `json:"rows"`
	Balance inventory.Quantity `json:"balance"`
}

// ItemCard reconstructs the movement history for one item with a running
// balance. Only posted permissions count. Rows order by document date,
// falling back to the creation timestamp; incomparable documents keep
// their container order.
func ItemCard(snap *inventory.Snapshot, itemID string) Card {
	var perms []inventory.Permission

	for _, p := range snap.Permissions {
		if !p.Posted {
			continue
		}

		for _, ln := range p.Lines {
			if ln.ItemID == itemID {
				perms = append(perms, p)
				break
			}
		}
	}

	slices.SortStableFunc(perms, func(a, b inventory.Permission) int {
		at, aok := a.EffectiveTime()
		bt, bok := b.EffectiveTime()

		if !aok || !bok {
			return 0
		}

		return at.Compare(bt)
	})

	card := Card{Rows: []Row{}}

	for _, p := range perms {
		for _, ln := range p.Lines {
			if ln.ItemID != itemID {
				continue
			}

			row := Row{
				Narrative: string(p.Type),
				Desc:      ln.Desc,
				Number:    p.Number,
				Date:      p.Date,
			}

			if p.Type.Inbound() {
				row.In = ln.Qty
				card.Balance = card.Balance.Add(ln.Qty)
			} else {
				row.Out = ln.Qty
				card.Balance = card.Balance.Sub(ln.Qty)
			}

			row.Balance = card.Balance
			card.Rows = append(card.Rows, row)
		}
	}

	return card
}
