package inventory

import "time"

// Type identifies the kind of a permission document. The wire values are
// Arabic because persisted snapshots predate this implementation and keep
// the original labels.
type Type string

const (
	TypeAddition     Type = "إضافة"
	TypeReturn       Type = "ارتجاع"
	TypeTransfer     Type = "تحويل"
	TypeDeduction    Type = "خصم معدة"
	TypeDisbursement Type = "صرف"
)

// Sign returns the posting direction of the document type: +1 adds stock,
// -1 removes it, 0 for unknown types (no aggregation effect).
func (t Type) Sign() int {
	switch t {
	case TypeAddition, TypeReturn:
		return 1
	case TypeTransfer, TypeDeduction, TypeDisbursement:
		return -1
	default:
		return 0
	}
}

// Inbound reports whether the document type brings stock in. Everything
// else, unknown types included, reads as outbound on an item card.
func (t Type) Inbound() bool {
	return t == TypeAddition || t == TypeReturn
}

// Permission line count bounds, enforced at the mutation boundary.
const (
	MinLines = 1
	MaxLines = 25
)

// Item is a stock item tracked by the ledger.
type Item struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Unit  string `json:"unit"`
	Type  string `json:"type"`
	Group string `json:"group"`
}

// Warehouse is a named storage location. Permissions reference warehouses
// by name, not id; renaming a warehouse does not rewrite old documents.
type Warehouse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Desc string `json:"desc"`
}

// Line is a single item movement inside a permission. ItemID may dangle
// after the item is removed; downstream consumers tolerate that.
type Line struct {
	ItemID string   `json:"itemId"`
	Unit   string   `json:"unit"`
	Qty    Quantity `json:"qty"`
	Desc   string   `json:"desc"`
}

// Permission is a dated stock document. Store, From and To hold warehouse
// names. Only posted permissions affect balances.
type Permission struct {
	ID        string `json:"id"`
	Number    string `json:"number"`
	Type      Type   `json:"type"`
	Store     string `json:"store"`
	From      string `json:"from"`
	To        string `json:"to"`
	Date      Date   `json:"date"`
	SubNumber string `json:"subNumber"`
	Posted    bool   `json:"posted"`
	PostedAt  string `json:"postedAt"`
	Lines     []Line `json:"lines"`
	CreatedAt string `json:"createdAt"`
}

// EffectiveTime is the ordering instant for the item card: the document
// date when one was entered, otherwise the creation timestamp. ok is false
// when neither parses; incomparable documents keep their container order.
func (p *Permission) EffectiveTime() (time.Time, bool) {
	if !p.Date.IsEmpty() {
		return p.Date.Time(), p.Date.Valid()
	}

	if t, err := time.Parse(time.RFC3339, p.CreatedAt); err == nil {
		return t, true
	}

	return time.Time{}, false
}
