package inventory

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Quantity is a decimal stock quantity. Snapshots written over the years
// carry qty values of every JSON shape (numbers, numeric strings, null,
// junk); anything that does not parse counts as zero so one bad line can
// never poison a whole snapshot.
type Quantity struct {
	d decimal.Decimal
}

func NewQuantity(d decimal.Decimal) Quantity {
	return Quantity{d: d}
}

func QuantityFromInt(n int64) Quantity {
	return Quantity{d: decimal.NewFromInt(n)}
}

// ParseQuantity converts free-form input to a Quantity. Unparseable input
// is zero, never an error.
func ParseQuantity(s string) Quantity {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return Quantity{}
	}

	return Quantity{d: d}
}

func (q Quantity) Decimal() decimal.Decimal { return q.d }

func (q Quantity) IsZero() bool { return q.d.IsZero() }

func (q Quantity) IsPositive() bool { return q.d.IsPositive() }

func (q Quantity) Add(o Quantity) Quantity { return Quantity{d: q.d.Add(o.d)} }

func (q Quantity) Sub(o Quantity) Quantity { return Quantity{d: q.d.Sub(o.d)} }

func (q Quantity) Equal(o Quantity) bool { return q.d.Equal(o.d) }

func (q Quantity) String() string { return q.d.String() }

// MarshalJSON writes the quantity as a bare JSON number.
func (q Quantity) MarshalJSON() ([]byte, error) {
	return []byte(q.d.String()), nil
}

// UnmarshalJSON accepts numbers and quoted numbers; everything else
// decodes to zero.
func (q *Quantity) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	s = strings.Trim(s, `"`)

	if s == "" || s == "null" {
		q.d = decimal.Decimal{}
		return nil
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		q.d = decimal.Decimal{}
		return nil
	}

	q.d = d

	return nil
}
