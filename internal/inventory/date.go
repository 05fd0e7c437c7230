package inventory

import (
	"encoding/json"
	"strings"
	"time"
)

// dateLayouts are tried in order when parsing a document date. Snapshots
// carry dates typed by hand, so both dash and slash forms appear, plus
// full timestamps from older exports.
var dateLayouts = []string{
	time.DateOnly,
	time.RFC3339,
	"2006/01/02",
}

// Date is a calendar business date. The raw string is preserved exactly as
// entered; a value that fails to parse stays invalid rather than erroring,
// and invalid dates compare false against everything.
type Date struct {
	raw string
	t   time.Time
	ok  bool
}

// ParseDate never fails; unparseable input yields an invalid Date that
// still round-trips its raw string.
func ParseDate(s string) Date {
	d := Date{raw: s}
	if s == "" {
		return d
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			d.t = t
			d.ok = true

			return d
		}
	}

	return d
}

// DateOf builds a valid Date from a concrete time.
func DateOf(t time.Time) Date {
	return Date{raw: t.Format(time.DateOnly), t: t, ok: true}
}

// Today is the current calendar date.
func Today() Date {
	return DateOf(time.Now())
}

func (d Date) Raw() string { return d.raw }

func (d Date) Time() time.Time { return d.t }

func (d Date) Valid() bool { return d.ok }

func (d Date) IsEmpty() bool { return d.raw == "" }

// Before reports d < o. False whenever either side is invalid.
func (d Date) Before(o Date) bool {
	return d.ok && o.ok && d.t.Before(o.t)
}

// After reports d > o. False whenever either side is invalid.
func (d Date) After(o Date) bool {
	return d.ok && o.ok && d.t.After(o.t)
}

func (d Date) String() string { return d.raw }

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.raw)
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		// Hand-edited snapshots contain the odd non-string date; keep
		// the raw token and leave the date invalid.
		*d = ParseDate(strings.Trim(string(data), `"`))
		return nil
	}

	*d = ParseDate(s)

	return nil
}
