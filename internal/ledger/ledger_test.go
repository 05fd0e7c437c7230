package ledger_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amsaid/makhzan/internal/inventory"
	"github.com/amsaid/makhzan/internal/ledger"
)

func item(id, name, group string) inventory.Item {
	return inventory.Item{ID: id, Name: name, Unit: "قطعة", Group: group}
}

func line(itemID string, qty int64) inventory.Line {
	return inventory.Line{ItemID: itemID, Unit: "قطعة", Qty: inventory.QuantityFromInt(qty)}
}

func perm(typ inventory.Type, date string, lines ...inventory.Line) inventory.Permission {
	return inventory.Permission{
		ID:     string(typ) + "/" + date,
		Type:   typ,
		Store:  "المخزن الرئيسي",
		Date:   inventory.ParseDate(date),
		Posted: true,
		Lines:  lines,
	}
}

func TestBalances_SignRules(t *testing.T) {
	snap := &inventory.Snapshot{
		Items: []inventory.Item{item("a", "أسمنت", "خامات")},
		Permissions: []inventory.Permission{
			perm(inventory.TypeAddition, "2026-03-01", line("a", 10)),
			perm(inventory.TypeReturn, "2026-03-02", line("a", 5)),
			perm(inventory.TypeTransfer, "2026-03-03", line("a", 3)),
			perm(inventory.TypeDeduction, "2026-03-04", line("a", 2)),
			perm(inventory.TypeDisbursement, "2026-03-05", line("a", 1)),
		},
	}

	totals := ledger.Balances(snap, ledger.Filter{})

	require.Len(t, totals, 1)
	assert.Equal(t, "9", totals["a"].String())
}

func TestBalances_UnpostedIgnored(t *testing.T) {
	draft := perm(inventory.TypeDisbursement, "2026-03-02", line("a", 4))
	draft.Posted = false

	snap := &inventory.Snapshot{
		Items: []inventory.Item{item("a", "أسمنت", "")},
		Permissions: []inventory.Permission{
			perm(inventory.TypeAddition, "2026-03-01", line("a", 10)),
			draft,
		},
	}

	totals := ledger.Balances(snap, ledger.Filter{})
	assert.Equal(t, "10", totals["a"].String())
}

func TestBalances_UnknownTypeHasNoEffect(t *testing.T) {
	snap := &inventory.Snapshot{
		Items: []inventory.Item{item("a", "أسمنت", "")},
		Permissions: []inventory.Permission{
			perm(inventory.Type("جرد"), "2026-03-01", line("a", 7)),
		},
	}

	totals := ledger.Balances(snap, ledger.Filter{})

	require.Contains(t, totals, "a")
	assert.True(t, totals["a"].IsZero())
}

func TestBalances_DanglingReferenceKeepsItsKey(t *testing.T) {
	snap := &inventory.Snapshot{
		Permissions: []inventory.Permission{
			perm(inventory.TypeAddition, "2026-03-01", line("ghost", 4)),
		},
	}

	totals := ledger.Balances(snap, ledger.Filter{})

	require.Len(t, totals, 1)
	assert.Equal(t, "4", totals["ghost"].String())
}

func TestBalances_ZeroSeedsEveryItem(t *testing.T) {
	snap := &inventory.Snapshot{
		Items: []inventory.Item{item("a", "أسمنت", ""), item("b", "دريل", "")},
	}

	totals := ledger.Balances(snap, ledger.Filter{})

	require.Len(t, totals, 2)
	assert.True(t, totals["a"].IsZero())
	assert.True(t, totals["b"].IsZero())
}

func TestBalances_TypeFilter(t *testing.T) {
	snap := &inventory.Snapshot{
		Items: []inventory.Item{item("a", "أسمنت", "")},
		Permissions: []inventory.Permission{
			perm(inventory.TypeAddition, "2026-03-01", line("a", 10)),
			perm(inventory.TypeDisbursement, "2026-03-02", line("a", 4)),
		},
	}

	totals := ledger.Balances(snap, ledger.Filter{Type: inventory.TypeDisbursement})
	assert.Equal(t, "-4", totals["a"].String())
}

func TestBalances_DateRange(t *testing.T) {
	snap := &inventory.Snapshot{
		Items: []inventory.Item{item("a", "أسمنت", "")},
		Permissions: []inventory.Permission{
			perm(inventory.TypeAddition, "2026-03-01", line("a", 10)),
			perm(inventory.TypeAddition, "2026-03-15", line("a", 5)),
			perm(inventory.TypeAddition, "2026-03-31", line("a", 2)),
		},
	}

	tests := []struct {
		name   string
		filter ledger.Filter
		want   string
	}{
		{
			name: "NoRange",
			want: "17",
		},
		{
			name:   "FromIsInclusive",
			filter: ledger.Filter{From: inventory.ParseDate("2026-03-15")},
			want:   "7",
		},
		{
			name:   "ToIsInclusive",
			filter: ledger.Filter{To: inventory.ParseDate("2026-03-15")},
			want:   "15",
		},
		{
			name: "Window",
			filter: ledger.Filter{
				From: inventory.ParseDate("2026-03-10"),
				To:   inventory.ParseDate("2026-03-20"),
			},
			want: "5",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			totals := ledger.Balances(snap, tt.filter)
			assert.Equal(t, tt.want, totals["a"].String())
		})
	}
}

func TestBalances_UncomparableDates(t *testing.T) {
	snap := &inventory.Snapshot{
		Items: []inventory.Item{item("a", "أسمنت", "")},
		Permissions: []inventory.Permission{
			perm(inventory.TypeAddition, "2026-03-10", line("a", 4)),
			perm(inventory.TypeAddition, "نص غير مفهوم", line("a", 6)),
			perm(inventory.TypeAddition, "", line("a", 1)),
		},
	}

	from := ledger.Filter{From: inventory.ParseDate("2026-03-05")}

	t.Run("PermissiveKeepsThem", func(t *testing.T) {
		totals := ledger.Balances(snap, from)
		assert.Equal(t, "11", totals["a"].String())
	})

	t.Run("StrictDropsThem", func(t *testing.T) {
		strict := from
		strict.Strict = true

		totals := ledger.Balances(snap, strict)
		assert.Equal(t, "4", totals["a"].String())
	})
}

func TestBalances_ItemIDBeatsGroup(t *testing.T) {
	snap := &inventory.Snapshot{
		Items: []inventory.Item{
			item("a", "أسمنت أبيض", "خامات"),
			item("b", "أسمنت أسود", "خامات"),
		},
		Permissions: []inventory.Permission{
			perm(inventory.TypeAddition, "2026-03-01", line("a", 10), line("b", 3)),
		},
	}

	totals := ledger.Balances(snap, ledger.Filter{ItemID: "a", Group: "خامات"})

	require.Len(t, totals, 1)
	assert.Equal(t, "10", totals["a"].String())
}

func TestBalances_ItemIDFilterAlwaysAnswers(t *testing.T) {
	totals := ledger.Balances(&inventory.Snapshot{}, ledger.Filter{ItemID: "ghost"})

	require.Len(t, totals, 1)
	assert.True(t, totals["ghost"].IsZero())
}

func TestBalances_GroupFilter(t *testing.T) {
	snap := &inventory.Snapshot{
		Items: []inventory.Item{
			item("a", "أسمنت", "خامات"),
			item("b", "دريل", "عدد"),
			item("c", "جبس", "خامات"),
		},
		Permissions: []inventory.Permission{
			perm(inventory.TypeAddition, "2026-03-01", line("a", 10), line("b", 2), line("ghost", 5)),
		},
	}

	totals := ledger.Balances(snap, ledger.Filter{Group: "خامات"})

	// Group membership comes from the item list, so the dangling id and
	// the other group drop out while the zero-balance member stays.
	require.Len(t, totals, 2)
	assert.Equal(t, "10", totals["a"].String())
	assert.True(t, totals["c"].IsZero())
}

func TestBalances_InputUntouched(t *testing.T) {
	snap := &inventory.Snapshot{
		Items: []inventory.Item{item("a", "أسمنت", "خامات")},
		Permissions: []inventory.Permission{
			perm(inventory.TypeAddition, "2026-03-01", line("a", 10)),
			perm(inventory.TypeDisbursement, "2026-03-02", line("a", 4)),
		},
	}

	filter := ledger.Filter{From: inventory.ParseDate("2026-03-01"), Group: "خامات"}

	first := ledger.Balances(snap, filter)
	second := ledger.Balances(snap, filter)

	assert.Equal(t, first, second)
	assert.True(t, snap.Permissions[0].Posted)
	require.Len(t, snap.Permissions[0].Lines, 1)
	assert.Equal(t, "10", snap.Permissions[0].Lines[0].Qty.String())
}

func TestItemCard_RunningBalance(t *testing.T) {
	draft := perm(inventory.TypeDisbursement, "2026-03-20", line("a", 99))
	draft.Posted = false

	snap := &inventory.Snapshot{
		Items: []inventory.Item{item("a", "أسمنت", "")},
		Permissions: []inventory.Permission{
			perm(inventory.TypeAddition, "2026-03-01", line("a", 10)),
			perm(inventory.TypeDisbursement, "2026-03-10", line("a", 3)),
			draft,
		},
	}

	card := ledger.ItemCard(snap, "a")

	require.Len(t, card.Rows, 2)

	assert.Equal(t, "إضافة", card.Rows[0].Narrative)
	assert.Equal(t, "10", card.Rows[0].In.String())
	assert.Equal(t, "10", card.Rows[0].Balance.String())

	assert.Equal(t, "صرف", card.Rows[1].Narrative)
	assert.Equal(t, "3", card.Rows[1].Out.String())
	assert.Equal(t, "7", card.Rows[1].Balance.String())

	assert.Equal(t, "7", card.Balance.String())
}

func TestItemCard_OrdersByDate(t *testing.T) {
	snap := &inventory.Snapshot{
		Permissions: []inventory.Permission{
			perm(inventory.TypeDisbursement, "2026-03-20", line("a", 2)),
			perm(inventory.TypeAddition, "2026-03-05", line("a", 10)),
		},
	}

	card := ledger.ItemCard(snap, "a")

	require.Len(t, card.Rows, 2)
	assert.Equal(t, "10", card.Rows[0].In.String())
	assert.Equal(t, "10", card.Rows[0].Balance.String())
	assert.Equal(t, "8", card.Rows[1].Balance.String())
}

func TestItemCard_CreatedAtFallback(t *testing.T) {
	undated := perm(inventory.TypeDisbursement, "", line("a", 1))
	undated.CreatedAt = "2026-03-20T10:00:00Z"

	snap := &inventory.Snapshot{
		Permissions: []inventory.Permission{
			undated,
			perm(inventory.TypeAddition, "2026-03-05", line("a", 10)),
		},
	}

	card := ledger.ItemCard(snap, "a")

	require.Len(t, card.Rows, 2)
	assert.Equal(t, "10", card.Rows[0].In.String())
	assert.Equal(t, "1", card.Rows[1].Out.String())
	assert.Equal(t, "9", card.Balance.String())
}

func TestItemCard_UncomparableKeepContainerOrder(t *testing.T) {
	snap := &inventory.Snapshot{
		Permissions: []inventory.Permission{
			perm(inventory.TypeAddition, "تاريخ مجهول", line("a", 5)),
			perm(inventory.TypeDisbursement, "تاريخ آخر", line("a", 2)),
		},
	}

	card := ledger.ItemCard(snap, "a")

	require.Len(t, card.Rows, 2)
	assert.Equal(t, "5", card.Rows[0].In.String())
	assert.Equal(t, "3", card.Rows[1].Balance.String())
}

func TestItemCard_UnknownTypeCountsAsIssue(t *testing.T) {
	snap := &inventory.Snapshot{
		Items: []inventory.Item{item("a", "أسمنت", "")},
		Permissions: []inventory.Permission{
			perm(inventory.Type("جرد"), "2026-03-01", line("a", 4)),
		},
	}

	card := ledger.ItemCard(snap, "a")

	require.Len(t, card.Rows, 1)
	assert.Equal(t, "4", card.Rows[0].Out.String())
	assert.Equal(t, "-4", card.Balance.String())

	// Aggregation keeps ignoring the unknown type.
	totals := ledger.Balances(snap, ledger.Filter{ItemID: "a"})
	assert.True(t, totals["a"].IsZero())
}

func TestItemCard_MultiLinePermission(t *testing.T) {
	snap := &inventory.Snapshot{
		Permissions: []inventory.Permission{
			perm(inventory.TypeAddition, "2026-03-01",
				line("a", 3),
				line("b", 99),
				line("a", 4)),
		},
	}

	card := ledger.ItemCard(snap, "a")

	require.Len(t, card.Rows, 2)
	assert.Equal(t, "3", card.Rows[0].In.String())
	assert.Equal(t, "4", card.Rows[1].In.String())
	assert.Equal(t, "7", card.Balance.String())
}

func TestItemCard_MatchesBalances(t *testing.T) {
	snap := &inventory.Snapshot{
		Items: []inventory.Item{item("a", "أسمنت", "")},
		Permissions: []inventory.Permission{
			perm(inventory.TypeAddition, "2026-03-01", line("a", 10)),
			perm(inventory.TypeTransfer, "2026-03-02", line("a", 4)),
			perm(inventory.TypeReturn, "2026-03-03", line("a", 2)),
		},
	}

	card := ledger.ItemCard(snap, "a")
	totals := ledger.Balances(snap, ledger.Filter{ItemID: "a"})

	assert.True(t, card.Balance.Equal(totals["a"]))
	assert.Equal(t, "8", card.Balance.String())
}

func TestItemCard_NoMovements(t *testing.T) {
	card := ledger.ItemCard(&inventory.Snapshot{}, "a")

	require.NotNil(t, card.Rows)
	assert.Empty(t, card.Rows)
	assert.True(t, card.Balance.IsZero())
}
