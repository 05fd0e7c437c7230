package report_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/amsaid/makhzan/internal/inventory"
	"github.com/amsaid/makhzan/internal/ledger"
	"github.com/amsaid/makhzan/internal/report"
)

// staticRepo serves a fixed snapshot.
type staticRepo struct {
	snap *inventory.Snapshot
}

func (r staticRepo) Snapshot() *inventory.Snapshot { return r.snap }

func qty(n int64) inventory.Quantity { return inventory.QuantityFromInt(n) }

func TestService_Stock_RowOrder(t *testing.T) {
	snap := &inventory.Snapshot{
		Items: []inventory.Item{
			{ID: "b", Name: "دريل", Unit: "قطعة", Group: "عدد"},
			{ID: "a", Name: "أسمنت", Unit: "شيكارة", Group: "خامات"},
		},
		Permissions: []inventory.Permission{{
			Posted: true,
			Type:   inventory.TypeAddition,
			Lines: []inventory.Line{
				{ItemID: "zz", Qty: qty(1)},
				{ItemID: "aa", Qty: qty(2)},
				{ItemID: "b", Qty: qty(5)},
			},
		}},
	}

	svc := report.NewService(staticRepo{snap}, false)
	rows := svc.Stock(report.StockParams{})

	require.Len(t, rows, 4)

	// Current items keep their container order.
	assert.Equal(t, "b", rows[0].ItemID)
	assert.Equal(t, "دريل", rows[0].Name)
	assert.Equal(t, "5", rows[0].Balance.String())

	assert.Equal(t, "a", rows[1].ItemID)
	assert.True(t, rows[1].Balance.IsZero())

	// Dangling ids follow in lexical order with no metadata.
	assert.Equal(t, "aa", rows[2].ItemID)
	assert.Empty(t, rows[2].Name)
	assert.Equal(t, "2", rows[2].Balance.String())

	assert.Equal(t, "zz", rows[3].ItemID)
	assert.Equal(t, "1", rows[3].Balance.String())
}

func TestService_Stock_GroupFilter(t *testing.T) {
	snap := &inventory.Snapshot{
		Items: []inventory.Item{
			{ID: "a", Name: "أسمنت", Group: "خامات"},
			{ID: "b", Name: "دريل", Group: "عدد"},
		},
		Permissions: []inventory.Permission{{
			Posted: true,
			Type:   inventory.TypeAddition,
			Lines:  []inventory.Line{{ItemID: "a", Qty: qty(3)}, {ItemID: "ghost", Qty: qty(9)}},
		}},
	}

	svc := report.NewService(staticRepo{snap}, false)
	rows := svc.Stock(report.StockParams{Group: "خامات"})

	require.Len(t, rows, 1)
	assert.Equal(t, "a", rows[0].ItemID)
	assert.Equal(t, "3", rows[0].Balance.String())
}

func TestService_Stock_ItemFilterKeepsMetadata(t *testing.T) {
	snap := &inventory.Snapshot{
		Items: []inventory.Item{
			{ID: "a", Name: "أسمنت", Unit: "شيكارة"},
			{ID: "b", Name: "دريل", Unit: "قطعة"},
		},
		Permissions: []inventory.Permission{{
			Posted: true,
			Type:   inventory.TypeAddition,
			Lines:  []inventory.Line{{ItemID: "b", Qty: qty(5)}},
		}},
	}

	svc := report.NewService(staticRepo{snap}, false)
	rows := svc.Stock(report.StockParams{ItemID: "b"})

	require.Len(t, rows, 1)
	assert.Equal(t, "دريل", rows[0].Name)
	assert.Equal(t, "5", rows[0].Balance.String())
}

func TestService_Stock_StrictDates(t *testing.T) {
	snap := &inventory.Snapshot{
		Items: []inventory.Item{{ID: "a", Name: "أسمنت"}},
		Permissions: []inventory.Permission{
			{
				Posted: true,
				Type:   inventory.TypeAddition,
				Date:   inventory.ParseDate("2026-03-10"),
				Lines:  []inventory.Line{{ItemID: "a", Qty: qty(4)}},
			},
			{
				Posted: true,
				Type:   inventory.TypeAddition,
				Date:   inventory.ParseDate("بدون تاريخ"),
				Lines:  []inventory.Line{{ItemID: "a", Qty: qty(6)}},
			},
		},
	}

	params := report.StockParams{From: inventory.ParseDate("2026-03-05")}

	permissive := report.NewService(staticRepo{snap}, false)
	rows := permissive.Stock(params)
	require.Len(t, rows, 1)
	assert.Equal(t, "10", rows[0].Balance.String())

	strict := report.NewService(staticRepo{snap}, true)
	rows = strict.Stock(params)
	require.Len(t, rows, 1)
	assert.Equal(t, "4", rows[0].Balance.String())
}

func TestService_Card(t *testing.T) {
	snap := &inventory.Snapshot{
		Items: []inventory.Item{{ID: "i1", Name: "أسمنت", Unit: "شيكارة"}},
		Permissions: []inventory.Permission{{
			Posted: true,
			Type:   inventory.TypeAddition,
			Number: "14",
			Lines:  []inventory.Line{{ItemID: "i1", Qty: qty(10)}},
		}},
	}

	svc := report.NewService(staticRepo{snap}, false)

	item, card := svc.Card("i1")
	assert.Equal(t, "أسمنت", item.Name)
	require.Len(t, card.Rows, 1)
	assert.Equal(t, "10", card.Balance.String())
}

func TestService_Card_RemovedItem(t *testing.T) {
	snap := &inventory.Snapshot{
		Permissions: []inventory.Permission{{
			Posted: true,
			Type:   inventory.TypeDisbursement,
			Lines:  []inventory.Line{{ItemID: "gone", Qty: qty(2)}},
		}},
	}

	svc := report.NewService(staticRepo{snap}, false)

	item, card := svc.Card("gone")

	// The record is gone but its history still renders.
	assert.Empty(t, item.ID)
	require.Len(t, card.Rows, 1)
	assert.Equal(t, "-2", card.Balance.String())
}

func TestWriteStockCSV(t *testing.T) {
	rows := []report.StockRow{
		{ItemID: "i1", Name: "أسمنت", Unit: "شيكارة", Group: "خامات", Type: "مستهلك", Balance: qty(9)},
		{ItemID: "ghost", Balance: qty(-2)},
	}

	var buf bytes.Buffer
	require.NoError(t, report.WriteStockCSV(&buf, rows))

	bom := []byte{0xEF, 0xBB, 0xBF}
	require.True(t, bytes.HasPrefix(buf.Bytes(), bom))

	want := "الصنف,الوحدة,المجموعة,النوع,الرصيد\n" +
		"أسمنت,شيكارة,خامات,مستهلك,9\n" +
		"ghost,,,,-2\n"
	assert.Equal(t, want, string(bytes.TrimPrefix(buf.Bytes(), bom)))
}

func TestWriteCardCSV(t *testing.T) {
	card := ledger.Card{
		Rows: []ledger.Row{{
			Narrative: "إضافة",
			In:        qty(10),
			Balance:   qty(10),
			Number:    "14",
			Date:      inventory.ParseDate("2026-03-01"),
		}},
		Balance: qty(10),
	}

	var buf bytes.Buffer
	require.NoError(t, report.WriteCardCSV(&buf, card))

	bom := []byte{0xEF, 0xBB, 0xBF}
	want := "البيان,وارد,منصرف,الرصيد,رقم الإذن,التاريخ\n" +
		"إضافة,10,0,10,14,2026-03-01\n"
	assert.Equal(t, want, string(bytes.TrimPrefix(buf.Bytes(), bom)))
}

func TestWriteStockXLSX(t *testing.T) {
	rows := []report.StockRow{
		{ItemID: "i1", Name: "أسمنت", Unit: "شيكارة", Group: "خامات", Type: "مستهلك", Balance: qty(9)},
	}

	var buf bytes.Buffer
	require.NoError(t, report.WriteStockXLSX(&buf, rows))

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	got, err := f.GetRows("Sheet1")
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, []string{"الصنف", "الوحدة", "المجموعة", "النوع", "الرصيد"}, got[0])
	assert.Equal(t, []string{"أسمنت", "شيكارة", "خامات", "مستهلك", "9"}, got[1])
}

func TestWriteCardXLSX(t *testing.T) {
	card := ledger.Card{
		Rows: []ledger.Row{{
			Narrative: "صرف",
			Out:       qty(3),
			Balance:   qty(-3),
			Number:    "15",
			Date:      inventory.ParseDate("2026-03-02"),
		}},
		Balance: qty(-3),
	}

	var buf bytes.Buffer
	require.NoError(t, report.WriteCardXLSX(&buf, card))

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	got, err := f.GetRows("Sheet1")
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, []string{"البيان", "وارد", "منصرف", "الرصيد", "رقم الإذن", "التاريخ"}, got[0])
	assert.Equal(t, []string{"صرف", "0", "3", "-3", "15", "2026-03-02"}, got[1])
}
