package inventory_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amsaid/makhzan/internal/inventory"
)

func TestType_Sign(t *testing.T) {
	assert.Equal(t, 1, inventory.TypeAddition.Sign())
	assert.Equal(t, 1, inventory.TypeReturn.Sign())
	assert.Equal(t, -1, inventory.TypeTransfer.Sign())
	assert.Equal(t, -1, inventory.TypeDeduction.Sign())
	assert.Equal(t, -1, inventory.TypeDisbursement.Sign())
	assert.Equal(t, 0, inventory.Type("مجهول").Sign())
}

func TestType_Inbound(t *testing.T) {
	assert.True(t, inventory.TypeAddition.Inbound())
	assert.True(t, inventory.TypeReturn.Inbound())
	assert.False(t, inventory.TypeTransfer.Inbound())
	assert.False(t, inventory.TypeDisbursement.Inbound())
	assert.False(t, inventory.Type("مجهول").Inbound())
}

func TestPermission_EffectiveTime(t *testing.T) {
	// An entered date wins over the creation timestamp.
	p := inventory.Permission{
		Date:      inventory.ParseDate("2026-02-01"),
		CreatedAt: "2026-01-01T00:00:00Z",
	}
	tm, ok := p.EffectiveTime()
	require.True(t, ok)
	assert.Equal(t, "2026-02-01", tm.Format(time.DateOnly))

	// No date entered: the creation timestamp orders the document.
	p = inventory.Permission{CreatedAt: "2026-01-05T08:00:00Z"}
	tm, ok = p.EffectiveTime()
	require.True(t, ok)
	assert.Equal(t, "2026-01-05", tm.Format(time.DateOnly))

	// An unparseable date blocks the fallback; the document is
	// incomparable even though createdAt is fine.
	p = inventory.Permission{
		Date:      inventory.ParseDate("whenever"),
		CreatedAt: "2026-01-05T08:00:00Z",
	}
	_, ok = p.EffectiveTime()
	assert.False(t, ok)

	p = inventory.Permission{}
	_, ok = p.EffectiveTime()
	assert.False(t, ok)
}

func TestSeed(t *testing.T) {
	snap := inventory.Seed()

	assert.Len(t, snap.Items, 2)
	assert.Len(t, snap.Warehouses, 2)
	assert.Empty(t, snap.Permissions)

	for _, it := range snap.Items {
		assert.NotEmpty(t, it.ID)
		assert.NotEmpty(t, it.Name)
		assert.NotEmpty(t, it.Unit)
	}
}

func TestSnapshot_Clone(t *testing.T) {
	snap := inventory.Seed()
	snap.Permissions = append(snap.Permissions, inventory.Permission{
		ID:    "p1",
		Lines: []inventory.Line{{ItemID: "a", Qty: inventory.QuantityFromInt(5)}},
	})

	clone := snap.Clone()
	clone.Items[0].Name = "changed"
	clone.Permissions[0].Lines[0].ItemID = "b"

	assert.NotEqual(t, "changed", snap.Items[0].Name)
	assert.Equal(t, "a", snap.Permissions[0].Lines[0].ItemID)
}

func TestSnapshot_Normalize(t *testing.T) {
	var snap inventory.Snapshot
	snap.Normalize()

	data, err := json.Marshal(&snap)
	require.NoError(t, err)

	// All three containers marshal as arrays even when empty.
	assert.JSONEq(t, `{"items": [], "warehouses": [], "permissions": []}`, string(data))
}
