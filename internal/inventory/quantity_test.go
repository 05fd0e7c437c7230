package inventory_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amsaid/makhzan/internal/inventory"
)

func TestParseQuantity(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "Integer", input: "10", want: "10"},
		{name: "Decimal", input: "2.5", want: "2.5"},
		{name: "Padded", input: " 7 ", want: "7"},
		{name: "Negative", input: "-3", want: "-3"},
		{name: "Junk", input: "abc", want: "0"},
		{name: "Empty", input: "", want: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, inventory.ParseQuantity(tt.input).String())
		})
	}
}

func TestQuantity_UnmarshalJSON(t *testing.T) {
	type carrier struct {
		Qty inventory.Quantity `json:"qty"`
	}

	tests := []struct {
		name string
		json string
		want string
	}{
		{name: "Number", json: `{"qty": 12}`, want: "12"},
		{name: "Fraction", json: `{"qty": 0.25}`, want: "0.25"},
		{name: "QuotedNumber", json: `{"qty": "8"}`, want: "8"},
		{name: "Null", json: `{"qty": null}`, want: "0"},
		{name: "Junk", json: `{"qty": "a lot"}`, want: "0"},
		{name: "Absent", json: `{}`, want: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c carrier
			require.NoError(t, json.Unmarshal([]byte(tt.json), &c))
			assert.Equal(t, tt.want, c.Qty.String())
		})
	}
}

func TestQuantity_MarshalJSON(t *testing.T) {
	data, err := json.Marshal(struct {
		Qty inventory.Quantity `json:"qty"`
	}{Qty: inventory.ParseQuantity("7.5")})
	require.NoError(t, err)

	// Quantities serialize as bare numbers, not strings.
	assert.JSONEq(t, `{"qty": 7.5}`, string(data))
}

func TestQuantity_Arithmetic(t *testing.T) {
	// Decimal math stays exact where float math would drift.
	sum := inventory.ParseQuantity("0.1").Add(inventory.ParseQuantity("0.2"))
	assert.Equal(t, "0.3", sum.String())

	diff := inventory.QuantityFromInt(10).Sub(inventory.ParseQuantity("2.5"))
	assert.Equal(t, "7.5", diff.String())
	assert.True(t, diff.IsPositive())
	assert.False(t, diff.IsZero())

	var zero inventory.Quantity
	assert.True(t, zero.IsZero())
	assert.False(t, zero.IsPositive())
}
