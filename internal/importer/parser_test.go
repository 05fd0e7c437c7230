package importer_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amsaid/makhzan/internal/importer"
)

func TestParser_Parse(t *testing.T) {
	input := `name,unit,type,group,initial_qty
أسمنت بورتلاندي,شيكارة,مستهلك,خامات,10
دريل هيلتي,قطعة,معدة,عدد يدوية,0
`

	p := importer.NewParser()
	rows, err := p.Parse(strings.NewReader(input))
	require.NoError(t, err)

	require.Len(t, rows, 2)

	assert.Equal(t, "أسمنت بورتلاندي", rows[0].Name)
	assert.Equal(t, "شيكارة", rows[0].Unit)
	assert.Equal(t, "مستهلك", rows[0].Type)
	assert.Equal(t, "خامات", rows[0].Group)
	assert.Equal(t, "10", rows[0].InitialQty.String())

	assert.Equal(t, "دريل هيلتي", rows[1].Name)
	assert.True(t, rows[1].InitialQty.IsZero())
}

func TestParser_Parse_SemicolonDelimiter(t *testing.T) {
	input := `name;unit;initial_qty
أسمنت;شيكارة;12,5
`

	p := importer.NewParser()
	rows, err := p.Parse(strings.NewReader(input))
	require.NoError(t, err)

	require.Len(t, rows, 1)
	assert.Equal(t, "أسمنت", rows[0].Name)
	assert.Equal(t, "شيكارة", rows[0].Unit)

	// Semicolon sheets carry decimal commas.
	assert.Equal(t, "12.5", rows[0].InitialQty.String())
}

func TestParser_Parse_HeaderAfterPreamble(t *testing.T) {
	input := `قائمة الأصناف,,
,تم التصدير 2026/03/01,
name,unit,initial_qty
أسمنت,شيكارة,12.5
`

	p := importer.NewParser()
	rows, err := p.Parse(strings.NewReader(input))
	require.NoError(t, err)

	require.Len(t, rows, 1)
	assert.Equal(t, "أسمنت", rows[0].Name)
	assert.Equal(t, "12.5", rows[0].InitialQty.String())
}

func TestParser_Parse_CaseInsensitiveHeader(t *testing.T) {
	input := `Name,UNIT,Type
أسمنت,شيكارة,
دريل,قطعة,معدة
`

	p := importer.NewParser()
	rows, err := p.Parse(strings.NewReader(input))
	require.NoError(t, err)

	require.Len(t, rows, 2)

	// A blank type cell falls back to the consumable default.
	assert.Equal(t, importer.DefaultItemType, rows[0].Type)
	assert.Equal(t, "معدة", rows[1].Type)
}

func TestParser_Parse_SkipsBlankNames(t *testing.T) {
	input := `name,unit
أسمنت,شيكارة
,قطعة
  ,كيلو
دريل,قطعة
`

	p := importer.NewParser()
	rows, err := p.Parse(strings.NewReader(input))
	require.NoError(t, err)

	require.Len(t, rows, 2)
	assert.Equal(t, "أسمنت", rows[0].Name)
	assert.Equal(t, "دريل", rows[1].Name)
}

func TestParser_Parse_JunkQuantity(t *testing.T) {
	input := `name,unit,initial_qty
أسمنت,شيكارة,كثير جدا
`

	p := importer.NewParser()
	rows, err := p.Parse(strings.NewReader(input))
	require.NoError(t, err)

	require.Len(t, rows, 1)
	assert.True(t, rows[0].InitialQty.IsZero())
}

func TestParser_Parse_NoHeader(t *testing.T) {
	input := `الصنف,الوحدة
أسمنت,شيكارة
`

	p := importer.NewParser()
	_, err := p.Parse(strings.NewReader(input))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no header row")
}
