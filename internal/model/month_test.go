package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderMonths_FiscalOrder(t *testing.T) {
	t.Parallel()

	got := OrderMonths([]string{"January", "June", "May", "December", "June"})
	assert.Equal(t, []string{"May", "June", "December", "January"}, got)
}

func TestOrderMonths_DropsUnrecognized(t *testing.T) {
	t.Parallel()

	got := OrderMonths([]string{"Pivot", "April", "Sheet1"})
	assert.Equal(t, []string{"April"}, got)
	assert.Empty(t, OrderMonths(nil))
}

func TestMonthRank(t *testing.T) {
	t.Parallel()

	rank, ok := MonthRank("May")
	assert.True(t, ok)
	assert.Equal(t, 0, rank)

	rank, ok = MonthRank("April")
	assert.True(t, ok)
	assert.Equal(t, 11, rank)

	_, ok = MonthRank("may")
	assert.False(t, ok)
}

func TestNumber_Missing(t *testing.T) {
	t.Parallel()

	var n Number
	assert.True(t, n.Missing())
	assert.Equal(t, 7.0, n.Or(7))
	assert.Equal(t, "", n.String())

	n = NumberOf(2.5)
	assert.False(t, n.Missing())
	assert.Equal(t, "2.5", n.String())
}

func TestNumber_JSON(t *testing.T) {
	t.Parallel()

	b, err := Number{}.MarshalJSON()
	assert.NoError(t, err)
	assert.Equal(t, "null", string(b))

	b, err = NumberOf(12).MarshalJSON()
	assert.NoError(t, err)
	assert.Equal(t, "12", string(b))

	var n Number
	assert.NoError(t, n.UnmarshalJSON([]byte("3.5")))
	assert.Equal(t, NumberOf(3.5), n)
	assert.NoError(t, n.UnmarshalJSON([]byte("null")))
	assert.True(t, n.Missing())
}

func TestImportReport_Record(t *testing.T) {
	t.Parallel()

	var r ImportReport
	r.Record(SheetResult{SheetName: "May", Status: SheetImported, ImportedRows: 3, DroppedRows: 1})
	r.Record(SheetResult{SheetName: "Pivot", Status: SheetSkipped, Reason: "missing columns: Gain"})

	assert.Equal(t, 1, r.ImportedSheets)
	assert.Equal(t, 1, r.SkippedSheets)
	assert.Equal(t, 3, r.ImportedRows)
	assert.Equal(t, 1, r.DroppedRows)
	assert.Len(t, r.Sheets, 2)
}
