package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"niptreport/internal/model"
	"niptreport/internal/testutil"
)

func TestSheetParser_ParseSheet(t *testing.T) {
	t.Parallel()

	f := testutil.NewWorkbook(t, testutil.Sheet{
		Name: "June 2025",
		Rows: [][]any{
			testutil.CaseHeader,
			testutil.CaseRow("Anan", "Panorama", 4000, 6500, 2500, 5),
			testutil.CaseRow("", "NIFTY", 3000, 4200, "pending", "n/a"),
			testutil.CaseRow("Ploy", "", 3000, 4200, 1200, 4),
		},
	})

	records, res, err := NewSheetParser(f).ParseSheet("June 2025")
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, model.SheetImported, res.Status)
	assert.Equal(t, 2, res.ImportedRows)
	assert.Equal(t, 1, res.DroppedRows)
	assert.Equal(t, "June", res.Month)
	assert.True(t, res.MonthRecognized)

	first := records[0]
	assert.Equal(t, "June", first.Month)
	assert.Equal(t, "Anan", first.Sales)
	assert.Equal(t, "Panorama", first.NIPTPackage)
	assert.Equal(t, model.NumberOf(2500), first.Gain)
	assert.Equal(t, model.NumberOf(5), first.TAT)
	assert.Equal(t, model.NumberOf(4000), first.Cost)
	assert.Equal(t, model.NumberOf(6500), first.Price)
	assert.Equal(t, "June 2025", first.SourceSheet)
	assert.Equal(t, 2, first.RowNo)

	second := records[1]
	assert.Equal(t, model.UnknownSales, second.Sales)
	assert.True(t, second.Gain.Missing())
	assert.True(t, second.TAT.Missing())
	assert.Equal(t, 3, second.RowNo)
}

func TestSheetParser_OptionalColumnsAbsent(t *testing.T) {
	t.Parallel()

	f := testutil.NewWorkbook(t, testutil.Sheet{
		Name: "May",
		Rows: [][]any{
			{"TAT", "Gain", "NIPT Package", "Sales"},
			{3, 900, "Basic"},
		},
	})

	records, res, err := NewSheetParser(f).ParseSheet("May")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, model.SheetImported, res.Status)

	r := records[0]
	assert.Equal(t, model.UnknownSales, r.Sales)
	assert.Equal(t, "Basic", r.NIPTPackage)
	assert.Equal(t, model.NumberOf(900), r.Gain)
	assert.Equal(t, model.NumberOf(3), r.TAT)
	assert.True(t, r.Cost.Missing())
	assert.True(t, r.Price.Missing())
}

func TestSheetParser_WhitespacePackageIsContent(t *testing.T) {
	t.Parallel()

	f := testutil.NewWorkbook(t, testutil.Sheet{
		Name: "July",
		Rows: [][]any{
			testutil.CaseHeader,
			testutil.CaseRow("", " ", "", "", "", ""),
			testutil.CaseRow("Anan", " ", 100, 200, 10, 2),
			testutil.CaseRow("", "", "", "", "", ""),
		},
	})

	records, res, err := NewSheetParser(f).ParseSheet("July")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, 2, res.ImportedRows)
	assert.Equal(t, 0, res.DroppedRows)

	assert.Equal(t, " ", records[0].NIPTPackage)
	assert.Equal(t, model.UnknownSales, records[0].Sales)
	assert.True(t, records[0].Gain.Missing())
	assert.Equal(t, 2, records[0].RowNo)

	assert.Equal(t, " ", records[1].NIPTPackage)
	assert.Equal(t, model.NumberOf(10), records[1].Gain)
}

func TestSheetParser_SkipsNonQualifyingSheet(t *testing.T) {
	t.Parallel()

	f := testutil.NewWorkbook(t, testutil.Sheet{
		Name: "Pivot",
		Rows: [][]any{
			{"Month", "Gain"},
			{"May", 1000},
		},
	})

	records, res, err := NewSheetParser(f).ParseSheet("Pivot")
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.Equal(t, model.SheetSkipped, res.Status)
	assert.Equal(t, "missing columns: Sales, NIPT Package, TAT", res.Reason)
}

func TestSheetParser_MissingSheet(t *testing.T) {
	t.Parallel()

	f := testutil.NewWorkbook(t, testutil.Sheet{Name: "May", Rows: [][]any{testutil.CaseHeader}})

	_, res, err := NewSheetParser(f).ParseSheet("Nope")
	require.Error(t, err)
	assert.Equal(t, model.SheetError, res.Status)
}
