// Package testutil builds fixture workbooks for tests.
package testutil

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// Sheet one fixture sheet; the first row is the header
type Sheet struct {
	Name string
	Rows [][]any
}

// CaseHeader header of a fully populated NIPT case sheet
var CaseHeader = []any{"Sales", "NIPT Package", "Cost", "Price", "Gain", "TAT"}

// CaseRow builds a row matching CaseHeader
func CaseRow(sales, pkg string, cost, price, gain, tat any) []any {
	return []any{sales, pkg, cost, price, gain, tat}
}

// NewWorkbook builds an in-memory workbook with sheets in the given order
func NewWorkbook(t *testing.T, sheets ...Sheet) *excelize.File {
	t.Helper()

	f := excelize.NewFile()
	t.Cleanup(func() { _ = f.Close() })

	for i, s := range sheets {
		if i == 0 {
			require.NoError(t, f.SetSheetName("Sheet1", s.Name))
		} else {
			_, err := f.NewSheet(s.Name)
			require.NoError(t, err)
		}
		for r, row := range s.Rows {
			cell, err := excelize.CoordinatesToCellName(1, r+1)
			require.NoError(t, err)
			values := row
			require.NoError(t, f.SetSheetRow(s.Name, cell, &values))
		}
	}
	return f
}

// WriteWorkbook saves a fixture workbook under dir and returns its path
func WriteWorkbook(t *testing.T, dir, name string, sheets ...Sheet) string {
	t.Helper()

	f := NewWorkbook(t, sheets...)
	path := filepath.Join(dir, name)
	require.NoError(t, f.SaveAs(path))
	return path
}
