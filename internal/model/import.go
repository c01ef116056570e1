package model

import "time"

// SheetStatus outcome of one sheet during a load
type SheetStatus string

const (
	SheetImported SheetStatus = "imported"
	SheetSkipped  SheetStatus = "skipped"
	SheetError    SheetStatus = "error"
)

// SheetResult per-sheet load result
type SheetResult struct {
	SheetName       string        `json:"sheetName"`
	Month           string        `json:"month"`
	MonthRecognized bool          `json:"monthRecognized"`
	Status          SheetStatus   `json:"status"`
	Reason          string        `json:"reason,omitempty"`
	ImportedRows    int           `json:"importedRows"`
	DroppedRows     int           `json:"droppedRows"` // rows without NIPT Package
	Duration        time.Duration `json:"duration"`
}

// ImportReport workbook load report
type ImportReport struct {
	Filename       string        `json:"filename"`
	TotalSheets    int           `json:"totalSheets"`
	ImportedSheets int           `json:"importedSheets"`
	SkippedSheets  int           `json:"skippedSheets"`
	ImportedRows   int           `json:"importedRows"`
	DroppedRows    int           `json:"droppedRows"`
	Duration       time.Duration `json:"duration"`
	Sheets         []SheetResult `json:"sheets"`
}

// Record appends a sheet result and updates the totals
func (r *ImportReport) Record(res SheetResult) {
	r.Sheets = append(r.Sheets, res)
	switch res.Status {
	case SheetImported:
		r.ImportedSheets++
	default:
		r.SkippedSheets++
	}
	r.ImportedRows += res.ImportedRows
	r.DroppedRows += res.DroppedRows
}
