package parser

import "niptreport/internal/model"

// SheetRecognitionResult month tag plus the required-column check for one sheet
type SheetRecognitionResult struct {
	SheetName       string            `json:"sheetName"`
	Month           string            `json:"month"`           // detected label or raw sheet name
	MonthRecognized bool              `json:"monthRecognized"` // false when Month is the sheet name fallback
	Schema          model.SchemaCheck `json:"schema"`
}

// Qualifies reports whether the sheet carries every required column
func (r SheetRecognitionResult) Qualifies() bool {
	return r.Schema.OK
}
