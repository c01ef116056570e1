package parser

import (
	"fmt"
	"strings"

	"niptreport/internal/model"
)

// SheetRecognizer decides whether a sheet holds NIPT case rows and which month it covers
type SheetRecognizer struct {
	required []string
}

// NewSheetRecognizer creates a recognizer for model.RequiredColumns
func NewSheetRecognizer() *SheetRecognizer {
	return &SheetRecognizer{required: model.RequiredColumns}
}

// Recognize inspects the sheet name and header row
func (r *SheetRecognizer) Recognize(sheetName string, columnNames []string) SheetRecognitionResult {
	month, recognized := DetectMonth(sheetName)
	return SheetRecognitionResult{
		SheetName:       sheetName,
		Month:           month,
		MonthRecognized: recognized,
		Schema:          CheckSchema(columnNames, r.required),
	}
}

// CheckSchema matches header cells against the required column names.
// Names must match exactly; summary and pivot sheets fail here.
func CheckSchema(columnNames []string, required []string) model.SchemaCheck {
	have := make(map[string]bool, len(columnNames))
	for _, col := range columnNames {
		have[col] = true
	}

	var missing []string
	for _, col := range required {
		if !have[col] {
			missing = append(missing, col)
		}
	}

	if len(missing) > 0 {
		return model.SchemaCheck{
			OK:      false,
			Missing: missing,
			Reason:  fmt.Sprintf("missing columns: %s", strings.Join(missing, ", ")),
		}
	}
	return model.SchemaCheck{OK: true}
}
