package parser

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"niptreport/internal/model"
)

// SheetParser reads NIPT case sheets
type SheetParser struct {
	file       *excelize.File
	recognizer *SheetRecognizer
}

// NewSheetParser creates a parser over an opened workbook
func NewSheetParser(file *excelize.File) *SheetParser {
	return &SheetParser{
		file:       file,
		recognizer: NewSheetRecognizer(),
	}
}

// ParseSheet reads one sheet. Sheets failing the schema check come back with a
// skipped result and no records; only an unreadable sheet returns an error.
func (p *SheetParser) ParseSheet(sheetName string) ([]model.Record, model.SheetResult, error) {
	start := time.Now()
	result := model.SheetResult{SheetName: sheetName}

	rows, err := p.file.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		result.Status = model.SheetError
		result.Reason = err.Error()
		result.Duration = time.Since(start)
		return nil, result, fmt.Errorf("failed to read sheet %q: %w", sheetName, err)
	}

	if len(rows) == 0 {
		result.Status = model.SheetSkipped
		result.Reason = "empty sheet"
		result.Duration = time.Since(start)
		return nil, result, nil
	}

	// header row
	headers := rows[0]
	recognition := p.recognizer.Recognize(sheetName, headers)
	result.Month = recognition.Month
	result.MonthRecognized = recognition.MonthRecognized
	if !recognition.Qualifies() {
		result.Status = model.SheetSkipped
		result.Reason = recognition.Schema.Reason
		result.Duration = time.Since(start)
		return nil, result, nil
	}

	columns := ColumnIndex(headers)

	records := make([]model.Record, 0, len(rows)-1)
	for rowIdx := 1; rowIdx < len(rows); rowIdx++ {
		row := rows[rowIdx]
		if isBlankRow(row) {
			continue
		}
		record, ok := p.parseRow(row, columns, recognition.Month, sheetName, rowIdx+1)
		if !ok {
			result.DroppedRows++
			continue
		}
		records = append(records, record)
	}

	result.Status = model.SheetImported
	result.ImportedRows = len(records)
	result.Duration = time.Since(start)
	return records, result, nil
}

// parseRow builds a record; rows without an NIPT Package are rejected
func (p *SheetParser) parseRow(row []string, columns map[string]int, month, sheetName string, rowNo int) (model.Record, bool) {
	pkg, _ := cellValue(row, columns, model.ColumnNIPTPackage)
	if pkg == "" {
		return model.Record{}, false
	}

	sales, _ := cellValue(row, columns, model.ColumnSales)
	if sales == "" {
		sales = model.UnknownSales
	}

	return model.Record{
		Month:       month,
		Sales:       sales,
		NIPTPackage: pkg,
		Gain:        numberCell(row, columns, model.ColumnGain),
		TAT:         numberCell(row, columns, model.ColumnTAT),
		Cost:        numberCell(row, columns, model.ColumnCost),
		Price:       numberCell(row, columns, model.ColumnPrice),
		SourceSheet: sheetName,
		RowNo:       rowNo,
	}, true
}

func numberCell(row []string, columns map[string]int, column string) model.Number {
	v, ok := cellValue(row, columns, column)
	if !ok {
		return model.Number{}
	}
	return ParseNumber(v)
}
