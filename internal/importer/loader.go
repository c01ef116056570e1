package importer

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"niptreport/internal/log"
	"niptreport/internal/model"
	"niptreport/internal/parser"
)

var (
	// ErrSourceNotFound the workbook is absent (or cannot be stat'ed)
	ErrSourceNotFound = errors.New("source file not found")
	// ErrSourceUnreadable the workbook exists but cannot be opened as xlsx
	ErrSourceUnreadable = errors.New("source file unreadable")
)

// Loader reads a workbook into a normalized table
type Loader struct {
	logger *log.Logger
}

// NewLoader creates a loader; a nil logger discards output
func NewLoader(logger *log.Logger) *Loader {
	return &Loader{logger: log.OrDiscard(logger).WithComponent(log.ComponentImporter)}
}

// Load reads the workbook at path without caching
func Load(path string) (*model.Table, error) {
	return NewLoader(nil).Load(path)
}

// Load checks existence and parses the workbook.
// A table without records is returned (not an error) when no sheet qualifies.
func (l *Loader) Load(path string) (*model.Table, error) {
	info, err := statSource(path)
	if err != nil {
		return nil, err
	}
	return l.LoadFile(path, info)
}

// LoadFile parses a workbook whose FileInfo is already known
func (l *Loader) LoadFile(path string, info os.FileInfo) (*model.Table, error) {
	start := time.Now()

	file, err := excelize.OpenFile(path)
	if err != nil {
		l.logger.Error("open workbook failed", log.FieldFile, path, log.FieldError, err)
		return nil, fmt.Errorf("%w: %v", ErrSourceUnreadable, err)
	}
	defer file.Close()

	report := &model.ImportReport{Filename: filepath.Base(path)}
	sheetList := file.GetSheetList()
	report.TotalSheets = len(sheetList)

	sheetParser := parser.NewSheetParser(file)
	var records []model.Record
	for _, sheetName := range sheetList {
		rows, result, err := sheetParser.ParseSheet(sheetName)
		if err != nil {
			l.logger.Warn("sheet read failed", log.FieldSheet, sheetName, log.FieldError, err)
		}
		report.Record(result)
		l.logSheet(result)
		records = append(records, rows...)
	}

	labels := make([]string, 0, len(records))
	for _, r := range records {
		labels = append(labels, r.Month)
	}

	report.Duration = time.Since(start)
	table := &model.Table{
		LoadID: uuid.NewString(),
		Source: model.SourceInfo{
			Path:    path,
			Size:    info.Size(),
			ModTime: info.ModTime(),
		},
		LoadedAt: time.Now(),
		Records:  records,
		Months:   model.OrderMonths(labels),
		Report:   report,
	}

	l.logger.Info("workbook loaded",
		log.FieldFile, report.Filename,
		log.FieldLoadID, table.LoadID,
		"sheets", report.TotalSheets,
		"imported_sheets", report.ImportedSheets,
		log.FieldRows, report.ImportedRows,
		log.FieldDropped, report.DroppedRows,
		"months", table.Months,
		log.FieldDuration, report.Duration.Milliseconds(),
	)
	return table, nil
}

func (l *Loader) logSheet(res model.SheetResult) {
	switch res.Status {
	case model.SheetImported:
		if !res.MonthRecognized {
			// rows keep the sheet name as month but fall outside the month axis
			l.logger.Warn("sheet month not recognized", log.FieldSheet, res.SheetName, log.FieldRows, res.ImportedRows)
			return
		}
		l.logger.Debug("sheet imported", log.FieldSheet, res.SheetName, log.FieldMonth, res.Month,
			log.FieldRows, res.ImportedRows, log.FieldDropped, res.DroppedRows)
	case model.SheetSkipped:
		l.logger.Debug("sheet skipped", log.FieldSheet, res.SheetName, "reason", res.Reason)
	}
}

// statSource treats every stat failure as absence; transient I/O errors are not distinguished
func statSource(path string) (os.FileInfo, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, path)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrSourceNotFound, path)
	}
	return info, nil
}
