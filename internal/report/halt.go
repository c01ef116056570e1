package report

import (
	"errors"
	"net/http"
	"path/filepath"

	"niptreport/internal/importer"
	"niptreport/internal/model"
)

// Halt reason the report cannot be shown; nothing else is rendered with it
type Halt struct {
	Status  int    `json:"status"` // HTTP status for the dashboard
	Title   string `json:"title"`
	Message string `json:"message"`
	Hint    string `json:"hint,omitempty"`
}

// Error implements error so the CLI can return a halt directly
func (h *Halt) Error() string {
	if h.Hint == "" {
		return h.Message
	}
	return h.Message + "\n" + h.Hint
}

// CheckTable maps a load result to a halt, or nil when the table is usable
func CheckTable(table *model.Table, err error, sourcePath string) *Halt {
	name := filepath.Base(sourcePath)
	switch {
	case errors.Is(err, importer.ErrSourceNotFound):
		return &Halt{
			Status:  http.StatusServiceUnavailable,
			Title:   "Source file not found",
			Message: "Data file not found: '" + name + "'",
			Hint:    "Place the Excel workbook in " + filepath.Dir(sourcePath) + " and name it exactly '" + name + "'.",
		}
	case errors.Is(err, importer.ErrSourceUnreadable):
		return &Halt{
			Status:  http.StatusServiceUnavailable,
			Title:   "Source file unreadable",
			Message: "The data file '" + name + "' could not be opened as an Excel workbook.",
			Hint:    "Re-save the file as .xlsx and reload.",
		}
	case err != nil:
		return &Halt{
			Status:  http.StatusInternalServerError,
			Title:   "Load failed",
			Message: err.Error(),
		}
	case table.Empty():
		return &Halt{
			Status:  http.StatusServiceUnavailable,
			Title:   "No usable data",
			Message: "The Excel file contains no usable data, or its columns do not match the expected format.",
			Hint:    "Each month sheet needs the columns Sales, NIPT Package, Gain and TAT.",
		}
	}
	return nil
}
