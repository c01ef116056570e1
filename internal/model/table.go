package model

import "time"

// SourceInfo identity of the workbook a table was built from
type SourceInfo struct {
	Path    string    `json:"path"`
	Size    int64     `json:"size"`
	ModTime time.Time `json:"modTime"`
}

// Table normalized, read-only result of one load
type Table struct {
	LoadID   string        `json:"loadId"`
	Source   SourceInfo    `json:"source"`
	LoadedAt time.Time     `json:"loadedAt"`
	Records  []Record      `json:"records"`
	Months   []string      `json:"months"` // categorical month domain, May→April
	Report   *ImportReport `json:"report"`
}

// Empty reports whether no usable record survived normalization
func (t *Table) Empty() bool {
	return t == nil || len(t.Records) == 0
}

// MonthIndex position of label within the table's month domain
func (t *Table) MonthIndex(label string) (int, bool) {
	for i, m := range t.Months {
		if m == label {
			return i, true
		}
	}
	return -1, false
}

// LatestMonth last month of the domain, empty when the domain is empty
func (t *Table) LatestMonth() string {
	if len(t.Months) == 0 {
		return ""
	}
	return t.Months[len(t.Months)-1]
}
