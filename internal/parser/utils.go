package parser

import (
	"strconv"
	"strings"

	"niptreport/internal/model"
)

// DetectMonth derives a month label from a sheet name.
// The vocabulary is scanned in model.FiscalMonths order and the first case-insensitive
// substring hit wins, so "July_August_Summary" resolves to "July" regardless of position.
// Without a hit the raw sheet name is returned and recognized is false.
func DetectMonth(sheetName string) (label string, recognized bool) {
	lower := strings.ToLower(sheetName)
	for _, m := range model.FiscalMonths {
		if strings.Contains(lower, strings.ToLower(m)) {
			return m, true
		}
	}
	return sheetName, false
}

// ParseNumber coerces a raw cell value. Empty cells, text, hex literals and
// non-finite values become a missing Number; it never fails.
func ParseNumber(s string) model.Number {
	s = strings.TrimSpace(s)
	if s == "" {
		return model.Number{}
	}
	if strings.ContainsAny(s, "xX_") {
		return model.Number{}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return model.Number{}
	}
	return model.NumberOf(f)
}

// ColumnIndex maps header names to their column index; the first duplicate wins
func ColumnIndex(headers []string) map[string]int {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		if _, ok := idx[h]; ok {
			continue
		}
		idx[h] = i
	}
	return idx
}

// cellValue returns the cell under column, or "" when the column or cell is absent
func cellValue(row []string, columns map[string]int, column string) (string, bool) {
	i, ok := columns[column]
	if !ok {
		return "", false
	}
	if i >= len(row) {
		return "", true
	}
	return row[i], true
}

// isBlankRow reports whether every cell of the row is empty.
// Whitespace is content, the same as in the NIPT Package check.
func isBlankRow(row []string) bool {
	for _, v := range row {
		if v != "" {
			return false
		}
	}
	return true
}
