package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckSchema(t *testing.T) {
	t.Parallel()

	ok := CheckSchema([]string{"Sales", "NIPT Package", "Gain", "TAT", "Extra"}, []string{"Sales", "NIPT Package", "Gain", "TAT"})
	assert.True(t, ok.OK)
	assert.Empty(t, ok.Missing)
	assert.Empty(t, ok.Reason)

	bad := CheckSchema([]string{"Sales", "Gain"}, []string{"Sales", "NIPT Package", "Gain", "TAT"})
	assert.False(t, bad.OK)
	assert.Equal(t, []string{"NIPT Package", "TAT"}, bad.Missing)
	assert.Equal(t, "missing columns: NIPT Package, TAT", bad.Reason)
}

func TestSheetRecognizer_ExactColumnNames(t *testing.T) {
	t.Parallel()

	r := NewSheetRecognizer()
	res := r.Recognize("June", []string{"sales", "NIPT Package", "Gain", "TAT"})
	assert.False(t, res.Qualifies())
	assert.Equal(t, []string{"Sales"}, res.Schema.Missing)
	assert.Equal(t, "June", res.Month)
	assert.True(t, res.MonthRecognized)
}

func TestSheetRecognizer_SummarySheet(t *testing.T) {
	t.Parallel()

	r := NewSheetRecognizer()
	res := r.Recognize("Summary 2025", []string{"Month", "Total Gain"})
	assert.False(t, res.Qualifies())
	assert.False(t, res.MonthRecognized)
	assert.Equal(t, "Summary 2025", res.Month)
	assert.Len(t, res.Schema.Missing, 4)
}
