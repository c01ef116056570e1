package calculator

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"niptreport/internal/model"
)

func rec(month, sales, pkg string, gain, tat model.Number) model.Record {
	return model.Record{Month: month, Sales: sales, NIPTPackage: pkg, Gain: gain, TAT: tat}
}

func num(v float64) model.Number { return model.NumberOf(v) }

func newTable(records ...model.Record) *model.Table {
	labels := make([]string, 0, len(records))
	for _, r := range records {
		labels = append(labels, r.Month)
	}
	return &model.Table{Records: records, Months: model.OrderMonths(labels)}
}

func TestSummarize_MayJune(t *testing.T) {
	t.Parallel()

	table := newTable(
		rec("May", "Anan", "Panorama", num(2500), num(5)),
		rec("May", "Ploy", "NIFTY", num(1200), num(4)),
		rec("May", "Anan", "Panorama", num(2500), num(6)),
		rec("June", "Ploy", "NIFTY", num(1200), num(3)),
		rec("June", "Somchai", "Panorama", model.Number{}, num(7)),
	)

	s := Summarize(table)
	assert.Equal(t, 5, s.TotalCases)
	assert.True(t, decimal.NewFromInt(7400).Equal(s.TotalGain), s.TotalGain.String())
	require.True(t, s.AvgTAT.Valid)
	assert.InDelta(t, 5.0, s.AvgTAT.Value, 1e-9)
	assert.Equal(t, 5, s.ValidTAT)

	require.Len(t, s.MonthlyGain, 2)
	assert.Equal(t, "May", s.MonthlyGain[0].Month)
	assert.True(t, decimal.NewFromInt(6200).Equal(s.MonthlyGain[0].Gain))
	assert.Equal(t, 3, s.MonthlyGain[0].Cases)
	assert.Equal(t, "June", s.MonthlyGain[1].Month)
	assert.True(t, decimal.NewFromInt(1200).Equal(s.MonthlyGain[1].Gain))
	assert.Equal(t, 2, s.MonthlyGain[1].Cases)

	assert.Equal(t, "May", s.BestMonth)
	assert.True(t, decimal.NewFromInt(6200).Equal(s.BestMonthGain))
	assert.Equal(t, "June", s.LatestMonth)
}

func TestSummarize_BestMonthTieGoesToEarliest(t *testing.T) {
	t.Parallel()

	table := newTable(
		rec("August", "A", "P", num(100), num(1)),
		rec("June", "A", "P", num(100), num(1)),
		rec("July", "A", "P", num(50), num(1)),
	)

	s := Summarize(table)
	assert.Equal(t, []string{"June", "July", "August"}, table.Months)
	assert.Equal(t, "June", s.BestMonth)
	assert.Equal(t, "August", s.LatestMonth)
}

func TestSummarize_NegativeGainsStillPickBest(t *testing.T) {
	t.Parallel()

	s := Summarize(newTable(
		rec("May", "A", "P", num(-300), num(1)),
		rec("June", "A", "P", num(-100), num(1)),
	))
	assert.Equal(t, "June", s.BestMonth)
	assert.True(t, decimal.NewFromInt(-100).Equal(s.BestMonthGain))
}

func TestSummarize_FallbackMonthsCountInTotalsOnly(t *testing.T) {
	t.Parallel()

	table := newTable(
		rec("May", "A", "P", num(100), num(2)),
		rec("Extra cases", "B", "P", num(900), num(4)),
	)

	s := Summarize(table)
	assert.Equal(t, 2, s.TotalCases)
	assert.True(t, decimal.NewFromInt(1000).Equal(s.TotalGain))
	require.Len(t, s.MonthlyGain, 1)
	assert.Equal(t, "May", s.BestMonth)
	assert.True(t, decimal.NewFromInt(100).Equal(s.BestMonthGain))
}

func TestSummarize_NoMonthDomain(t *testing.T) {
	t.Parallel()

	s := Summarize(newTable(rec("Extra cases", "A", "P", num(10), model.Number{})))
	assert.False(t, s.HasBestMonth())
	assert.Empty(t, s.LatestMonth)
	assert.True(t, s.AvgTAT.Missing())
	assert.Equal(t, 0, s.ValidTAT)
}

func TestSummarize_NilTable(t *testing.T) {
	t.Parallel()

	s := Summarize(nil)
	assert.Equal(t, 0, s.TotalCases)
	assert.True(t, s.TotalGain.IsZero())
}

func TestIndicators(t *testing.T) {
	t.Parallel()

	s := Summarize(newTable(
		rec("May", "A", "P", num(1_500_000), num(4)),
		rec("June", "B", "P", num(500_000), num(6)),
	))
	groups := Indicators(s, IndicatorOptions{TATTargetDays: 4.5})
	require.Len(t, groups, 1)
	tiles := groups[0].Indicators
	require.Len(t, tiles, 4)

	assert.Equal(t, "Total Cases", tiles[0].Name)
	assert.Equal(t, num(2), tiles[0].Value)

	assert.Equal(t, "Total Profit", tiles[1].Name)
	assert.InDelta(t, 2.0, tiles[1].Value.Value, 1e-9)
	assert.Equal(t, UnitMB, tiles[1].Unit)
	assert.Equal(t, num(2_000_000), tiles[1].Delta)
	assert.Equal(t, UnitBaht, tiles[1].DeltaUnit)

	assert.Equal(t, "Avg TAT", tiles[2].Name)
	assert.Equal(t, num(5), tiles[2].Value)
	assert.Equal(t, "Target < 4.5", tiles[2].Note)

	assert.Equal(t, "Best Month", tiles[3].Name)
	assert.Equal(t, "May", tiles[3].Text)
	assert.Equal(t, num(1_500_000), tiles[3].Delta)
}

func TestIndicators_DefaultTargetAndNoBestMonth(t *testing.T) {
	t.Parallel()

	groups := Indicators(Summary{}, IndicatorOptions{})
	tiles := groups[0].Indicators
	assert.Equal(t, "Target < 5", tiles[2].Note)
	assert.True(t, tiles[2].Value.Missing())
	assert.Empty(t, tiles[3].Text)
	assert.True(t, tiles[3].Delta.Missing())
}
