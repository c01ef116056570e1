package calculator

import (
	"fmt"

	"niptreport/internal/model"
)

// Indicator units
const (
	UnitCases = "cases"
	UnitMB    = "MB" // million baht
	UnitBaht  = "baht"
	UnitDays  = "days"
)

// Indicator one KPI tile
type Indicator struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Value     model.Number `json:"value"`
	Unit      string       `json:"unit"`
	Precision int          `json:"precision"`      // decimals shown for Value
	Text      string       `json:"text,omitempty"` // non-numeric value (month name)
	Delta     model.Number `json:"delta"`
	DeltaUnit string       `json:"deltaUnit,omitempty"`
	Note      string       `json:"note,omitempty"`
}

// IndicatorGroup KPI tile row
type IndicatorGroup struct {
	Name       string      `json:"name"`
	Indicators []Indicator `json:"indicators"`
}

// IndicatorOptions report settings that appear on tiles
type IndicatorOptions struct {
	TATTargetDays float64
}

// DefaultTATTargetDays turnaround target shown on the Avg TAT tile
const DefaultTATTargetDays = 5

// Indicators builds the KPI tiles from a summary
func Indicators(s Summary, opts IndicatorOptions) []IndicatorGroup {
	target := opts.TATTargetDays
	if target <= 0 {
		target = DefaultTATTargetDays
	}

	totalGain := s.TotalGain.InexactFloat64()

	best := Indicator{
		ID:   "best_month",
		Name: "Best Month",
		Text: s.BestMonth,
	}
	if s.HasBestMonth() {
		best.Delta = model.NumberOf(s.BestMonthGain.InexactFloat64())
		best.DeltaUnit = UnitBaht
	}

	return []IndicatorGroup{
		{
			Name: "Overview",
			Indicators: []Indicator{
				{
					ID:    "total_cases",
					Name:  "Total Cases",
					Value: model.NumberOf(float64(s.TotalCases)),
					Unit:  UnitCases,
					Note:  "cumulative",
				},
				{
					ID:        "total_profit",
					Name:      "Total Profit",
					Value:     model.NumberOf(totalGain / 1_000_000),
					Unit:      UnitMB,
					Precision: 2,
					Delta:     model.NumberOf(totalGain),
					DeltaUnit: UnitBaht,
				},
				{
					ID:        "avg_tat",
					Name:      "Avg TAT",
					Value:     s.AvgTAT,
					Unit:      UnitDays,
					Precision: 1,
					Note:      fmt.Sprintf("Target < %g", target),
				},
				best,
			},
		},
	}
}
