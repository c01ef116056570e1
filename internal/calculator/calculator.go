// Package calculator aggregates a normalized table into report metrics.
package calculator

import (
	"github.com/shopspring/decimal"
	"niptreport/internal/model"
)

// MonthValue gain total of one domain month
type MonthValue struct {
	Month string          `json:"month"`
	Gain  decimal.Decimal `json:"gain"`
	Cases int             `json:"cases"`
}

// Summary headline aggregates of a table
type Summary struct {
	TotalCases  int             `json:"totalCases"`
	TotalGain   decimal.Decimal `json:"totalGain"` // sum of valid Gain
	AvgTAT      model.Number    `json:"avgTat"`    // mean of valid TAT, days
	ValidTAT    int             `json:"validTat"`  // TAT values contributing to AvgTAT
	MonthlyGain []MonthValue    `json:"monthlyGain"`

	BestMonth     string          `json:"bestMonth"` // empty when the month domain is empty
	BestMonthGain decimal.Decimal `json:"bestMonthGain"`
	LatestMonth   string          `json:"latestMonth"`
}

// HasBestMonth reports whether a best month could be determined
func (s Summary) HasBestMonth() bool {
	return s.BestMonth != ""
}

// Summarize computes the headline metrics.
// Missing Gain/TAT values are skipped; rows with a fallback month count
// toward totals but not toward any month.
func Summarize(table *model.Table) Summary {
	var s Summary
	if table == nil {
		return s
	}

	s.TotalCases = len(table.Records)
	s.LatestMonth = table.LatestMonth()

	monthly := make([]MonthValue, len(table.Months))
	for i, m := range table.Months {
		monthly[i] = MonthValue{Month: m, Gain: decimal.Zero}
	}

	total := decimal.Zero
	var tatSum float64
	for _, r := range table.Records {
		idx, inDomain := table.MonthIndex(r.Month)
		if inDomain {
			monthly[idx].Cases++
		}
		if r.Gain.Valid {
			g := decimal.NewFromFloat(r.Gain.Value)
			total = total.Add(g)
			if inDomain {
				monthly[idx].Gain = monthly[idx].Gain.Add(g)
			}
		}
		if r.TAT.Valid {
			tatSum += r.TAT.Value
			s.ValidTAT++
		}
	}

	s.TotalGain = total
	s.MonthlyGain = monthly
	if s.ValidTAT > 0 {
		s.AvgTAT = model.NumberOf(tatSum / float64(s.ValidTAT))
	}

	// strict comparison keeps the earliest month on ties
	for i, mv := range monthly {
		if i == 0 || mv.Gain.GreaterThan(s.BestMonthGain) {
			s.BestMonth = mv.Month
			s.BestMonthGain = mv.Gain
		}
	}
	return s
}
