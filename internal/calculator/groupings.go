package calculator

import (
	"sort"

	"github.com/shopspring/decimal"
	"niptreport/internal/model"
)

// DefaultTopSales number of salespeople in the top sales chart
const DefaultTopSales = 10

// MonthVolume case count and gain of one domain month
type MonthVolume struct {
	Month string          `json:"month"`
	Cases int             `json:"cases"`
	Gain  decimal.Decimal `json:"gain"`
}

// Share count of one category and its fraction of the filtered rows
type Share struct {
	Name  string  `json:"name"`
	Count int     `json:"count"`
	Share float64 `json:"share"` // 0..1
}

// MonthlyVolume cases and gain per domain month, in domain order
func MonthlyVolume(table *model.Table) []MonthVolume {
	if table == nil {
		return nil
	}
	out := make([]MonthVolume, len(table.Months))
	for i, m := range table.Months {
		out[i] = MonthVolume{Month: m, Gain: decimal.Zero}
	}
	for _, r := range table.Records {
		idx, ok := table.MonthIndex(r.Month)
		if !ok {
			continue
		}
		out[idx].Cases++
		if r.Gain.Valid {
			out[idx].Gain = out[idx].Gain.Add(decimal.NewFromFloat(r.Gain.Value))
		}
	}
	return out
}

// ProductMix case count per NIPT package, restricted to month when set.
// Sorted by count descending, then name.
func ProductMix(table *model.Table, month string) []Share {
	return countBy(filter(table, month), func(r model.Record) string { return r.NIPTPackage })
}

// TopSales the n salespeople with the most cases, restricted to month when set
func TopSales(table *model.Table, month string, n int) []Share {
	if n <= 0 {
		n = DefaultTopSales
	}
	shares := countBy(filter(table, month), func(r model.Record) string { return r.Sales })
	if len(shares) > n {
		shares = shares[:n]
	}
	return shares
}

// filter rows of the selected month; an empty month selects everything
func filter(table *model.Table, month string) []model.Record {
	if table == nil {
		return nil
	}
	if month == "" {
		return table.Records
	}
	var out []model.Record
	for _, r := range table.Records {
		if r.Month == month {
			out = append(out, r)
		}
	}
	return out
}

func countBy(records []model.Record, key func(model.Record) string) []Share {
	counts := make(map[string]int)
	for _, r := range records {
		counts[key(r)]++
	}

	shares := make([]Share, 0, len(counts))
	for name, c := range counts {
		shares = append(shares, Share{
			Name:  name,
			Count: c,
			Share: float64(c) / float64(len(records)),
		})
	}
	sort.Slice(shares, func(i, j int) bool {
		if shares[i].Count != shares[j].Count {
			return shares[i].Count > shares[j].Count
		}
		return shares[i].Name < shares[j].Name
	})
	return shares
}
