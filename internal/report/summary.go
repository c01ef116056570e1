package report

import (
	"fmt"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"niptreport/internal/calculator"
)

// Insight one paragraph of the executive summary
type Insight struct {
	Key     string `json:"key"`
	Heading string `json:"heading"`
	Text    string `json:"text"`
}

// ExecutiveSummary narrative report page
type ExecutiveSummary struct {
	Title    string    `json:"title"`
	Updated  string    `json:"updated"` // e.g. "June 2025"
	Insights []Insight `json:"insights"`
}

// Options report settings
type Options struct {
	Year int
}

// DefaultYear reporting year of the source workbook
const DefaultYear = 2025

// Title dashboard title for the reporting year
func Title(year int) string {
	return fmt.Sprintf("BRIA NIPT Executive Report %d", year)
}

// UpdatedLabel latest month with the reporting year, empty when no month is recognized
func UpdatedLabel(s calculator.Summary, year int) string {
	if s.LatestMonth == "" {
		return ""
	}
	return fmt.Sprintf("%s %d", cases.Title(language.English).String(s.LatestMonth), year)
}

// Summarize writes the executive summary: performance, peak month, efficiency
func Summarize(s calculator.Summary, opts Options) ExecutiveSummary {
	year := opts.Year
	if year <= 0 {
		year = DefaultYear
	}

	out := ExecutiveSummary{
		Title:   "Executive Summary",
		Updated: UpdatedLabel(s, year),
	}

	out.Insights = append(out.Insights, Insight{
		Key:     "performance",
		Heading: "Performance",
		Text: fmt.Sprintf(
			"The NIPT business in %d shows continued growth, with cumulative profit of %s baht across %s cases.",
			year, FormatDecimal(s.TotalGain), FormatInt(s.TotalCases)),
	})

	peak := Insight{Key: "peak", Heading: "Peak of the Year"}
	if s.HasBestMonth() {
		peak.Text = fmt.Sprintf(
			"The best performing month was %s with a profit of %s baht, reflecting the success of the sales and marketing teams during that period.",
			s.BestMonth, FormatDecimal(s.BestMonthGain))
	} else {
		peak.Text = "No sheet carried a recognizable month name, so no peak month can be reported."
	}
	out.Insights = append(out.Insights, peak)

	efficiency := Insight{Key: "efficiency", Heading: "Efficiency"}
	if s.AvgTAT.Valid {
		efficiency.Text = fmt.Sprintf(
			"Average TAT is %s days, a fast turnaround and a competitive strength.",
			FormatFixed(s.AvgTAT.Value, 2))
	} else {
		efficiency.Text = "No valid TAT values were recorded, so turnaround cannot be assessed."
	}
	out.Insights = append(out.Insights, efficiency)

	return out
}
