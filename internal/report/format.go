// Package report turns aggregates into display text: KPI tiles and the executive summary.
package report

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
	"niptreport/internal/calculator"
	"niptreport/internal/model"
)

// NotAvailable text shown for missing values
const NotAvailable = "n/a"

var printer = message.NewPrinter(language.English)

// FormatInt thousands-separated integer
func FormatInt(n int) string {
	return printer.Sprintf("%d", n)
}

// FormatFixed thousands-separated value with prec decimals
func FormatFixed(v float64, prec int) string {
	return printer.Sprint(number.Decimal(v, number.Scale(prec)))
}

// FormatBaht whole-baht amount, e.g. ฿1,234
func FormatBaht(v float64) string {
	if v < 0 {
		return "-฿" + FormatFixed(-v, 0)
	}
	return "฿" + FormatFixed(v, 0)
}

// FormatDecimal whole-baht decimal without the currency sign
func FormatDecimal(d decimal.Decimal) string {
	return FormatFixed(d.Round(0).InexactFloat64(), 0)
}

// FormatNumber optional value with prec decimals, n/a when missing
func FormatNumber(n model.Number, prec int) string {
	if n.Missing() {
		return NotAvailable
	}
	return FormatFixed(n.Value, prec)
}

// Tile display strings of one KPI indicator
type Tile struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Value string `json:"value"`
	Delta string `json:"delta,omitempty"`
	Note  string `json:"note,omitempty"`
}

// Tiles formats indicator groups into tiles, in order
func Tiles(groups []calculator.IndicatorGroup) []Tile {
	var tiles []Tile
	for _, g := range groups {
		for _, ind := range g.Indicators {
			tiles = append(tiles, FormatIndicator(ind))
		}
	}
	return tiles
}

// FormatIndicator renders value, delta and note of one indicator
func FormatIndicator(ind calculator.Indicator) Tile {
	tile := Tile{ID: ind.ID, Name: ind.Name, Note: ind.Note}

	switch {
	case ind.Text != "":
		tile.Value = ind.Text
	case ind.Value.Missing():
		tile.Value = NotAvailable
	default:
		tile.Value = FormatFixed(ind.Value.Value, ind.Precision)
		switch ind.Unit {
		case calculator.UnitMB:
			tile.Value += " MB"
		case calculator.UnitDays:
			tile.Value += " Days"
		}
	}

	if ind.Delta.Valid {
		switch ind.DeltaUnit {
		case calculator.UnitBaht:
			tile.Delta = FormatBaht(ind.Delta.Value)
		default:
			tile.Delta = FormatFixed(ind.Delta.Value, ind.Precision)
		}
	}
	return tile
}
