// Package chart renders dashboard charts as PNG images with gonum/plot.
package chart

import (
	"fmt"
	"image/color"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"niptreport/internal/calculator"
)

// Colors
var (
	Highlight = color.RGBA{R: 0x19, G: 0x76, B: 0xD2, A: 0xFF} // #1976D2
	Muted     = color.RGBA{R: 211, G: 211, B: 211, A: 0xFF}    // lightgray
	Accent    = color.RGBA{R: 0xFF, G: 0x8F, B: 0x00, A: 0xFF} // #FF8F00
)

// Set2 categorical palette for product mix bars
var Set2 = []color.RGBA{
	{R: 0x66, G: 0xC2, B: 0xA5, A: 0xFF},
	{R: 0xFC, G: 0x8D, B: 0x62, A: 0xFF},
	{R: 0x8D, G: 0xA0, B: 0xCB, A: 0xFF},
	{R: 0xE7, G: 0x8A, B: 0xC3, A: 0xFF},
	{R: 0xA6, G: 0xD8, B: 0x54, A: 0xFF},
	{R: 0xFF, G: 0xD9, B: 0x2F, A: 0xFF},
	{R: 0xE5, G: 0xC4, B: 0x94, A: 0xFF},
	{R: 0xB3, G: 0xB3, B: 0xB3, A: 0xFF},
}

// Size output image size
type Size struct {
	Width  vg.Length
	Height vg.Length
}

// DefaultSize size used when none is given
var DefaultSize = Size{Width: 8 * vg.Inch, Height: 4 * vg.Inch}

const barWidth = 24

// MonthlyVolume bar chart of cases per month. When selected is set, only
// that month's bar uses the highlight color.
func MonthlyVolume(w io.Writer, volumes []calculator.MonthVolume, selected string, size Size) error {
	p := newPlot("Monthly Volume")
	p.X.Label.Text = "Month"
	p.Y.Label.Text = "Number of Cases"

	values := make([]float64, len(volumes))
	labels := make([]string, len(volumes))
	colors := make([]color.Color, len(volumes))
	for i, v := range volumes {
		values[i] = float64(v.Cases)
		labels[i] = v.Month
		colors[i] = Highlight
		if selected != "" && v.Month != selected {
			colors[i] = Muted
		}
	}

	if err := addBars(p, values, colors, false); err != nil {
		return err
	}
	if len(labels) > 0 {
		p.NominalX(labels...)
	}
	p.Y.Min = 0
	return render(w, p, size)
}

// ProductMix horizontal bars of cases per NIPT package with their share
func ProductMix(w io.Writer, shares []calculator.Share, month string, size Size) error {
	p := newPlot(filteredTitle("Product Mix", month))
	p.X.Label.Text = "Number of Cases"

	colors := make([]color.Color, len(shares))
	for i := range shares {
		colors[i] = Set2[i%len(Set2)]
	}
	return horizontal(w, p, shares, colors, func(s calculator.Share) string {
		return fmt.Sprintf("%d (%.1f%%)", s.Count, s.Share*100)
	}, size)
}

// TopSales horizontal bars of cases per salesperson
func TopSales(w io.Writer, shares []calculator.Share, month string, size Size) error {
	p := newPlot(filteredTitle(fmt.Sprintf("Top %d Sales", len(shares)), month))
	p.X.Label.Text = "Number of Cases"

	colors := make([]color.Color, len(shares))
	for i := range shares {
		colors[i] = Accent
	}
	return horizontal(w, p, shares, colors, func(s calculator.Share) string {
		return fmt.Sprintf("%d", s.Count)
	}, size)
}

// horizontal draws shares top-down in their given order
func horizontal(w io.Writer, p *plot.Plot, shares []calculator.Share, colors []color.Color, label func(calculator.Share) string, size Size) error {
	n := len(shares)
	values := make([]float64, n)
	names := make([]string, n)
	barColors := make([]color.Color, n)
	xys := make(plotter.XYs, n)
	texts := make([]string, n)

	maxCount := 0
	for i, s := range shares {
		// NominalY puts index 0 at the bottom
		j := n - 1 - i
		values[j] = float64(s.Count)
		names[j] = s.Name
		barColors[j] = colors[i]
		xys[j] = plotter.XY{X: float64(s.Count), Y: float64(j)}
		texts[j] = " " + label(s)
		if s.Count > maxCount {
			maxCount = s.Count
		}
	}

	if err := addBars(p, values, barColors, true); err != nil {
		return err
	}
	if n > 0 {
		p.NominalY(names...)
		labels, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: texts})
		if err != nil {
			return fmt.Errorf("failed to create labels: %w", err)
		}
		for i := range labels.TextStyle {
			labels.TextStyle[i].YAlign = draw.YCenter
		}
		p.Add(labels)
	}
	p.X.Min = 0
	p.X.Max = float64(maxCount) * 1.2
	return render(w, p, size)
}

// addBars draws one bar chart per distinct color so bars can be colored individually
func addBars(p *plot.Plot, values []float64, colors []color.Color, horizontal bool) error {
	if len(values) == 0 {
		return nil
	}

	groups := make(map[color.Color][]int)
	var order []color.Color
	for i, c := range colors {
		if _, ok := groups[c]; !ok {
			order = append(order, c)
		}
		groups[c] = append(groups[c], i)
	}

	for _, c := range order {
		vals := make(plotter.Values, len(values))
		for _, i := range groups[c] {
			vals[i] = values[i]
		}
		bars, err := plotter.NewBarChart(vals, vg.Points(barWidth))
		if err != nil {
			return fmt.Errorf("failed to create bar chart: %w", err)
		}
		bars.Color = c
		bars.LineStyle.Width = vg.Length(0)
		bars.Horizontal = horizontal
		p.Add(bars)
	}
	return nil
}

func newPlot(title string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.Title.TextStyle.Font.Size = vg.Points(14)
	return p
}

func filteredTitle(title, month string) string {
	if month == "" {
		return title
	}
	return title + " (" + month + ")"
}

func render(w io.Writer, p *plot.Plot, size Size) error {
	if size.Width <= 0 || size.Height <= 0 {
		size = DefaultSize
	}
	wt, err := p.WriterTo(size.Width, size.Height, "png")
	if err != nil {
		return fmt.Errorf("failed to create png canvas: %w", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write png: %w", err)
	}
	return nil
}
