package cli

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"
	"niptreport/internal/calculator"
	"niptreport/internal/importer"
	"niptreport/internal/model"
	"niptreport/internal/report"
)

func newSummaryCommand(a *app) *cobra.Command {
	var (
		month  string
		sheets bool
	)

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print the executive report in the terminal",
		Long: `Print KPI tiles, monthly volume, product mix, top sales and the executive
summary. Exits with status 1 when the workbook is missing or holds no usable data.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tbl, err := importer.NewLoader(a.logger).Load(a.sourcePath)
			if halt := report.CheckTable(tbl, err, a.sourcePath); halt != nil {
				printHalt(cmd.ErrOrStderr(), halt)
				return halt
			}
			if month != "" {
				if _, known := model.MonthRank(month); !known {
					return fmt.Errorf("unknown month %q: use one of %v", month, model.FiscalMonths)
				}
				if _, ok := tbl.MonthIndex(month); !ok {
					return fmt.Errorf("no data for %s: available months are %v", month, tbl.Months)
				}
			}
			printSummary(cmd.OutOrStdout(), a, tbl, month, sheets)
			return nil
		},
	}

	cmd.Flags().StringVarP(&month, "month", "m", "", "restrict product mix and top sales to one month")
	cmd.Flags().BoolVar(&sheets, "sheets", false, "list every sheet and how it was imported")
	return cmd
}

func printHalt(w io.Writer, halt *report.Halt) {
	st := newStyles()
	fmt.Fprintln(w, st.Error.Render("✖ "+halt.Message))
	if halt.Hint != "" {
		fmt.Fprintln(w, st.Hint.Render(halt.Hint))
	}
}

func printSummary(w io.Writer, a *app, tbl *model.Table, month string, sheets bool) {
	st := newStyles()
	year := a.cfg.Report.Year

	summary := calculator.Summarize(tbl)
	fmt.Fprintln(w, st.Title.Render(report.Title(year)))
	if updated := report.UpdatedLabel(summary, year); updated != "" {
		fmt.Fprintln(w, st.Muted.Render("Last data update: "+updated))
	}

	groups := calculator.Indicators(summary, calculator.IndicatorOptions{TATTargetDays: a.cfg.Report.TATTargetDays})
	kpi := newTable(w)
	kpi.AppendHeader(table.Row{"Metric", "Value", "Delta", "Note"})
	for _, tile := range report.Tiles(groups) {
		kpi.AppendRow(table.Row{tile.Name, tile.Value, tile.Delta, tile.Note})
	}
	kpi.Render()

	fmt.Fprintln(w, st.Heading.Render("Monthly Volume"))
	monthly := newTable(w)
	monthly.AppendHeader(table.Row{"Month", "Cases", "Gain (฿)"})
	monthly.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
	})
	for _, v := range calculator.MonthlyVolume(tbl) {
		name := v.Month
		if v.Month == month {
			name += " *"
		}
		monthly.AppendRow(table.Row{name, report.FormatInt(v.Cases), report.FormatDecimal(v.Gain)})
	}
	monthly.AppendFooter(table.Row{"Total", report.FormatInt(summary.TotalCases), report.FormatDecimal(summary.TotalGain)})
	monthly.Render()

	suffix := ""
	if month != "" {
		suffix = " (" + month + ")"
	}

	fmt.Fprintln(w, st.Heading.Render("Product Mix"+suffix))
	mix := newTable(w)
	mix.AppendHeader(table.Row{"NIPT Package", "Cases", "Share"})
	for _, s := range calculator.ProductMix(tbl, month) {
		mix.AppendRow(table.Row{s.Name, report.FormatInt(s.Count), report.FormatFixed(s.Share*100, 1) + "%"})
	}
	mix.Render()

	fmt.Fprintln(w, st.Heading.Render(fmt.Sprintf("Top %d Sales%s", a.cfg.Report.TopSales, suffix)))
	top := newTable(w)
	top.AppendHeader(table.Row{"#", "Sales", "Cases"})
	for i, s := range calculator.TopSales(tbl, month, a.cfg.Report.TopSales) {
		top.AppendRow(table.Row{i + 1, s.Name, report.FormatInt(s.Count)})
	}
	top.Render()

	es := report.Summarize(summary, report.Options{Year: year})
	fmt.Fprintln(w, st.Heading.Render(es.Title))
	for _, in := range es.Insights {
		fmt.Fprintf(w, "• %s: %s\n", in.Heading, in.Text)
	}

	if sheets && tbl.Report != nil {
		fmt.Fprintln(w, st.Heading.Render("Sheets"))
		sh := newTable(w)
		sh.AppendHeader(table.Row{"Sheet", "Month", "Status", "Rows", "Dropped", "Reason"})
		for _, r := range tbl.Report.Sheets {
			sh.AppendRow(table.Row{r.SheetName, r.Month, string(r.Status), r.ImportedRows, r.DroppedRows, r.Reason})
		}
		sh.Render()
	}
}

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	return t
}
