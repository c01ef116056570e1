// Package handlers serves the dashboard pages and chart images.
package handlers

import (
	"bytes"
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"
	"niptreport/internal/calculator"
	"niptreport/internal/chart"
	"niptreport/internal/log"
	"niptreport/internal/model"
	"niptreport/internal/report"
)

// Source yields the current normalized table
type Source interface {
	Get() (*model.Table, error)
}

// Options report settings used by the pages
type Options struct {
	SourcePath    string
	Year          int
	TATTargetDays float64
	TopSales      int
}

// Handlers dashboard handlers
type Handlers struct {
	source Source
	opts   Options
	logger *log.Logger
}

// NewHandlers creates handlers over source
func NewHandlers(source Source, opts Options, logger *log.Logger) *Handlers {
	if opts.Year <= 0 {
		opts.Year = report.DefaultYear
	}
	if opts.TopSales <= 0 {
		opts.TopSales = calculator.DefaultTopSales
	}
	return &Handlers{
		source: source,
		opts:   opts,
		logger: log.OrDiscard(logger).WithComponent(log.ComponentHTTP),
	}
}

// RegisterRoutes registers page and chart routes
func (h *Handlers) RegisterRoutes(router gin.IRouter) {
	router.GET("/", h.Dashboard)
	router.GET("/summary", h.Summary)

	charts := router.Group("/charts")
	charts.GET("/monthly.png", h.MonthlyChart)
	charts.GET("/product-mix.png", h.ProductMixChart)
	charts.GET("/top-sales.png", h.TopSalesChart)

	router.GET("/healthz", h.Health)
}

// MonthOption entry of the month filter
type MonthOption struct {
	Name     string
	Cases    int
	Selected bool
	Query    string // link target selecting this month, or clearing it when selected
}

// Page data shared by both tabs
type Page struct {
	Title    string
	Tab      string
	Updated  string
	Tiles    []report.Tile
	LoadID   string
	LoadedAt time.Time
	Source   string
	Report   *model.ImportReport
}

// DashboardPage interactive dashboard tab
type DashboardPage struct {
	Page
	Months     []MonthOption
	Selected   string
	ChartQuery string // query string appended to chart URLs
	ProductMix []calculator.Share
	TopSales   []calculator.Share
}

// SummaryPage executive summary tab
type SummaryPage struct {
	Page
	Summary report.ExecutiveSummary
}

// HaltPage error page rendered instead of the report
type HaltPage struct {
	Title string
	Halt  *report.Halt
}

// load returns the table, or renders the halting page and returns nil
func (h *Handlers) load(c *gin.Context) *model.Table {
	table, err := h.source.Get()
	if halt := report.CheckTable(table, err, h.opts.SourcePath); halt != nil {
		if err != nil {
			h.logger.WarnContext(c.Request.Context(), "report halted", log.FieldError, err, log.FieldPath, c.Request.URL.Path)
		}
		c.HTML(halt.Status, "halt.html", HaltPage{Title: report.Title(h.opts.Year), Halt: halt})
		return nil
	}
	return table
}

func (h *Handlers) page(table *model.Table, tab string) (Page, calculator.Summary) {
	summary := calculator.Summarize(table)
	groups := calculator.Indicators(summary, calculator.IndicatorOptions{TATTargetDays: h.opts.TATTargetDays})
	return Page{
		Title:    report.Title(h.opts.Year),
		Tab:      tab,
		Updated:  report.UpdatedLabel(summary, h.opts.Year),
		Tiles:    report.Tiles(groups),
		LoadID:   table.LoadID,
		LoadedAt: table.LoadedAt,
		Source:   table.Source.Path,
		Report:   table.Report,
	}, summary
}

// Dashboard renders the interactive dashboard tab
func (h *Handlers) Dashboard(c *gin.Context) {
	table := h.load(c)
	if table == nil {
		return
	}

	page, _ := h.page(table, "dashboard")
	selected := selectedMonth(c, table)

	data := DashboardPage{
		Page:       page,
		Selected:   selected,
		ChartQuery: monthQuery(selected),
		ProductMix: calculator.ProductMix(table, selected),
		TopSales:   calculator.TopSales(table, selected, h.opts.TopSales),
	}
	for _, v := range calculator.MonthlyVolume(table) {
		opt := MonthOption{Name: v.Month, Cases: v.Cases, Selected: v.Month == selected}
		if opt.Selected {
			opt.Query = ""
		} else {
			opt.Query = monthQuery(v.Month)
		}
		data.Months = append(data.Months, opt)
	}

	c.HTML(http.StatusOK, "dashboard.html", data)
}

// Summary renders the executive summary tab
func (h *Handlers) Summary(c *gin.Context) {
	table := h.load(c)
	if table == nil {
		return
	}

	page, summary := h.page(table, "summary")
	c.HTML(http.StatusOK, "summary.html", SummaryPage{
		Page:    page,
		Summary: report.Summarize(summary, report.Options{Year: h.opts.Year}),
	})
}

// MonthlyChart cases per month, selected month highlighted
func (h *Handlers) MonthlyChart(c *gin.Context) {
	h.chart(c, "monthly", func(buf *bytes.Buffer, table *model.Table, month string) error {
		return chart.MonthlyVolume(buf, calculator.MonthlyVolume(table), month, chart.DefaultSize)
	})
}

// ProductMixChart cases per NIPT package for the selected month
func (h *Handlers) ProductMixChart(c *gin.Context) {
	h.chart(c, "product-mix", func(buf *bytes.Buffer, table *model.Table, month string) error {
		return chart.ProductMix(buf, calculator.ProductMix(table, month), month, chart.DefaultSize)
	})
}

// TopSalesChart top salespeople for the selected month
func (h *Handlers) TopSalesChart(c *gin.Context) {
	h.chart(c, "top-sales", func(buf *bytes.Buffer, table *model.Table, month string) error {
		return chart.TopSales(buf, calculator.TopSales(table, month, h.opts.TopSales), month, chart.DefaultSize)
	})
}

type renderFunc func(buf *bytes.Buffer, table *model.Table, month string) error

func (h *Handlers) chart(c *gin.Context, name string, render renderFunc) {
	table, err := h.source.Get()
	if halt := report.CheckTable(table, err, h.opts.SourcePath); halt != nil {
		c.String(halt.Status, halt.Title)
		return
	}

	month := selectedMonth(c, table)
	etag := chartETag(table.LoadID, name, month)
	c.Header("Cache-Control", "no-cache")
	c.Header("ETag", etag)
	if c.GetHeader("If-None-Match") == etag {
		c.Status(http.StatusNotModified)
		return
	}

	var buf bytes.Buffer
	if err := render(&buf, table, month); err != nil {
		h.logger.WithComponent(log.ComponentChart).ErrorContext(c.Request.Context(), "chart render failed", "chart", name, log.FieldMonth, month, log.FieldError, err)
		c.String(http.StatusInternalServerError, "chart render failed")
		return
	}
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

// Health reports whether the source currently yields a usable table
func (h *Handlers) Health(c *gin.Context) {
	table, err := h.source.Get()
	halt := report.CheckTable(table, err, h.opts.SourcePath)
	if halt != nil {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "data": halt.Title})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"data":    "ready",
		"loadId":  table.LoadID,
		"records": len(table.Records),
		"months":  table.Months,
	})
}

// selectedMonth month query parameter, kept only when it is in the table's domain
func selectedMonth(c *gin.Context, table *model.Table) string {
	month := c.Query("month")
	if month == "" {
		return ""
	}
	if _, ok := table.MonthIndex(month); !ok {
		return ""
	}
	return month
}

func monthQuery(month string) string {
	if month == "" {
		return ""
	}
	return "?" + url.Values{"month": {month}}.Encode()
}

func chartETag(loadID, name, month string) string {
	return `"` + loadID + "/" + name + "/" + url.QueryEscape(month) + `"`
}
