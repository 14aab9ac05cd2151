package export

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/insightpulse/service-analytics/internal/models"
)

// Report palette. Header rows use the dashboard blue, forecast tables the
// accent green.
var (
	headerBlue  = rgb{30, 64, 175}
	accentGreen = rgb{16, 185, 129}
	zebraGrey   = rgb{229, 229, 229}
)

type rgb struct{ r, g, b int }

// PDFGenerator renders the analytics report. Stateless; safe for concurrent
// use.
type PDFGenerator struct{}

// NewPDFGenerator creates a report generator.
func NewPDFGenerator() *PDFGenerator {
	return &PDFGenerator{}
}

// Generate renders the full report: title, metadata, KPI table, recent daily
// performance (last 7 rows of the supplied window) and, when a forecast
// summary is supplied, a 4-row forecast table.
func (g *PDFGenerator) Generate(kpis *models.KPISet, recentDaily []models.DailyRecord, forecast *models.ForecastTotals, periodDays int) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	// Title
	pdf.SetFont("Helvetica", "B", 22)
	pdf.SetTextColor(headerBlue.r, headerBlue.g, headerBlue.b)
	pdf.CellFormat(0, 12, "Analytics Dashboard Report", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	// Metadata
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(120, 120, 120)
	pdf.CellFormat(0, 5, "Generated: "+time.Now().Format("January 2, 2006 at 3:04 PM"), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 5, fmt.Sprintf("Period: Last %d days", periodDays), "", 1, "L", false, 0, "")
	pdf.Ln(6)

	g.writeKPITable(pdf, kpis)
	g.writeRecentTable(pdf, recentDaily)
	if forecast != nil {
		g.writeForecastTable(pdf, forecast)
	}

	// Footer
	pdf.Ln(10)
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.CellFormat(0, 5, "Generated by Analytics Dashboard", "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func (g *PDFGenerator) writeKPITable(pdf *fpdf.Fpdf, kpis *models.KPISet) {
	g.sectionHeading(pdf, "Key Performance Indicators")

	widths := []float64{55, 40, 30, 40}
	g.tableHeader(pdf, headerBlue, widths, []string{"Metric", "Current Value", "Change", "Previous Value"})

	rows := [][]string{
		{"Total Revenue", "$" + groupThousands(money(kpis.TotalRevenue.Value)),
			signedPercent(kpis.TotalRevenue.ChangePercent), "$" + groupThousands(money(kpis.TotalRevenue.PreviousValue))},
		{"Total Orders", groupThousands(wholeNumber(kpis.TotalOrders.Value)),
			signedPercent(kpis.TotalOrders.ChangePercent), groupThousands(wholeNumber(kpis.TotalOrders.PreviousValue))},
		{"Active Customers", groupThousands(wholeNumber(kpis.ActiveCustomers.Value)),
			signedPercent(kpis.ActiveCustomers.ChangePercent), groupThousands(wholeNumber(kpis.ActiveCustomers.PreviousValue))},
		{"Avg Order Value", "$" + money(kpis.AvgOrderValue.Value),
			signedPercent(kpis.AvgOrderValue.ChangePercent), "$" + money(kpis.AvgOrderValue.PreviousValue)},
		{"Churn Rate", money(kpis.ChurnRate.Value) + "%",
			signedPercent(kpis.ChurnRate.ChangePercent), money(kpis.ChurnRate.PreviousValue) + "%"},
	}
	g.tableRows(pdf, widths, rows)
	pdf.Ln(8)
}

func (g *PDFGenerator) writeRecentTable(pdf *fpdf.Fpdf, daily []models.DailyRecord) {
	g.sectionHeading(pdf, "Recent Daily Performance (Last 7 Days)")

	if len(daily) > 7 {
		daily = daily[len(daily)-7:]
	}

	widths := []float64{32, 36, 30, 35, 32}
	g.tableHeader(pdf, headerBlue, widths, []string{"Date", "Revenue", "Orders", "Customers", "Churn %"})

	rows := make([][]string, 0, len(daily))
	for _, day := range daily {
		rows = append(rows, []string{
			day.Date.String(),
			"$" + groupThousands(strconv.FormatFloat(day.DailyRevenue, 'f', 0, 64)),
			strconv.Itoa(day.Orders),
			strconv.Itoa(day.ActiveCustomers),
			money(day.ChurnRate) + "%",
		})
	}
	g.tableRows(pdf, widths, rows)
	pdf.Ln(8)
}

func (g *PDFGenerator) writeForecastTable(pdf *fpdf.Fpdf, forecast *models.ForecastTotals) {
	g.sectionHeading(pdf, "30-Day Forecast Summary")

	widths := []float64{80, 85}
	g.tableHeader(pdf, accentGreen, widths, []string{"Metric", "Forecasted Value"})

	rows := [][]string{
		{"Projected Revenue", "$" + groupThousands(money(forecast.TotalRevenue))},
		{"Expected Orders", groupThousands(strconv.Itoa(forecast.TotalOrders))},
		{"Avg Customers", groupThousands(strconv.Itoa(forecast.AvgCustomers))},
		{"Avg Churn Rate", money(forecast.AvgChurnRate) + "%"},
	}
	g.tableRows(pdf, widths, rows)
}

func (g *PDFGenerator) sectionHeading(pdf *fpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetTextColor(headerBlue.r, headerBlue.g, headerBlue.b)
	pdf.CellFormat(0, 9, title, "", 1, "L", false, 0, "")
	pdf.Ln(1)
}

func (g *PDFGenerator) tableHeader(pdf *fpdf.Fpdf, fill rgb, widths []float64, titles []string) {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFillColor(fill.r, fill.g, fill.b)
	for i, title := range titles {
		pdf.CellFormat(widths[i], 8, title, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)
}

func (g *PDFGenerator) tableRows(pdf *fpdf.Fpdf, widths []float64, rows [][]string) {
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(0, 0, 0)
	for i, row := range rows {
		if i%2 == 1 {
			pdf.SetFillColor(zebraGrey.r, zebraGrey.g, zebraGrey.b)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}
		for j, cell := range row {
			pdf.CellFormat(widths[j], 7, cell, "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
	}
}

// signedPercent formats a change with an explicit sign, one decimal place.
func signedPercent(v float64) string {
	return fmt.Sprintf("%+.1f%%", v)
}

// wholeNumber renders an already-truncated metric without decimals.
func wholeNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', 0, 64)
}

// groupThousands inserts comma separators into the integer part of a
// formatted number.
func groupThousands(s string) string {
	intPart := s
	frac := ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}
	neg := false
	if strings.HasPrefix(intPart, "-") {
		neg = true
		intPart = intPart[1:]
	}
	if len(intPart) <= 3 {
		if neg {
			intPart = "-" + intPart
		}
		return intPart + frac
	}
	var b strings.Builder
	lead := len(intPart) % 3
	if neg {
		b.WriteByte('-')
	}
	if lead > 0 {
		b.WriteString(intPart[:lead])
	}
	for i := lead; i < len(intPart); i += 3 {
		if b.Len() > 0 && !(neg && b.Len() == 1) {
			b.WriteByte(',')
		}
		b.WriteString(intPart[i : i+3])
	}
	return b.String() + frac
}
