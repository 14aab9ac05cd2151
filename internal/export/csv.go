// Package export renders dashboard data as downloadable CSV and PDF reports.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/insightpulse/service-analytics/internal/models"
	"github.com/insightpulse/service-analytics/internal/store"
)

// WriteDailyCSV writes a columnar dump of daily rows. Dates are YYYY-MM-DD
// and monetary/percentage fields carry exactly 2 decimal places, so a
// re-parse of the output yields the same rows.
func WriteDailyCSV(w io.Writer, rows []models.DailyRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(store.DailyColumns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, row := range rows {
		rec := []string{
			row.Date.String(),
			money(row.DailyRevenue),
			strconv.Itoa(row.Orders),
			strconv.Itoa(row.SalesUnits),
			strconv.Itoa(row.ActiveCustomers),
			strconv.Itoa(row.NewCustomers),
			strconv.Itoa(row.ChurnedCustomers),
			money(row.ChurnRate),
			money(row.AvgOrderValue),
			strconv.Itoa(row.DayOfWeek),
			strconv.Itoa(row.IsWeekend),
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("write row %s: %w", row.Date, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteWeeklyCSV writes the weekly aggregates table.
func WriteWeeklyCSV(w io.Writer, rows []models.WeeklyRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(store.WeeklyColumns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, row := range rows {
		rec := []string{
			row.Week.String(),
			money(row.WeeklyRevenue),
			strconv.Itoa(row.Orders),
			strconv.Itoa(row.SalesUnits),
			money(row.AvgCustomers),
			strconv.Itoa(row.NewCustomers),
			strconv.Itoa(row.ChurnedCustomers),
			money(row.AvgOrderValue),
			money(row.ChurnRate),
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("write row %s: %w", row.Week, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// money formats a value with exactly 2 decimal places.
func money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
