package store

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"go.uber.org/zap"

	"github.com/insightpulse/service-analytics/internal/domain/dashboard"
	"github.com/insightpulse/service-analytics/internal/models"
)

// DailyColumns is the daily_metrics.csv header, in order. Shared with the
// export side and the data generator.
var DailyColumns = []string{
	"date", "daily_revenue", "orders", "sales_units", "active_customers",
	"new_customers", "churned_customers", "churn_rate", "avg_order_value",
	"day_of_week", "is_weekend",
}

// WeeklyColumns is the weekly_metrics.csv header, in order.
var WeeklyColumns = []string{
	"week", "weekly_revenue", "orders", "sales_units", "avg_customers",
	"new_customers", "churned_customers", "avg_order_value", "churn_rate",
}

// LoadDailyCSV reads the daily metrics table from path. One-shot: a failed
// load leaves the store empty and is not retried.
func (s *Store) LoadDailyCSV(path string) error {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: daily metrics file %s", dashboard.ErrNotFound, path)
		}
		return fmt.Errorf("open daily metrics: %w", err)
	}
	defer f.Close()

	rows, err := ReadDailyCSV(f)
	if err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	if err := validateDaily(rows); err != nil {
		return fmt.Errorf("invalid daily table in %s: %w", path, err)
	}

	s.daily = rows
	s.logger.Info("Loaded daily metrics",
		zap.String("path", path),
		zap.Int("rows", len(rows)),
	)
	return nil
}

// LoadWeeklyCSV reads the weekly aggregates table from path.
func (s *Store) LoadWeeklyCSV(path string) error {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: weekly metrics file %s", dashboard.ErrNotFound, path)
		}
		return fmt.Errorf("open weekly metrics: %w", err)
	}
	defer f.Close()

	rows, err := ReadWeeklyCSV(f)
	if err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	s.weekly = rows
	s.logger.Info("Loaded weekly metrics",
		zap.String("path", path),
		zap.Int("rows", len(rows)),
	)
	return nil
}

// ReadDailyCSV parses daily records from r. The header must match
// DailyColumns exactly.
func ReadDailyCSV(r io.Reader) ([]models.DailyRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(DailyColumns)

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if err := checkHeader(header, DailyColumns); err != nil {
		return nil, err
	}

	var rows []models.DailyRecord
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		row, err := parseDailyRow(rec)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// ReadWeeklyCSV parses weekly records from r.
func ReadWeeklyCSV(r io.Reader) ([]models.WeeklyRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(WeeklyColumns)

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if err := checkHeader(header, WeeklyColumns); err != nil {
		return nil, err
	}

	var rows []models.WeeklyRecord
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		row, err := parseWeeklyRow(rec)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func checkHeader(got, want []string) error {
	for i := range want {
		if got[i] != want[i] {
			return fmt.Errorf("unexpected header column %d: got %q, want %q", i, got[i], want[i])
		}
	}
	return nil
}

func parseDailyRow(rec []string) (models.DailyRecord, error) {
	var row models.DailyRecord
	var err error

	if row.Date, err = models.ParseDate(rec[0]); err != nil {
		return row, err
	}
	if row.DailyRevenue, err = parseFloat(rec[1], "daily_revenue"); err != nil {
		return row, err
	}
	if row.Orders, err = parseInt(rec[2], "orders"); err != nil {
		return row, err
	}
	if row.SalesUnits, err = parseInt(rec[3], "sales_units"); err != nil {
		return row, err
	}
	if row.ActiveCustomers, err = parseInt(rec[4], "active_customers"); err != nil {
		return row, err
	}
	if row.NewCustomers, err = parseInt(rec[5], "new_customers"); err != nil {
		return row, err
	}
	if row.ChurnedCustomers, err = parseInt(rec[6], "churned_customers"); err != nil {
		return row, err
	}
	if row.ChurnRate, err = parseFloat(rec[7], "churn_rate"); err != nil {
		return row, err
	}
	if row.AvgOrderValue, err = parseFloat(rec[8], "avg_order_value"); err != nil {
		return row, err
	}
	if row.DayOfWeek, err = parseInt(rec[9], "day_of_week"); err != nil {
		return row, err
	}
	if row.IsWeekend, err = parseInt(rec[10], "is_weekend"); err != nil {
		return row, err
	}
	return row, nil
}

func parseWeeklyRow(rec []string) (models.WeeklyRecord, error) {
	var row models.WeeklyRecord
	var err error

	if row.Week, err = models.ParseDate(rec[0]); err != nil {
		return row, err
	}
	if row.WeeklyRevenue, err = parseFloat(rec[1], "weekly_revenue"); err != nil {
		return row, err
	}
	if row.Orders, err = parseInt(rec[2], "orders"); err != nil {
		return row, err
	}
	if row.SalesUnits, err = parseInt(rec[3], "sales_units"); err != nil {
		return row, err
	}
	if row.AvgCustomers, err = parseFloat(rec[4], "avg_customers"); err != nil {
		return row, err
	}
	if row.NewCustomers, err = parseInt(rec[5], "new_customers"); err != nil {
		return row, err
	}
	if row.ChurnedCustomers, err = parseInt(rec[6], "churned_customers"); err != nil {
		return row, err
	}
	if row.AvgOrderValue, err = parseFloat(rec[7], "avg_order_value"); err != nil {
		return row, err
	}
	if row.ChurnRate, err = parseFloat(rec[8], "churn_rate"); err != nil {
		return row, err
	}
	return row, nil
}

func parseFloat(s, col string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("column %s: %w", col, err)
	}
	return v, nil
}

func parseInt(s, col string) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("column %s: %w", col, err)
	}
	return v, nil
}
