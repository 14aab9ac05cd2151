package models

import (
	"fmt"
	"time"
)

// DateFormat is the wire format for all calendar dates (CSV columns and JSON
// payloads). It is a compatibility surface shared with the CSV consumers.
const DateFormat = "2006-01-02"

// Date is a calendar day that marshals as YYYY-MM-DD.
type Date struct {
	time.Time
}

// NewDate truncates t to a calendar day.
func NewDate(t time.Time) Date {
	return Date{time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateFormat, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return Date{t}, nil
}

// String returns the date in YYYY-MM-DD form.
func (d Date) String() string {
	return d.Format(DateFormat)
}

// MarshalJSON implements json.Marshaler.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Date) UnmarshalJSON(b []byte) error {
	s := string(b)
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("invalid date literal %s", s)
	}
	parsed, err := ParseDate(s[1 : len(s)-1])
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// AddDays returns the date shifted by n calendar days.
func (d Date) AddDays(n int) Date {
	return Date{d.Time.AddDate(0, 0, n)}
}

// DailyRecord is one row of the daily metrics table.
// Field order mirrors the daily_metrics.csv column order.
type DailyRecord struct {
	Date             Date    `json:"date"`
	DailyRevenue     float64 `json:"daily_revenue"`
	Orders           int     `json:"orders"`
	SalesUnits       int     `json:"sales_units"`
	ActiveCustomers  int     `json:"active_customers"`
	NewCustomers     int     `json:"new_customers"`
	ChurnedCustomers int     `json:"churned_customers"`
	ChurnRate        float64 `json:"churn_rate"`
	AvgOrderValue    float64 `json:"avg_order_value"`
	DayOfWeek        int     `json:"day_of_week"`
	IsWeekend        int     `json:"is_weekend"`
}

// WeeklyRecord is one row of the weekly aggregates table.
// Sums for revenue/orders/units/new/churned, means for customers and AOV,
// churn_rate recomputed as churned/avg_customers*100.
type WeeklyRecord struct {
	Week             Date    `json:"week"`
	WeeklyRevenue    float64 `json:"weekly_revenue"`
	Orders           int     `json:"orders"`
	SalesUnits       int     `json:"sales_units"`
	AvgCustomers     float64 `json:"avg_customers"`
	NewCustomers     int     `json:"new_customers"`
	ChurnedCustomers int     `json:"churned_customers"`
	AvgOrderValue    float64 `json:"avg_order_value"`
	ChurnRate        float64 `json:"churn_rate"`
}

// KPIValue is a single tracked metric with period-over-period comparison.
type KPIValue struct {
	Value         float64 `json:"value"`
	ChangePercent float64 `json:"change_percent"`
	PreviousValue float64 `json:"previous_value"`
	Unit          string  `json:"unit,omitempty"`
}

// KPISet holds the five tracked KPIs for a period.
type KPISet struct {
	TotalRevenue    KPIValue `json:"total_revenue"`
	TotalOrders     KPIValue `json:"total_orders"`
	ActiveCustomers KPIValue `json:"active_customers"`
	AvgOrderValue   KPIValue `json:"avg_order_value"`
	ChurnRate       KPIValue `json:"churn_rate"`
}

// DateRange describes the span of the loaded table.
type DateRange struct {
	Start     string `json:"start"`
	End       string `json:"end"`
	TotalDays int    `json:"total_days"`
}

// SummaryTotals are whole-table sums.
type SummaryTotals struct {
	Revenue          float64 `json:"revenue"`
	Orders           int     `json:"orders"`
	SalesUnits       int     `json:"sales_units"`
	NewCustomers     int     `json:"new_customers"`
	ChurnedCustomers int     `json:"churned_customers"`
}

// SummaryAverages are whole-table daily means.
type SummaryAverages struct {
	DailyRevenue    float64 `json:"daily_revenue"`
	DailyOrders     float64 `json:"daily_orders"`
	ActiveCustomers int     `json:"active_customers"`
	ChurnRate       float64 `json:"churn_rate"`
}

// SummaryReport is the /api/metrics/summary payload body.
type SummaryReport struct {
	DateRange DateRange       `json:"date_range"`
	Totals    SummaryTotals   `json:"totals"`
	Averages  SummaryAverages `json:"averages"`
}
