// Package analytics computes period-over-period KPIs and whole-table
// summaries from the daily metrics table.
package analytics

import (
	"fmt"
	"math"

	"github.com/insightpulse/service-analytics/internal/domain/dashboard"
	"github.com/insightpulse/service-analytics/internal/models"
	"github.com/insightpulse/service-analytics/internal/store"
)

// DefaultKPIDays is the comparison period length when none is requested.
const DefaultKPIDays = 30

// ComputeKPIs splits the table into a current window (last days rows) and the
// equally long window immediately preceding it, then compares the five
// tracked metrics. When fewer than 2*days rows exist the previous window is
// shorter or empty; sums and means over an empty window are 0, never NaN.
func ComputeKPIs(daily []models.DailyRecord, days int) (*models.KPISet, error) {
	if days <= 0 {
		return nil, fmt.Errorf("%w: days must be positive, got %d", dashboard.ErrValidation, days)
	}

	// The previous window is whatever precedes the current one inside the
	// trailing 2*days rows. It may be shorter than days, or empty, when the
	// table has too little history; the two windows never overlap.
	window := store.Tail(daily, 2*days)
	current := store.Tail(window, days)
	previous := store.Head(window, len(window)-len(current))

	curRevenue := sumRevenue(current)
	prevRevenue := sumRevenue(previous)
	curOrders := sumOrders(current)
	prevOrders := sumOrders(previous)
	curCustomers := meanCustomers(current)
	prevCustomers := meanCustomers(previous)
	curAOV := meanAOV(current)
	prevAOV := meanAOV(previous)
	curChurn := meanChurn(current)
	prevChurn := meanChurn(previous)

	return &models.KPISet{
		TotalRevenue: models.KPIValue{
			Value:         Round2(curRevenue),
			ChangePercent: Round2(changePercent(curRevenue, prevRevenue)),
			PreviousValue: Round2(prevRevenue),
		},
		TotalOrders: models.KPIValue{
			Value:         math.Trunc(curOrders),
			ChangePercent: Round2(changePercent(curOrders, prevOrders)),
			PreviousValue: math.Trunc(prevOrders),
		},
		ActiveCustomers: models.KPIValue{
			Value:         math.Trunc(curCustomers),
			ChangePercent: Round2(changePercent(curCustomers, prevCustomers)),
			PreviousValue: math.Trunc(prevCustomers),
		},
		AvgOrderValue: models.KPIValue{
			Value:         Round2(curAOV),
			ChangePercent: Round2(changePercent(curAOV, prevAOV)),
			PreviousValue: Round2(prevAOV),
		},
		ChurnRate: models.KPIValue{
			Value:         Round2(curChurn),
			ChangePercent: Round2(changePercent(curChurn, prevChurn)),
			PreviousValue: Round2(prevChurn),
			Unit:          "%",
		},
	}, nil
}

// ComputeSummary aggregates the whole table into date range, totals and
// daily averages.
func ComputeSummary(daily []models.DailyRecord) *models.SummaryReport {
	report := &models.SummaryReport{
		DateRange: models.DateRange{
			Start:     daily[0].Date.String(),
			End:       daily[len(daily)-1].Date.String(),
			TotalDays: len(daily),
		},
	}

	var revenue float64
	var orders, units, newCust, churned, activeSum int
	var churnSum float64
	for _, row := range daily {
		revenue += row.DailyRevenue
		orders += row.Orders
		units += row.SalesUnits
		newCust += row.NewCustomers
		churned += row.ChurnedCustomers
		activeSum += row.ActiveCustomers
		churnSum += row.ChurnRate
	}

	n := float64(len(daily))
	report.Totals = models.SummaryTotals{
		Revenue:          Round2(revenue),
		Orders:           orders,
		SalesUnits:       units,
		NewCustomers:     newCust,
		ChurnedCustomers: churned,
	}
	report.Averages = models.SummaryAverages{
		DailyRevenue:    Round2(revenue / n),
		DailyOrders:     Round2(float64(orders) / n),
		ActiveCustomers: int(math.Trunc(float64(activeSum) / n)),
		ChurnRate:       Round2(churnSum / n),
	}
	return report
}

// changePercent returns the percentage delta from previous to current,
// defined as 0 when previous is 0.
func changePercent(current, previous float64) float64 {
	if previous == 0 {
		return 0
	}
	return (current - previous) / previous * 100
}

// Round2 rounds to 2 decimal places for presentation. Integer metrics are
// truncated instead, matching the reference output format.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func sumRevenue(rows []models.DailyRecord) float64 {
	var s float64
	for _, r := range rows {
		s += r.DailyRevenue
	}
	return s
}

func sumOrders(rows []models.DailyRecord) float64 {
	var s float64
	for _, r := range rows {
		s += float64(r.Orders)
	}
	return s
}

func meanCustomers(rows []models.DailyRecord) float64 {
	if len(rows) == 0 {
		return 0
	}
	var s float64
	for _, r := range rows {
		s += float64(r.ActiveCustomers)
	}
	return s / float64(len(rows))
}

func meanAOV(rows []models.DailyRecord) float64 {
	if len(rows) == 0 {
		return 0
	}
	var s float64
	for _, r := range rows {
		s += r.AvgOrderValue
	}
	return s / float64(len(rows))
}

func meanChurn(rows []models.DailyRecord) float64 {
	if len(rows) == 0 {
		return 0
	}
	var s float64
	for _, r := range rows {
		s += r.ChurnRate
	}
	return s / float64(len(rows))
}
