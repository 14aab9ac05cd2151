// Package datagen produces deterministic sample business metrics for the
// dashboard: a daily table with growth and seasonality, and its weekly
// aggregates.
package datagen

import (
	"math"
	"math/rand"
	"time"

	"github.com/insightpulse/service-analytics/internal/models"
)

// DefaultDays is the generated history length.
const DefaultDays = 365

// churnWindow is the rolling window for the monthly churn rate.
const churnWindow = 30

// Generator produces a reproducible metrics table from a fixed seed.
type Generator struct {
	days int
	rng  *rand.Rand
}

// New creates a generator for the given history length and seed.
func New(days int, seed int64) *Generator {
	if days <= 0 {
		days = DefaultDays
	}
	return &Generator{days: days, rng: rand.New(rand.NewSource(seed))}
}

// Daily generates the daily table, ending on end. Metrics carry a growing
// customer base, weekend dips, month-end spikes and a holiday season lift.
func (g *Generator) Daily(end models.Date) []models.DailyRecord {
	days := g.days
	start := end.AddDays(-(days - 1))

	active := make([]int, days)
	orders := make([]int, days)
	churned := make([]int, days)
	rows := make([]models.DailyRecord, days)

	for i := 0; i < days; i++ {
		date := start.AddDays(i)
		dow := (int(date.Weekday()) + 6) % 7 // Monday = 0
		isWeekend := 0
		if dow >= 5 {
			isWeekend = 1
		}

		weekendEffect := 1.0
		if isWeekend == 1 {
			weekendEffect = 0.7
		}
		monthEndEffect := 1.0
		if date.Day() >= 25 {
			monthEndEffect = 1.3
		}
		holidayEffect := 1.0
		if m := date.Month(); m == time.November || m == time.December {
			holidayEffect = 1.4
		}

		// Growing customer base with noise, floored at 800. A single-day
		// history has no growth ramp.
		var growth float64
		if days > 1 {
			growth = 500 * float64(i) / float64(days-1)
		}
		customers := int(1000 + growth + g.rng.NormFloat64()*30)
		if customers < 800 {
			customers = 800
		}
		active[i] = customers

		dayOrders := int(50*weekendEffect*monthEndEffect*holidayEffect + g.rng.NormFloat64()*10)
		if dayOrders < 10 {
			dayOrders = 10
		}
		orders[i] = dayOrders

		aov := 75 + g.rng.Float64()*50
		revenue := float64(dayOrders) * aov
		units := int(float64(dayOrders) * (1.5 + g.rng.Float64()*2))

		dayChurned := int(float64(customers) * (0.001 + g.rng.Float64()*0.002))
		churned[i] = dayChurned
		newCustomers := dayChurned + 5 + g.rng.Intn(15)

		rows[i] = models.DailyRecord{
			Date:             date,
			DailyRevenue:     round2(revenue),
			Orders:           dayOrders,
			SalesUnits:       units,
			ActiveCustomers:  customers,
			NewCustomers:     newCustomers,
			ChurnedCustomers: dayChurned,
			AvgOrderValue:    round2(aov),
			DayOfWeek:        dow,
			IsWeekend:        isWeekend,
		}
	}

	fillChurnRate(rows, active, churned)
	return rows
}

// fillChurnRate computes the rolling 30-day churn rate. The warm-up days,
// which have no full window, are interpolated from 3.0 down to the first
// computed value.
func fillChurnRate(rows []models.DailyRecord, active, churned []int) {
	days := len(rows)
	for i := churnWindow; i < days; i++ {
		var windowChurned int
		var windowActive float64
		for j := i - churnWindow; j < i; j++ {
			windowChurned += churned[j]
			windowActive += float64(active[j])
		}
		windowActive /= churnWindow
		rows[i].ChurnRate = round2(float64(windowChurned) / windowActive * 100)
	}
	if days <= churnWindow {
		return
	}
	target := rows[churnWindow].ChurnRate
	for i := 0; i < churnWindow; i++ {
		rows[i].ChurnRate = round2(3.0 + (target-3.0)*float64(i)/float64(churnWindow-1))
	}
}

// WeeklyAggregates folds daily rows into weekly records keyed by the Monday
// of each week: sums for revenue, orders, units and customer movement, means
// for active customers and AOV, churn recomputed from the aggregates.
func WeeklyAggregates(daily []models.DailyRecord) []models.WeeklyRecord {
	var weeks []models.WeeklyRecord
	index := make(map[string]int)

	for _, row := range daily {
		monday := row.Date.AddDays(-((int(row.Date.Weekday()) + 6) % 7))
		key := monday.String()
		i, ok := index[key]
		if !ok {
			i = len(weeks)
			index[key] = i
			weeks = append(weeks, models.WeeklyRecord{Week: monday})
		}
		weeks[i].WeeklyRevenue += row.DailyRevenue
		weeks[i].Orders += row.Orders
		weeks[i].SalesUnits += row.SalesUnits
		weeks[i].AvgCustomers += float64(row.ActiveCustomers)
		weeks[i].NewCustomers += row.NewCustomers
		weeks[i].ChurnedCustomers += row.ChurnedCustomers
		weeks[i].AvgOrderValue += row.AvgOrderValue
	}

	counts := make(map[string]int)
	for _, row := range daily {
		monday := row.Date.AddDays(-((int(row.Date.Weekday()) + 6) % 7))
		counts[monday.String()]++
	}
	for i := range weeks {
		n := float64(counts[weeks[i].Week.String()])
		weeks[i].WeeklyRevenue = round2(weeks[i].WeeklyRevenue)
		weeks[i].AvgCustomers = round2(weeks[i].AvgCustomers / n)
		weeks[i].AvgOrderValue = round2(weeks[i].AvgOrderValue / n)
		if weeks[i].AvgCustomers > 0 {
			weeks[i].ChurnRate = round2(float64(weeks[i].ChurnedCustomers) / weeks[i].AvgCustomers * 100)
		}
	}
	return weeks
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
