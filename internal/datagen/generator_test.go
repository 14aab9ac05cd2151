package datagen

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/insightpulse/service-analytics/internal/models"
)

func TestDailyShape(t *testing.T) {
	end := models.NewDate(time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC))
	rows := New(365, 42).Daily(end)

	require.Len(t, rows, 365)
	assert.Equal(t, "2024-07-01", rows[0].Date.String())
	assert.Equal(t, "2025-06-30", rows[364].Date.String())

	for i, row := range rows {
		if i > 0 {
			assert.True(t, row.Date.After(rows[i-1].Date.Time), "dates must ascend at row %d", i)
		}
		assert.GreaterOrEqual(t, row.Orders, 10)
		assert.GreaterOrEqual(t, row.ActiveCustomers, 800)
		assert.GreaterOrEqual(t, row.DailyRevenue, 0.0)
		assert.GreaterOrEqual(t, row.ChurnRate, 0.0)
		assert.GreaterOrEqual(t, row.NewCustomers, row.ChurnedCustomers)
		assert.True(t, row.DayOfWeek >= 0 && row.DayOfWeek <= 6)

		wantWeekend := 0
		if row.DayOfWeek >= 5 {
			wantWeekend = 1
		}
		assert.Equal(t, wantWeekend, row.IsWeekend)
		// Monday-based day of week.
		assert.Equal(t, (int(row.Date.Weekday())+6)%7, row.DayOfWeek)
	}
}

func TestDailySingleDay(t *testing.T) {
	end := models.NewDate(time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC))
	rows := New(1, 42).Daily(end)

	require.Len(t, rows, 1)
	assert.Equal(t, "2025-06-30", rows[0].Date.String())
	assert.GreaterOrEqual(t, rows[0].ActiveCustomers, 800)
	assert.False(t, math.IsNaN(rows[0].DailyRevenue))
	assert.GreaterOrEqual(t, rows[0].Orders, 10)
}

func TestDailyDeterministic(t *testing.T) {
	end := models.NewDate(time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC))

	a := New(120, 42).Daily(end)
	b := New(120, 42).Daily(end)
	assert.Equal(t, a, b)

	c := New(120, 7).Daily(end)
	assert.NotEqual(t, a, c)
}

func TestDailyWeekendDip(t *testing.T) {
	end := models.NewDate(time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC))
	rows := New(365, 42).Daily(end)

	var weekdaySum, weekendSum float64
	var weekdayN, weekendN int
	for _, row := range rows {
		if row.IsWeekend == 1 {
			weekendSum += float64(row.Orders)
			weekendN++
		} else {
			weekdaySum += float64(row.Orders)
			weekdayN++
		}
	}
	assert.Greater(t, weekdaySum/float64(weekdayN), weekendSum/float64(weekendN),
		"weekend order volume must dip below weekdays")
}

func TestWeeklyAggregates(t *testing.T) {
	end := models.NewDate(time.Date(2025, 6, 29, 0, 0, 0, 0, time.UTC)) // a Sunday
	rows := New(28, 42).Daily(end)
	weeks := WeeklyAggregates(rows)

	require.Len(t, weeks, 4)
	for i, week := range weeks {
		assert.Equal(t, time.Monday, week.Week.Weekday())
		if i > 0 {
			assert.True(t, week.Week.After(weeks[i-1].Week.Time))
		}
	}

	var wantRevenue float64
	var wantOrders int
	for _, row := range rows[:7] {
		wantRevenue += row.DailyRevenue
		wantOrders += row.Orders
	}
	assert.InDelta(t, wantRevenue, weeks[0].WeeklyRevenue, 0.01)
	assert.Equal(t, wantOrders, weeks[0].Orders)
	assert.Greater(t, weeks[0].AvgCustomers, 0.0)
	assert.GreaterOrEqual(t, weeks[0].ChurnRate, 0.0)
}

func TestChurnRateWarmup(t *testing.T) {
	end := models.NewDate(time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC))
	rows := New(90, 42).Daily(end)

	// The warm-up ramp starts at 3.0 and every day has a finite rate.
	assert.Equal(t, 3.0, rows[0].ChurnRate)
	for _, row := range rows {
		assert.False(t, row.ChurnRate < 0 || row.ChurnRate > 100)
	}
}
