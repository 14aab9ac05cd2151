package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/insightpulse/service-analytics/internal/models"
)

func testKPIs() *models.KPISet {
	return &models.KPISet{
		TotalRevenue:    models.KPIValue{Value: 152340.55, ChangePercent: 12.3, PreviousValue: 135650.20},
		TotalOrders:     models.KPIValue{Value: 1520, ChangePercent: -4.1, PreviousValue: 1585},
		ActiveCustomers: models.KPIValue{Value: 1245, ChangePercent: 2.0, PreviousValue: 1220},
		AvgOrderValue:   models.KPIValue{Value: 100.22, ChangePercent: 1.5, PreviousValue: 98.74},
		ChurnRate:       models.KPIValue{Value: 3.12, ChangePercent: -0.8, PreviousValue: 3.15, Unit: "%"},
	}
}

func testRecentDaily(t *testing.T, days int) []models.DailyRecord {
	t.Helper()
	first, err := models.ParseDate("2025-03-01")
	require.NoError(t, err)
	rows := make([]models.DailyRecord, days)
	for i := range rows {
		rows[i] = models.DailyRecord{
			Date: first.AddDays(i), DailyRevenue: 5000, Orders: 50,
			ActiveCustomers: 1200, ChurnRate: 3.1,
		}
	}
	return rows
}

func TestGeneratePDF(t *testing.T) {
	g := NewPDFGenerator()

	out, err := g.Generate(testKPIs(), testRecentDaily(t, 30), &models.ForecastTotals{
		TotalRevenue: 160000.40,
		TotalOrders:  1600,
		AvgCustomers: 1260,
		AvgChurnRate: 3.05,
	}, 30)
	require.NoError(t, err)

	require.NotEmpty(t, out)
	assert.Equal(t, "%PDF", string(out[:4]))
}

func TestGeneratePDFWithoutForecast(t *testing.T) {
	g := NewPDFGenerator()

	out, err := g.Generate(testKPIs(), testRecentDaily(t, 5), nil, 30)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(out[:4]))
}

func TestSignedPercent(t *testing.T) {
	assert.Equal(t, "+12.3%", signedPercent(12.3))
	assert.Equal(t, "-4.1%", signedPercent(-4.1))
	assert.Equal(t, "+0.0%", signedPercent(0))
}

func TestWholeNumber(t *testing.T) {
	assert.Equal(t, "1520", wholeNumber(1520))
	assert.Equal(t, "0", wholeNumber(0))
}
