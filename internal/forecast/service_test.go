package forecast

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/insightpulse/service-analytics/internal/domain/dashboard"
	"github.com/insightpulse/service-analytics/internal/models"
	"github.com/insightpulse/service-analytics/internal/store"
)

// stubModel records the series it was fitted on and returns a fixed prediction.
type stubModel struct {
	gotSeries  []Point
	gotHorizon int
	pred       *Prediction
	err        error
}

func (m *stubModel) FitPredict(series []Point, horizon int) (*Prediction, error) {
	m.gotSeries = series
	m.gotHorizon = horizon
	if m.err != nil {
		return nil, m.err
	}
	return m.pred, nil
}

func storeWithDaily(t *testing.T, days int) *store.Store {
	t.Helper()
	first, err := models.ParseDate("2025-01-01")
	require.NoError(t, err)

	rows := make([]models.DailyRecord, days)
	for i := 0; i < days; i++ {
		rows[i] = models.DailyRecord{
			Date:            first.AddDays(i),
			DailyRevenue:    5000,
			Orders:          50,
			ActiveCustomers: 1200,
			ChurnRate:       3.0,
		}
	}
	s := store.New(zap.NewNop())
	s.SetDaily(rows)
	return s
}

func TestRevenueShapesRawOutput(t *testing.T) {
	model := &stubModel{pred: &Prediction{
		Mean:  []float64{5100.456, 5200.554},
		Lower: []float64{4900.111, 4950.222},
		Upper: []float64{5300.999, 5450.888},
	}}
	svc := NewService(storeWithDaily(t, 30), model, zap.NewNop())

	series, err := svc.Revenue(2)
	require.NoError(t, err)

	assert.Equal(t, 2, model.gotHorizon)
	assert.Len(t, model.gotSeries, 30)
	// Dates continue from the last observed day.
	assert.Equal(t, []string{"2025-01-31", "2025-02-01"}, series.Dates)
	assert.Equal(t, []float64{5100.46, 5200.55}, series.Predictions)
	assert.Equal(t, []float64{4900.11, 4950.22}, series.LowerBound)
	assert.Equal(t, []float64{5301.0, 5450.89}, series.UpperBound)
	assert.InDelta(t, 400.89, series.Uncertainty[0], 0.001)
}

func TestOrdersClampedToNonNegativeIntegers(t *testing.T) {
	model := &stubModel{pred: &Prediction{
		Mean:  []float64{-5.4, 10.6},
		Lower: []float64{-20.0, -1.5},
		Upper: []float64{9.2, 22.1},
	}}
	svc := NewService(storeWithDaily(t, 30), model, zap.NewNop())

	series, err := svc.Orders(2)
	require.NoError(t, err)

	assert.Equal(t, []float64{0, 10}, series.Predictions)
	assert.Equal(t, []float64{0, 0}, series.LowerBound)
	assert.Equal(t, []float64{9, 22}, series.UpperBound)
	// Uncertainty keeps the raw interval width from before the clamp.
	assert.Equal(t, 29.2, series.Uncertainty[0])
	assert.Equal(t, 23.6, series.Uncertainty[1])
}

func TestChurnRateClampedAndTrainedOnRecentHistory(t *testing.T) {
	model := &stubModel{pred: &Prediction{
		Mean:  []float64{-2.5, 104.8},
		Lower: []float64{-10.0, 95.0},
		Upper: []float64{3.1, 120.0},
	}}
	svc := NewService(storeWithDaily(t, 200), model, zap.NewNop())

	series, err := svc.ChurnRate(2)
	require.NoError(t, err)

	// Only the trailing 90 days feed the churn model.
	assert.Len(t, model.gotSeries, 90)
	assert.Equal(t, []float64{0, 100}, series.Predictions)
	assert.Equal(t, []float64{0, 95}, series.LowerBound)
	assert.Equal(t, []float64{3.1, 100}, series.UpperBound)
}

func TestForecastValidation(t *testing.T) {
	svc := NewService(storeWithDaily(t, 30), &stubModel{}, zap.NewNop())

	_, err := svc.Revenue(0)
	assert.ErrorIs(t, err, dashboard.ErrValidation)

	_, err = svc.Orders(-1)
	assert.ErrorIs(t, err, dashboard.ErrValidation)
}

func TestForecastUnloadedStore(t *testing.T) {
	svc := NewService(store.New(zap.NewNop()), &stubModel{}, zap.NewNop())

	_, err := svc.Revenue(30)
	assert.ErrorIs(t, err, dashboard.ErrDataUnavailable)
}

func TestForecastModelFailureWrapped(t *testing.T) {
	model := &stubModel{err: errors.New("insufficient history")}
	svc := NewService(storeWithDaily(t, 30), model, zap.NewNop())

	_, err := svc.Revenue(30)
	assert.ErrorIs(t, err, dashboard.ErrForecastFailed)
}

func TestSummaryTotals(t *testing.T) {
	model := &stubModel{pred: &Prediction{
		Mean:  []float64{10.4, 20.4},
		Lower: []float64{5, 15},
		Upper: []float64{15, 25},
	}}
	svc := NewService(storeWithDaily(t, 30), model, zap.NewNop())

	summary, err := svc.Summary(2)
	require.NoError(t, err)

	assert.Equal(t, 2, summary.ForecastPeriodDays)
	// Revenue keeps fractions: 10.4 + 20.4.
	assert.Equal(t, 30.8, summary.Summary.TotalRevenue)
	// Orders were clamped and truncated per step before summing: 10 + 20.
	assert.Equal(t, 30, summary.Summary.TotalOrders)
	// Customers: mean of the truncated steps, truncated again.
	assert.Equal(t, 15, summary.Summary.AvgCustomers)
	// Churn: mean of the clamped percentages.
	assert.Equal(t, 15.4, summary.Summary.AvgChurnRate)
	assert.Len(t, summary.Revenue.Predictions, 2)
	assert.Len(t, summary.ChurnRate.Predictions, 2)
}

func TestSummaryAbortsOnFailure(t *testing.T) {
	model := &stubModel{err: errors.New("model exploded")}
	svc := NewService(storeWithDaily(t, 30), model, zap.NewNop())

	summary, err := svc.Summary(30)
	assert.Nil(t, summary)
	assert.ErrorIs(t, err, dashboard.ErrForecastFailed)
}
