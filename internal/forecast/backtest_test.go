package forecast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/insightpulse/service-analytics/internal/domain/dashboard"
	"github.com/insightpulse/service-analytics/internal/models"
	"github.com/insightpulse/service-analytics/internal/store"
)

func TestBacktestSplitsTrainAndTest(t *testing.T) {
	model := &stubModel{pred: &Prediction{
		Mean:  []float64{5000, 5000, 5000, 5000, 5000},
		Lower: []float64{4900, 4900, 4900, 4900, 4900},
		Upper: []float64{5100, 5100, 5100, 5100, 5100},
	}}
	svc := NewService(storeWithDaily(t, 30), model, zap.NewNop())

	report, err := svc.Backtest("daily_revenue", 5)
	require.NoError(t, err)

	// The model sees only the 25 training rows, never the hold-out.
	assert.Len(t, model.gotSeries, 25)
	assert.Equal(t, 5, model.gotHorizon)
	assert.Equal(t, "2025-01-25", model.gotSeries[24].Date.String())

	assert.Equal(t, "daily_revenue", report.Metric)
	assert.Equal(t, 5, report.TestDays)
	assert.Equal(t, []float64{5000, 5000, 5000, 5000, 5000}, report.ActualValues)
	// Perfect prediction scores zero across the board.
	assert.Equal(t, 0.0, report.Accuracy.MAPE)
	assert.Equal(t, 0.0, report.Accuracy.RMSE)
	assert.Equal(t, 0.0, report.Accuracy.MAE)
}

func TestBacktestScoresConstantError(t *testing.T) {
	model := &stubModel{pred: &Prediction{
		Mean:  []float64{5100, 5100, 5100},
		Lower: []float64{5000, 5000, 5000},
		Upper: []float64{5200, 5200, 5200},
	}}
	svc := NewService(storeWithDaily(t, 30), model, zap.NewNop())

	report, err := svc.Backtest("daily_revenue", 3)
	require.NoError(t, err)

	assert.Equal(t, 2.0, report.Accuracy.MAPE)
	assert.Equal(t, 100.0, report.Accuracy.RMSE)
	assert.Equal(t, 100.0, report.Accuracy.MAE)
}

func TestBacktestValidation(t *testing.T) {
	svc := NewService(storeWithDaily(t, 30), &stubModel{}, zap.NewNop())

	_, err := svc.Backtest("profit_margin", 5)
	assert.ErrorIs(t, err, dashboard.ErrValidation)

	_, err = svc.Backtest("orders", 0)
	assert.ErrorIs(t, err, dashboard.ErrValidation)

	_, err = svc.Backtest("orders", 30)
	assert.ErrorIs(t, err, dashboard.ErrValidation)

	_, err = svc.Backtest("orders", 45)
	assert.ErrorIs(t, err, dashboard.ErrValidation)
}

func TestBacktestUnloadedStore(t *testing.T) {
	svc := NewService(store.New(zap.NewNop()), &stubModel{}, zap.NewNop())

	_, err := svc.Backtest("orders", 5)
	assert.ErrorIs(t, err, dashboard.ErrDataUnavailable)
}

func TestBacktestAllZeroActuals(t *testing.T) {
	first, err := models.ParseDate("2025-01-01")
	require.NoError(t, err)
	rows := make([]models.DailyRecord, 30)
	for i := range rows {
		rows[i] = models.DailyRecord{Date: first.AddDays(i)} // churn_rate stays 0
	}
	st := store.New(zap.NewNop())
	st.SetDaily(rows)

	model := &stubModel{pred: &Prediction{
		Mean:  []float64{1, 1, 1},
		Lower: []float64{0, 0, 0},
		Upper: []float64{2, 2, 2},
	}}
	svc := NewService(st, model, zap.NewNop())

	_, err = svc.Backtest("churn_rate", 3)
	assert.ErrorIs(t, err, dashboard.ErrValidation)
}

func TestAccuracyScoresSkipZeroActuals(t *testing.T) {
	// The zero-actual row is excluded from MAPE but still counts for RMSE/MAE.
	scores, err := accuracyScores(
		[]float64{100, 0, 200},
		[]float64{110, 5, 180},
	)
	require.NoError(t, err)

	// MAPE over the two non-zero rows: (10/100 + 20/200) / 2 * 100 = 10.
	assert.Equal(t, 10.0, scores.MAPE)
	// MAE over all three rows: (10 + 5 + 20) / 3.
	assert.Equal(t, 11.67, scores.MAE)
	assert.InDelta(t, 13.23, scores.RMSE, 0.01)
}
