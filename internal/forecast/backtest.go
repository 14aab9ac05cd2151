package forecast

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/insightpulse/service-analytics/internal/analytics"
	"github.com/insightpulse/service-analytics/internal/domain/dashboard"
	"github.com/insightpulse/service-analytics/internal/models"
)

// DefaultBacktestDays is the hold-out window when none is requested.
const DefaultBacktestDays = 14

// metricColumns maps the backtestable metric names to their columns.
var metricColumns = map[string]func(models.DailyRecord) float64{
	"daily_revenue":    revenueOf,
	"orders":           ordersOf,
	"active_customers": customersOf,
	"churn_rate":       churnOf,
}

// Backtest holds out the trailing testDays rows, re-forecasts them from the
// remaining history and scores the predictions against the held-out actuals
// index-for-index.
func (s *Service) Backtest(metric string, testDays int) (*models.AccuracyReport, error) {
	column, ok := metricColumns[metric]
	if !ok {
		return nil, fmt.Errorf("%w: unknown metric %q", dashboard.ErrValidation, metric)
	}

	daily, err := s.store.Daily()
	if err != nil {
		return nil, err
	}
	if testDays <= 0 || testDays >= len(daily) {
		return nil, fmt.Errorf("%w: test_days must be in (0, %d), got %d",
			dashboard.ErrValidation, len(daily), testDays)
	}

	train := daily[:len(daily)-testDays]
	test := daily[len(daily)-testDays:]

	points := make([]Point, len(train))
	for i, row := range train {
		points[i] = Point{Date: row.Date, Value: column(row)}
	}
	pred, err := s.model.FitPredict(points, testDays)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", dashboard.ErrForecastFailed, err)
	}

	actuals := make([]float64, testDays)
	for i, row := range test {
		actuals[i] = column(row)
	}

	scores, err := accuracyScores(actuals, pred.Mean)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Backtest completed",
		zap.String("metric", metric),
		zap.Int("test_days", testDays),
		zap.Float64("mape", scores.MAPE),
	)

	return &models.AccuracyReport{
		Metric:          metric,
		TestDays:        testDays,
		Accuracy:        scores,
		ActualValues:    actuals,
		PredictedValues: pred.Mean,
	}, nil
}

// accuracyScores computes MAPE, RMSE and MAE. Rows whose actual value is
// exactly 0 are skipped for MAPE (the percentage error is undefined there);
// RMSE and MAE still use every row. All scores rounded to 2 decimals.
func accuracyScores(actuals, predicted []float64) (models.AccuracyScores, error) {
	var mapeSum float64
	var mapeN int
	var sqSum, absSum float64

	for i, actual := range actuals {
		diff := actual - predicted[i]
		sqSum += diff * diff
		absSum += math.Abs(diff)
		if actual != 0 {
			mapeSum += math.Abs(diff / actual)
			mapeN++
		}
	}

	if mapeN == 0 {
		return models.AccuracyScores{}, fmt.Errorf(
			"%w: all actual values are zero, MAPE is undefined", dashboard.ErrValidation)
	}

	n := float64(len(actuals))
	return models.AccuracyScores{
		MAPE: analytics.Round2(mapeSum / float64(mapeN) * 100),
		RMSE: analytics.Round2(math.Sqrt(sqSum / n)),
		MAE:  analytics.Round2(absSum / n),
	}, nil
}
