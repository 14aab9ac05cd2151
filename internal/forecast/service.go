package forecast

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/insightpulse/service-analytics/internal/analytics"
	"github.com/insightpulse/service-analytics/internal/domain/dashboard"
	"github.com/insightpulse/service-analytics/internal/models"
	"github.com/insightpulse/service-analytics/internal/store"
)

// DefaultPeriods is the forecast horizon when none is requested.
const DefaultPeriods = 30

// churnTrainingDays limits the churn model to recent history; churn is too
// volatile for the full table to help.
const churnTrainingDays = 90

// Service wraps the underlying model with per-metric post-processing and
// summary aggregation.
type Service struct {
	store  *store.Store
	model  Forecaster
	logger *zap.Logger
}

// NewService creates a forecast service over the given store and model.
func NewService(st *store.Store, model Forecaster, logger *zap.Logger) *Service {
	return &Service{store: st, model: model, logger: logger}
}

// Revenue forecasts daily revenue. Raw model output, values rounded to 2
// decimals, no clamping.
func (s *Service) Revenue(periods int) (*models.ForecastSeries, error) {
	daily, err := s.tableFor(periods)
	if err != nil {
		return nil, err
	}
	return s.forecastColumn(daily, revenueOf, periods)
}

// Orders forecasts daily orders: predictions and both bounds are clamped to
// >= 0 and truncated to integers.
func (s *Service) Orders(periods int) (*models.ForecastSeries, error) {
	daily, err := s.tableFor(periods)
	if err != nil {
		return nil, err
	}
	series, err := s.forecastColumn(daily, ordersOf, periods)
	if err != nil {
		return nil, err
	}
	clampNonNegativeInt(series)
	return series, nil
}

// Customers forecasts active customers with the same non-negative integer
// clamp as Orders.
func (s *Service) Customers(periods int) (*models.ForecastSeries, error) {
	daily, err := s.tableFor(periods)
	if err != nil {
		return nil, err
	}
	series, err := s.forecastColumn(daily, customersOf, periods)
	if err != nil {
		return nil, err
	}
	clampNonNegativeInt(series)
	return series, nil
}

// ChurnRate forecasts the churn percentage. Trains on the most recent 90
// observed days only and clamps every point to [0, 100], keeping fractions.
func (s *Service) ChurnRate(periods int) (*models.ForecastSeries, error) {
	daily, err := s.tableFor(periods)
	if err != nil {
		return nil, err
	}
	series, err := s.forecastColumn(store.Tail(daily, churnTrainingDays), churnOf, periods)
	if err != nil {
		return nil, err
	}
	clampPercent(series)
	return series, nil
}

// Summary forecasts all four metrics and folds them into one structure with
// horizon totals. Any underlying failure aborts the whole summary; no
// partial result is returned.
func (s *Service) Summary(periods int) (*models.ForecastSummary, error) {
	revenue, err := s.Revenue(periods)
	if err != nil {
		return nil, err
	}
	orders, err := s.Orders(periods)
	if err != nil {
		return nil, err
	}
	customers, err := s.Customers(periods)
	if err != nil {
		return nil, err
	}
	churn, err := s.ChurnRate(periods)
	if err != nil {
		return nil, err
	}

	summary := &models.ForecastSummary{
		ForecastPeriodDays: periods,
		Revenue:            *revenue,
		Orders:             *orders,
		Customers:          *customers,
		ChurnRate:          *churn,
		Summary: models.ForecastTotals{
			TotalRevenue: analytics.Round2(sum(revenue.Predictions)),
			TotalOrders:  int(math.Trunc(sum(orders.Predictions))),
			AvgCustomers: int(math.Trunc(mean(customers.Predictions))),
			AvgChurnRate: analytics.Round2(mean(churn.Predictions)),
		},
	}

	s.logger.Info("Generated forecast summary",
		zap.Int("periods", periods),
		zap.Float64("total_revenue", summary.Summary.TotalRevenue),
		zap.Int("total_orders", summary.Summary.TotalOrders),
	)
	return summary, nil
}

// tableFor validates the horizon and fetches the daily table.
func (s *Service) tableFor(periods int) ([]models.DailyRecord, error) {
	if periods <= 0 {
		return nil, fmt.Errorf("%w: periods must be positive, got %d", dashboard.ErrValidation, periods)
	}
	return s.store.Daily()
}

// forecastColumn runs the model over one column and shapes the raw output
// into a series. Values are rounded to 2 decimals; the uncertainty column is
// the raw interval width, captured before any metric-specific clamping.
func (s *Service) forecastColumn(daily []models.DailyRecord, column func(models.DailyRecord) float64, periods int) (*models.ForecastSeries, error) {
	points := make([]Point, len(daily))
	for i, row := range daily {
		points[i] = Point{Date: row.Date, Value: column(row)}
	}

	pred, err := s.model.FitPredict(points, periods)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", dashboard.ErrForecastFailed, err)
	}

	last := daily[len(daily)-1].Date
	series := &models.ForecastSeries{
		Dates:       make([]string, periods),
		Predictions: make([]float64, periods),
		LowerBound:  make([]float64, periods),
		UpperBound:  make([]float64, periods),
		Uncertainty: make([]float64, periods),
	}
	for i := 0; i < periods; i++ {
		series.Dates[i] = last.AddDays(i + 1).String()
		series.Predictions[i] = analytics.Round2(pred.Mean[i])
		series.LowerBound[i] = analytics.Round2(pred.Lower[i])
		series.UpperBound[i] = analytics.Round2(pred.Upper[i])
		series.Uncertainty[i] = analytics.Round2(pred.Upper[i] - pred.Lower[i])
	}
	return series, nil
}

func clampNonNegativeInt(series *models.ForecastSeries) {
	for _, xs := range [][]float64{series.Predictions, series.LowerBound, series.UpperBound} {
		for i, v := range xs {
			if v < 0 {
				v = 0
			}
			xs[i] = math.Trunc(v)
		}
	}
}

func clampPercent(series *models.ForecastSeries) {
	for _, xs := range [][]float64{series.Predictions, series.LowerBound, series.UpperBound} {
		for i, v := range xs {
			xs[i] = math.Min(100, math.Max(0, v))
		}
	}
}

func sum(values []float64) float64 {
	var s float64
	for _, v := range values {
		s += v
	}
	return s
}

func revenueOf(r models.DailyRecord) float64   { return r.DailyRevenue }
func ordersOf(r models.DailyRecord) float64    { return float64(r.Orders) }
func customersOf(r models.DailyRecord) float64 { return float64(r.ActiveCustomers) }
func churnOf(r models.DailyRecord) float64     { return r.ChurnRate }
