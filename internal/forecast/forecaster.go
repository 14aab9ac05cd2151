// Package forecast produces time-series forecasts for the dashboard metrics.
// The concrete model sits behind the Forecaster interface so any fit/predict
// implementation can be substituted.
package forecast

import (
	"github.com/insightpulse/service-analytics/internal/models"
)

// Point is one observed (date, value) pair. Series passed to a Forecaster
// are ordered by date with no gaps.
type Point struct {
	Date  models.Date
	Value float64
}

// Prediction holds one point estimate and a two-sided interval per forecasted
// step. All slices have the same length as the requested horizon.
type Prediction struct {
	Mean  []float64
	Lower []float64
	Upper []float64
}

// Forecaster fits a model to an observed series and predicts a future horizon
// of consecutive calendar days immediately following the last observation.
type Forecaster interface {
	FitPredict(series []Point, horizon int) (*Prediction, error)
}
