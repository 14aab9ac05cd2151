package forecast

import (
	"fmt"
	"math"
)

// MinObservations is the shortest series the model will fit.
const MinObservations = 10

// HoltWinters is an additive exponential smoothing model with a weekly
// seasonal component. Series shorter than two full seasons fall back to
// Holt's linear trend (no seasonality). Intervals are derived from the
// in-sample one-step residual spread and widen with the horizon.
type HoltWinters struct {
	Alpha        float64 // level smoothing
	Beta         float64 // trend smoothing
	Gamma        float64 // seasonal smoothing
	SeasonLength int
	IntervalZ    float64 // 1.28 gives an ~80% two-sided interval
}

// NewHoltWinters returns a model tuned for daily business metrics.
func NewHoltWinters() *HoltWinters {
	return &HoltWinters{
		Alpha:        0.35,
		Beta:         0.05,
		Gamma:        0.15,
		SeasonLength: 7,
		IntervalZ:    1.28,
	}
}

// FitPredict implements Forecaster.
func (hw *HoltWinters) FitPredict(series []Point, horizon int) (*Prediction, error) {
	if horizon <= 0 {
		return nil, fmt.Errorf("horizon must be positive, got %d", horizon)
	}
	if len(series) < MinObservations {
		return nil, fmt.Errorf("insufficient history: %d observations, need at least %d",
			len(series), MinObservations)
	}

	values := make([]float64, len(series))
	for i, p := range series {
		values[i] = p.Value
	}

	var level, trend float64
	var seasonal []float64
	var residuals []float64

	m := hw.SeasonLength
	if len(values) >= 2*m {
		level, trend, seasonal = hw.initSeasonal(values)
		residuals = hw.smoothSeasonal(values, &level, &trend, seasonal)
	} else {
		level, trend = values[0], values[1]-values[0]
		residuals = hw.smoothLinear(values, &level, &trend)
	}

	sigma := stddev(residuals)

	pred := &Prediction{
		Mean:  make([]float64, horizon),
		Lower: make([]float64, horizon),
		Upper: make([]float64, horizon),
	}
	n := len(values)
	for h := 1; h <= horizon; h++ {
		mean := level + float64(h)*trend
		if seasonal != nil {
			mean += seasonal[(n+h-1)%m]
		}
		half := hw.IntervalZ * sigma * math.Sqrt(float64(h))
		pred.Mean[h-1] = mean
		pred.Lower[h-1] = mean - half
		pred.Upper[h-1] = mean + half
	}
	return pred, nil
}

// initSeasonal seeds level, trend and the seasonal indices from the first two
// full seasons.
func (hw *HoltWinters) initSeasonal(values []float64) (level, trend float64, seasonal []float64) {
	m := hw.SeasonLength
	first := mean(values[:m])
	second := mean(values[m : 2*m])

	level = first
	trend = (second - first) / float64(m)

	seasonal = make([]float64, m)
	seasons := len(values) / m
	for i := 0; i < m; i++ {
		var dev float64
		for s := 0; s < seasons; s++ {
			dev += values[s*m+i] - mean(values[s*m:(s+1)*m])
		}
		seasonal[i] = dev / float64(seasons)
	}
	return level, trend, seasonal
}

// smoothSeasonal runs the additive Holt-Winters recursion over the series,
// collecting one-step-ahead residuals after the first warm-up season.
func (hw *HoltWinters) smoothSeasonal(values []float64, level, trend *float64, seasonal []float64) []float64 {
	m := hw.SeasonLength
	var residuals []float64
	for t, y := range values {
		idx := t % m
		if t >= m {
			residuals = append(residuals, y-(*level+*trend+seasonal[idx]))
		}
		newLevel := hw.Alpha*(y-seasonal[idx]) + (1-hw.Alpha)*(*level+*trend)
		*trend = hw.Beta*(newLevel-*level) + (1-hw.Beta)*(*trend)
		seasonal[idx] = hw.Gamma*(y-newLevel) + (1-hw.Gamma)*seasonal[idx]
		*level = newLevel
	}
	return residuals
}

// smoothLinear runs Holt's linear trend recursion for short series.
func (hw *HoltWinters) smoothLinear(values []float64, level, trend *float64) []float64 {
	var residuals []float64
	for t, y := range values {
		if t >= 2 {
			residuals = append(residuals, y-(*level+*trend))
		}
		newLevel := hw.Alpha*y + (1-hw.Alpha)*(*level+*trend)
		*trend = hw.Beta*(newLevel-*level) + (1-hw.Beta)*(*trend)
		*level = newLevel
	}
	return residuals
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var s float64
	for _, v := range values {
		s += v
	}
	return s / float64(len(values))
}

func stddev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	mu := mean(values)
	var variance float64
	for _, v := range values {
		diff := v - mu
		variance += diff * diff
	}
	variance /= float64(len(values) - 1)
	return math.Sqrt(variance)
}
