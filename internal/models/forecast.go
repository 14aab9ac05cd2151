package models

// ForecastSeries is one forecasted metric over a future horizon. All slices
// have the same length as the requested horizon; Uncertainty is the interval
// width (upper - lower) per step.
type ForecastSeries struct {
	Dates       []string  `json:"dates"`
	Predictions []float64 `json:"predictions"`
	LowerBound  []float64 `json:"lower_bound"`
	UpperBound  []float64 `json:"upper_bound"`
	Uncertainty []float64 `json:"uncertainty"`
}

// ForecastTotals are the scalar roll-ups over a forecast horizon.
type ForecastTotals struct {
	TotalRevenue float64 `json:"total_revenue"`
	TotalOrders  int     `json:"total_orders"`
	AvgCustomers int     `json:"avg_customers"`
	AvgChurnRate float64 `json:"avg_churn_rate"`
}

// ForecastSummary aggregates the four per-metric forecasts.
type ForecastSummary struct {
	ForecastPeriodDays int            `json:"forecast_period_days"`
	Revenue            ForecastSeries `json:"revenue"`
	Orders             ForecastSeries `json:"orders"`
	Customers          ForecastSeries `json:"customers"`
	ChurnRate          ForecastSeries `json:"churn_rate"`
	Summary            ForecastTotals `json:"summary"`
}

// AccuracyScores are standard forecast accuracy metrics, rounded to 2 decimals.
type AccuracyScores struct {
	MAPE float64 `json:"mape"`
	RMSE float64 `json:"rmse"`
	MAE  float64 `json:"mae"`
}

// AccuracyReport is the result of a hold-out backtest for one metric.
type AccuracyReport struct {
	Metric          string         `json:"metric"`
	TestDays        int            `json:"test_days"`
	Accuracy        AccuracyScores `json:"accuracy"`
	ActualValues    []float64      `json:"actual_values"`
	PredictedValues []float64      `json:"predicted_values"`
}
