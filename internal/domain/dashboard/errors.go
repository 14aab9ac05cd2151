// Package dashboard provides domain types and errors shared across the
// analytics service.
package dashboard

import (
	"errors"
	"net/http"
)

// Standard domain errors.
var (
	// ErrDataUnavailable means the metrics table was queried before a
	// successful load. Load is one-shot at process start; the condition
	// persists until the process is restarted with valid input files.
	ErrDataUnavailable = errors.New("data not loaded")

	// ErrUnauthorized covers bad credentials and invalid, expired or
	// malformed bearer tokens.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForecastFailed means the underlying time-series model could not
	// produce a forecast (typically insufficient history). The original
	// cause is attached via wrapping.
	ErrForecastFailed = errors.New("forecast failed")

	// ErrValidation covers bad query parameters (non-positive days,
	// periods or test_days, unknown metric names).
	ErrValidation = errors.New("invalid request parameters")

	// ErrNotFound covers missing resources such as input files.
	ErrNotFound = errors.New("resource not found")
)

// HTTPStatus maps a domain error to its HTTP response code. Unknown errors
// map to 500; none of the domain errors are retryable.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
